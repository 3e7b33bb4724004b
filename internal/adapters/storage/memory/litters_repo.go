package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"litter-milestones/internal/domain/puppies"
)

// ErrNotFound es el mismo sentinel del dominio, así el handler lo mapea a 404.
var ErrNotFound = puppies.ErrNotFound

type litterRepo struct {
	mu   sync.RWMutex
	byID map[string]puppies.Litter
}

func NewLitterRepo() puppies.LitterRepository {
	return &litterRepo{
		byID: make(map[string]puppies.Litter),
	}
}

func (r *litterRepo) Create(ctx context.Context, l puppies.Litter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(l.ID) == "" {
		return errors.New("litter id required")
	}
	if _, exists := r.byID[l.ID]; exists {
		return errors.New("litter already exists")
	}
	r.byID[l.ID] = l
	return nil
}

func (r *litterRepo) GetByID(ctx context.Context, id string) (puppies.Litter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.byID[id]
	if !ok {
		return puppies.Litter{}, ErrNotFound
	}
	return l, nil
}
