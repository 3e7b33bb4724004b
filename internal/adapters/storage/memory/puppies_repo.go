package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"litter-milestones/internal/domain/puppies"
)

type puppyRepo struct {
	mu   sync.RWMutex
	byID map[string]puppies.Puppy
}

func NewPuppyRepo() puppies.PuppyRepository {
	return &puppyRepo{
		byID: make(map[string]puppies.Puppy),
	}
}

func (r *puppyRepo) Create(ctx context.Context, p puppies.Puppy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("puppy id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("puppy already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *puppyRepo) GetByID(ctx context.Context, id string) (puppies.Puppy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return puppies.Puppy{}, ErrNotFound
	}
	return p, nil
}

func (r *puppyRepo) ListByLitter(ctx context.Context, litterID string) ([]puppies.Puppy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]puppies.Puppy, 0)
	for _, p := range r.byID {
		if p.LitterID == litterID {
			out = append(out, p)
		}
	}

	// Orden estable por created_at asc (el id desempata)
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
