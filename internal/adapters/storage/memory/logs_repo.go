package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"litter-milestones/internal/domain/growth"
	"litter-milestones/internal/domain/protocols"
	"litter-milestones/internal/domain/puppies"
)

type logKey struct {
	puppyID string
	t       protocols.Type
}

// logRepo guarda copias profundas: lo que devuelve nunca comparte mapas con lo guardado.
type logRepo struct {
	mu        sync.RWMutex
	protocols map[logKey]protocols.Log
	weights   map[string][]growth.Entry
}

func NewLogRepo() puppies.LogRepository {
	return &logRepo{
		protocols: make(map[logKey]protocols.Log),
		weights:   make(map[string][]growth.Entry),
	}
}

func (r *logRepo) GetProtocolLog(ctx context.Context, puppyID string, t protocols.Type) (protocols.Log, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.protocols[logKey{puppyID, t}]
	if !ok {
		return protocols.NewLog(t), nil
	}
	return l.Clone(), nil
}

func (r *logRepo) SaveProtocolLog(ctx context.Context, puppyID string, l protocols.Log) error {
	if strings.TrimSpace(puppyID) == "" {
		return errors.New("puppy id required")
	}
	if _, ok := protocols.PolicyFor(l.Type); !ok {
		return protocols.ErrUnknownProtocol
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.protocols[logKey{puppyID, l.Type}] = l.Clone()
	return nil
}

func (r *logRepo) ListWeights(ctx context.Context, puppyID string) ([]growth.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]growth.Entry(nil), r.weights[puppyID]...), nil
}

func (r *logRepo) AppendWeight(ctx context.Context, puppyID string, e growth.Entry) error {
	if strings.TrimSpace(puppyID) == "" {
		return errors.New("puppy id required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.weights[puppyID] = append(r.weights[puppyID], e)
	return nil
}
