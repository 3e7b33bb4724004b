package puppies

import (
	"context"
	"errors"
	"sync"

	"litter-milestones/internal/domain/growth"
	"litter-milestones/internal/domain/protocols"
)

// -------------------------
// Test repos (in-memory)
// -------------------------

var errDiskFull = errors.New("repo: disk full")

type fakeLitters struct {
	byID map[string]Litter
}

func newFakeLitters() *fakeLitters { return &fakeLitters{byID: map[string]Litter{}} }

func (r *fakeLitters) Create(ctx context.Context, l Litter) error {
	if _, ok := r.byID[l.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[l.ID] = l
	return nil
}

func (r *fakeLitters) GetByID(ctx context.Context, id string) (Litter, error) {
	l, ok := r.byID[id]
	if !ok {
		return Litter{}, ErrNotFound
	}
	return l, nil
}

type fakePuppies struct {
	byID  map[string]Puppy
	order []string
}

func newFakePuppies() *fakePuppies { return &fakePuppies{byID: map[string]Puppy{}} }

func (r *fakePuppies) Create(ctx context.Context, p Puppy) error {
	if _, ok := r.byID[p.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[p.ID] = p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *fakePuppies) GetByID(ctx context.Context, id string) (Puppy, error) {
	p, ok := r.byID[id]
	if !ok {
		return Puppy{}, ErrNotFound
	}
	return p, nil
}

func (r *fakePuppies) ListByLitter(ctx context.Context, litterID string) ([]Puppy, error) {
	out := make([]Puppy, 0)
	for _, id := range r.order {
		if p := r.byID[id]; p.LitterID == litterID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeLogs struct {
	mu sync.Mutex

	protocols map[string]map[protocols.Type]protocols.Log
	weights   map[string][]growth.Entry

	failSave   error
	failAppend error
	saves      int
	loads      int
}

func newFakeLogs() *fakeLogs {
	return &fakeLogs{
		protocols: map[string]map[protocols.Type]protocols.Log{},
		weights:   map[string][]growth.Entry{},
	}
}

func (r *fakeLogs) GetProtocolLog(ctx context.Context, puppyID string, t protocols.Type) (protocols.Log, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loads++
	if l, ok := r.protocols[puppyID][t]; ok {
		return l.Clone(), nil
	}
	return protocols.NewLog(t), nil
}

func (r *fakeLogs) SaveProtocolLog(ctx context.Context, puppyID string, l protocols.Log) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSave != nil {
		return r.failSave
	}
	if r.protocols[puppyID] == nil {
		r.protocols[puppyID] = map[protocols.Type]protocols.Log{}
	}
	r.protocols[puppyID][l.Type] = l.Clone()
	r.saves++
	return nil
}

func (r *fakeLogs) ListWeights(ctx context.Context, puppyID string) ([]growth.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]growth.Entry(nil), r.weights[puppyID]...), nil
}

func (r *fakeLogs) AppendWeight(ctx context.Context, puppyID string, e growth.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAppend != nil {
		return r.failAppend
	}
	r.weights[puppyID] = append(r.weights[puppyID], e)
	return nil
}

type countingRecorder struct {
	applied, rejected, rolledBack map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{
		applied:    map[string]int{},
		rejected:   map[string]int{},
		rolledBack: map[string]int{},
	}
}

func (c *countingRecorder) EventApplied(target string)  { c.applied[target]++ }
func (c *countingRecorder) EventRejected(target string) { c.rejected[target]++ }
func (c *countingRecorder) RolledBack(target string)    { c.rolledBack[target]++ }
