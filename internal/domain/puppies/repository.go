package puppies

import (
	"context"

	"litter-milestones/internal/domain/growth"
	"litter-milestones/internal/domain/protocols"
)

type LitterRepository interface {
	Create(ctx context.Context, l Litter) error
	GetByID(ctx context.Context, id string) (Litter, error)
}

type PuppyRepository interface {
	Create(ctx context.Context, p Puppy) error
	GetByID(ctx context.Context, id string) (Puppy, error)
	ListByLitter(ctx context.Context, litterID string) ([]Puppy, error)
}

// LogRepository es el colaborador de persistencia de los logs.
// GetProtocolLog devuelve un log vacío (protocols.NewLog) si no hay nada guardado.
// SaveProtocolLog reemplaza el log completo: last-write-wins.
type LogRepository interface {
	GetProtocolLog(ctx context.Context, puppyID string, t protocols.Type) (protocols.Log, error)
	SaveProtocolLog(ctx context.Context, puppyID string, l protocols.Log) error

	ListWeights(ctx context.Context, puppyID string) ([]growth.Entry, error)
	AppendWeight(ctx context.Context, puppyID string, e growth.Entry) error
}
