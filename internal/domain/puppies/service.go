package puppies

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"litter-milestones/internal/domain/growth"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// Service maneja el registro de camadas y cachorros (lo mínimo que el motor necesita leer).
type Service struct {
	litters LitterRepository
	puppies PuppyRepository
	now     func() time.Time
}

func NewService(litters LitterRepository, puppies PuppyRepository) *Service {
	return &Service{
		litters: litters,
		puppies: puppies,
		now:     time.Now,
	}
}

type CreateLitterInput struct {
	Name      string
	DamName   string
	SireName  string
	BirthDate *time.Time
}

func (s *Service) CreateLitter(ctx context.Context, in CreateLitterInput) (Litter, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Litter{}, ErrInvalidInput
	}

	var bd *time.Time
	if in.BirthDate != nil {
		if in.BirthDate.IsZero() {
			return Litter{}, ErrInvalidInput
		}
		t := *in.BirthDate
		bd = &t
	}

	now := s.now()
	l := Litter{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		DamName:   strings.TrimSpace(in.DamName),
		SireName:  strings.TrimSpace(in.SireName),
		BirthDate: bd,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.litters.Create(ctx, l); err != nil {
		return Litter{}, err
	}
	return l, nil
}

func (s *Service) GetLitter(ctx context.Context, id string) (Litter, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Litter{}, ErrInvalidInput
	}
	return s.litters.GetByID(ctx, id)
}

type CreatePuppyInput struct {
	Name        string
	Sex         string
	Color       string
	BirthWeight *float64
}

func (s *Service) CreatePuppy(ctx context.Context, litterID string, in CreatePuppyInput) (Puppy, error) {
	litterID = strings.TrimSpace(litterID)
	if litterID == "" || strings.TrimSpace(in.Name) == "" {
		return Puppy{}, ErrInvalidInput
	}
	// 0 = sin dato (así lo manda la app cuando el campo queda vacío)
	var bw *float64
	if in.BirthWeight != nil && *in.BirthWeight != 0 {
		w := *in.BirthWeight
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return Puppy{}, fmt.Errorf("%w: %v", ErrInvalidInput, growth.ErrInvalidWeight)
		}
		bw = &w
	}

	if _, err := s.litters.GetByID(ctx, litterID); err != nil {
		return Puppy{}, err
	}

	sex := Sex(strings.ToLower(strings.TrimSpace(in.Sex)))
	switch sex {
	case SexMale, SexFemale:
	case "":
		sex = SexUnknown
	case SexUnknown:
	default:
		return Puppy{}, ErrInvalidInput
	}

	now := s.now()
	p := Puppy{
		ID:          uuid.NewString(),
		LitterID:    litterID,
		Name:        strings.TrimSpace(in.Name),
		Sex:         sex,
		Color:       strings.TrimSpace(in.Color),
		BirthWeight: bw,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.puppies.Create(ctx, p); err != nil {
		return Puppy{}, err
	}
	return p, nil
}

func (s *Service) GetPuppy(ctx context.Context, id string) (Puppy, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Puppy{}, ErrInvalidInput
	}
	return s.puppies.GetByID(ctx, id)
}

func (s *Service) ListPuppies(ctx context.Context, litterID string) ([]Puppy, error) {
	if _, err := s.GetLitter(ctx, litterID); err != nil {
		return nil, err
	}
	return s.puppies.ListByLitter(ctx, strings.TrimSpace(litterID))
}
