package puppies

import (
	"context"
	"strings"
	"time"

	"litter-milestones/internal/domain/growth"
	"litter-milestones/internal/domain/protocols"
)

// DerivedState es lo que ve la UI después de cada evento.
type DerivedState struct {
	PuppyID   string
	LitterID  string
	AsOf      time.Time
	Available bool

	Protocols []protocols.Result
	Summary   protocols.Summary
	Growth    growth.Report
}

// ProtocolResult busca el resultado de un protocolo dentro del estado.
func (d DerivedState) ProtocolResult(t protocols.Type) (protocols.Result, bool) {
	for _, r := range d.Protocols {
		if r.Type == t {
			return r, true
		}
	}
	return protocols.Result{}, false
}

func derive(p Puppy, l Litter, st localState, now time.Time) (DerivedState, error) {
	results := make([]protocols.Result, 0, len(protocols.All))
	for _, t := range protocols.All {
		log, ok := st.protocols[t]
		if !ok {
			log = protocols.NewLog(t)
		}
		results = append(results, protocols.Aggregate(t, log, l.BirthDate, now))
	}

	points, err := growth.Classify(st.weights, p.BirthWeight, l.BirthDate)
	if err != nil {
		return DerivedState{}, err
	}

	return DerivedState{
		PuppyID:   p.ID,
		LitterID:  p.LitterID,
		AsOf:      now,
		Available: l.BirthDate != nil,
		Protocols: results,
		Summary:   protocols.Summarize(results...),
		Growth:    growth.NewReport(points),
	}, nil
}

// DeriveLitter calcula el estado de cada cachorro de la camada.
func (g *Gateway) DeriveLitter(ctx context.Context, litterID string) (Litter, []DerivedState, error) {
	litterID = strings.TrimSpace(litterID)
	if litterID == "" {
		return Litter{}, nil, ErrInvalidInput
	}
	l, err := g.litters.GetByID(ctx, litterID)
	if err != nil {
		return Litter{}, nil, err
	}
	pups, err := g.puppies.ListByLitter(ctx, litterID)
	if err != nil {
		return Litter{}, nil, err
	}

	now := g.now()
	out := make([]DerivedState, 0, len(pups))
	for _, p := range pups {
		st, err := g.state(ctx, p.ID)
		if err != nil {
			return Litter{}, nil, err
		}
		d, err := derive(p, l, st, now)
		if err != nil {
			return Litter{}, nil, err
		}
		out = append(out, d)
	}
	return l, out, nil
}
