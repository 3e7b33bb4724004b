package puppies

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"litter-milestones/internal/domain/age"
	"litter-milestones/internal/domain/growth"
	"litter-milestones/internal/domain/protocols"
	"litter-milestones/internal/platform/logger"

	"github.com/patrickmn/go-cache"
)

var (
	// ErrUnavailable: la camada no tiene fecha de nacimiento y la ventana se está aplicando.
	ErrUnavailable = errors.New("protocols unavailable without litter birth date")
	ErrPersistence = errors.New("persistence failure")
)

// Target es el log al que va un evento: un protocolo o el log de pesos.
type Target string

const TargetWeight Target = "weight"

func ProtocolTarget(t protocols.Type) Target { return Target(t) }

func ParseTarget(s string) (Target, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == string(TargetWeight) {
		return TargetWeight, nil
	}
	t, err := protocols.ParseType(s)
	if err != nil {
		return "", err
	}
	return ProtocolTarget(t), nil
}

// AddWeight agrega una pesada al log del cachorro.
type AddWeight struct {
	Weight float64
	Date   time.Time
}

// Recorder desacopla el gateway de Prometheus.
type Recorder interface {
	EventApplied(target string)
	EventRejected(target string)
	RolledBack(target string)
}

type nopRecorder struct{}

func (nopRecorder) EventApplied(string)  {}
func (nopRecorder) EventRejected(string) {}
func (nopRecorder) RolledBack(string)    {}

type GatewayOptions struct {
	// EnforceWindows convierte la política de ventanas en precondición del gateway.
	// false = comportamiento legacy (solo la UI deshabilita controles).
	EnforceWindows bool

	LocalStateTTL time.Duration

	Logger  logger.Logger
	Metrics Recorder
}

// localState es la copia optimista de los logs de un cachorro.
// Se trata como inmutable: cada cambio publica un valor nuevo en la cache.
type localState struct {
	protocols map[protocols.Type]protocols.Log
	weights   []growth.Entry
}

func (s localState) withProtocol(l protocols.Log) localState {
	next := localState{
		protocols: make(map[protocols.Type]protocols.Log, len(s.protocols)),
		weights:   s.weights,
	}
	for k, v := range s.protocols {
		next.protocols[k] = v
	}
	next.protocols[l.Type] = l
	return next
}

func (s localState) withWeights(w []growth.Entry) localState {
	return localState{protocols: s.protocols, weights: w}
}

// Gateway aplica un evento por llamada y devuelve el estado derivado.
//
// No serializa llamadas concurrentes sobre el mismo cachorro: si dos eventos compiten,
// en la persistencia gana la última escritura y la copia local puede quedar pisada por
// una respuesta vieja. No hay token de concurrencia optimista.
type Gateway struct {
	litters LitterRepository
	puppies PuppyRepository
	logs    LogRepository

	local *cache.Cache

	enforceWindows bool
	log            logger.Logger
	metrics        Recorder
	now            func() time.Time
}

func NewGateway(litters LitterRepository, puppies PuppyRepository, logs LogRepository, opts GatewayOptions) *Gateway {
	ttl := opts.LocalStateTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	l := opts.Logger
	if l == nil {
		l = logger.NewNop()
	}
	var m Recorder = nopRecorder{}
	if opts.Metrics != nil {
		m = opts.Metrics
	}

	return &Gateway{
		litters:        litters,
		puppies:        puppies,
		logs:           logs,
		local:          cache.New(ttl, 2*ttl),
		enforceWindows: opts.EnforceWindows,
		log:            l.With(map[string]any{"component": "update_gateway"}),
		metrics:        m,
		now:            time.Now,
	}
}

// ApplyEvent aplica ev (protocols.Event o AddWeight) sobre target.
//
// Orden: snapshot del log, cambio optimista en la copia local, persistencia.
// Si la persistencia falla se restaura el snapshot exacto y se devuelve ErrPersistence.
// No hay reintentos.
func (g *Gateway) ApplyEvent(ctx context.Context, puppyID string, target Target, ev any) (DerivedState, error) {
	p, l, err := g.lookup(ctx, puppyID)
	if err != nil {
		return DerivedState{}, err
	}

	now := g.now()

	switch e := ev.(type) {
	case AddWeight:
		if target != TargetWeight {
			g.metrics.EventRejected(string(target))
			return DerivedState{}, ErrInvalidInput
		}
		err = g.addWeight(ctx, p.ID, e)
	case protocols.Event:
		t, perr := protocols.ParseType(string(target))
		if perr != nil {
			g.metrics.EventRejected(string(target))
			return DerivedState{}, perr
		}
		err = g.applyProtocol(ctx, p.ID, l, t, e, now)
	default:
		g.metrics.EventRejected(string(target))
		return DerivedState{}, ErrInvalidInput
	}
	if err != nil {
		return DerivedState{}, err
	}

	g.metrics.EventApplied(string(target))

	st, err := g.state(ctx, p.ID)
	if err != nil {
		return DerivedState{}, err
	}
	return derive(p, l, st, now)
}

// Derive recalcula el estado sin aplicar eventos.
func (g *Gateway) Derive(ctx context.Context, puppyID string) (DerivedState, error) {
	p, l, err := g.lookup(ctx, puppyID)
	if err != nil {
		return DerivedState{}, err
	}
	st, err := g.state(ctx, p.ID)
	if err != nil {
		return DerivedState{}, err
	}
	return derive(p, l, st, g.now())
}

// Forget descarta la copia local; la próxima lectura vuelve al repositorio.
func (g *Gateway) Forget(puppyID string) {
	g.local.Delete(puppyID)
}

func (g *Gateway) applyProtocol(ctx context.Context, puppyID string, l Litter, t protocols.Type, ev protocols.Event, now time.Time) error {
	target := string(t)

	if g.enforceWindows {
		if l.BirthDate == nil {
			g.metrics.EventRejected(target)
			return ErrUnavailable
		}
		ageDays, err := age.DaysCeil(*l.BirthDate, now)
		if err != nil {
			g.metrics.EventRejected(target)
			return ErrUnavailable
		}
		if err := protocols.CheckWindow(t, ev, ageDays); err != nil {
			g.metrics.EventRejected(target)
			return err
		}
	}

	st, err := g.state(ctx, puppyID)
	if err != nil {
		return err
	}

	snapshot := st.protocols[t].Clone()
	next, err := protocols.Apply(snapshot, ev, now)
	if err != nil {
		g.metrics.EventRejected(target)
		return err
	}

	g.publish(puppyID, st.withProtocol(next))

	if err := g.logs.SaveProtocolLog(ctx, puppyID, next); err != nil {
		g.rollback(puppyID, target, err, func(cur localState) localState {
			return cur.withProtocol(snapshot)
		})
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

func (g *Gateway) addWeight(ctx context.Context, puppyID string, ev AddWeight) error {
	target := string(TargetWeight)

	entry := growth.Entry{Weight: ev.Weight, Date: ev.Date}
	if err := growth.Validate(entry); err != nil {
		g.metrics.EventRejected(target)
		return err
	}

	st, err := g.state(ctx, puppyID)
	if err != nil {
		return err
	}

	snapshot := append([]growth.Entry(nil), st.weights...)
	next := append(append([]growth.Entry(nil), snapshot...), entry)

	g.publish(puppyID, st.withWeights(next))

	if err := g.logs.AppendWeight(ctx, puppyID, entry); err != nil {
		g.rollback(puppyID, target, err, func(cur localState) localState {
			return cur.withWeights(snapshot)
		})
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// rollback restaura solo el log afectado, sobre la copia local vigente.
func (g *Gateway) rollback(puppyID, target string, cause error, restore func(localState) localState) {
	if cur, ok := g.cached(puppyID); ok {
		g.publish(puppyID, restore(cur))
	}
	g.metrics.RolledBack(target)
	g.log.Warn("persistence failed, optimistic update reverted", map[string]any{
		"puppy_id": puppyID,
		"target":   target,
		"err":      cause,
	})
}

func (g *Gateway) lookup(ctx context.Context, puppyID string) (Puppy, Litter, error) {
	puppyID = strings.TrimSpace(puppyID)
	if puppyID == "" {
		return Puppy{}, Litter{}, ErrInvalidInput
	}
	p, err := g.puppies.GetByID(ctx, puppyID)
	if err != nil {
		return Puppy{}, Litter{}, err
	}
	l, err := g.litters.GetByID(ctx, p.LitterID)
	if err != nil {
		return Puppy{}, Litter{}, err
	}
	return p, l, nil
}

func (g *Gateway) cached(puppyID string) (localState, bool) {
	v, ok := g.local.Get(puppyID)
	if !ok {
		return localState{}, false
	}
	st, ok := v.(localState)
	return st, ok
}

func (g *Gateway) publish(puppyID string, st localState) {
	g.local.Set(puppyID, st, cache.DefaultExpiration)
}

// state devuelve la copia local o la carga desde el repositorio.
func (g *Gateway) state(ctx context.Context, puppyID string) (localState, error) {
	if st, ok := g.cached(puppyID); ok {
		return st, nil
	}

	st := localState{protocols: make(map[protocols.Type]protocols.Log, len(protocols.All))}
	for _, t := range protocols.All {
		l, err := g.logs.GetProtocolLog(ctx, puppyID, t)
		if err != nil {
			return localState{}, err
		}
		if l.Type == "" {
			l = protocols.NewLog(t)
		}
		st.protocols[t] = l
	}

	w, err := g.logs.ListWeights(ctx, puppyID)
	if err != nil {
		return localState{}, err
	}
	st.weights = w

	g.publish(puppyID, st)
	return st, nil
}
