package protocols

import (
	"strings"
	"time"
)

// Event es un único registro sobre un log de protocolo.
type Event interface {
	appliesTo(t Type) bool
}

// ToggleExercise invierte un ejercicio ENS de un día.
type ToggleExercise struct {
	Day        int
	ExerciseID string
}

// SetScent fija (o limpia, con Scent vacío) la exposición ESI de un día.
type SetScent struct {
	Day      int
	Scent    string
	Executor string
}

// ToggleItem invierte un ítem de catálogo Auditory/Sensory.
type ToggleItem struct {
	ItemID   string
	Executor string
}

func (ToggleExercise) appliesTo(t Type) bool { return t == TypeNeurological }
func (SetScent) appliesTo(t Type) bool       { return t == TypeOlfactory }
func (ToggleItem) appliesTo(t Type) bool     { return t == TypeAuditory || t == TypeSensory }

// Apply devuelve un log nuevo con el evento aplicado. No muta l.
// Solo valida forma (tipo, ids de catálogo); el gating por edad es CheckWindow.
func Apply(l Log, ev Event, now time.Time) (Log, error) {
	p, ok := PolicyFor(l.Type)
	if !ok {
		return Log{}, ErrUnknownProtocol
	}
	if ev == nil || !ev.appliesTo(l.Type) {
		return Log{}, ErrEventMismatch
	}

	out := l.Clone()

	switch e := ev.(type) {
	case ToggleExercise:
		id := strings.TrimSpace(e.ExerciseID)
		if !p.HasItem(id) {
			return Log{}, ErrUnknownExercise
		}
		if out.Exercises == nil {
			out.Exercises = map[int]map[string]ExerciseMark{}
		}
		marks := out.Exercises[e.Day]
		if marks == nil {
			marks = map[string]ExerciseMark{}
			out.Exercises[e.Day] = marks
		}
		m := marks[id]
		marks[id] = ExerciseMark{Done: !m.Done, UpdatedAt: now}

	case SetScent:
		if out.Scents == nil {
			out.Scents = map[int]ScentEntry{}
		}
		scent := strings.TrimSpace(e.Scent)
		if scent == "" {
			delete(out.Scents, e.Day)
			break
		}
		out.Scents[e.Day] = ScentEntry{
			Scent:     scent,
			Executor:  strings.TrimSpace(e.Executor),
			Timestamp: now,
		}

	case ToggleItem:
		id := strings.TrimSpace(e.ItemID)
		if !p.HasItem(id) {
			return Log{}, ErrUnknownItem
		}
		if out.Items == nil {
			out.Items = map[string]ItemEntry{}
		}
		cur := out.Items[id]
		next := ItemEntry{
			Completed: !cur.Completed,
			Executor:  strings.TrimSpace(e.Executor),
			Timestamp: now,
		}
		if next.Completed {
			d := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
			next.Date = &d
		}
		out.Items[id] = next

	default:
		return Log{}, ErrEventMismatch
	}

	return out, nil
}

// CheckWindow valida el evento contra la ventana del protocolo para la edad dada (ceil).
func CheckWindow(t Type, ev Event, ageDays int) error {
	p, ok := PolicyFor(t)
	if !ok {
		return ErrUnknownProtocol
	}
	if p.Availability(ageDays) == AvailabilityLocked {
		return ErrProtocolLocked
	}

	var day int
	switch e := ev.(type) {
	case ToggleExercise:
		day = e.Day
	case SetScent:
		day = e.Day
	default:
		return nil
	}

	if !p.InWindow(day) {
		return ErrDayOutOfWindow
	}
	if !p.DayWritable(day, ageDays) {
		return ErrDayNotYetOpen
	}
	return nil
}
