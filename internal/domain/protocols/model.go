package protocols

import (
	"errors"
	"time"
)

var (
	ErrUnknownProtocol = errors.New("unknown protocol")
	ErrUnknownExercise = errors.New("unknown exercise")
	ErrUnknownItem     = errors.New("unknown item")
	ErrDayOutOfWindow  = errors.New("day outside protocol window")
	ErrDayNotYetOpen   = errors.New("day not yet open")
	ErrProtocolLocked  = errors.New("protocol locked")
	ErrEventMismatch   = errors.New("event does not apply to protocol")
)

// ExerciseMark es el estado de un ejercicio ENS en un día.
type ExerciseMark struct {
	Done      bool      `json:"done"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ScentEntry es la exposición ESI de un día. Scent vacío = día no completo.
type ScentEntry struct {
	Scent     string    `json:"scent"`
	Executor  string    `json:"executor"`
	Timestamp time.Time `json:"timestamp"`
}

// ItemEntry es un ítem de catálogo (Auditory / Sensory), sin día asociado.
type ItemEntry struct {
	Completed bool       `json:"completed"`
	Date      *time.Time `json:"date,omitempty"`
	Executor  string     `json:"executor"`
	Timestamp time.Time  `json:"timestamp"`
}

// Log es la variante etiquetada por Type. Solo el mapa que corresponde
// al tipo tiene sentido; los demás quedan nil.
//
// Claves fuera de ventana pueden existir (datos viejos) pero nunca cuentan.
type Log struct {
	Type Type `json:"type"`

	Exercises map[int]map[string]ExerciseMark `json:"exercises,omitempty"` // neurological
	Scents    map[int]ScentEntry              `json:"scents,omitempty"`    // olfactory
	Items     map[string]ItemEntry            `json:"items,omitempty"`     // auditory, sensory
}

func NewLog(t Type) Log {
	l := Log{Type: t}
	switch t {
	case TypeNeurological:
		l.Exercises = map[int]map[string]ExerciseMark{}
	case TypeOlfactory:
		l.Scents = map[int]ScentEntry{}
	case TypeAuditory, TypeSensory:
		l.Items = map[string]ItemEntry{}
	}
	return l
}

// Clone hace copia profunda. El gateway la usa como snapshot para rollback.
func (l Log) Clone() Log {
	out := Log{Type: l.Type}
	if l.Exercises != nil {
		out.Exercises = make(map[int]map[string]ExerciseMark, len(l.Exercises))
		for d, marks := range l.Exercises {
			cp := make(map[string]ExerciseMark, len(marks))
			for id, m := range marks {
				cp[id] = m
			}
			out.Exercises[d] = cp
		}
	}
	if l.Scents != nil {
		out.Scents = make(map[int]ScentEntry, len(l.Scents))
		for d, e := range l.Scents {
			out.Scents[d] = e
		}
	}
	if l.Items != nil {
		out.Items = make(map[string]ItemEntry, len(l.Items))
		for id, e := range l.Items {
			if e.Date != nil {
				t := *e.Date
				e.Date = &t
			}
			out.Items[id] = e
		}
	}
	return out
}
