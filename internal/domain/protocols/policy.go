package protocols

import "strings"

// Type identifica uno de los cuatro protocolos de estimulación temprana.
type Type string

const (
	TypeNeurological Type = "neurological" // ENS
	TypeOlfactory    Type = "olfactory"    // ESI
	TypeAuditory     Type = "auditory"
	TypeSensory      Type = "sensory"
)

// All respeta el orden de presentación.
var All = []Type{TypeNeurological, TypeOlfactory, TypeAuditory, TypeSensory}

// Ejercicios ENS (los 5 son obligatorios cada día).
const (
	ExerciseTactile   = "tactile_stimulation"
	ExerciseHeadErect = "head_held_erect"
	ExerciseHeadDown  = "head_pointed_down"
	ExerciseSupine    = "supine_position"
	ExerciseThermal   = "thermal_stimulation"
)

var exercises = []string{
	ExerciseTactile,
	ExerciseHeadErect,
	ExerciseHeadDown,
	ExerciseSupine,
	ExerciseThermal,
}

var auditoryItems = []string{
	"household_appliances",
	"doorbell_knocking",
	"thunderstorm",
	"fireworks",
	"traffic",
	"crowd_children",
	"other_dogs",
	"music",
}

var sensoryItems = []string{
	"grass",
	"sand",
	"gravel",
	"tile",
	"carpet",
	"wood",
	"metal_grate",
	"water",
	"stairs",
	"wobble_board",
}

// Policy es la fila de la tabla de ventanas para un protocolo.
// Es la única fuente de verdad del comportamiento por tipo.
type Policy struct {
	Type Type

	WindowStart int
	WindowEnd   int

	// DayScoped: el log se indexa por día (ENS/ESI). Si no, por ítem de catálogo.
	DayScoped bool

	// Items: ejercicios por día (ENS) o catálogo (Auditory/Sensory). Vacío para ESI.
	Items []string

	Total int
}

var policies = map[Type]Policy{
	TypeNeurological: {Type: TypeNeurological, WindowStart: 3, WindowEnd: 16, DayScoped: true, Items: exercises, Total: 14},
	TypeOlfactory:    {Type: TypeOlfactory, WindowStart: 3, WindowEnd: 16, DayScoped: true, Total: 14},
	TypeAuditory:     {Type: TypeAuditory, WindowStart: 21, WindowEnd: 60, Items: auditoryItems, Total: len(auditoryItems)},
	TypeSensory:      {Type: TypeSensory, WindowStart: 25, WindowEnd: 60, Items: sensoryItems, Total: len(sensoryItems)},
}

// PolicyFor devuelve la política del protocolo. ok=false si el tipo no existe.
func PolicyFor(t Type) (Policy, bool) {
	p, ok := policies[t]
	if !ok {
		return Policy{}, false
	}
	p.Items = append([]string(nil), p.Items...)
	return p, true
}

func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := policies[t]; !ok {
		return "", ErrUnknownProtocol
	}
	return t, nil
}

// Availability del protocolo según la edad (redondeo ceil).
type Availability string

const (
	AvailabilityUnavailable Availability = "unavailable" // sin fecha de nacimiento
	AvailabilityLocked      Availability = "locked"
	AvailabilityOpen        Availability = "open"
	AvailabilityClosed      Availability = "closed"
)

func (p Policy) Availability(ageDays int) Availability {
	switch {
	case ageDays < p.WindowStart:
		return AvailabilityLocked
	case ageDays > p.WindowEnd:
		return AvailabilityClosed
	default:
		return AvailabilityOpen
	}
}

func (p Policy) InWindow(day int) bool {
	return day >= p.WindowStart && day <= p.WindowEnd
}

// DayWritable: sin escrituras a días futuros; los días pasados siguen abiertos.
func (p Policy) DayWritable(day, ageDays int) bool {
	return p.DayScoped && p.InWindow(day) && ageDays >= day
}

// Days enumera los días que cuentan para el denominador.
func (p Policy) Days() []int {
	if !p.DayScoped {
		return nil
	}
	out := make([]int, 0, p.WindowEnd-p.WindowStart+1)
	for d := p.WindowStart; d <= p.WindowEnd; d++ {
		out = append(out, d)
	}
	return out
}

func (p Policy) HasItem(id string) bool {
	for _, it := range p.Items {
		if it == id {
			return true
		}
	}
	return false
}
