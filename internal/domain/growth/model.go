package growth

import (
	"errors"
	"time"
)

var (
	ErrInvalidWeight = errors.New("invalid weight")
)

// Entry es una pesada (gramos). El log no tiene orden; se ordena por fecha al clasificar.
type Entry struct {
	Weight float64   `json:"weight"`
	Date   time.Time `json:"date"`
}

type Status string

const (
	StatusNone      Status = "none"
	StatusCritical  Status = "critical" // pérdida de peso: alerta persistente
	StatusAttention Status = "attention"
	StatusNormal    Status = "normal"
	StatusExcellent Status = "excellent"
)

type MilestoneKind string

const (
	MilestoneAchievedDay10 MilestoneKind = "achieved_day_10"
	MilestoneMissedDay10   MilestoneKind = "missed_day_10"
	MilestoneNotYet        MilestoneKind = "not_yet_doubled"
	MilestoneDoubled       MilestoneKind = "doubled"
)

// Doubling es el hito "duplicó el peso de nacimiento al día 10".
type Doubling struct {
	Kind     MilestoneKind `json:"kind"`
	Achieved bool          `json:"achieved"`
	Day      int           `json:"day"`
	Message  string        `json:"message"`
}

// Point es una pesada clasificada.
type Point struct {
	Date        time.Time `json:"date"`
	Weight      float64   `json:"weight"`
	GainPercent *float64  `json:"gain_percent"`
	DayOfLife   *int      `json:"day_of_life"`
	Status      Status    `json:"status"`
	Alert       bool      `json:"alert"`
	Doubling    *Doubling `json:"doubling_check"`
}

// Report agrega la serie para los colaboradores de UI/reportes.
type Report struct {
	Points        []Point `json:"points"`
	Latest        *Point  `json:"latest,omitempty"`
	CriticalCount int     `json:"critical_count"`
}
