package protocols

import (
	"time"

	"litter-milestones/internal/domain/age"
)

type DayState string

const (
	DayPending  DayState = "pending"
	DayPartial  DayState = "partial" // solo ENS
	DayComplete DayState = "complete"
)

type DayStatus struct {
	Day      int             `json:"day"`
	State    DayState        `json:"state"`
	Done     int             `json:"done"`
	Required int             `json:"required"`
	Writable bool            `json:"writable"`
	Marks    map[string]bool `json:"marks,omitempty"` // ENS
	Scent    string          `json:"scent,omitempty"` // ESI
	Executor string          `json:"executor,omitempty"`
}

type ItemStatus struct {
	ItemID    string     `json:"item_id"`
	Completed bool       `json:"completed"`
	Date      *time.Time `json:"date,omitempty"`
	Executor  string     `json:"executor,omitempty"`
}

// Result es el estado derivado de un protocolo.
type Result struct {
	Type         Type         `json:"type"`
	Available    bool         `json:"available"`
	Availability Availability `json:"availability"`
	AgeDays      int          `json:"age_days"`
	WindowStart  int          `json:"window_start"`
	WindowEnd    int          `json:"window_end"`

	Days  []DayStatus  `json:"days,omitempty"`
	Items []ItemStatus `json:"items,omitempty"`

	CompletedCount int     `json:"completed_count"`
	TotalCount     int     `json:"total_count"`
	Percentage     float64 `json:"percentage"`
	IsComplete     bool    `json:"is_complete"`
}

// Unavailable es el sentinel para puppies sin fecha de nacimiento en la camada.
func Unavailable(t Type) Result {
	p, _ := PolicyFor(t)
	return Result{
		Type:         t,
		Available:    false,
		Availability: AvailabilityUnavailable,
		WindowStart:  p.WindowStart,
		WindowEnd:    p.WindowEnd,
		TotalCount:   p.Total,
	}
}

// Aggregate calcula el estado por día/ítem y el avance del protocolo.
// Función pura: no muta log y no guarda estado entre llamadas.
func Aggregate(t Type, log Log, birthDate *time.Time, today time.Time) Result {
	p, ok := PolicyFor(t)
	if !ok {
		return Result{Type: t, Availability: AvailabilityUnavailable}
	}
	if birthDate == nil {
		return Unavailable(t)
	}
	ageDays, err := age.DaysCeil(*birthDate, today)
	if err != nil {
		return Unavailable(t)
	}

	res := Result{
		Type:         t,
		Available:    true,
		Availability: p.Availability(ageDays),
		AgeDays:      ageDays,
		WindowStart:  p.WindowStart,
		WindowEnd:    p.WindowEnd,
		TotalCount:   p.Total,
	}

	switch t {
	case TypeNeurological:
		res.Days = neurologicalDays(p, log, ageDays)
	case TypeOlfactory:
		res.Days = olfactoryDays(p, log, ageDays)
	default:
		res.Items = catalogItems(p, log)
	}

	for _, d := range res.Days {
		if d.State == DayComplete {
			res.CompletedCount++
		}
	}
	for _, it := range res.Items {
		if it.Completed {
			res.CompletedCount++
		}
	}

	if res.TotalCount > 0 {
		res.Percentage = 100 * float64(res.CompletedCount) / float64(res.TotalCount)
	}
	res.IsComplete = res.CompletedCount == res.TotalCount
	return res
}

func neurologicalDays(p Policy, log Log, ageDays int) []DayStatus {
	out := make([]DayStatus, 0, p.Total)
	for _, day := range p.Days() {
		marks := log.Exercises[day]
		st := DayStatus{
			Day:      day,
			Required: len(p.Items),
			Writable: p.DayWritable(day, ageDays),
			Marks:    make(map[string]bool, len(p.Items)),
		}
		for _, id := range p.Items {
			done := marks[id].Done
			st.Marks[id] = done
			if done {
				st.Done++
			}
		}
		switch {
		case st.Done == 0:
			st.State = DayPending
		case st.Done < st.Required:
			st.State = DayPartial
		default:
			st.State = DayComplete
		}
		out = append(out, st)
	}
	return out
}

func olfactoryDays(p Policy, log Log, ageDays int) []DayStatus {
	out := make([]DayStatus, 0, p.Total)
	for _, day := range p.Days() {
		e := log.Scents[day]
		st := DayStatus{
			Day:      day,
			Required: 1,
			Writable: p.DayWritable(day, ageDays),
			State:    DayPending,
		}
		if e.Scent != "" {
			st.Done = 1
			st.State = DayComplete
			st.Scent = e.Scent
			st.Executor = e.Executor
		}
		out = append(out, st)
	}
	return out
}

func catalogItems(p Policy, log Log) []ItemStatus {
	out := make([]ItemStatus, 0, len(p.Items))
	for _, id := range p.Items {
		e, ok := log.Items[id]
		st := ItemStatus{ItemID: id}
		if ok {
			st.Completed = e.Completed
			st.Executor = e.Executor
			if e.Date != nil {
				d := *e.Date
				st.Date = &d
			}
		}
		out = append(out, st)
	}
	return out
}
