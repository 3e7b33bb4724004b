package growth

import (
	"fmt"
	"math"
	"sort"
	"time"

	"litter-milestones/internal/domain/age"
)

const (
	attentionBelow = 2.0
	normalBelow    = 5.0
	doublingDay    = 10
)

// Validate rechaza pesos no numéricos o <= 0 y fechas vacías.
// Nunca se descarta una entrada en silencio.
func Validate(e Entry) error {
	if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) || e.Weight <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidWeight, e.Weight)
	}
	if e.Date.IsZero() {
		return age.ErrInvalidDate
	}
	return nil
}

// Classify devuelve la serie en orden ascendente por fecha.
// birthWeight nil o 0 = ausente. birthDate nil = sin día de vida (ni hito).
func Classify(entries []Entry, birthWeight *float64, birthDate *time.Time) ([]Point, error) {
	for _, e := range entries {
		if err := Validate(e); err != nil {
			return nil, err
		}
	}

	var bw float64
	if birthWeight != nil {
		if math.IsNaN(*birthWeight) || math.IsInf(*birthWeight, 0) || *birthWeight < 0 {
			return nil, fmt.Errorf("%w: birth weight %v", ErrInvalidWeight, *birthWeight)
		}
		bw = *birthWeight
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	out := make([]Point, 0, len(sorted))
	for i, e := range sorted {
		var prev float64
		switch {
		case i > 0:
			prev = sorted[i-1].Weight
		case bw > 0:
			prev = bw
		}

		p := Point{
			Date:   e.Date,
			Weight: e.Weight,
		}
		if prev != 0 {
			g := 100 * (e.Weight - prev) / prev
			p.GainPercent = &g
		}
		p.Status = classifyGain(p.GainPercent)
		p.Alert = p.Status == StatusCritical

		if birthDate != nil {
			d, err := age.DaysFloor(*birthDate, e.Date)
			if err != nil {
				return nil, err
			}
			p.DayOfLife = &d
		}

		if bw > 0 && p.DayOfLife != nil {
			p.Doubling = doublingCheck(e.Weight, bw, *p.DayOfLife)
		}

		out = append(out, p)
	}

	return out, nil
}

func classifyGain(g *float64) Status {
	switch {
	case g == nil:
		return StatusNone
	case *g < 0:
		return StatusCritical
	case *g < attentionBelow:
		return StatusAttention
	case *g < normalBelow:
		return StatusNormal
	default:
		return StatusExcellent
	}
}

// doublingCheck no distingue la primera vez que se duplica de las siguientes.
func doublingCheck(weight, birthWeight float64, day int) *Doubling {
	if day < doublingDay {
		return nil
	}
	hasDoubled := weight >= 2*birthWeight

	switch {
	case day == doublingDay && hasDoubled:
		return &Doubling{Kind: MilestoneAchievedDay10, Achieved: true, Day: day, Message: "doubled birth weight at day 10"}
	case day == doublingDay:
		return &Doubling{Kind: MilestoneMissedDay10, Achieved: false, Day: day, Message: "missed day-10 doubling target"}
	case !hasDoubled:
		return &Doubling{Kind: MilestoneNotYet, Achieved: false, Day: day, Message: fmt.Sprintf("not yet doubled by day %d", day)}
	default:
		return &Doubling{Kind: MilestoneDoubled, Achieved: true, Day: day, Message: fmt.Sprintf("doubled on day %d", day)}
	}
}

// MostRecentFirst copia la serie invertida para presentación.
func MostRecentFirst(points []Point) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[len(points)-1-i] = p
	}
	return out
}

func NewReport(points []Point) Report {
	r := Report{Points: points}
	for _, p := range points {
		if p.Status == StatusCritical {
			r.CriticalCount++
		}
	}
	if len(points) > 0 {
		last := points[len(points)-1]
		r.Latest = &last
	}
	return r
}
