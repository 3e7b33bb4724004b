package protocols

// Summary combina los cuatro resultados. Cada protocolo suma 1 solo si está completo
// (13/14 días aporta 0, no 0.93).
type Summary struct {
	CompletedProtocols int     `json:"completed_protocols"`
	TotalProtocols     int     `json:"total_protocols"`
	Percentage         float64 `json:"percentage"`
	IsFullyComplete    bool    `json:"is_fully_complete"` // dispara el sello en la UI
}

func Summarize(results ...Result) Summary {
	s := Summary{TotalProtocols: len(All)}

	seen := map[Type]struct{}{}
	for _, r := range results {
		if _, ok := seen[r.Type]; ok {
			continue
		}
		if _, ok := PolicyFor(r.Type); !ok {
			continue
		}
		seen[r.Type] = struct{}{}

		if r.Available && r.IsComplete {
			s.CompletedProtocols++
		}
	}

	s.Percentage = 100 * float64(s.CompletedProtocols) / float64(s.TotalProtocols)
	s.IsFullyComplete = s.CompletedProtocols == s.TotalProtocols
	return s
}
