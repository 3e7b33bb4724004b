package protocols

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func completeResult(t Type) Result {
	p, _ := PolicyFor(t)
	return Result{Type: t, Available: true, CompletedCount: p.Total, TotalCount: p.Total, IsComplete: true}
}

func TestSummarize_Binary(t *testing.T) {
	almost := Result{Type: TypeNeurological, Available: true, CompletedCount: 13, TotalCount: 14}

	s := Summarize(almost, completeResult(TypeOlfactory), completeResult(TypeAuditory), Unavailable(TypeSensory))
	assert.Equal(t, 2, s.CompletedProtocols)
	assert.Equal(t, 4, s.TotalProtocols)
	assert.InDelta(t, 50.0, s.Percentage, 1e-9)
	assert.False(t, s.IsFullyComplete)
}

func TestSummarize_FullyComplete(t *testing.T) {
	s := Summarize(
		completeResult(TypeNeurological),
		completeResult(TypeOlfactory),
		completeResult(TypeAuditory),
		completeResult(TypeSensory),
	)
	assert.Equal(t, 4, s.CompletedProtocols)
	assert.True(t, s.IsFullyComplete)
	assert.InDelta(t, 100.0, s.Percentage, 1e-9)
}

func TestSummarize_BoundedEvenWithDuplicates(t *testing.T) {
	c := completeResult(TypeSensory)
	s := Summarize(c, c, c, c, c, Result{Type: "agility", Available: true, IsComplete: true})
	assert.Equal(t, 1, s.CompletedProtocols)
	assert.GreaterOrEqual(t, s.CompletedProtocols, 0)
	assert.LessOrEqual(t, s.CompletedProtocols, 4)
}

func TestSummarize_NoBirthDate(t *testing.T) {
	results := make([]Result, 0, len(All))
	for _, typ := range All {
		results = append(results, Aggregate(typ, NewLog(typ), nil, now))
	}
	s := Summarize(results...)
	assert.Equal(t, 0, s.CompletedProtocols)
	assert.False(t, s.IsFullyComplete)
}
