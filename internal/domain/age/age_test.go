package age

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysCeil_WholeDays(t *testing.T) {
	n, err := DaysCeil(date(2024, 1, 1), date(2024, 1, 5))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestDaysCeil_PartialDayRoundsUp(t *testing.T) {
	asOf := date(2024, 1, 5).Add(10 * time.Hour)
	n, err := DaysCeil(date(2024, 1, 1), asOf)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestDaysFloor_PartialDayRoundsDown(t *testing.T) {
	asOf := date(2024, 1, 5).Add(10 * time.Hour)
	n, err := DaysFloor(date(2024, 1, 1), asOf)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestRoundings_DifferOnlyOnPartialDays(t *testing.T) {
	ref := date(2024, 3, 1)
	for _, asOf := range []time.Time{date(2024, 3, 1), date(2024, 3, 11), date(2024, 4, 30)} {
		c, err := DaysCeil(ref, asOf)
		require.NoError(t, err)
		f, err := DaysFloor(ref, asOf)
		require.NoError(t, err)
		assert.Equal(t, c, f, "asOf=%s", asOf)
	}
}

func TestBeforeBirth_Negative(t *testing.T) {
	asOf := date(2024, 1, 1).Add(-36 * time.Hour)

	c, err := DaysCeil(date(2024, 1, 1), asOf)
	require.NoError(t, err)
	assert.Equal(t, -1, c)

	f, err := DaysFloor(date(2024, 1, 1), asOf)
	require.NoError(t, err)
	assert.Equal(t, -2, f)
}

func TestMissingDate(t *testing.T) {
	_, err := DaysCeil(time.Time{}, date(2024, 1, 1))
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = DaysFloor(date(2024, 1, 1), time.Time{})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-05")
	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 5), d)

	d, err = ParseDate("2024-01-05T08:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 8, d.Hour())

	for _, bad := range []string{"", "  ", "05/01/2024", "yesterday"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, "input=%q", bad)
	}
}
