package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t *testing.T, at time.Time) *Clock {
	t.Helper()
	return NewAt(func() time.Time { return at })
}

func TestNowUsesDisplayLayout(t *testing.T) {
	loc, err := time.LoadLocation(Zone)
	require.NoError(t, err)

	at := time.Date(2026, time.March, 15, 9, 30, 45, 0, loc)
	c := fixedClock(t, at)

	assert.Equal(t, "15-03-2026 09:30:45", c.Now())
}

func TestElapsed(t *testing.T) {
	loc, err := time.LoadLocation(Zone)
	require.NoError(t, err)

	base := time.Date(2026, time.March, 15, 12, 0, 0, 0, loc)

	tests := []struct {
		name      string
		now       time.Time
		reference string
		want      Inactivity
	}{
		{
			name:      "zero for the current instant",
			now:       base,
			reference: base.Format(Layout),
			want:      Inactivity{Formatted: "0h 0m 0s"},
		},
		{
			name:      "full breakdown",
			now:       base.Add(1*time.Hour + 2*time.Minute + 3*time.Second),
			reference: base.Format(Layout),
			want:      Inactivity{Hours: 1, Minutes: 2, Seconds: 3, Formatted: "1h 2m 3s"},
		},
		{
			name:      "hours exceed a day",
			now:       base.Add(26*time.Hour + 5*time.Second),
			reference: base.Format(Layout),
			want:      Inactivity{Hours: 26, Seconds: 5, Formatted: "26h 0m 5s"},
		},
		{
			name:      "future reference clamps to zero",
			now:       base,
			reference: base.Add(time.Hour).Format(Layout),
			want:      Inactivity{Formatted: "0h 0m 0s"},
		},
		{
			name:      "malformed reference degrades silently",
			now:       base,
			reference: "not-a-timestamp",
			want:      Inactivity{Formatted: "0h 0m 0s"},
		},
		{
			name:      "empty reference degrades silently",
			now:       base,
			reference: "",
			want:      Inactivity{Formatted: "0h 0m 0s"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := fixedClock(t, tt.now)
			assert.Equal(t, tt.want, c.Elapsed(tt.reference))
		})
	}
}

func TestSince(t *testing.T) {
	loc, err := time.LoadLocation(Zone)
	require.NoError(t, err)

	base := time.Date(2026, time.March, 15, 12, 0, 0, 0, loc)
	c := fixedClock(t, base.Add(90*time.Second))

	d, ok := c.Since(base.Format(Layout))
	require.True(t, ok)
	assert.Equal(t, 90*time.Second, d)

	_, ok = c.Since("31-02-2026 99:00:00")
	assert.False(t, ok)
}

func TestRoundTrip(t *testing.T) {
	c := New()

	// Whatever Now renders must parse back to a zero elapsed time.
	got := c.Elapsed(c.Now())
	assert.Equal(t, 0, got.Hours)
	assert.Equal(t, 0, got.Minutes)
	assert.LessOrEqual(t, got.Seconds, 1)
}
