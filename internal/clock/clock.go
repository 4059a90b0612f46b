package clock

import (
	"fmt"
	"time"

	"session-service/internal/logger"
)

// Layout is the display format every session timestamp uses:
// day-month-year hour:minute:second.
const Layout = "02-01-2006 15:04:05"

// Zone is the fixed civil timezone all timestamps are rendered in.
const Zone = "America/Mexico_City"

// Inactivity is the elapsed-time breakdown between a stored
// timestamp and the current instant.
type Inactivity struct {
	Hours     int    `json:"hours"`
	Minutes   int    `json:"minutes"`
	Seconds   int    `json:"seconds"`
	Formatted string `json:"formatted"`
}

// Clock renders and compares timestamps in the fixed zone.
// The now func is injectable so tests can pin the current instant.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

func New() *Clock {
	return NewAt(time.Now)
}

func NewAt(now func() time.Time) *Clock {
	loc, err := time.LoadLocation(Zone)
	if err != nil {
		// The zone name is a compile-time constant; a missing tzdata
		// bundle is the only way to get here.
		logger.Warn("timezone unavailable, falling back to UTC", map[string]any{
			"zone":  Zone,
			"error": err.Error(),
		})
		loc = time.UTC
	}
	return &Clock{loc: loc, now: now}
}

// Now returns the current instant rendered in the display layout.
func (c *Clock) Now() string {
	return c.now().In(c.loc).Format(Layout)
}

// Elapsed computes the non-negative duration between now and the
// reference timestamp. A malformed reference degrades to the zero
// breakdown; callers never see an error.
func (c *Clock) Elapsed(reference string) Inactivity {
	d, ok := c.Since(reference)
	if !ok {
		logger.Warn("unparseable timestamp, reporting zero inactivity", map[string]any{
			"reference": reference,
		})
		return zeroInactivity()
	}
	if d < 0 {
		d = 0
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	return Inactivity{
		Hours:     hours,
		Minutes:   minutes,
		Seconds:   seconds,
		Formatted: fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds),
	}
}

// Since returns the raw duration since the reference timestamp.
// ok is false when the reference does not parse.
func (c *Clock) Since(reference string) (time.Duration, bool) {
	ref, err := time.ParseInLocation(Layout, reference, c.loc)
	if err != nil {
		return 0, false
	}
	return c.now().In(c.loc).Sub(ref), true
}

func zeroInactivity() Inactivity {
	return Inactivity{Formatted: "0h 0m 0s"}
}
