package finance

import (
	"fmt"
	"time"

	"github.com/hoshop/backend/internal/domain/shared"
)

// Period is the look-back window of the dashboard
type Period string

const (
	Period24h Period = "24h"
	Period7d  Period = "7d"
	Period30d Period = "30d"
)

// DefaultPeriod is used when no period is requested
const DefaultPeriod = Period30d

// ParsePeriod validates a requested period; empty selects DefaultPeriod
func ParsePeriod(raw string) (Period, error) {
	if raw == "" {
		return DefaultPeriod, nil
	}
	p := Period(raw)
	if !p.IsValid() {
		return "", shared.NewDomainError(shared.CodeInvalidInput,
			fmt.Sprintf("Unknown period %q, expected 24h, 7d or 30d", raw))
	}
	return p, nil
}

// IsValid checks if the period is supported
func (p Period) IsValid() bool {
	return p == Period24h || p == Period7d || p == Period30d
}

// Duration returns the length of the window
func (p Period) Duration() time.Duration {
	switch p {
	case Period24h:
		return 24 * time.Hour
	case Period7d:
		return 7 * 24 * time.Hour
	default:
		return 30 * 24 * time.Hour
	}
}

// Start returns now − period
func (p Period) Start(now time.Time) time.Time {
	return now.Add(-p.Duration())
}

// TimeRange is the half-open interval [From, To). A zero To leaves it open ended.
type TimeRange struct {
	From time.Time
	To   time.Time
}

// Since returns the open-ended range starting at from
func Since(from time.Time) TimeRange {
	return TimeRange{From: from}
}

// Between returns [from, to)
func Between(from, to time.Time) TimeRange {
	return TimeRange{From: from, To: to}
}

// Bounded reports whether the range has an upper bound
func (r TimeRange) Bounded() bool {
	return !r.To.IsZero()
}
