package registration

import (
	"fmt"
	"time"
)

// Period is a calendar quarter.
type Period struct {
	Year    int
	Quarter int
}

// Label renders the period as "2024Q1".
func (p Period) Label() string {
	return fmt.Sprintf("%dQ%d", p.Year, p.Quarter)
}

// Less orders periods chronologically.
func (p Period) Less(o Period) bool {
	if p.Year != o.Year {
		return p.Year < o.Year
	}
	return p.Quarter < o.Quarter
}

// PeriodFor returns the quarter containing t.
func PeriodFor(t time.Time) Period {
	return Period{Year: t.Year(), Quarter: (int(t.Month())-1)/3 + 1}
}

// Start returns the first day of the quarter (UTC).
func (p Period) Start() time.Time {
	return time.Date(p.Year, time.Month((p.Quarter-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
}

// Alignment selects which earlier period a point is compared against.
type Alignment int

const (
	// YoY compares against the same quarter one year earlier.
	YoY Alignment = iota
	// QoQ compares against the immediately preceding quarter, wrapping Q1 to Q4 of the prior year.
	QoQ
)

func (a Alignment) String() string {
	switch a {
	case YoY:
		return "yoy"
	case QoQ:
		return "qoq"
	default:
		return fmt.Sprintf("alignment(%d)", int(a))
	}
}

// Metric returns the growth column this alignment fills.
func (a Alignment) Metric() Metric {
	if a == QoQ {
		return MetricQoQGrowth
	}
	return MetricYoYGrowth
}

// Predecessor returns the exact period p is aligned to.
// Q1 never aligns to a quarter of its own year under QoQ.
func (a Alignment) Predecessor(p Period) Period {
	switch a {
	case QoQ:
		if p.Quarter == 1 {
			return Period{Year: p.Year - 1, Quarter: 4}
		}
		return Period{Year: p.Year, Quarter: p.Quarter - 1}
	default:
		return Period{Year: p.Year - 1, Quarter: p.Quarter}
	}
}
