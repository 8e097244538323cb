// Package budget contains budget, spend aggregation and alerting use cases.
package budget

import (
	"time"

	"github.com/spend-smart/backend/internal/domain/entity"
)

// Window is a half-open [Start, End) time range covering whole days.
type Window struct {
	Start time.Time
	End   time.Time
}

// PeriodWindow returns the spend window for period as of now, in loc.
// Weekly windows start on the Monday on or before today, monthly windows on the
// first of the month. Both run through the end of today.
func PeriodWindow(period entity.BudgetPeriod, now time.Time, loc *time.Location) Window {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	var start time.Time
	switch period {
	case entity.BudgetPeriodWeekly:
		weekday := int(today.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		start = today.AddDate(0, 0, -(weekday - 1))
	default:
		start = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)
	}

	return Window{
		Start: start,
		End:   today.AddDate(0, 0, 1),
	}
}
