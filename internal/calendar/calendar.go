// Package calendar groups tasks by due date and lays out month grids.
package calendar

import (
	"time"

	"performate/internal/service"
)

// DateKey formats a time as the grouping key, the local civil date.
func DateKey(t time.Time) string {
	return t.Local().Format("2006-01-02")
}

// GroupByDueDate buckets tasks under their local due date. Tasks
// without a due date are excluded; they have no place on a calendar.
func GroupByDueDate(tasks []service.Task) map[string][]service.Task {
	grouped := make(map[string][]service.Task)
	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		key := DateKey(*t.DueDate)
		grouped[key] = append(grouped[key], t)
	}
	return grouped
}

// Weekdays are the column headers, Sunday first.
var Weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Day is one grid cell. A zero Date marks a leading blank cell before
// the first of the month.
type Day struct {
	Date time.Time
}

// Blank reports whether the cell pads the first week.
func (d Day) Blank() bool { return d.Date.IsZero() }

// Month is a laid-out month: its first day plus grid cells in
// row-major order, seven per week.
type Month struct {
	First time.Time
	Days  []Day
}

// Title renders the month header, e.g. "March 2026".
func (m Month) Title() string {
	return m.First.Format("January 2006")
}

// MonthGrid lays out the month containing ref shifted by offset months:
// one blank cell per weekday before the first, then every day of the
// month.
func MonthGrid(ref time.Time, offset int) Month {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location()).AddDate(0, offset, 0)
	last := first.AddDate(0, 1, -1)

	days := make([]Day, 0, int(first.Weekday())+last.Day())
	for i := 0; i < int(first.Weekday()); i++ {
		days = append(days, Day{})
	}
	for d := 1; d <= last.Day(); d++ {
		days = append(days, Day{Date: first.AddDate(0, 0, d-1)})
	}
	return Month{First: first, Days: days}
}
