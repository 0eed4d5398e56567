package calendar_test

import (
	"testing"
	"time"

	"performate/internal/calendar"
	"performate/internal/service"
)

func TestGroupByDueDate_SkipsUndatedTasks(t *testing.T) {
	due := time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local)
	tasks := []service.Task{
		{ID: 1, Title: "dated", DueDate: &due},
		{ID: 2, Title: "undated"},
	}

	grouped := calendar.GroupByDueDate(tasks)
	if len(grouped) != 1 {
		t.Fatalf("groups = %d, want 1", len(grouped))
	}
	day := grouped["2026-03-14"]
	if len(day) != 1 || day[0].ID != 1 {
		t.Errorf("2026-03-14 = %+v", day)
	}
}

func TestGroupByDueDate_SameDayAccumulates(t *testing.T) {
	morning := time.Date(2026, 3, 14, 8, 0, 0, 0, time.Local)
	evening := time.Date(2026, 3, 14, 20, 0, 0, 0, time.Local)
	tasks := []service.Task{
		{ID: 1, DueDate: &morning},
		{ID: 2, DueDate: &evening},
	}

	grouped := calendar.GroupByDueDate(tasks)
	if len(grouped["2026-03-14"]) != 2 {
		t.Errorf("want both tasks under one civil date, got %+v", grouped)
	}
}

func TestMonthGrid_LeadingBlanks(t *testing.T) {
	// March 2026 starts on a Sunday; June 2026 on a Monday.
	ref := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)

	march := calendar.MonthGrid(ref, 0)
	if march.Title() != "March 2026" {
		t.Errorf("title = %q", march.Title())
	}
	if march.Days[0].Blank() {
		t.Error("March 2026 starts on Sunday, no leading blank expected")
	}
	if len(march.Days) != 31 {
		t.Errorf("march cells = %d, want 31", len(march.Days))
	}

	june := calendar.MonthGrid(ref, 3)
	if june.Title() != "June 2026" {
		t.Errorf("title = %q", june.Title())
	}
	if !june.Days[0].Blank() || june.Days[1].Blank() {
		t.Error("June 2026 starts on Monday, want exactly one leading blank")
	}
	if len(june.Days) != 1+30 {
		t.Errorf("june cells = %d, want 31", len(june.Days))
	}
	if june.Days[1].Date.Day() != 1 {
		t.Errorf("first real cell = %v", june.Days[1].Date)
	}
}

func TestMonthGrid_NegativeOffset(t *testing.T) {
	ref := time.Date(2026, 1, 15, 0, 0, 0, 0, time.Local)
	dec := calendar.MonthGrid(ref, -1)
	if dec.Title() != "December 2025" {
		t.Errorf("title = %q", dec.Title())
	}
}
