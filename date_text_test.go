package today

import (
	"testing"
	"time"
)

func TestDateText(t *testing.T) {
	today := time.Date(2024, 5, 1, 15, 4, 0, 0, time.UTC)
	other := time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)

	if got := DayText(today, fixedNow); got != "Today" {
		t.Fatalf("expected Today, got %q", got)
	}
	if got := DayText(other, fixedNow); got != "Tuesday, Jan 2" {
		t.Fatalf("unexpected day text %q", got)
	}
	if got := TimeText(today); got != "3:04 PM" {
		t.Fatalf("unexpected time text %q", got)
	}
	if got := DayAndTimeText(today, fixedNow); got != "Today at 3:04 PM" {
		t.Fatalf("unexpected day and time %q", got)
	}
	if got := DayAndTimeText(other, fixedNow); got != "Jan 2 at 9:30 AM" {
		t.Fatalf("unexpected day and time %q", got)
	}
}

func TestSameDayUsesNowLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	now := time.Date(2024, 5, 2, 1, 0, 0, 0, tokyo)
	due := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)

	if !isSameDay(due, now) {
		t.Fatalf("expected %s to be on the same day as %s in JST", due, now)
	}
	if got := DayAndTimeText(due, now); got != "Today at 5:00 AM" {
		t.Fatalf("expected local time, got %q", got)
	}
}
