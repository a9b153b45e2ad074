package today

import (
	"errors"
	"testing"
	"time"
)

func TestListStyleShouldInclude(t *testing.T) {
	laterToday := fixedNow.Add(3 * time.Hour)
	earlierToday := fixedNow.Add(-3 * time.Hour)
	tomorrow := fixedNow.AddDate(0, 0, 1)
	yesterday := fixedNow.AddDate(0, 0, -1)

	cases := []struct {
		style ListStyle
		date  time.Time
		want  bool
	}{
		{ListStyleToday, laterToday, true},
		{ListStyleToday, earlierToday, true},
		{ListStyleToday, tomorrow, false},
		{ListStyleFuture, laterToday, false},
		{ListStyleFuture, tomorrow, true},
		{ListStyleFuture, yesterday, false},
		{ListStyleAll, yesterday, true},
		{ListStyle(9), tomorrow, false},
	}
	for _, tc := range cases {
		if got := tc.style.ShouldInclude(tc.date, fixedNow); got != tc.want {
			t.Fatalf("%s.ShouldInclude(%s): expected %v", tc.style, tc.date, tc.want)
		}
	}
}

func TestListStyleNames(t *testing.T) {
	for _, style := range ListStyles() {
		parsed, err := ParseListStyle(" " + style.Name() + " ")
		if err != nil || parsed != style {
			t.Fatalf("round trip %s: got %v err=%v", style, parsed, err)
		}
	}
	if _, err := ParseListStyle("someday"); !errors.Is(err, ErrUnknownListStyle) {
		t.Fatalf("expected ErrUnknownListStyle, got %v", err)
	}
	if got := ListStyle(7).Name(); got != "ListStyle(7)" {
		t.Fatalf("unexpected name %q", got)
	}
	if style, _ := ParseListStyle("future"); style != ListStyleFuture {
		t.Fatalf("expected case-insensitive match")
	}
}
