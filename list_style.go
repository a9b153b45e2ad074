package today

import (
	"fmt"
	"strings"
	"time"
)

// ListStyle selects which reminders a list shows.
type ListStyle int

const (
	ListStyleToday ListStyle = iota
	ListStyleFuture
	ListStyleAll
)

// ListStyles returns the styles in display order.
func ListStyles() []ListStyle {
	return []ListStyle{ListStyleToday, ListStyleFuture, ListStyleAll}
}

// Name is the label shown for the style.
func (s ListStyle) Name() string {
	switch s {
	case ListStyleToday:
		return "Today"
	case ListStyleFuture:
		return "Future"
	case ListStyleAll:
		return "All"
	default:
		return fmt.Sprintf("ListStyle(%d)", int(s))
	}
}

func (s ListStyle) String() string { return s.Name() }

// ShouldInclude reports whether a reminder due at date belongs in the style
// when evaluated at now. Future excludes anything due later today.
func (s ListStyle) ShouldInclude(date, now time.Time) bool {
	inToday := isSameDay(date, now)
	switch s {
	case ListStyleToday:
		return inToday
	case ListStyleFuture:
		return date.After(now) && !inToday
	case ListStyleAll:
		return true
	default:
		return false
	}
}

// ParseListStyle matches a style by name, ignoring case.
func ParseListStyle(name string) (ListStyle, error) {
	for _, style := range ListStyles() {
		if strings.EqualFold(strings.TrimSpace(name), style.Name()) {
			return style, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownListStyle, name)
}
