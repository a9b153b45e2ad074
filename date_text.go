package today

import "time"

const (
	timeLayout     = "3:04 PM"
	shortDayLayout = "Jan 2"
	longDayLayout  = "Monday, Jan 2"
)

// DayText is "Today" for dates on the same calendar day as now and the
// weekday, month and day otherwise.
func DayText(date, now time.Time) string {
	if isSameDay(date, now) {
		return "Today"
	}
	return date.In(now.Location()).Format(longDayLayout)
}

// TimeText formats the time of day of date.
func TimeText(date time.Time) string {
	return date.Format(timeLayout)
}

// DayAndTimeText is the secondary line of a list row, such as
// "Today at 3:04 PM" or "Jan 2 at 3:04 PM".
func DayAndTimeText(date, now time.Time) string {
	local := date.In(now.Location())
	if isSameDay(date, now) {
		return "Today at " + local.Format(timeLayout)
	}
	return local.Format(shortDayLayout) + " at " + local.Format(timeLayout)
}

// isSameDay compares calendar days in now's location.
func isSameDay(date, now time.Time) bool {
	y1, m1, d1 := date.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
