package calendar

import "time"

// FirstWeekday is the day weeks start on.
const FirstWeekday = time.Sunday

// SameDay reports whether a and b fall on the same calendar day. b is read in a's location.
func SameDay(a, b time.Time) bool {
	return DateOf(a) == DateOf(b.In(a.Location()))
}

// SameWeek reports whether a and b fall in the same Sunday-started week.
func SameWeek(a, b time.Time) bool {
	return WeekStart(DateOf(a)) == WeekStart(DateOf(b.In(a.Location())))
}

// WeekStart returns the first day of the week containing d.
func WeekStart(d Date) Date {
	offset := (int(d.Weekday()) - int(FirstWeekday) + 7) % 7
	return d.AddDays(-offset)
}

// FormatISO formats the calendar day of t as YYYY-MM-DD.
func FormatISO(t time.Time) string {
	return t.Format(ISOLayout)
}

// Range returns every day from start to end inclusive. It is empty when end is before start.
func Range(start, end Date) []Date {
	if end.Before(start) {
		return nil
	}

	days := make([]Date, 0, start.DaysUntil(end)+1)
	for d := start; !d.After(end); d = d.AddDays(1) {
		days = append(days, d)
	}

	return days
}
