package services

import "time"

// AcademicTerm describes where a timestamp falls in the academic year.
type AcademicTerm struct {
	IsClassDay       bool
	IsFinalsWeek     bool
	IsFirstWeek      bool
	IsSpringBreak    bool
	IsSummerSession  bool
	DaysIntoSemester int
}

// AcademicCalendar computes term boundaries per academic year from the
// timestamp itself, so the rules never go stale. The campus follows a fixed
// weekday pattern: fall starts the last Monday of August, spring the second
// Monday of January, spring break is the week of the second Monday of March,
// and finals run the second week of December and the first week of May.
type AcademicCalendar struct{}

// NewAcademicCalendar creates a new calendar.
func NewAcademicCalendar() *AcademicCalendar {
	return &AcademicCalendar{}
}

type semester struct {
	start       time.Time
	end         time.Time
	finalsStart time.Time
	finalsEnd   time.Time
}

// TermFor classifies the timestamp against the academic year it falls in.
// Boundaries are built in the timestamp's own location so day classification
// stays consistent across time zones.
func (c *AcademicCalendar) TermFor(t time.Time) AcademicTerm {
	year := t.Year()
	loc := t.Location()
	fall := c.fallSemester(year, loc)
	spring := c.springSemester(year, loc)

	term := AcademicTerm{DaysIntoSemester: -1}

	var current *semester
	switch {
	case inRange(t, fall.start, fall.end):
		current = &fall
	case inRange(t, spring.start, spring.end):
		current = &spring
	}

	breakStart, breakEnd := c.springBreak(year, loc)
	term.IsSpringBreak = inRange(t, breakStart, breakEnd)

	summerStart, summerEnd := c.summerSession(year, loc)
	term.IsSummerSession = inRange(t, summerStart, summerEnd)

	if current != nil {
		term.DaysIntoSemester = int(t.Sub(current.start).Hours() / 24)
		term.IsFirstWeek = term.DaysIntoSemester < 7
		term.IsFinalsWeek = inRange(t, current.finalsStart, current.finalsEnd)
	}

	weekday := t.Weekday()
	onWeekday := weekday >= time.Monday && weekday <= time.Friday
	switch {
	case current != nil:
		term.IsClassDay = onWeekday && !term.IsFinalsWeek && !term.IsSpringBreak
	case term.IsSummerSession:
		term.IsClassDay = onWeekday
	}

	return term
}

// fallSemester runs from the last Monday of August through the Saturday ending
// finals week, which starts the second Monday of December.
func (c *AcademicCalendar) fallSemester(year int, loc *time.Location) semester {
	start := lastWeekday(year, time.August, time.Monday, loc)
	finalsStart := nthWeekday(year, time.December, time.Monday, 2, loc)
	return semester{
		start:       start,
		finalsStart: finalsStart,
		finalsEnd:   finalsStart.AddDate(0, 0, 6),
		end:         finalsStart.AddDate(0, 0, 6),
	}
}

// springSemester runs from the second Monday of January through the Saturday
// ending finals week, which starts the first Monday of May.
func (c *AcademicCalendar) springSemester(year int, loc *time.Location) semester {
	start := nthWeekday(year, time.January, time.Monday, 2, loc)
	finalsStart := nthWeekday(year, time.May, time.Monday, 1, loc)
	return semester{
		start:       start,
		finalsStart: finalsStart,
		finalsEnd:   finalsStart.AddDate(0, 0, 6),
		end:         finalsStart.AddDate(0, 0, 6),
	}
}

// springBreak is the week of the second Monday of March.
func (c *AcademicCalendar) springBreak(year int, loc *time.Location) (time.Time, time.Time) {
	start := nthWeekday(year, time.March, time.Monday, 2, loc)
	return start, start.AddDate(0, 0, 7)
}

// summerSession runs from the first Monday of June through the last Friday of
// July.
func (c *AcademicCalendar) summerSession(year int, loc *time.Location) (time.Time, time.Time) {
	start := nthWeekday(year, time.June, time.Monday, 1, loc)
	end := lastWeekday(year, time.July, time.Friday, loc)
	return start, end.AddDate(0, 0, 1)
}

// nthWeekday returns the nth occurrence of a weekday in a month at midnight.
func nthWeekday(year int, month time.Month, weekday time.Weekday, n int, loc *time.Location) time.Time {
	t := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	offset := (int(weekday) - int(t.Weekday()) + 7) % 7
	return t.AddDate(0, 0, offset+(n-1)*7)
}

// lastWeekday returns the last occurrence of a weekday in a month.
func lastWeekday(year int, month time.Month, weekday time.Weekday, loc *time.Location) time.Time {
	t := time.Date(year, month+1, 1, 0, 0, 0, 0, loc).AddDate(0, 0, -1)
	offset := (int(t.Weekday()) - int(weekday) + 7) % 7
	return t.AddDate(0, 0, -offset)
}

// inRange reports start <= t < end comparing calendar instants.
func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
