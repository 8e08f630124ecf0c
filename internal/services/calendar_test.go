package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAcademicCalendar_FallSemester(t *testing.T) {
	cal := NewAcademicCalendar()

	// Fall 2025 starts Monday August 25.
	firstDay := cal.TermFor(time.Date(2025, 8, 25, 10, 0, 0, 0, time.UTC))
	assert.True(t, firstDay.IsClassDay)
	assert.True(t, firstDay.IsFirstWeek)
	assert.Equal(t, 0, firstDay.DaysIntoSemester)

	// Mid-semester Tuesday, well past the first week.
	midTerm := cal.TermFor(time.Date(2025, 10, 7, 10, 0, 0, 0, time.UTC))
	assert.True(t, midTerm.IsClassDay)
	assert.False(t, midTerm.IsFirstWeek)
	assert.False(t, midTerm.IsFinalsWeek)
	assert.Equal(t, 43, midTerm.DaysIntoSemester)

	// Saturday inside the semester is not a class day.
	saturday := cal.TermFor(time.Date(2025, 10, 11, 10, 0, 0, 0, time.UTC))
	assert.False(t, saturday.IsClassDay)
	assert.False(t, saturday.IsFinalsWeek)
}

func TestAcademicCalendar_FinalsWeek(t *testing.T) {
	cal := NewAcademicCalendar()

	// Fall 2025 finals start the second Monday of December, the 8th.
	finals := cal.TermFor(time.Date(2025, 12, 10, 10, 0, 0, 0, time.UTC))
	assert.True(t, finals.IsFinalsWeek)
	assert.False(t, finals.IsClassDay)

	// Spring 2025 finals start the first Monday of May, the 5th.
	springFinals := cal.TermFor(time.Date(2025, 5, 7, 10, 0, 0, 0, time.UTC))
	assert.True(t, springFinals.IsFinalsWeek)
	assert.False(t, springFinals.IsClassDay)
}

func TestAcademicCalendar_SpringBreak(t *testing.T) {
	cal := NewAcademicCalendar()

	// Spring break 2025 is the week of Monday March 10.
	brk := cal.TermFor(time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC))
	assert.True(t, brk.IsSpringBreak)
	assert.False(t, brk.IsClassDay)

	after := cal.TermFor(time.Date(2025, 3, 18, 10, 0, 0, 0, time.UTC))
	assert.False(t, after.IsSpringBreak)
	assert.True(t, after.IsClassDay)
}

func TestAcademicCalendar_SummerSession(t *testing.T) {
	cal := NewAcademicCalendar()

	// Summer 2025 runs Monday June 2 through Friday July 25.
	summer := cal.TermFor(time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC))
	assert.True(t, summer.IsSummerSession)
	assert.True(t, summer.IsClassDay)
	assert.Equal(t, -1, summer.DaysIntoSemester)

	summerWeekend := cal.TermFor(time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC))
	assert.True(t, summerWeekend.IsSummerSession)
	assert.False(t, summerWeekend.IsClassDay)

	afterSummer := cal.TermFor(time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC))
	assert.False(t, afterSummer.IsSummerSession)
	assert.False(t, afterSummer.IsClassDay)
}

func TestAcademicCalendar_BetweenSemesters(t *testing.T) {
	cal := NewAcademicCalendar()

	// Early January, before spring starts on the second Monday.
	winter := cal.TermFor(time.Date(2025, 1, 4, 10, 0, 0, 0, time.UTC))
	assert.False(t, winter.IsClassDay)
	assert.Equal(t, -1, winter.DaysIntoSemester)
}

func TestAcademicCalendar_RespectsLocation(t *testing.T) {
	cal := NewAcademicCalendar()

	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	// 2025-10-08 03:00 UTC is still Tuesday evening October 7 in Chicago.
	local := time.Date(2025, 10, 7, 22, 0, 0, 0, loc)
	term := cal.TermFor(local)
	assert.True(t, term.IsClassDay)
	assert.Equal(t, 43, term.DaysIntoSemester)
}
