package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekday(t *testing.T) {
	cases := []struct {
		input string
		want  time.Weekday
		ok    bool
	}{
		{"Monday", time.Monday, true},
		{"sunday", time.Sunday, true},
		{" Friday ", time.Friday, true},
		{"wed", time.Wednesday, true},
		{"SAT", time.Saturday, true},
		{"Funday", time.Sunday, false},
		{"", time.Sunday, false},
	}

	for _, tc := range cases {
		day, ok := ParseWeekday(tc.input)
		assert.Equal(t, tc.ok, ok, "input %q", tc.input)
		if tc.ok {
			assert.Equal(t, tc.want, day, "input %q", tc.input)
		}
	}
}

func TestAvoidWeekdaysIgnoresUnknownNames(t *testing.T) {
	pref := StudyPreference{AvoidDays: []string{"Saturday", "Funday", "sun"}}

	set := pref.AvoidWeekdays()
	require.Len(t, set, 2)
	assert.True(t, set[time.Saturday])
	assert.True(t, set[time.Sunday])
}

func TestDefaultStudyPreferenceClampsHours(t *testing.T) {
	pref := DefaultStudyPreference("student-1", 0)
	assert.Equal(t, 2, pref.DailyHours)
	assert.Equal(t, 7, pref.WeeklyStudyDays)

	pref = DefaultStudyPreference("student-1", 4)
	assert.Equal(t, 4, pref.DailyHours)
}

func TestCourseColorIsStable(t *testing.T) {
	first := CourseColor("course-1")
	assert.Equal(t, first, CourseColor("course-1"))
	assert.NotEmpty(t, first)
}

func TestPartRefString(t *testing.T) {
	ref := PartRef{CourseID: "c1", TaskID: "t1", PartIndex: 2}
	assert.Equal(t, "c1-t1-2", ref.String())
	assert.Equal(t, "c1-t1", ref.TaskKey())
}
