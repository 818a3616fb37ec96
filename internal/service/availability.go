package service

import (
	"math"
	"time"
)

const dateLayout = "2006-01-02"

// dateOnly truncates a timestamp to its local calendar day.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StudyDays enumerates the calendar dates on which study is permitted,
// ascending, between start and horizonEnd inclusive. Days are bucketed into
// consecutive 7-day windows aligned with start; within each window days whose
// weekday is avoided are excluded, and only the first weeklyStudyDays of the
// survivors are kept. A window left with fewer days than requested keeps
// whatever remains.
func StudyDays(start time.Time, avoid map[time.Weekday]bool, weeklyStudyDays int, horizonEnd time.Time) []time.Time {
	first := dateOnly(start)
	last := dateOnly(horizonEnd)
	if last.Before(first) {
		return nil
	}
	if weeklyStudyDays < 1 {
		weeklyStudyDays = 1
	}
	if weeklyStudyDays > 7 {
		weeklyStudyDays = 7
	}

	var days []time.Time
	keptInWindow := 0
	for day, offset := first, 0; !day.After(last); day, offset = day.AddDate(0, 0, 1), offset+1 {
		if offset%7 == 0 {
			keptInWindow = 0
		}
		if avoid[day.Weekday()] {
			continue
		}
		if keptInWindow >= weeklyStudyDays {
			continue
		}
		days = append(days, day)
		keptInWindow++
	}
	return days
}

// daysOnOrBefore counts how many of the given dates fall on or before the
// deadline's calendar day.
func daysOnOrBefore(days []time.Time, deadline time.Time) int {
	limit := dateOnly(deadline)
	count := 0
	for _, day := range days {
		if day.After(limit) {
			break
		}
		count++
	}
	return count
}

// mondayOf returns the Monday of the week containing the given date.
func mondayOf(t time.Time) time.Time {
	day := dateOnly(t)
	shift := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -shift)
}

// weekOffset computes how many whole weeks a date lies past the anchor
// Monday. Dates before the anchor produce negative offsets. The hour
// difference is rounded to whole days so that daylight-saving transitions,
// which make a calendar day 23 or 25 hours long, do not shift a date into
// the neighboring week.
func weekOffset(date, anchorMonday time.Time) int {
	diff := int(math.Round(dateOnly(date).Sub(anchorMonday).Hours() / 24))
	if diff < 0 {
		return (diff - 6) / 7
	}
	return diff / 7
}
