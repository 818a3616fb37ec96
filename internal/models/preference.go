package models

import (
	"strings"
	"time"
)

// StudyPreference is the student-level scheduling configuration.
type StudyPreference struct {
	StudentID       string    `json:"student_id"`
	DailyHours      int       `json:"daily_hours"`
	WeeklyStudyDays int       `json:"weekly_study_days"`
	AvoidDays       []string  `json:"avoid_days"`
	SaveAsDefault   bool      `json:"save_as_default"`
	Description     string    `json:"description"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DefaultStudyPreference returns the fallback configuration used when a
// student has never saved preferences.
func DefaultStudyPreference(studentID string, dailyHours int) StudyPreference {
	if dailyHours < 1 || dailyHours > 12 {
		dailyHours = 2
	}
	return StudyPreference{
		StudentID:       studentID,
		DailyHours:      dailyHours,
		WeeklyStudyDays: 7,
	}
}

// AvoidWeekdays resolves the avoid-day names into a weekday set. Unknown
// names are ignored rather than rejected; validation reports them separately.
func (p StudyPreference) AvoidWeekdays() map[time.Weekday]bool {
	set := make(map[time.Weekday]bool, len(p.AvoidDays))
	for _, name := range p.AvoidDays {
		if day, ok := ParseWeekday(name); ok {
			set[day] = true
		}
	}
	return set
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday resolves a weekday name, accepting full names and
// three-letter abbreviations in any case.
func ParseWeekday(name string) (time.Weekday, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if day, ok := weekdayNames[normalized]; ok {
		return day, true
	}
	if len(normalized) == 3 {
		for full, day := range weekdayNames {
			if strings.HasPrefix(full, normalized) {
				return day, true
			}
		}
	}
	return time.Sunday, false
}
