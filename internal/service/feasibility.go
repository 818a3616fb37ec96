package service

import (
	"fmt"
	"math"
	"time"

	"github.com/noah-isme/study-planner-api/internal/dto"
	"github.com/noah-isme/study-planner-api/internal/models"
)

// CheckFeasibility compares the minutes a part list requires against the
// study minutes available before the task's deadline. It never fails: zero
// available days yields a trivially infeasible report with the full estimate
// as deficit.
func CheckFeasibility(task models.Task, parts []models.TaskPart, dailyHours int, availableDays []time.Time) dto.FeasibilityReport {
	required := 0
	for _, part := range parts {
		required += part.EstimatedMinutes
	}

	days := daysOnOrBefore(availableDays, task.Deadline)
	available := days * dailyHours * 60
	deficit := required - available

	report := dto.FeasibilityReport{
		TaskID:                task.ID,
		TaskTitle:             task.Title,
		Feasible:              deficit <= 0,
		TotalRequiredMinutes:  required,
		TotalAvailableMinutes: available,
		DeficitMinutes:        deficit,
		AvailableDays:         days,
	}

	if report.Feasible {
		return report
	}

	if days > 0 {
		recommended := int(math.Ceil(float64(required)/float64(days)/60 + 0.5))
		report.Suggestions = append(report.Suggestions,
			fmt.Sprintf("increase daily study time to %d hours to fit %q before its deadline", recommended, task.Title))
	} else {
		report.Suggestions = append(report.Suggestions,
			fmt.Sprintf("no study days remain before the deadline of %q; reduce avoided days or extend the deadline", task.Title))
	}

	if required > 7*dailyHours*60 {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("%q needs more than a full week of study at %d hours per day; consider contacting the instructor", task.Title, dailyHours))
	}

	return report
}
