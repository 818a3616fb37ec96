package service

import (
	"sort"
	"time"

	"github.com/noah-isme/study-planner-api/internal/models"
)

// taskPlan couples one task with its (possibly relaxed) part list ahead of
// packing. Priority is the deadline-derived urgency bucket.
type taskPlan struct {
	Task        models.Task
	CourseTitle string
	Parts       []models.TaskPart
	Priority    int
}

// PackDailyPlan greedily assigns minute-chunks of every task part to the
// available days without exceeding the per-day capacity shared across all
// tasks. Tasks are processed by priority, earliest deadline first; parts in
// decomposition order. Days on or before a task's own deadline are consumed
// first; leftover minutes overflow onto later days up to the global horizon
// instead of being dropped. An empty day list yields an empty result.
func PackDailyPlan(tasks []taskPlan, prefs models.StudyPreference, availableDays []time.Time) []models.PlanItem {
	if len(availableDays) == 0 || len(tasks) == 0 {
		return []models.PlanItem{}
	}

	ordered := make([]taskPlan, len(tasks))
	copy(ordered, tasks)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Priority != ordered[j].Priority {
			return ordered[i].Priority < ordered[j].Priority
		}
		return ordered[i].Task.Deadline.Before(ordered[j].Task.Deadline)
	})

	avoid := prefs.AvoidWeekdays()
	dailyCapacity := prefs.DailyHours * 60
	used := make(map[string]int, len(availableDays))

	items := []models.PlanItem{}
	for _, plan := range ordered {
		color := models.CourseColor(plan.Task.CourseID)
		deadline := dateOnly(plan.Task.Deadline)
		partsCount := len(plan.Parts)

		for index, part := range plan.Parts {
			remaining := part.EstimatedMinutes

			// Primary pass stays within the task's own deadline; the second
			// pass deliberately runs past it so no work is silently lost.
			remaining = packPart(&items, plan, part, index, partsCount, color, remaining, availableDays, used, dailyCapacity, avoid, &deadline)
			if remaining > 0 {
				packPart(&items, plan, part, index, partsCount, color, remaining, availableDays, used, dailyCapacity, avoid, nil)
			}
		}
	}
	return items
}

// packPart places as much of one part as capacity allows and returns the
// minutes still unplaced. A nil limit admits every available day.
func packPart(
	items *[]models.PlanItem,
	plan taskPlan,
	part models.TaskPart,
	index, partsCount int,
	color string,
	remaining int,
	availableDays []time.Time,
	used map[string]int,
	dailyCapacity int,
	avoid map[time.Weekday]bool,
	limit *time.Time,
) int {
	for _, day := range availableDays {
		if remaining <= 0 {
			break
		}
		if limit != nil && day.After(*limit) {
			break
		}
		// StudyDays already filters avoided weekdays; re-checked here as a
		// safety net in case the day list came from elsewhere.
		if avoid[day.Weekday()] {
			continue
		}
		key := day.Format(dateLayout)
		capacity := dailyCapacity - used[key]
		if capacity <= 0 {
			continue
		}
		chunk := remaining
		if chunk > capacity {
			chunk = capacity
		}

		ref := models.PartRef{CourseID: plan.Task.CourseID, TaskID: plan.Task.ID, PartIndex: index}
		*items = append(*items, models.PlanItem{
			ID:          ref.String(),
			Ref:         ref,
			CourseID:    plan.Task.CourseID,
			CourseTitle: plan.CourseTitle,
			TaskTitle:   plan.Task.Title,
			PartTitle:   part.Title,
			Minutes:     chunk,
			Date:        key,
			Color:       color,
			Completed:   false,
			PartIndex:   index,
			PartsCount:  partsCount,
		})
		used[key] += chunk
		remaining -= chunk
	}
	return remaining
}
