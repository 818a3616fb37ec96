package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/study-planner-api/internal/models"
)

func packerPrefs(dailyHours int, avoid ...string) models.StudyPreference {
	return models.StudyPreference{
		StudentID:       "student-1",
		DailyHours:      dailyHours,
		WeeklyStudyDays: 7,
		AvoidDays:       avoid,
	}
}

func singleTaskPlan(taskID string, deadline time.Time, priority int, parts ...models.TaskPart) taskPlan {
	return taskPlan{
		Task:        models.Task{ID: taskID, CourseID: "course-1", Title: "Task " + taskID, Deadline: deadline},
		CourseTitle: "Algorithms",
		Parts:       parts,
		Priority:    priority,
	}
}

func TestPackDailyPlanRespectsDailyCapacity(t *testing.T) {
	days := []time.Time{date(2026, 3, 2), date(2026, 3, 3), date(2026, 3, 4)}
	plan := singleTaskPlan("t-1", date(2026, 3, 4), 1,
		models.TaskPart{ID: 1, Title: "Draft", EstimatedMinutes: 200, Priority: 1, Difficulty: models.DifficultyHard},
		models.TaskPart{ID: 2, Title: "Review", EstimatedMinutes: 100, Priority: 2, Difficulty: models.DifficultyEasy},
	)

	items := PackDailyPlan([]taskPlan{plan}, packerPrefs(2), days)
	require.NotEmpty(t, items)

	perDay := map[string]int{}
	total := 0
	for _, item := range items {
		perDay[item.Date] += item.Minutes
		total += item.Minutes
	}
	for day, minutes := range perDay {
		assert.LessOrEqual(t, minutes, 120, "day %s over capacity", day)
	}
	// Nothing is silently dropped.
	assert.Equal(t, 300, total)
}

func TestPackDailyPlanSplitsPartAcrossDays(t *testing.T) {
	days := []time.Time{date(2026, 3, 2), date(2026, 3, 3)}
	plan := singleTaskPlan("t-1", date(2026, 3, 3), 1,
		models.TaskPart{ID: 1, Title: "Implementation", EstimatedMinutes: 180, Priority: 1, Difficulty: models.DifficultyHard},
	)

	items := PackDailyPlan([]taskPlan{plan}, packerPrefs(2), days)
	require.Len(t, items, 2)

	assert.Equal(t, 120, items[0].Minutes)
	assert.Equal(t, 60, items[1].Minutes)
	// Chunks of a split part share the same display id but differ by date.
	assert.Equal(t, items[0].ID, items[1].ID)
	assert.NotEqual(t, items[0].Date, items[1].Date)
	assert.Equal(t, items[0].Ref, items[1].Ref)
}

func TestPackDailyPlanOverflowsPastDeadline(t *testing.T) {
	days := []time.Time{date(2026, 3, 2), date(2026, 3, 3), date(2026, 3, 4)}
	plan := singleTaskPlan("t-1", date(2026, 3, 2), 1,
		models.TaskPart{ID: 1, Title: "Everything", EstimatedMinutes: 300, Priority: 1, Difficulty: models.DifficultyHard},
	)

	items := PackDailyPlan([]taskPlan{plan}, packerPrefs(2), days)
	total := 0
	for _, item := range items {
		total += item.Minutes
	}
	// The deadline day absorbs 120 minutes; the rest lands on later days.
	assert.Equal(t, 300, total)
	assert.Equal(t, "2026-03-02", items[0].Date)
	assert.Equal(t, "2026-03-03", items[1].Date)
	assert.Equal(t, "2026-03-04", items[2].Date)
}

func TestPackDailyPlanNeverUsesAvoidedDays(t *testing.T) {
	// 2026-03-08 is a Sunday; include it to prove the packer re-filters.
	days := []time.Time{date(2026, 3, 6), date(2026, 3, 7), date(2026, 3, 8)}
	plan := singleTaskPlan("t-1", date(2026, 3, 8), 1,
		models.TaskPart{ID: 1, Title: "Draft", EstimatedMinutes: 200, Priority: 1, Difficulty: models.DifficultyHard},
	)

	items := PackDailyPlan([]taskPlan{plan}, packerPrefs(2, "Sunday"), days)
	for _, item := range items {
		assert.NotEqual(t, "2026-03-08", item.Date)
	}
}

func TestPackDailyPlanOrdersByPriorityThenDeadline(t *testing.T) {
	days := []time.Time{date(2026, 3, 2), date(2026, 3, 3), date(2026, 3, 4)}
	urgent := singleTaskPlan("urgent", date(2026, 3, 3), 1,
		models.TaskPart{ID: 1, Title: "Urgent work", EstimatedMinutes: 120, Priority: 1, Difficulty: models.DifficultyHard},
	)
	relaxed := singleTaskPlan("relaxed", date(2026, 3, 10), 3,
		models.TaskPart{ID: 1, Title: "Later work", EstimatedMinutes: 60, Priority: 1, Difficulty: models.DifficultyMedium},
	)

	items := PackDailyPlan([]taskPlan{relaxed, urgent}, packerPrefs(2), days)
	require.NotEmpty(t, items)

	// The urgent task claims the first day in full.
	assert.Equal(t, "urgent", items[0].Ref.TaskID)
	assert.Equal(t, "2026-03-02", items[0].Date)
	assert.Equal(t, 120, items[0].Minutes)
}

func TestPackDailyPlanSharedCapacityAcrossTasks(t *testing.T) {
	days := []time.Time{date(2026, 3, 2)}
	first := singleTaskPlan("a", date(2026, 3, 2), 1,
		models.TaskPart{ID: 1, Title: "A", EstimatedMinutes: 90, Priority: 1, Difficulty: models.DifficultyMedium},
	)
	second := singleTaskPlan("b", date(2026, 3, 2), 1,
		models.TaskPart{ID: 1, Title: "B", EstimatedMinutes: 90, Priority: 1, Difficulty: models.DifficultyMedium},
	)

	items := PackDailyPlan([]taskPlan{first, second}, packerPrefs(2), days)

	perDay := 0
	for _, item := range items {
		require.Equal(t, "2026-03-02", item.Date)
		perDay += item.Minutes
	}
	assert.Equal(t, 120, perDay)
}

func TestPackDailyPlanEmptyInputs(t *testing.T) {
	assert.Empty(t, PackDailyPlan(nil, packerPrefs(2), []time.Time{date(2026, 3, 2)}))
	assert.Empty(t, PackDailyPlan([]taskPlan{singleTaskPlan("t", date(2026, 3, 2), 1)}, packerPrefs(2), nil))
}

func TestPackDailyPlanItemMetadata(t *testing.T) {
	days := []time.Time{date(2026, 3, 2)}
	plan := singleTaskPlan("t-1", date(2026, 3, 2), 1,
		models.TaskPart{ID: 1, Title: "Only part", EstimatedMinutes: 60, Priority: 1, Difficulty: models.DifficultyMedium},
	)

	items := PackDailyPlan([]taskPlan{plan}, packerPrefs(2), days)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "course-1-t-1-0", item.ID)
	assert.Equal(t, models.PartRef{CourseID: "course-1", TaskID: "t-1", PartIndex: 0}, item.Ref)
	assert.Equal(t, "Algorithms", item.CourseTitle)
	assert.Equal(t, "Task t-1", item.TaskTitle)
	assert.Equal(t, "Only part", item.PartTitle)
	assert.Equal(t, 1, item.PartsCount)
	assert.Equal(t, models.CourseColor("course-1"), item.Color)
	assert.False(t, item.Completed)
}
