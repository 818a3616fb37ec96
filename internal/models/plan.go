package models

import (
	"fmt"
	"hash/fnv"
)

// TaskCategory is the coarse work type assigned by keyword classification.
type TaskCategory string

const (
	CategoryCoding       TaskCategory = "coding"
	CategoryResearch     TaskCategory = "research"
	CategoryWriting      TaskCategory = "writing"
	CategoryPresentation TaskCategory = "presentation"
	CategoryGeneric      TaskCategory = "generic"
)

// PartDifficulty tags the relative effort of a task part.
type PartDifficulty string

const (
	DifficultyEasy   PartDifficulty = "easy"
	DifficultyMedium PartDifficulty = "medium"
	DifficultyHard   PartDifficulty = "hard"
)

// TaskPart is one decomposed unit of work belonging to exactly one task.
// Parts are never mutated after creation; relaxation replaces the whole list.
type TaskPart struct {
	ID               int            `json:"id"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	EstimatedMinutes int            `json:"estimated_minutes"`
	Priority         int            `json:"priority"`
	Difficulty       PartDifficulty `json:"difficulty"`
	DependsOn        []int          `json:"depends_on,omitempty"`
}

// PartRef is the structured identifier of a scheduled part. It is carried
// alongside the display string so aggregation never re-parses ids.
type PartRef struct {
	CourseID  string `json:"course_id"`
	TaskID    string `json:"task_id"`
	PartIndex int    `json:"part_index"`
}

// String renders the display id. All chunks of the same part share it.
func (r PartRef) String() string {
	return fmt.Sprintf("%s-%s-%d", r.CourseID, r.TaskID, r.PartIndex)
}

// TaskKey returns the courseId-taskId prefix used for per-task aggregation.
func (r PartRef) TaskKey() string {
	return fmt.Sprintf("%s-%s", r.CourseID, r.TaskID)
}

// PlanItem is one scheduled chunk of a task part placed on one calendar date.
type PlanItem struct {
	ID          string  `json:"id"`
	Ref         PartRef `json:"ref"`
	CourseID    string  `json:"course_id"`
	CourseTitle string  `json:"course_title"`
	TaskTitle   string  `json:"task_title"`
	PartTitle   string  `json:"part_title"`
	Minutes     int     `json:"minutes"`
	Date        string  `json:"date"`
	Color       string  `json:"color"`
	Completed   bool    `json:"completed"`
	PartIndex   int     `json:"part_index"`
	PartsCount  int     `json:"parts_count"`
}

// WeeklyPlan maps a week offset (0 = the week containing "today", anchored on
// Monday) to the ordered plan items whose date falls inside that week. It is
// rebuilt wholesale on every planning run.
type WeeklyPlan map[int][]PlanItem

var courseColors = []string{
	"#4F46E5", "#0891B2", "#059669", "#D97706",
	"#DC2626", "#7C3AED", "#DB2777", "#65A30D",
}

// CourseColor derives a stable display color from a course id.
func CourseColor(courseID string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(courseID))
	return courseColors[int(h.Sum32())%len(courseColors)]
}
