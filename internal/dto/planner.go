package dto

import "github.com/noah-isme/study-planner-api/internal/models"

// UpsertPreferenceRequest captures the payload to store study preferences.
type UpsertPreferenceRequest struct {
	DailyHours      int      `json:"dailyHours" validate:"required,min=1,max=12"`
	WeeklyStudyDays int      `json:"weeklyStudyDays" validate:"required,min=1,max=7"`
	AvoidDays       []string `json:"avoidDays" validate:"omitempty,dive,min=3"`
	SaveAsDefault   bool     `json:"saveAsDefault"`
	Description     string   `json:"description" validate:"omitempty,max=500"`
}

// PreferenceValidation reports the structured outcome of preference checks.
type PreferenceValidation struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// FeasibilityReport compares required against available study minutes for a
// single task before its deadline. Infeasibility is diagnostic, not an error.
type FeasibilityReport struct {
	TaskID                string   `json:"taskId"`
	TaskTitle             string   `json:"taskTitle"`
	Feasible              bool     `json:"feasible"`
	TotalRequiredMinutes  int      `json:"totalRequiredMinutes"`
	TotalAvailableMinutes int      `json:"totalAvailableMinutes"`
	DeficitMinutes        int      `json:"deficitMinutes"`
	AvailableDays         int      `json:"availableDays"`
	Suggestions           []string `json:"suggestions,omitempty"`
	Warnings              []string `json:"warnings,omitempty"`
}

// RelaxationStep describes the adjustment applied when a task was infeasible.
// Level 0 is the explicit no-op returned for feasible tasks.
type RelaxationStep struct {
	Level       int    `json:"level"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TaskPlanReport bundles per-task planning diagnostics for the response.
type TaskPlanReport struct {
	TaskID      string              `json:"taskId"`
	TaskTitle   string              `json:"taskTitle"`
	CourseID    string              `json:"courseId"`
	Category    models.TaskCategory `json:"category"`
	Parts       []models.TaskPart   `json:"parts"`
	Feasibility FeasibilityReport   `json:"feasibility"`
	Relaxation  RelaxationStep      `json:"relaxation"`
}

// GeneratePlanRequest optionally overrides stored preferences for one run.
type GeneratePlanRequest struct {
	Preferences *UpsertPreferenceRequest `json:"preferences,omitempty"`
}

// GeneratePlanResponse returns the generated weekly plan plus diagnostics.
type GeneratePlanResponse struct {
	Plan      models.WeeklyPlan `json:"plan"`
	Items     int               `json:"items"`
	Tasks     []TaskPlanReport  `json:"tasks"`
	Generated string            `json:"generated"`
	RunID     string            `json:"runId"`
}

// ToggleItemRequest flips the completion flag of one scheduled chunk. The
// date disambiguates chunks of a part that was split across days.
type ToggleItemRequest struct {
	ItemID    string `json:"itemId" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Completed bool   `json:"completed"`
}
