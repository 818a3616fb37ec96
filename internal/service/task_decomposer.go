package service

import (
	"math"
	"time"

	"github.com/noah-isme/study-planner-api/internal/models"
)

// partTemplate is one row of a category's fixed decomposition template.
type partTemplate struct {
	title       string
	description string
	minutes     int
	priority    int
	difficulty  models.PartDifficulty
}

var partTemplates = map[models.TaskCategory][]partTemplate{
	models.CategoryCoding: {
		{"Analysis", "Understand the requirements and break down the problem", 24, 2, models.DifficultyMedium},
		{"Design", "Sketch the solution structure and interfaces", 36, 2, models.DifficultyMedium},
		{"Implementation", "Write the core solution", 60, 1, models.DifficultyHard},
		{"Testing", "Exercise the solution against expected behaviour", 30, 2, models.DifficultyMedium},
		{"Optimization", "Clean up and polish the final result", 24, 4, models.DifficultyEasy},
	},
	models.CategoryResearch: {
		{"Topic survey", "Scope the topic and collect candidate sources", 30, 2, models.DifficultyMedium},
		{"Source reading", "Read and annotate the primary material", 48, 1, models.DifficultyHard},
		{"Synthesis", "Connect findings into an organized set of notes", 36, 2, models.DifficultyMedium},
		{"Summary", "Condense conclusions into a short write-up", 24, 3, models.DifficultyEasy},
	},
	models.CategoryWriting: {
		{"Outline", "Structure the argument before writing", 24, 2, models.DifficultyEasy},
		{"Draft", "Produce the full first draft", 60, 1, models.DifficultyHard},
		{"Revision", "Rework structure and flow", 30, 2, models.DifficultyMedium},
		{"Proofread", "Final pass for grammar and formatting", 18, 4, models.DifficultyEasy},
	},
	models.CategoryPresentation: {
		{"Content plan", "Decide the story and key points", 24, 2, models.DifficultyMedium},
		{"Slides", "Build the slide deck", 42, 1, models.DifficultyMedium},
		{"Speaker notes", "Write talking points per slide", 24, 3, models.DifficultyEasy},
		{"Rehearsal", "Run through the delivery end to end", 30, 2, models.DifficultyMedium},
	},
	models.CategoryGeneric: {
		{"Preparation", "Gather materials and plan the approach", 30, 2, models.DifficultyMedium},
		{"Execution", "Do the main body of work", 60, 1, models.DifficultyHard},
		{"Review", "Check the result before submission", 24, 3, models.DifficultyEasy},
	},
}

const minPartMinutes = 15

// DeadlinePriority buckets days-to-deadline into a 1..3 urgency hint:
// 1 for a week or less, 2 for two weeks, 3 beyond that.
func DeadlinePriority(now, deadline time.Time) int {
	days := int(deadline.Sub(now).Hours() / 24)
	switch {
	case days <= 7:
		return 1
	case days <= 14:
		return 2
	default:
		return 3
	}
}

// complexityMultiplier scales template minutes by urgency. Closer deadlines
// get more generous estimates so the plan front-loads effort.
func complexityMultiplier(priority int) float64 {
	switch priority {
	case 1:
		return 1.3
	case 2:
		return 1.1
	default:
		return 0.9
	}
}

// DecomposeTask expands a task into its category's ordered part list with
// urgency-scaled minute estimates. The output order is the template order and
// is the ordering contract consumers rely on for part indexing. Always
// returns at least the generic three-part template.
func DecomposeTask(task models.Task, category models.TaskCategory, now time.Time) []models.TaskPart {
	template, ok := partTemplates[category]
	if !ok {
		template = partTemplates[models.CategoryGeneric]
	}

	priority := DeadlinePriority(now, task.Deadline)
	multiplier := complexityMultiplier(priority)
	if task.Deadline.Sub(now).Hours() < 7*24 {
		// Under a week out there is no room for padded estimates.
		multiplier *= 0.8
	}

	parts := make([]models.TaskPart, 0, len(template))
	for i, row := range template {
		part := models.TaskPart{
			ID:               i + 1,
			Title:            row.title,
			Description:      row.description,
			EstimatedMinutes: int(math.Round(float64(row.minutes) * multiplier)),
			Priority:         row.priority,
			Difficulty:       row.difficulty,
		}
		if part.EstimatedMinutes < 1 {
			part.EstimatedMinutes = 1
		}
		if i > 0 {
			// Advisory ordering hint; packing does not enforce it.
			part.DependsOn = []int{i}
		}
		parts = append(parts, part)
	}
	return parts
}
