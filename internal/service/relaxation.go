package service

import (
	"math"
	"strings"

	"github.com/noah-isme/study-planner-api/internal/dto"
	"github.com/noah-isme/study-planner-api/internal/models"
)

// relaxationStrategy is one rung of the escalation ladder: a predicate over
// the deficit ratio plus a pure transform of the part list. Rungs are
// evaluated in order; extending the ladder means appending a rung.
type relaxationStrategy struct {
	step    dto.RelaxationStep
	applies func(ratio float64) bool
	apply   func(parts []models.TaskPart) []models.TaskPart
}

var relaxationLadder = []relaxationStrategy{
	{
		step:    dto.RelaxationStep{Level: 1, Name: "compress", Description: "reduced every part estimate by 10%"},
		applies: func(ratio float64) bool { return ratio <= 0.3 },
		apply:   func(parts []models.TaskPart) []models.TaskPart { return compressParts(parts, 0.9) },
	},
	{
		step:    dto.RelaxationStep{Level: 2, Name: "compress+merge", Description: "reduced estimates by 15% and merged easy parts"},
		applies: func(ratio float64) bool { return ratio <= 0.5 },
		apply: func(parts []models.TaskPart) []models.TaskPart {
			return mergeEasyParts(compressParts(parts, 0.85))
		},
	},
	{
		step:    dto.RelaxationStep{Level: 3, Name: "compress+merge+drop", Description: "reduced estimates by 20%, merged easy parts and dropped optional parts"},
		applies: func(ratio float64) bool { return ratio <= 0.7 },
		apply: func(parts []models.TaskPart) []models.TaskPart {
			return dropOptionalParts(mergeEasyParts(compressParts(parts, 0.8)))
		},
	},
	{
		step: dto.RelaxationStep{
			Level: 4,
			Name:  "recommend-extension",
			Description: "reduced estimates by 20%, merged easy parts, dropped optional parts; " +
				"remaining work still exceeds the available time, a deadline extension is recommended",
		},
		applies: func(ratio float64) bool { return true },
		apply: func(parts []models.TaskPart) []models.TaskPart {
			// Advisory only: no extra days are fabricated, the caller still
			// schedules whatever remains.
			return dropOptionalParts(mergeEasyParts(compressParts(parts, 0.8)))
		},
	},
}

// noRelaxation is the explicit level-0 step reported for feasible tasks.
var noRelaxation = dto.RelaxationStep{Level: 0, Name: "none", Description: "no adjustment needed"}

// SelectRelaxationStep picks the ladder rung for a deficit ratio
// (deficit / totalRequired). A non-positive ratio selects level 0.
func SelectRelaxationStep(ratio float64) dto.RelaxationStep {
	if ratio <= 0 {
		return noRelaxation
	}
	for _, strategy := range relaxationLadder {
		if strategy.applies(ratio) {
			return strategy.step
		}
	}
	return relaxationLadder[len(relaxationLadder)-1].step
}

// RelaxParts applies the ladder rung matching the feasibility report and
// returns a new derived part list; the input is never modified. Feasible
// tasks get the part list back untouched with the level-0 step.
func RelaxParts(parts []models.TaskPart, report dto.FeasibilityReport) ([]models.TaskPart, dto.RelaxationStep) {
	if report.Feasible || report.TotalRequiredMinutes == 0 {
		return parts, noRelaxation
	}
	ratio := float64(report.DeficitMinutes) / float64(report.TotalRequiredMinutes)
	for _, strategy := range relaxationLadder {
		if strategy.applies(ratio) {
			return strategy.apply(parts), strategy.step
		}
	}
	last := relaxationLadder[len(relaxationLadder)-1]
	return last.apply(parts), last.step
}

// compressParts scales every estimate by factor, flooring at 15 minutes so
// compression cannot produce degenerate slivers of work.
func compressParts(parts []models.TaskPart, factor float64) []models.TaskPart {
	result := make([]models.TaskPart, len(parts))
	for i, part := range parts {
		scaled := int(math.Round(float64(part.EstimatedMinutes) * factor))
		if scaled < minPartMinutes {
			scaled = minPartMinutes
		}
		part.EstimatedMinutes = scaled
		result[i] = part
	}
	return result
}

// mergeEasyParts folds all easy parts into one combined part carrying 80% of
// their summed minutes and the strongest (lowest) priority among them. The
// combined part takes the position of the first easy part.
func mergeEasyParts(parts []models.TaskPart) []models.TaskPart {
	var easy []models.TaskPart
	for _, part := range parts {
		if part.Difficulty == models.DifficultyEasy {
			easy = append(easy, part)
		}
	}
	if len(easy) < 2 {
		return parts
	}

	total := 0
	priority := easy[0].Priority
	titles := make([]string, 0, len(easy))
	for _, part := range easy {
		total += part.EstimatedMinutes
		if part.Priority < priority {
			priority = part.Priority
		}
		titles = append(titles, part.Title)
	}
	minutes := int(math.Round(float64(total) * 0.8))
	if minutes < minPartMinutes {
		minutes = minPartMinutes
	}

	merged := models.TaskPart{
		ID:               easy[0].ID,
		Title:            "Combined: " + strings.Join(titles, " + "),
		Description:      "easy parts merged into one sitting",
		EstimatedMinutes: minutes,
		Priority:         priority,
		Difficulty:       models.DifficultyEasy,
	}

	result := make([]models.TaskPart, 0, len(parts)-len(easy)+1)
	inserted := false
	for _, part := range parts {
		if part.Difficulty == models.DifficultyEasy {
			if !inserted {
				result = append(result, merged)
				inserted = true
			}
			continue
		}
		result = append(result, part)
	}
	return result
}

// dropOptionalParts removes every part with priority weaker than 2.
func dropOptionalParts(parts []models.TaskPart) []models.TaskPart {
	result := make([]models.TaskPart, 0, len(parts))
	for _, part := range parts {
		if part.Priority > 2 {
			continue
		}
		result = append(result, part)
	}
	return result
}
