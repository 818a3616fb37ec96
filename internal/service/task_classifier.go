package service

import (
	"strings"

	"github.com/noah-isme/study-planner-api/internal/models"
)

// categoryKeywords binds one category to its trigger keywords. The slice
// order below is the classification priority: when a task mentions both
// "implement" and "research", coding wins.
type categoryKeywords struct {
	category models.TaskCategory
	keywords []string
}

var classifierRules = []categoryKeywords{
	{models.CategoryCoding, []string{"code", "coding", "program", "implement", "develop", "debug", "algorithm"}},
	{models.CategoryResearch, []string{"research", "study", "survey", "investigate", "literature", "analyze"}},
	{models.CategoryWriting, []string{"write", "essay", "report", "paper", "thesis", "summary"}},
	{models.CategoryPresentation, []string{"present", "presentation", "demo", "slide", "pitch", "talk"}},
}

// ClassifyTask maps a task's title and description to a coarse category via
// case-insensitive substring matching. The first matching category in rule
// order wins; no match falls back to generic.
func ClassifyTask(title, description string) models.TaskCategory {
	text := strings.ToLower(title + " " + description)
	for _, rule := range classifierRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return rule.category
			}
		}
	}
	return models.CategoryGeneric
}
