package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/study-planner-api/internal/models"
)

func TestClassifyTaskByKeyword(t *testing.T) {
	cases := []struct {
		name        string
		title       string
		description string
		want        models.TaskCategory
	}{
		{"coding title", "Implement sorting algorithm", "", models.CategoryCoding},
		{"coding description", "Assignment 3", "debug the parser module", models.CategoryCoding},
		{"research", "Literature survey on caching", "", models.CategoryResearch},
		{"writing", "Final essay", "", models.CategoryWriting},
		{"presentation", "Prepare slide deck", "", models.CategoryPresentation},
		{"case insensitive", "WRITE the report", "", models.CategoryWriting},
		{"no match", "Untitled homework", "due soon", models.CategoryGeneric},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyTask(tc.title, tc.description))
		})
	}
}

func TestClassifyTaskPriorityOrder(t *testing.T) {
	// Coding keywords outrank research ones when both appear.
	got := ClassifyTask("Research and implement a cache", "")
	assert.Equal(t, models.CategoryCoding, got)

	// Research outranks writing.
	got = ClassifyTask("Study notes for the paper", "")
	assert.Equal(t, models.CategoryResearch, got)
}
