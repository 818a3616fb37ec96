package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/study-planner-api/internal/models"
	appErrors "github.com/noah-isme/study-planner-api/pkg/errors"
)

func exportFixture(t *testing.T) *PlanExportService {
	t.Helper()
	f := newPlannerFixture(t, date(2026, 3, 2))
	f.plans.plans = map[string]models.WeeklyPlan{
		"student-1": {
			1: {{ID: "c1-t1-0", Date: "2026-03-09", CourseTitle: "Algorithms", TaskTitle: "Solver", PartTitle: "Design", Minutes: 40}},
			0: {{ID: "c1-t1-0", Date: "2026-03-02", CourseTitle: "Algorithms", TaskTitle: "Solver", PartTitle: "Analysis", Minutes: 30, Completed: true}},
		},
	}
	return NewPlanExportService(f.service, nil)
}

func TestPlanExportCSVOrdersWeeks(t *testing.T) {
	svc := exportFixture(t)

	result, err := svc.Export(context.Background(), "student-1", ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "weekly-plan.csv", result.Filename)

	lines := strings.Split(strings.TrimSpace(string(result.Content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Week,Date,Course,Task,Part,Minutes,Done", lines[0])
	assert.Equal(t, "0,2026-03-02,Algorithms,Solver,Analysis,30,yes", lines[1])
	assert.Equal(t, "1,2026-03-09,Algorithms,Solver,Design,40,no", lines[2])
}

func TestPlanExportPDFProducesDocument(t *testing.T) {
	svc := exportFixture(t)

	result, err := svc.Export(context.Background(), "student-1", ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Content), "%PDF"))
}

func TestPlanExportEmptyPlanStillRenders(t *testing.T) {
	f := newPlannerFixture(t, date(2026, 3, 2))
	svc := NewPlanExportService(f.service, nil)

	result, err := svc.Export(context.Background(), "student-1", ExportFormatCSV)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(result.Content)), "\n")
	assert.Len(t, lines, 1)
}

func TestPlanExportUnknownFormat(t *testing.T) {
	svc := exportFixture(t)

	_, err := svc.Export(context.Background(), "student-1", ExportFormat("xlsx"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
