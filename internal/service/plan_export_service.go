package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/noah-isme/study-planner-api/internal/models"
	appErrors "github.com/noah-isme/study-planner-api/pkg/errors"
	"github.com/noah-isme/study-planner-api/pkg/export"
)

// ExportFormat selects the rendered output type.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportResult carries the rendered bytes plus HTTP delivery metadata.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// PlanExportService renders a student's stored weekly plan into tabular
// documents.
type PlanExportService struct {
	planner *PlanGeneratorService
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	logger  *zap.Logger
}

// NewPlanExportService builds the service.
func NewPlanExportService(planner *PlanGeneratorService, logger *zap.Logger) *PlanExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanExportService{
		planner: planner,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		logger:  logger,
	}
}

var planExportHeaders = []string{"Week", "Date", "Course", "Task", "Part", "Minutes", "Done"}

// Export renders the stored plan in the requested format.
func (s *PlanExportService) Export(ctx context.Context, studentID string, format ExportFormat) (*ExportResult, error) {
	plan, err := s.planner.StoredPlan(ctx, studentID)
	if err != nil {
		return nil, err
	}

	dataset := planDataset(plan)
	switch format {
	case ExportFormatCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportResult{Content: content, ContentType: "text/csv", Filename: "weekly-plan.csv"}, nil
	case ExportFormatPDF:
		content, err := s.pdf.Render(dataset, "Weekly study plan")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportResult{Content: content, ContentType: "application/pdf", Filename: "weekly-plan.pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

// planDataset flattens a weekly plan into export rows, weeks in ascending
// offset order.
func planDataset(plan models.WeeklyPlan) export.Dataset {
	offsets := make([]int, 0, len(plan))
	for offset := range plan {
		offsets = append(offsets, offset)
	}
	sort.Ints(offsets)

	rows := []map[string]string{}
	for _, offset := range offsets {
		for _, item := range plan[offset] {
			done := "no"
			if item.Completed {
				done = "yes"
			}
			rows = append(rows, map[string]string{
				"Week":    strconv.Itoa(offset),
				"Date":    item.Date,
				"Course":  item.CourseTitle,
				"Task":    item.TaskTitle,
				"Part":    item.PartTitle,
				"Minutes": strconv.Itoa(item.Minutes),
				"Done":    done,
			})
		}
	}
	return export.Dataset{Headers: planExportHeaders, Rows: rows}
}
