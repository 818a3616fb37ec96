package handler

import (
	"context"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/study-planner-api/internal/dto"
	"github.com/noah-isme/study-planner-api/internal/models"
	"github.com/noah-isme/study-planner-api/internal/service"
	appErrors "github.com/noah-isme/study-planner-api/pkg/errors"
	"github.com/noah-isme/study-planner-api/pkg/response"
)

type planGenerator interface {
	GenerateWeeklyPlan(ctx context.Context, studentID string, override *dto.UpsertPreferenceRequest) (*dto.GeneratePlanResponse, error)
	StoredPlan(ctx context.Context, studentID string) (models.WeeklyPlan, error)
	ToggleItem(ctx context.Context, studentID string, req dto.ToggleItemRequest) (*models.PlanItem, error)
}

type planExporter interface {
	Export(ctx context.Context, studentID string, format service.ExportFormat) (*service.ExportResult, error)
}

// PlanHandler exposes weekly planner endpoints.
type PlanHandler struct {
	planner  planGenerator
	exporter planExporter
}

// NewPlanHandler constructs the handler.
func NewPlanHandler(planner *service.PlanGeneratorService, exporter *service.PlanExportService) *PlanHandler {
	return &PlanHandler{planner: planner, exporter: exporter}
}

type weeklyPlanResponse struct {
	Offset int               `json:"offset"`
	Items  []models.PlanItem `json:"items"`
	Weeks  []int             `json:"weeks"`
}

// Generate godoc
// @Summary Generate and store the weekly study plan
// @Description Recomputes the whole plan from the student's courses and tasks. An optional preference override applies to this run only unless saveAsDefault is set.
// @Tags Planner
// @Accept json
// @Produce json
// @Param payload body dto.GeneratePlanRequest false "Optional preference override"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /planner/plans/generate [post]
func (h *PlanHandler) Generate(c *gin.Context) {
	var req dto.GeneratePlanRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
			return
		}
	}
	result, err := h.planner.GenerateWeeklyPlan(c.Request.Context(), studentFromContext(c), req.Preferences)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Weekly godoc
// @Summary Get one week of the stored plan
// @Description Offset 0 is the week containing today, anchored on Monday. Negative offsets address past weeks.
// @Tags Planner
// @Produce json
// @Param offset query int false "Week offset relative to the current week" default(0)
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /planner/plans/weekly [get]
func (h *PlanHandler) Weekly(c *gin.Context) {
	offset := 0
	if raw := c.Query("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "offset must be an integer"))
			return
		}
		offset = parsed
	}

	plan, err := h.planner.StoredPlan(c.Request.Context(), studentFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	weeks := make([]int, 0, len(plan))
	for week := range plan {
		weeks = append(weeks, week)
	}
	sort.Ints(weeks)
	items := plan[offset]
	if items == nil {
		items = []models.PlanItem{}
	}
	response.JSON(c, http.StatusOK, weeklyPlanResponse{Offset: offset, Items: items, Weeks: weeks}, nil)
}

// Toggle godoc
// @Summary Mark a scheduled chunk complete or incomplete
// @Tags Planner
// @Accept json
// @Produce json
// @Param payload body dto.ToggleItemRequest true "Toggle payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /planner/plans/items/toggle [patch]
func (h *PlanHandler) Toggle(c *gin.Context) {
	var req dto.ToggleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid toggle payload"))
		return
	}
	item, err := h.planner.ToggleItem(c.Request.Context(), studentFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Export godoc
// @Summary Export the stored plan as CSV or PDF
// @Tags Planner
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "Export format" Enums(csv, pdf) default(csv)
// @Success 200 {file} file
// @Security BearerAuth
// @Router /planner/plans/export [get]
func (h *PlanHandler) Export(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", string(service.ExportFormatCSV)))
	result, err := h.exporter.Export(c.Request.Context(), studentFromContext(c), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+result.Filename)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
