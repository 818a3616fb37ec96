package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/study-planner-api/internal/dto"
	"github.com/noah-isme/study-planner-api/internal/middleware"
	"github.com/noah-isme/study-planner-api/internal/models"
	"github.com/noah-isme/study-planner-api/internal/service"
	appErrors "github.com/noah-isme/study-planner-api/pkg/errors"
)

type responseEnvelope struct {
	Data  map[string]interface{} `json:"data"`
	Error map[string]interface{} `json:"error"`
}

type fakePlannerSrv struct {
	generateResp *dto.GeneratePlanResponse
	generateErr  error
	lastOverride *dto.UpsertPreferenceRequest
	storedPlan   models.WeeklyPlan
	storedErr    error
	toggleResp   *models.PlanItem
	toggleErr    error
}

func (f *fakePlannerSrv) GenerateWeeklyPlan(_ context.Context, _ string, override *dto.UpsertPreferenceRequest) (*dto.GeneratePlanResponse, error) {
	f.lastOverride = override
	return f.generateResp, f.generateErr
}

func (f *fakePlannerSrv) StoredPlan(context.Context, string) (models.WeeklyPlan, error) {
	return f.storedPlan, f.storedErr
}

func (f *fakePlannerSrv) ToggleItem(context.Context, string, dto.ToggleItemRequest) (*models.PlanItem, error) {
	return f.toggleResp, f.toggleErr
}

type fakeExporterSrv struct {
	result *service.ExportResult
	err    error
	format service.ExportFormat
}

func (f *fakeExporterSrv) Export(_ context.Context, _ string, format service.ExportFormat) (*service.ExportResult, error) {
	f.format = format
	return f.result, f.err
}

func planTestContext(t *testing.T, method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "student-1"})
	return c, rec
}

func TestPlanHandlerGenerateSuccess(t *testing.T) {
	planner := &fakePlannerSrv{
		generateResp: &dto.GeneratePlanResponse{Plan: models.WeeklyPlan{}, RunID: "run-1"},
	}
	handler := &PlanHandler{planner: planner}

	c, rec := planTestContext(t, http.MethodPost, "/planner/plans/generate", dto.GeneratePlanRequest{
		Preferences: &dto.UpsertPreferenceRequest{DailyHours: 3, WeeklyStudyDays: 5},
	})
	handler.Generate(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, planner.lastOverride)
	assert.Equal(t, 3, planner.lastOverride.DailyHours)

	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "run-1", envelope.Data["runId"])
}

func TestPlanHandlerGenerateEmptyBody(t *testing.T) {
	planner := &fakePlannerSrv{generateResp: &dto.GeneratePlanResponse{Plan: models.WeeklyPlan{}}}
	handler := &PlanHandler{planner: planner}

	c, rec := planTestContext(t, http.MethodPost, "/planner/plans/generate", nil)
	handler.Generate(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, planner.lastOverride)
}

func TestPlanHandlerGenerateValidationError(t *testing.T) {
	planner := &fakePlannerSrv{generateErr: appErrors.Clone(appErrors.ErrValidation, "bad preferences")}
	handler := &PlanHandler{planner: planner}

	c, rec := planTestContext(t, http.MethodPost, "/planner/plans/generate", dto.GeneratePlanRequest{})
	handler.Generate(c)

	assert.Equal(t, appErrors.ErrValidation.Status, rec.Code)
}

func TestPlanHandlerWeeklySelectsOffset(t *testing.T) {
	planner := &fakePlannerSrv{
		storedPlan: models.WeeklyPlan{
			0: {{ID: "a", Date: "2026-03-02"}},
			1: {{ID: "b", Date: "2026-03-09"}},
		},
	}
	handler := &PlanHandler{planner: planner}

	c, rec := planTestContext(t, http.MethodGet, "/planner/plans/weekly?offset=1", nil)
	handler.Weekly(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, float64(1), envelope.Data["offset"])
	items := envelope.Data["items"].([]interface{})
	require.Len(t, items, 1)
}

func TestPlanHandlerWeeklyMissingWeekIsEmpty(t *testing.T) {
	planner := &fakePlannerSrv{storedPlan: models.WeeklyPlan{}}
	handler := &PlanHandler{planner: planner}

	c, rec := planTestContext(t, http.MethodGet, "/planner/plans/weekly?offset=4", nil)
	handler.Weekly(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	items := envelope.Data["items"].([]interface{})
	assert.Empty(t, items)
}

func TestPlanHandlerWeeklyRejectsBadOffset(t *testing.T) {
	handler := &PlanHandler{planner: &fakePlannerSrv{}}

	c, rec := planTestContext(t, http.MethodGet, "/planner/plans/weekly?offset=abc", nil)
	handler.Weekly(c)

	assert.Equal(t, appErrors.ErrValidation.Status, rec.Code)
}

func TestPlanHandlerToggle(t *testing.T) {
	planner := &fakePlannerSrv{toggleResp: &models.PlanItem{ID: "c1-t1-0", Completed: true}}
	handler := &PlanHandler{planner: planner}

	c, rec := planTestContext(t, http.MethodPatch, "/planner/plans/items/toggle", dto.ToggleItemRequest{
		ItemID: "c1-t1-0", Date: "2026-03-02", Completed: true,
	})
	handler.Toggle(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, true, envelope.Data["completed"])
}

func TestPlanHandlerExportSetsHeaders(t *testing.T) {
	exporter := &fakeExporterSrv{
		result: &service.ExportResult{Content: []byte("Week,Date"), ContentType: "text/csv", Filename: "weekly-plan.csv"},
	}
	handler := &PlanHandler{planner: &fakePlannerSrv{}, exporter: exporter}

	c, rec := planTestContext(t, http.MethodGet, "/planner/plans/export?format=csv", nil)
	handler.Export(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.ExportFormatCSV, exporter.format)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "weekly-plan.csv")
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
}
