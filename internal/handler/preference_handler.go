package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/study-planner-api/internal/dto"
	"github.com/noah-isme/study-planner-api/internal/models"
	"github.com/noah-isme/study-planner-api/internal/service"
	appErrors "github.com/noah-isme/study-planner-api/pkg/errors"
	"github.com/noah-isme/study-planner-api/pkg/response"
)

type preferenceManager interface {
	Get(ctx context.Context, studentID string) (*models.StudyPreference, error)
	Upsert(ctx context.Context, studentID string, req dto.UpsertPreferenceRequest) (*models.StudyPreference, error)
}

// PreferenceHandler exposes study preference endpoints.
type PreferenceHandler struct {
	service preferenceManager
}

// NewPreferenceHandler constructs the handler.
func NewPreferenceHandler(svc *service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{service: svc}
}

// Get godoc
// @Summary Get stored study preferences, defaults when none saved
// @Tags Planner
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /planner/preferences [get]
func (h *PreferenceHandler) Get(c *gin.Context) {
	pref, err := h.service.Get(c.Request.Context(), studentFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pref, nil)
}

// Upsert godoc
// @Summary Store study preferences
// @Tags Planner
// @Accept json
// @Produce json
// @Param payload body dto.UpsertPreferenceRequest true "Preference payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /planner/preferences [put]
func (h *PreferenceHandler) Upsert(c *gin.Context) {
	var req dto.UpsertPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid preference payload"))
		return
	}
	pref, err := h.service.Upsert(c.Request.Context(), studentFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pref, nil)
}
