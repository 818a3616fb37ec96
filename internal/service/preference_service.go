package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/study-planner-api/internal/dto"
	"github.com/noah-isme/study-planner-api/internal/models"
	appErrors "github.com/noah-isme/study-planner-api/pkg/errors"
)

// PreferenceService manages the stored study preferences of a student.
type PreferenceService struct {
	repo      preferenceStore
	planner   *PlanGeneratorService
	validator *validator.Validate
	logger    *zap.Logger
	defaults  int
}

// NewPreferenceService builds the service. defaultDailyHours seeds the
// fallback preference returned for students who never saved one.
func NewPreferenceService(repo preferenceStore, planner *PlanGeneratorService, validate *validator.Validate, logger *zap.Logger, defaultDailyHours int) *PreferenceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PreferenceService{
		repo:      repo,
		planner:   planner,
		validator: validate,
		logger:    logger,
		defaults:  defaultDailyHours,
	}
}

// Get returns stored preferences or the defaults.
func (s *PreferenceService) Get(ctx context.Context, studentID string) (*models.StudyPreference, error) {
	pref, err := s.repo.Get(ctx, studentID)
	if err != nil {
		if appErrors.FromError(err).Code == appErrors.ErrCacheMiss.Code {
			fallback := models.DefaultStudyPreference(studentID, s.defaults)
			return &fallback, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load preferences")
	}
	return pref, nil
}

// Upsert validates and stores preferences for a student. Both the payload
// shape and the scheduling invariant (enough non-avoided weekdays) must hold.
func (s *PreferenceService) Upsert(ctx context.Context, studentID string, req dto.UpsertPreferenceRequest) (*models.StudyPreference, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid preference payload")
	}

	pref := &models.StudyPreference{
		StudentID:       studentID,
		DailyHours:      req.DailyHours,
		WeeklyStudyDays: req.WeeklyStudyDays,
		AvoidDays:       req.AvoidDays,
		SaveAsDefault:   req.SaveAsDefault,
		Description:     req.Description,
		UpdatedAt:       time.Now().UTC(),
	}

	if validation := s.planner.ValidatePreferences(*pref); !validation.Valid {
		return nil, appErrors.Clone(appErrors.ErrValidation, strings.Join(validation.Errors, "; "))
	}

	if err := s.repo.Save(ctx, pref); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store preferences")
	}
	return pref, nil
}
