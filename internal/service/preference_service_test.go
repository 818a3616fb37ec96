package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/study-planner-api/internal/dto"
	"github.com/noah-isme/study-planner-api/internal/models"
	appErrors "github.com/noah-isme/study-planner-api/pkg/errors"
)

func newPreferenceService(t *testing.T) (*PreferenceService, *preferenceStoreStub) {
	t.Helper()
	f := newPlannerFixture(t, date(2026, 3, 2))
	return NewPreferenceService(f.prefs, f.service, nil, nil, 2), f.prefs
}

func TestPreferenceServiceGetFallsBackToDefaults(t *testing.T) {
	svc, _ := newPreferenceService(t)

	pref, err := svc.Get(context.Background(), "student-1")
	require.NoError(t, err)
	assert.Equal(t, 2, pref.DailyHours)
	assert.Equal(t, 7, pref.WeeklyStudyDays)
	assert.Empty(t, pref.AvoidDays)
}

func TestPreferenceServiceGetReturnsStored(t *testing.T) {
	svc, store := newPreferenceService(t)
	store.prefs = map[string]*models.StudyPreference{
		"student-1": {StudentID: "student-1", DailyHours: 4, WeeklyStudyDays: 5},
	}

	pref, err := svc.Get(context.Background(), "student-1")
	require.NoError(t, err)
	assert.Equal(t, 4, pref.DailyHours)
}

func TestPreferenceServiceUpsertStores(t *testing.T) {
	svc, store := newPreferenceService(t)

	pref, err := svc.Upsert(context.Background(), "student-1", dto.UpsertPreferenceRequest{
		DailyHours:      3,
		WeeklyStudyDays: 5,
		AvoidDays:       []string{"Saturday", "Sunday"},
	})
	require.NoError(t, err)
	assert.Equal(t, "student-1", pref.StudentID)
	assert.False(t, pref.UpdatedAt.IsZero())
	require.Len(t, store.saved, 1)
}

func TestPreferenceServiceUpsertRejectsBadPayload(t *testing.T) {
	svc, store := newPreferenceService(t)

	_, err := svc.Upsert(context.Background(), "student-1", dto.UpsertPreferenceRequest{
		DailyHours:      20,
		WeeklyStudyDays: 5,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, store.saved)
}

func TestPreferenceServiceUpsertRejectsShortfall(t *testing.T) {
	svc, store := newPreferenceService(t)

	_, err := svc.Upsert(context.Background(), "student-1", dto.UpsertPreferenceRequest{
		DailyHours:      2,
		WeeklyStudyDays: 7,
		AvoidDays:       []string{"Sunday"},
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "study days")
	assert.Empty(t, store.saved)
}
