package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/study-planner-api/internal/models"
	appErrors "github.com/noah-isme/study-planner-api/pkg/errors"
)

const preferenceKeyPrefix = "planner:prefs:"

// PreferenceRepository stores study preferences in the key-value store,
// keyed by student identity.
type PreferenceRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewPreferenceRepository constructs the repository.
func NewPreferenceRepository(client *redis.Client, logger *zap.Logger) *PreferenceRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PreferenceRepository{client: client, logger: logger}
}

// Get loads the stored preferences for a student.
func (r *PreferenceRepository) Get(ctx context.Context, studentID string) (*models.StudyPreference, error) {
	if r.client == nil {
		return nil, appErrors.ErrCacheMiss
	}
	raw, err := r.client.Get(ctx, preferenceKeyPrefix+studentID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, appErrors.ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get preferences for %s: %w", studentID, err)
	}

	var pref models.StudyPreference
	if err := json.Unmarshal(raw, &pref); err != nil {
		return nil, fmt.Errorf("unmarshal preferences for %s: %w", studentID, err)
	}
	return &pref, nil
}

// Save stores preferences without expiry; they live until replaced.
func (r *PreferenceRepository) Save(ctx context.Context, pref *models.StudyPreference) error {
	if r.client == nil {
		return nil
	}
	payload, err := json.Marshal(pref)
	if err != nil {
		return fmt.Errorf("marshal preferences for %s: %w", pref.StudentID, err)
	}
	if err := r.client.Set(ctx, preferenceKeyPrefix+pref.StudentID, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set preferences for %s: %w", pref.StudentID, err)
	}
	return nil
}
