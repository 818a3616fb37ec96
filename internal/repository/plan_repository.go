package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/study-planner-api/internal/models"
	appErrors "github.com/noah-isme/study-planner-api/pkg/errors"
)

const planKeyPrefix = "planner:plan:"

// PlanRepository stores generated weekly plans in the key-value store. Plans
// are replaced wholesale on every generation run; only the completion flag of
// individual items is patched in place.
type PlanRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewPlanRepository constructs the repository.
func NewPlanRepository(client *redis.Client, logger *zap.Logger) *PlanRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanRepository{client: client, logger: logger}
}

// Get loads the stored weekly plan for a student.
func (r *PlanRepository) Get(ctx context.Context, studentID string) (models.WeeklyPlan, error) {
	if r.client == nil {
		return nil, appErrors.ErrCacheMiss
	}
	raw, err := r.client.Get(ctx, planKeyPrefix+studentID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, appErrors.ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get plan for %s: %w", studentID, err)
	}

	var plan models.WeeklyPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil, fmt.Errorf("unmarshal plan for %s: %w", studentID, err)
	}
	return plan, nil
}

// Save replaces the stored plan with the provided one.
func (r *PlanRepository) Save(ctx context.Context, studentID string, plan models.WeeklyPlan, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	payload, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("marshal plan for %s: %w", studentID, err)
	}
	if err := r.client.Set(ctx, planKeyPrefix+studentID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set plan for %s: %w", studentID, err)
	}
	return nil
}
