package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/study-planner-api/internal/models"
	"github.com/noah-isme/study-planner-api/internal/repository"
	appErrors "github.com/noah-isme/study-planner-api/pkg/errors"
)

type taskRepository interface {
	ListByCourse(ctx context.Context, courseID string) ([]models.Task, error)
	FindByID(ctx context.Context, id string) (*models.Task, error)
	Create(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id string) error
}

// CreateTaskRequest captures the payload to register coursework.
type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"omitempty,max=2000"`
	Deadline    string  `json:"deadline" validate:"required"`
	Weight      float64 `json:"weight" validate:"omitempty,min=0,max=100"`
}

// TaskService handles coursework task logic.
type TaskService struct {
	repo      taskRepository
	courses   *CourseService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTaskService builds the service.
func NewTaskService(repo taskRepository, courses *CourseService, validate *validator.Validate, logger *zap.Logger) *TaskService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskService{repo: repo, courses: courses, validator: validate, logger: logger}
}

// ListByCourse returns tasks of one course owned by the student.
func (s *TaskService) ListByCourse(ctx context.Context, studentID, courseID string) ([]models.Task, error) {
	if _, err := s.courses.Get(ctx, studentID, courseID); err != nil {
		return nil, err
	}
	tasks, err := s.repo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list tasks")
	}
	return tasks, nil
}

// Create registers a task under a course owned by the student.
func (s *TaskService) Create(ctx context.Context, studentID, courseID string, req CreateTaskRequest) (*models.Task, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid task payload")
	}
	deadline, err := time.Parse(time.RFC3339, req.Deadline)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "deadline must be an RFC3339 timestamp")
	}
	if _, err := s.courses.Get(ctx, studentID, courseID); err != nil {
		return nil, err
	}

	task := &models.Task{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		Deadline:    deadline,
		Weight:      req.Weight,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create task")
	}
	return task, nil
}

// Delete removes a task after checking course ownership.
func (s *TaskService) Delete(ctx context.Context, studentID, taskID string) error {
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "task not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load task")
	}
	if _, err := s.courses.Get(ctx, studentID, task.CourseID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, taskID); err != nil {
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return appErrors.Clone(appErrors.ErrNotFound, "task not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete task")
	}
	return nil
}
