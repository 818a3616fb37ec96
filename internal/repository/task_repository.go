package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/study-planner-api/internal/models"
)

// ErrNoRowsAffected signals a write that matched nothing.
var ErrNoRowsAffected = errors.New("no rows affected")

// TaskRepository persists coursework tasks.
type TaskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository constructs the repository.
func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// ListByCourse returns tasks of one course ordered by deadline.
func (r *TaskRepository) ListByCourse(ctx context.Context, courseID string) ([]models.Task, error) {
	const query = `SELECT id, course_id, title, description, deadline, weight, created_at, updated_at FROM tasks WHERE course_id = $1 ORDER BY deadline ASC`
	tasks := []models.Task{}
	if err := r.db.SelectContext(ctx, &tasks, query, courseID); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// ListByStudent returns all tasks across a student's courses with the course
// title joined in, ordered by deadline. This is the planning-run snapshot.
func (r *TaskRepository) ListByStudent(ctx context.Context, studentID string) ([]models.TaskWithCourse, error) {
	const query = `SELECT t.id, t.course_id, t.title, t.description, t.deadline, t.weight, t.created_at, t.updated_at, c.title AS course_title
		FROM tasks t JOIN courses c ON c.id = t.course_id
		WHERE c.student_id = $1 ORDER BY t.deadline ASC, t.id ASC`
	tasks := []models.TaskWithCourse{}
	if err := r.db.SelectContext(ctx, &tasks, query, studentID); err != nil {
		return nil, fmt.Errorf("list student tasks: %w", err)
	}
	return tasks, nil
}

// FindByID returns one task.
func (r *TaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	const query = `SELECT id, course_id, title, description, deadline, weight, created_at, updated_at FROM tasks WHERE id = $1`
	var task models.Task
	if err := r.db.GetContext(ctx, &task, query, id); err != nil {
		return nil, err
	}
	return &task, nil
}

// Create inserts a new task.
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	const query = `INSERT INTO tasks (id, course_id, title, description, deadline, weight, created_at, updated_at)
		VALUES (:id, :course_id, :title, :description, :deadline, :weight, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, task); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// Delete removes a task.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
