package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/study-planner-api/internal/models"
	"github.com/noah-isme/study-planner-api/internal/service"
	appErrors "github.com/noah-isme/study-planner-api/pkg/errors"
	"github.com/noah-isme/study-planner-api/pkg/response"
)

type taskManager interface {
	ListByCourse(ctx context.Context, studentID, courseID string) ([]models.Task, error)
	Create(ctx context.Context, studentID, courseID string, req service.CreateTaskRequest) (*models.Task, error)
	Delete(ctx context.Context, studentID, taskID string) error
}

// TaskHandler exposes coursework task endpoints.
type TaskHandler struct {
	service taskManager
}

// NewTaskHandler constructs the handler.
func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{service: svc}
}

// List godoc
// @Summary List tasks of a course
// @Tags Tasks
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /courses/{id}/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.service.ListByCourse(c.Request.Context(), studentFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tasks, nil)
}

// Create godoc
// @Summary Register a task under a course
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.CreateTaskRequest true "Create task payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /courses/{id}/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req service.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid task payload"))
		return
	}
	task, err := h.service.Create(c.Request.Context(), studentFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, task)
}

// Delete godoc
// @Summary Delete a task
// @Tags Tasks
// @Param id path string true "Task ID"
// @Success 204
// @Security BearerAuth
// @Router /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), studentFromContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
