package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/study-planner-api/internal/models"
	"github.com/noah-isme/study-planner-api/internal/repository"
	appErrors "github.com/noah-isme/study-planner-api/pkg/errors"
)

type courseRepoStub struct {
	courses map[string]models.Course
	created []*models.Course
	deleted []string
	err     error
}

func (s *courseRepoStub) ListByStudent(ctx context.Context, studentID string) ([]models.Course, error) {
	if s.err != nil {
		return nil, s.err
	}
	result := []models.Course{}
	for _, course := range s.courses {
		if course.StudentID == studentID {
			result = append(result, course)
		}
	}
	return result, nil
}

func (s *courseRepoStub) FindByID(ctx context.Context, id string) (*models.Course, error) {
	if s.err != nil {
		return nil, s.err
	}
	if course, ok := s.courses[id]; ok {
		return &course, nil
	}
	return nil, sql.ErrNoRows
}

func (s *courseRepoStub) Create(ctx context.Context, course *models.Course) error {
	if s.err != nil {
		return s.err
	}
	if s.courses == nil {
		s.courses = make(map[string]models.Course)
	}
	course.ID = "course-generated"
	s.courses[course.ID] = *course
	s.created = append(s.created, course)
	return nil
}

func (s *courseRepoStub) Delete(ctx context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.courses[id]; !ok {
		return repository.ErrNoRowsAffected
	}
	delete(s.courses, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func TestCourseServiceGetOwnershipEnforced(t *testing.T) {
	repo := &courseRepoStub{courses: map[string]models.Course{
		"c1": {ID: "c1", StudentID: "student-1", Title: "Algorithms"},
	}}
	svc := NewCourseService(repo, nil, nil)

	course, err := svc.Get(context.Background(), "student-1", "c1")
	require.NoError(t, err)
	assert.Equal(t, "Algorithms", course.Title)

	_, err = svc.Get(context.Background(), "student-2", "c1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestCourseServiceGetNotFound(t *testing.T) {
	svc := NewCourseService(&courseRepoStub{}, nil, nil)

	_, err := svc.Get(context.Background(), "student-1", "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCourseServiceCreateValidates(t *testing.T) {
	repo := &courseRepoStub{}
	svc := NewCourseService(repo, nil, nil)

	_, err := svc.Create(context.Background(), "student-1", CreateCourseRequest{Title: ""})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.created)

	course, err := svc.Create(context.Background(), "student-1", CreateCourseRequest{Title: "Algorithms"})
	require.NoError(t, err)
	assert.Equal(t, "student-1", course.StudentID)
	assert.Len(t, repo.created, 1)
}

func TestCourseServiceDeleteChecksOwnershipFirst(t *testing.T) {
	repo := &courseRepoStub{courses: map[string]models.Course{
		"c1": {ID: "c1", StudentID: "student-1"},
	}}
	svc := NewCourseService(repo, nil, nil)

	err := svc.Delete(context.Background(), "student-2", "c1")
	require.Error(t, err)
	assert.Empty(t, repo.deleted)

	require.NoError(t, svc.Delete(context.Background(), "student-1", "c1"))
	assert.Equal(t, []string{"c1"}, repo.deleted)
}
