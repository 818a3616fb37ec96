package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/study-planner-api/internal/dto"
	"github.com/noah-isme/study-planner-api/internal/models"
	appErrors "github.com/noah-isme/study-planner-api/pkg/errors"
)

type plannerCourseReader interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.Course, error)
}

type plannerTaskReader interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.TaskWithCourse, error)
}

type preferenceStore interface {
	Get(ctx context.Context, studentID string) (*models.StudyPreference, error)
	Save(ctx context.Context, pref *models.StudyPreference) error
}

type planStore interface {
	Get(ctx context.Context, studentID string) (models.WeeklyPlan, error)
	Save(ctx context.Context, studentID string, plan models.WeeklyPlan, ttl time.Duration) error
}

// PlanChangeListener is invoked after a student's stored plan is replaced.
// Listeners are registered and owned by the caller; the generator itself
// holds no subscriber state beyond this list.
type PlanChangeListener func(studentID string, plan models.WeeklyPlan)

// PlanGeneratorConfig governs generator behaviour.
type PlanGeneratorConfig struct {
	PlanTTL           time.Duration
	DefaultDailyHours int
	MaxHorizonDays    int
}

// PlanGeneratorService is the planning entry point: it pulls the student's
// courses and tasks, runs classification, decomposition, feasibility,
// relaxation and packing, and stores the resulting calendar-keyed plan.
// Each run recomputes everything from scratch; there is no incremental update.
type PlanGeneratorService struct {
	courses   plannerCourseReader
	tasks     plannerTaskReader
	prefs     preferenceStore
	plans     planStore
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       PlanGeneratorConfig
	listeners []PlanChangeListener
	now       func() time.Time
}

// NewPlanGeneratorService wires planner dependencies.
func NewPlanGeneratorService(
	courses plannerCourseReader,
	tasks plannerTaskReader,
	prefs preferenceStore,
	plans planStore,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg PlanGeneratorConfig,
) *PlanGeneratorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.PlanTTL <= 0 {
		cfg.PlanTTL = 30 * 24 * time.Hour
	}
	if cfg.DefaultDailyHours < 1 || cfg.DefaultDailyHours > 12 {
		cfg.DefaultDailyHours = 2
	}
	if cfg.MaxHorizonDays <= 0 {
		cfg.MaxHorizonDays = 120
	}
	return &PlanGeneratorService{
		courses:   courses,
		tasks:     tasks,
		prefs:     prefs,
		plans:     plans,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// RegisterListener appends a caller-owned change listener.
func (s *PlanGeneratorService) RegisterListener(listener PlanChangeListener) {
	if listener != nil {
		s.listeners = append(s.listeners, listener)
	}
}

// ValidatePreferences checks the scheduling configuration and reports every
// violation as a human-readable error string. Planning must not proceed on
// an invalid result.
func (s *PlanGeneratorService) ValidatePreferences(pref models.StudyPreference) dto.PreferenceValidation {
	var errs []string

	if pref.DailyHours < 1 || pref.DailyHours > 12 {
		errs = append(errs, fmt.Sprintf("dailyHours must be between 1 and 12, got %d", pref.DailyHours))
	}
	if pref.WeeklyStudyDays < 1 || pref.WeeklyStudyDays > 7 {
		errs = append(errs, fmt.Sprintf("weeklyStudyDays must be between 1 and 7, got %d", pref.WeeklyStudyDays))
	}

	for _, name := range pref.AvoidDays {
		if _, ok := models.ParseWeekday(name); !ok {
			errs = append(errs, fmt.Sprintf("unknown weekday name %q in avoidDays", name))
		}
	}

	remaining := 7 - len(pref.AvoidWeekdays())
	if pref.WeeklyStudyDays >= 1 && pref.WeeklyStudyDays <= 7 && remaining < pref.WeeklyStudyDays {
		errs = append(errs, fmt.Sprintf("avoidDays leave only %d study days per week but %d were requested", remaining, pref.WeeklyStudyDays))
	}

	return dto.PreferenceValidation{Valid: len(errs) == 0, Errors: errs}
}

// GenerateWeeklyPlan builds, stores and returns the student's weekly plan.
// An optional preference override applies to this run only, unless it asks
// to be saved as the default. Zero courses is a valid terminal state that
// produces an empty plan, not an error.
func (s *PlanGeneratorService) GenerateWeeklyPlan(ctx context.Context, studentID string, override *dto.UpsertPreferenceRequest) (*dto.GeneratePlanResponse, error) {
	if studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id is required")
	}
	started := s.now()

	pref, err := s.resolvePreferences(ctx, studentID, override)
	if err != nil {
		return nil, err
	}
	if validation := s.ValidatePreferences(*pref); !validation.Valid {
		s.logger.Info("plan generation rejected by preference validation",
			zap.String("student_id", studentID),
			zap.Strings("errors", validation.Errors))
		return nil, appErrors.Clone(appErrors.ErrValidation, strings.Join(validation.Errors, "; "))
	}

	courses, err := s.courses.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load courses")
	}

	response := &dto.GeneratePlanResponse{
		Plan:      models.WeeklyPlan{},
		Tasks:     []dto.TaskPlanReport{},
		Generated: started.UTC().Format(time.RFC3339),
		RunID:     uuid.NewString(),
	}
	if len(courses) == 0 {
		return response, s.storePlan(ctx, studentID, response.Plan)
	}

	tasks, err := s.tasks.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load tasks")
	}
	if len(tasks) == 0 {
		return response, s.storePlan(ctx, studentID, response.Plan)
	}

	today := dateOnly(started)
	horizon := s.horizonEnd(today, tasks)
	days := StudyDays(today, pref.AvoidWeekdays(), pref.WeeklyStudyDays, horizon)

	plans := make([]taskPlan, 0, len(tasks))
	for _, task := range tasks {
		category := ClassifyTask(task.Title, task.Description)
		parts := DecomposeTask(task.Task, category, started)
		report := CheckFeasibility(task.Task, parts, pref.DailyHours, days)
		adjusted, step := RelaxParts(parts, report)

		plans = append(plans, taskPlan{
			Task:        task.Task,
			CourseTitle: task.CourseTitle,
			Parts:       adjusted,
			Priority:    DeadlinePriority(started, task.Deadline),
		})
		response.Tasks = append(response.Tasks, dto.TaskPlanReport{
			TaskID:      task.ID,
			TaskTitle:   task.Title,
			CourseID:    task.CourseID,
			Category:    category,
			Parts:       adjusted,
			Feasibility: report,
			Relaxation:  step,
		})
	}

	items := PackDailyPlan(plans, *pref, days)
	response.Items = len(items)
	response.Plan = groupByWeek(items, mondayOf(started))

	if err := s.storePlan(ctx, studentID, response.Plan); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ObservePlanGeneration(s.now().Sub(started), len(items))
	}
	s.logger.Info("weekly plan generated",
		zap.String("student_id", studentID),
		zap.String("run_id", response.RunID),
		zap.Int("tasks", len(tasks)),
		zap.Int("items", len(items)))
	return response, nil
}

// StoredPlan returns the last generated plan, or an empty plan when none
// exists yet.
func (s *PlanGeneratorService) StoredPlan(ctx context.Context, studentID string) (models.WeeklyPlan, error) {
	plan, err := s.plans.Get(ctx, studentID)
	if err != nil {
		if appErrors.FromError(err).Code == appErrors.ErrCacheMiss.Code {
			return models.WeeklyPlan{}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load stored plan")
	}
	return plan, nil
}

// ToggleItem flips the completion flag of one scheduled chunk, identified by
// its display id plus date since a split part shares its id across days.
func (s *PlanGeneratorService) ToggleItem(ctx context.Context, studentID string, req dto.ToggleItemRequest) (*models.PlanItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid toggle payload")
	}
	plan, err := s.plans.Get(ctx, studentID)
	if err != nil {
		if appErrors.FromError(err).Code == appErrors.ErrCacheMiss.Code {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no stored plan for student")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load stored plan")
	}

	for week, items := range plan {
		for i := range items {
			if items[i].ID == req.ItemID && items[i].Date == req.Date {
				items[i].Completed = req.Completed
				plan[week] = items
				if err := s.plans.Save(ctx, studentID, plan, s.cfg.PlanTTL); err != nil {
					return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store plan")
				}
				s.notify(studentID, plan)
				item := items[i]
				return &item, nil
			}
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "plan item not found")
}

func (s *PlanGeneratorService) resolvePreferences(ctx context.Context, studentID string, override *dto.UpsertPreferenceRequest) (*models.StudyPreference, error) {
	if override != nil {
		if err := s.validator.Struct(override); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid preference payload")
		}
		pref := &models.StudyPreference{
			StudentID:       studentID,
			DailyHours:      override.DailyHours,
			WeeklyStudyDays: override.WeeklyStudyDays,
			AvoidDays:       override.AvoidDays,
			SaveAsDefault:   override.SaveAsDefault,
			Description:     override.Description,
			UpdatedAt:       s.now().UTC(),
		}
		if override.SaveAsDefault {
			if validation := s.ValidatePreferences(*pref); validation.Valid {
				if err := s.prefs.Save(ctx, pref); err != nil {
					return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store preferences")
				}
			}
		}
		return pref, nil
	}

	stored, err := s.prefs.Get(ctx, studentID)
	if err != nil {
		if appErrors.FromError(err).Code == appErrors.ErrCacheMiss.Code {
			pref := models.DefaultStudyPreference(studentID, s.cfg.DefaultDailyHours)
			return &pref, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load preferences")
	}
	return stored, nil
}

// horizonEnd is the latest task deadline, clamped to today at the lower end
// and to the configured horizon cap at the upper end.
func (s *PlanGeneratorService) horizonEnd(today time.Time, tasks []models.TaskWithCourse) time.Time {
	horizon := today
	for _, task := range tasks {
		deadline := dateOnly(task.Deadline)
		if deadline.After(horizon) {
			horizon = deadline
		}
	}
	limit := today.AddDate(0, 0, s.cfg.MaxHorizonDays)
	if horizon.After(limit) {
		horizon = limit
	}
	return horizon
}

func (s *PlanGeneratorService) storePlan(ctx context.Context, studentID string, plan models.WeeklyPlan) error {
	if err := s.plans.Save(ctx, studentID, plan, s.cfg.PlanTTL); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store plan")
	}
	s.notify(studentID, plan)
	return nil
}

func (s *PlanGeneratorService) notify(studentID string, plan models.WeeklyPlan) {
	for _, listener := range s.listeners {
		listener(studentID, plan)
	}
}

// groupByWeek buckets plan items by week offset relative to the anchor
// Monday and orders each bucket chronologically with a stable tie-break.
func groupByWeek(items []models.PlanItem, anchorMonday time.Time) models.WeeklyPlan {
	plan := models.WeeklyPlan{}
	for _, item := range items {
		date, err := time.ParseInLocation(dateLayout, item.Date, anchorMonday.Location())
		if err != nil {
			continue
		}
		offset := weekOffset(date, anchorMonday)
		plan[offset] = append(plan[offset], item)
	}
	for offset := range plan {
		week := plan[offset]
		sort.SliceStable(week, func(i, j int) bool {
			if week[i].Date != week[j].Date {
				return week[i].Date < week[j].Date
			}
			if week[i].Ref.CourseID != week[j].Ref.CourseID {
				return week[i].Ref.CourseID < week[j].Ref.CourseID
			}
			if week[i].Ref.TaskID != week[j].Ref.TaskID {
				return week[i].Ref.TaskID < week[j].Ref.TaskID
			}
			return week[i].Ref.PartIndex < week[j].Ref.PartIndex
		})
		plan[offset] = week
	}
	return plan
}
