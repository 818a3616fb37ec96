package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/study-planner-api/api/swagger"
	"github.com/noah-isme/study-planner-api/internal/handler"
	"github.com/noah-isme/study-planner-api/internal/middleware"
	"github.com/noah-isme/study-planner-api/internal/repository"
	"github.com/noah-isme/study-planner-api/internal/service"
	"github.com/noah-isme/study-planner-api/pkg/cache"
	"github.com/noah-isme/study-planner-api/pkg/config"
	"github.com/noah-isme/study-planner-api/pkg/database"
	"github.com/noah-isme/study-planner-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/study-planner-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/study-planner-api/pkg/middleware/requestid"
)

// @title Study Planner API
// @version 0.1.0
// @description Weekly study plan generator for student coursework
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close() //nolint:errcheck

	validate := validator.New()

	courseRepo := repository.NewCourseRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	prefRepo := repository.NewPreferenceRepository(redisClient, logr)
	planRepo := repository.NewPlanRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	tokenSvc := service.NewTokenService(service.TokenConfig{Secret: cfg.JWT.Secret}, logr)
	plannerSvc := service.NewPlanGeneratorService(courseRepo, taskRepo, prefRepo, planRepo, metricsSvc, validate, logr, service.PlanGeneratorConfig{
		PlanTTL:           cfg.Planner.PlanTTL,
		DefaultDailyHours: cfg.Planner.DefaultDailyHours,
		MaxHorizonDays:    cfg.Planner.MaxHorizonDays,
	})
	courseSvc := service.NewCourseService(courseRepo, validate, logr)
	taskSvc := service.NewTaskService(taskRepo, courseSvc, validate, logr)
	prefSvc := service.NewPreferenceService(prefRepo, plannerSvc, validate, logr, cfg.Planner.DefaultDailyHours)
	exportSvc := service.NewPlanExportService(plannerSvc, logr)

	courseHandler := handler.NewCourseHandler(courseSvc)
	taskHandler := handler.NewTaskHandler(taskSvc)
	prefHandler := handler.NewPreferenceHandler(prefSvc)
	planHandler := handler.NewPlanHandler(plannerSvc, exportSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unavailable"})
			return
		}
		if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "cache unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(tokenSvc))
	{
		api.GET("/courses", courseHandler.List)
		api.POST("/courses", courseHandler.Create)
		api.GET("/courses/:id", courseHandler.Get)
		api.DELETE("/courses/:id", courseHandler.Delete)

		api.GET("/courses/:id/tasks", taskHandler.List)
		api.POST("/courses/:id/tasks", taskHandler.Create)
		api.DELETE("/tasks/:id", taskHandler.Delete)

		if cfg.Planner.Enabled {
			api.GET("/planner/preferences", prefHandler.Get)
			api.PUT("/planner/preferences", prefHandler.Upsert)
			api.POST("/planner/plans/generate", planHandler.Generate)
			api.GET("/planner/plans/weekly", planHandler.Weekly)
			api.PATCH("/planner/plans/items/toggle", planHandler.Toggle)
			if cfg.Exports.Enabled {
				api.GET("/planner/plans/export", planHandler.Export)
			}
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
