package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/osc-dev/contest-api/internal/graph"
	"github.com/osc-dev/contest-api/internal/mailer"
	"github.com/osc-dev/contest-api/internal/middleware"
	"github.com/osc-dev/contest-api/internal/repository"
	"github.com/osc-dev/contest-api/internal/service"
	"github.com/osc-dev/contest-api/pkg/config"
	"github.com/osc-dev/contest-api/pkg/database"
	"github.com/osc-dev/contest-api/pkg/logger"
	corsmiddleware "github.com/osc-dev/contest-api/pkg/middleware/cors"
	reqidmiddleware "github.com/osc-dev/contest-api/pkg/middleware/requestid"
)

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

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to mongodb", "error", err)
	}
	defer db.Close(ctx) //nolint:errcheck

	taskRepo := repository.NewTaskRepository(db.DB)
	studentRepo := repository.NewStudentRepository(db.DB)
	mentorRepo := repository.NewMentorRepository(db.DB)
	runRepo := repository.NewRunRepository(db.DB)

	metricsSvc := service.NewMetricsService()
	mail := mailer.New(cfg.SMTP, logr, metricsSvc)
	validate := validator.New()

	authSvc := service.NewAuthService(studentRepo, mentorRepo, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
	})
	taskSvc := service.NewTaskService(taskRepo, studentRepo, mentorRepo, db, mail, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, taskRepo, mentorRepo, validate, logr)
	mentorSvc := service.NewMentorService(mentorRepo, taskRepo, studentRepo, mail, validate, logr)
	adminSvc := service.NewAdminService(studentRepo, taskRepo, mentorRepo, db, mail, logr)
	runSvc := service.NewRunService(runRepo, validate, logr)
	emailSvc := service.NewEmailService(mentorRepo, mail, logr)

	schema, err := graph.NewSchema(&graph.Resolver{
		Auth:     authSvc,
		Tasks:    taskSvc,
		Students: studentSvc,
		Mentors:  mentorSvc,
		Admin:    adminSvc,
		Runs:     runSvc,
		Email:    emailSvc,
	})
	if err != nil {
		logr.Sugar().Fatalw("failed to build schema", "error", err)
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.Auth(authSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Client.Ping(c.Request.Context(), nil); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))
	r.POST("/graphql", graph.Handler(schema, logr))

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
