package main

import (
	"context"
	"time"

	"github.com/Senthuron/Gym-Backend/internal/config"
	"github.com/Senthuron/Gym-Backend/internal/handlers"
	"github.com/Senthuron/Gym-Backend/internal/models"
	"github.com/Senthuron/Gym-Backend/internal/services"
	"github.com/Senthuron/Gym-Backend/internal/utils"
	"github.com/Senthuron/Gym-Backend/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	hub       *services.Hub
	taskQueue services.TaskQueue
	worker    *services.Worker
	scheduler *services.SchedulerService

	authHandler       *handlers.AuthHandler
	memberHandler     *handlers.MemberHandler
	trainerHandler    *handlers.TrainerHandler
	employeeHandler   *handlers.EmployeeHandler
	sessionHandler    *handlers.SessionHandler
	attendanceHandler *handlers.AttendanceHandler
	dashboardHandler  *handlers.DashboardHandler
	feedbackHandler   *handlers.FeedbackHandler
	planHandler       *handlers.PlanHandler
	wsHandler         *handlers.WSHandler
	healthHandler     *handlers.HealthHandler
}

// bootstrap initializes all application dependencies: database, stores, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := models.InitDB(&cfg.Mongo); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	db := models.GetDB()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := models.EnsureIndexes(ctx, db); err != nil {
		logger.Fatalf("Failed to create indexes: %v", err)
	}

	// Collection stores and the reconciler that keeps them consistent
	users := models.NewIdentityStore(db)
	members := models.NewMemberStore(db)
	trainers := models.NewTrainerStore(db)
	employees := models.NewEmployeeStore(db)
	rec := services.NewReconciler(users, members, trainers, employees)

	// Mail pipeline (queued through Redis when enabled, inline otherwise)
	emailService := services.NewEmailService(&cfg.Email)
	taskQueue := services.NewTaskQueue(cfg, emailService.Deliver)
	emailService.SetQueue(taskQueue)
	rec.SetWelcomeMailer(emailService)

	var worker *services.Worker
	if cfg.Redis.Enabled {
		worker = services.NewWorker(&cfg.Redis, emailService.Deliver)
		if worker != nil {
			if err := worker.Start(); err != nil {
				logger.Warn().Err(err).Msg("Failed to start mail worker")
				worker = nil
			}
		}
	}

	authService := services.NewAuthService(users, models.NewOTPStore(db), emailService, &cfg.JWT)
	if err := authService.CreateAdminIfNotExists(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to create admin user")
	}

	hub := services.NewHub()

	memberService := services.NewMemberService(members, users, rec, hub)
	trainerService := services.NewTrainerService(trainers, users, rec)
	employeeService := services.NewEmployeeService(employees, users, rec)
	sessionService := services.NewSessionService(db, hub)
	attendanceService := services.NewAttendanceService(db, hub)
	employeeAttendanceService := services.NewEmployeeAttendanceService(db)
	dashboardService := services.NewDashboardService(db)
	feedbackService := services.NewFeedbackService(db, hub)
	planService := services.NewPlanService(db, hub)

	scheduler := services.NewSchedulerService(db)
	if err := scheduler.Start(); err != nil {
		logger.Warn().Err(err).Msg("Failed to start status scheduler")
	}

	return &appServices{
		hub:       hub,
		taskQueue: taskQueue,
		worker:    worker,
		scheduler: scheduler,

		authHandler:       handlers.NewAuthHandler(authService),
		memberHandler:     handlers.NewMemberHandler(memberService),
		trainerHandler:    handlers.NewTrainerHandler(trainerService),
		employeeHandler:   handlers.NewEmployeeHandler(employeeService),
		sessionHandler:    handlers.NewSessionHandler(sessionService),
		attendanceHandler: handlers.NewAttendanceHandler(attendanceService, employeeAttendanceService),
		dashboardHandler:  handlers.NewDashboardHandler(dashboardService),
		feedbackHandler:   handlers.NewFeedbackHandler(feedbackService),
		planHandler:       handlers.NewPlanHandler(planService),
		wsHandler:         handlers.NewWSHandler(hub),
		healthHandler:     handlers.NewHealthHandler(hub, taskQueue),
	}
}

// shutdown gracefully stops the background pieces.
func (s *appServices) shutdown() {
	s.scheduler.Stop()
	logger.Info().Msg("Scheduler stopped")

	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		if err := s.taskQueue.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close task queue")
		}
	}
}
