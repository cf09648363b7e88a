package main

import (
	"github.com/gin-gonic/gin"

	"github.com/Senthuron/Gym-Backend/internal/middleware"
	"github.com/Senthuron/Gym-Backend/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiter for the public auth endpoints
	authLimiter := middleware.NewRateLimiter(5, 10)

	api := r.Group("/api")
	{
		api.GET("/health", svc.healthHandler.CheckHealth)

		// Auth routes (public, rate limited)
		auth := api.Group("/auth", authLimiter.Middleware())
		{
			auth.POST("/login", svc.authHandler.Login)
			auth.POST("/register", svc.authHandler.Register)
			auth.POST("/forgot-password", svc.authHandler.ForgotPassword)
			auth.POST("/verify-otp", svc.authHandler.VerifyOTP)
			auth.POST("/reset-password", svc.authHandler.ResetPassword)
		}

		// WebSocket stream validates its token in the handler so browser
		// clients can connect without an Authorization header.
		api.GET("/ws", svc.wsHandler.Stream)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			// Auth
			protected.GET("/auth/me", svc.authHandler.GetCurrentUser)
			protected.POST("/auth/logout", svc.authHandler.Logout)
			protected.POST("/auth/change-password", svc.authHandler.ChangePassword)

			// Dashboard
			protected.GET("/dashboard/stats", svc.dashboardHandler.Stats)
			protected.GET("/dashboard/trainer", svc.dashboardHandler.TrainerHome)
			protected.GET("/dashboard/member", svc.dashboardHandler.MemberHome)

			// Members (self-service read; writes are staff operations below)
			protected.GET("/members/me", svc.memberHandler.Me)

			// Trainers
			protected.GET("/trainers", svc.trainerHandler.List)
			protected.GET("/trainers/me", svc.trainerHandler.Me)
			protected.GET("/trainers/:id", svc.trainerHandler.Get)

			// Sessions (readable by everyone)
			protected.GET("/sessions", svc.sessionHandler.List)
			protected.GET("/sessions/:id", svc.sessionHandler.Get)

			// Session attendance
			protected.GET("/attendance/session/:id", svc.attendanceHandler.BySession)
			protected.GET("/attendance/member/:id", svc.attendanceHandler.ByMember)

			// Feedback
			protected.POST("/feedback", svc.feedbackHandler.Submit)
			protected.GET("/feedback", svc.feedbackHandler.List)
			protected.GET("/feedback/trainer/:id", svc.feedbackHandler.ByTrainer)
			protected.GET("/feedback/ratings", svc.feedbackHandler.TrainerRatings)

			// Plans
			protected.GET("/plans/workout/trainee/:id", svc.planHandler.WorkoutsForTrainee)
			protected.GET("/plans/diet/trainee/:id", svc.planHandler.DietsForTrainee)
		}

		// Staff routes: reception and managers run the front desk, trainers
		// run sessions and plans. Admins pass every role gate.
		staff := api.Group("")
		staff.Use(middleware.AuthRequired(), middleware.RoleRequired("reception", "manager", "trainer"))
		{
			staff.POST("/members", svc.memberHandler.Create)
			staff.GET("/members", svc.memberHandler.List)
			staff.GET("/members/:id", svc.memberHandler.Get)
			staff.PUT("/members/:id", svc.memberHandler.Update)
			staff.POST("/members/:id/renew", svc.memberHandler.Renew)

			staff.POST("/sessions", svc.sessionHandler.Create)
			staff.PUT("/sessions/:id", svc.sessionHandler.Update)
			staff.DELETE("/sessions/:id", svc.sessionHandler.Delete)

			staff.POST("/attendance", svc.attendanceHandler.Mark)

			staff.POST("/plans/workout", svc.planHandler.AssignWorkout)
			staff.GET("/plans/workout/trainer/:id", svc.planHandler.WorkoutsForTrainer)
			staff.DELETE("/plans/workout/:id", svc.planHandler.DeleteWorkout)
			staff.POST("/plans/diet", svc.planHandler.AssignDiet)
			staff.PUT("/members/:id/workout-plan", svc.planHandler.SetMemberWorkout)
			staff.PUT("/members/:id/diet-plan", svc.planHandler.SetMemberDiet)
		}

		// Admin only routes
		admin := api.Group("")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.DELETE("/members/:id", svc.memberHandler.Delete)

			admin.POST("/trainers", svc.trainerHandler.Create)
			admin.PUT("/trainers/:id", svc.trainerHandler.Update)
			admin.DELETE("/trainers/:id", svc.trainerHandler.Delete)

			admin.POST("/employees", svc.employeeHandler.Create)
			admin.GET("/employees", svc.employeeHandler.List)
			admin.GET("/employees/:id", svc.employeeHandler.Get)
			admin.PUT("/employees/:id", svc.employeeHandler.Update)
			admin.DELETE("/employees/:id", svc.employeeHandler.Delete)

			admin.POST("/employee-attendance", svc.attendanceHandler.MarkEmployee)
			admin.POST("/employee-attendance/bulk", svc.attendanceHandler.MarkEmployeesBulk)
			admin.GET("/employee-attendance/day/:date", svc.attendanceHandler.EmployeeDay)
			admin.GET("/employee-attendance/:id", svc.attendanceHandler.EmployeeHistory)
			admin.GET("/employee-attendance/:id/summary", svc.attendanceHandler.EmployeeMonthlySummary)
		}
	}
}
