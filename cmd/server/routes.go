package main

import (
	"github.com/gin-gonic/gin"
	"github.com/gymgate/backend/internal/handlers"
	"github.com/gymgate/backend/internal/middleware"
	"github.com/gymgate/backend/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiter for the public validation endpoint: access codes are
	// scanned at the door, so this route takes unauthenticated traffic.
	validateLimiter := middleware.NewRateLimiter(10, 20)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "gymgate"})
	})

	authHandler := handlers.NewAuthHandler(svc.auth)
	membershipHandler := handlers.NewMembershipHandler(svc.memberships)
	accessCodeHandler := handlers.NewAccessCodeHandler(svc.codes)
	notificationHandler := handlers.NewNotificationHandler(svc.notifications, svc.sweeper)
	eventsHandler := handlers.NewEventsHandler(svc.hub)
	clientHandler := handlers.NewClientHandler(svc.clients)
	planHandler := handlers.NewPlanHandler(svc.plans)
	gymHandler := handlers.NewGymHandler(svc.gyms)
	trainerHandler := handlers.NewTrainerHandler(svc.trainers)
	attendanceHandler := handlers.NewAttendanceHandler(svc.attendance)
	settingsHandler := handlers.NewSettingsHandler(svc.settings)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
		}

		// Access code validation (public, rate limited): used by door
		// scanners and the client-facing QR flow.
		api.POST("/access-code/validate", validateLimiter.Middleware(), accessCodeHandler.Validate)

		// SSE events (public route with internal token validation)
		api.GET("/events/notifications", eventsHandler.StreamNotifications)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			// Auth
			protected.GET("/auth/me", authHandler.Me)

			// Clients
			protected.GET("/client", clientHandler.List)
			protected.GET("/client/:id", clientHandler.GetByID)
			protected.POST("/client", clientHandler.Create)
			protected.PUT("/client/:id", clientHandler.Update)
			protected.DELETE("/client/:id", clientHandler.Delete)

			// Memberships
			protected.GET("/membership", membershipHandler.List)
			protected.GET("/membership/:id", membershipHandler.GetByID)
			protected.GET("/membership/client/:clientId/active", membershipHandler.ListActive)
			protected.POST("/membership", membershipHandler.Create)
			protected.POST("/membership/renew", membershipHandler.Renew)
			protected.PUT("/membership/:id/cancel", membershipHandler.Cancel)

			// Access codes
			protected.GET("/access-code", accessCodeHandler.List)
			protected.GET("/access-code/code/:code", accessCodeHandler.GetByCode)
			protected.POST("/access-code", accessCodeHandler.Mint)
			protected.PUT("/access-code/membership/:membershipId/deactivate", accessCodeHandler.Deactivate)

			// Notifications
			protected.GET("/notification", notificationHandler.List)
			protected.GET("/notification/unread", notificationHandler.ListUnread)
			protected.PUT("/notification/:id/read", notificationHandler.MarkRead)
			protected.PUT("/notification/mark-all-read", notificationHandler.MarkAllRead)
			protected.DELETE("/notification/:id", notificationHandler.Delete)
			protected.POST("/notification/verify-expirations", notificationHandler.VerifyExpirations)

			// Plans
			protected.GET("/plan", planHandler.List)
			protected.GET("/plan/:id", planHandler.GetByID)
			protected.POST("/plan", planHandler.Create)
			protected.PUT("/plan/:id", planHandler.Update)
			protected.DELETE("/plan/:id", planHandler.Delete)

			// Trainers
			protected.GET("/trainer", trainerHandler.List)
			protected.GET("/trainer/:id", trainerHandler.GetByID)
			protected.POST("/trainer", trainerHandler.Create)
			protected.PUT("/trainer/:id", trainerHandler.Update)
			protected.DELETE("/trainer/:id", trainerHandler.Delete)

			// Attendance
			protected.GET("/attendance", attendanceHandler.List)
			protected.POST("/attendance/check-in", attendanceHandler.CheckIn)
			protected.PUT("/attendance/:id/check-out", attendanceHandler.CheckOut)

			// Gyms (read for all admins)
			protected.GET("/gym", gymHandler.List)
			protected.GET("/gym/:id", gymHandler.GetByID)

			// Settings (read for all admins)
			protected.GET("/settings", settingsHandler.List)
			protected.GET("/settings/:key", settingsHandler.Get)
		}

		// Super admin only routes
		admin := api.Group("")
		admin.Use(middleware.AuthRequired(), middleware.SuperAdminRequired())
		{
			// Gyms (write operations)
			admin.POST("/gym", gymHandler.Create)
			admin.PUT("/gym/:id", gymHandler.Update)
			admin.DELETE("/gym/:id", gymHandler.Delete)

			// Settings (write operations)
			admin.PUT("/settings/:key", settingsHandler.Update)
		}
	}
}
