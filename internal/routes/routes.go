package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"autoshop-server/internal/config"
	"autoshop-server/internal/handlers"
	"autoshop-server/internal/middleware"
	"autoshop-server/internal/models"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	scheduleHandler := handlers.NewScheduleHandler(db, cfg)
	appointmentHandler := handlers.NewAppointmentHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(db)
	paymentHandler := handlers.NewPaymentHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}

		// Anonymous read-only data for booking forms and calendars
		public.GET("/services", serviceHandler.ListServices)

		scheduleReads := public.Group("/schedules")
		{
			scheduleReads.GET("", scheduleHandler.ListSchedules)
			scheduleReads.GET("/by-date-range/:start/:end", scheduleHandler.GetSchedulesByDateRange)
			scheduleReads.GET("/by-date/:date", scheduleHandler.GetSchedulesByDate)
			scheduleReads.GET("/mechanics/list", scheduleHandler.ListMechanics)
			scheduleReads.GET("/available-slots/:date", scheduleHandler.GetAvailableSlots)
			scheduleReads.GET("/:id", scheduleHandler.GetSchedule)
		}
	}

	// Authenticated routes
	private := router.Group("/api")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		private.GET("/auth/profile", authHandler.GetProfile)

		bookingRoutes := private.Group("/booking")
		{
			bookingRoutes.POST("/appointments", appointmentHandler.CreateAppointment)
			bookingRoutes.GET("/my-appointments", appointmentHandler.GetMyAppointments)

			// Ownership/role checks for these live in the handlers
			bookingRoutes.GET("/appointments/:id", appointmentHandler.GetAppointment)
			bookingRoutes.PUT("/appointments/:id", appointmentHandler.UpdateAppointment)
			bookingRoutes.POST("/appointments/:id/cancel", appointmentHandler.CancelAppointment)
			bookingRoutes.POST("/appointments/:id/payment", paymentHandler.CreatePayment)
		}

		// Admin-only routes
		admin := private.Group("")
		admin.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			admin.GET("/booking/appointments", appointmentHandler.ListAppointments)
			admin.GET("/booking/admin/dashboard", dashboardHandler.GetDashboard)
			admin.POST("/booking/payments/process-due", paymentHandler.ProcessDuePayments)

			admin.POST("/schedules", scheduleHandler.CreateSchedule)
			admin.PUT("/schedules/:id", scheduleHandler.UpdateSchedule)
			admin.DELETE("/schedules/:id", scheduleHandler.DeleteSchedule)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
