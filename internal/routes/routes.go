package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sharpfade/barber-booking/internal/audit"
	"github.com/sharpfade/barber-booking/internal/config"
	"github.com/sharpfade/barber-booking/internal/handlers"
	infraRepo "github.com/sharpfade/barber-booking/internal/infra/repository"
	"github.com/sharpfade/barber-booking/internal/middleware"
	"github.com/sharpfade/barber-booking/internal/models"
	"github.com/sharpfade/barber-booking/internal/storage"
	ucAppointment "github.com/sharpfade/barber-booking/internal/usecase/appointment"
)

type Deps struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Log      *zap.Logger
	Denylist *middleware.TokenDenylist
	Storage  storage.ObjectStorage
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// INFRA
	// ======================================================
	readViews := infraRepo.NewAppointmentGormRepository(d.DB)

	auditLogger := audit.New(d.DB)
	auditDispatcher := audit.NewDispatcher(auditLogger, d.Log)

	// ======================================================
	// USE CASES
	// ======================================================
	transitionUC := ucAppointment.NewTransitionStatus(d.DB, auditDispatcher, d.Log)
	bookUC := ucAppointment.NewBookAppointment(d.DB, auditDispatcher, d.Cfg.Timezone, d.Log)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Cfg, d.Denylist)
	meHandler := handlers.NewMeHandler(d.DB)

	appointmentHandler := handlers.NewAppointmentHandler(transitionUC, readViews, d.Cfg.Timezone)
	bookingHandler := handlers.NewBookingHandler(d.DB, bookUC, readViews)

	profileHandler := handlers.NewProfileHandler(d.DB)
	serviceHandler := handlers.NewServiceHandler(d.DB)
	reviewHandler := handlers.NewReviewHandler(d.DB)
	portfolioHandler := handlers.NewPortfolioHandler(d.DB, d.Storage)
	notificationHandler := handlers.NewNotificationHandler(d.DB)

	adminHandler := handlers.NewAdminHandler(d.DB, readViews)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	publicHandler := handlers.NewPublicHandler(d.DB)

	// ======================================================
	// API
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PÚBLICO
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/services", serviceHandler.ListPublic)
			publicAPI.GET("/barbers", publicHandler.ListBarbers)
			publicAPI.GET("/barbers/:id", publicHandler.GetBarber)
			publicAPI.GET("/barbers/:id/reviews", reviewHandler.ListByBarber)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// AUTENTICADO
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Cfg, d.Denylist))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.POST("/auth/logout", authHandler.Logout)

			secured.GET("/notifications", notificationHandler.List)
			secured.PATCH("/notifications/:id/read", notificationHandler.MarkRead)
			secured.PATCH("/notifications/read-all", notificationHandler.MarkAllRead)

			// ------------------------------
			// CLIENTE
			// ------------------------------
			client := secured.Group("/")
			client.Use(middleware.RequireRole(models.RoleClient))
			{
				client.POST("/bookings", bookingHandler.Create)
				client.GET("/bookings", bookingHandler.ListMine)
				client.PATCH("/bookings/:id/cancel", bookingHandler.Cancel)

				client.POST("/reviews", reviewHandler.Create)
			}

			// ------------------------------
			// BARBEIRO
			// ------------------------------
			barber := secured.Group("/me")
			barber.Use(middleware.RequireRole(models.RoleBarber))
			{
				barber.GET("/appointments", appointmentHandler.ListByDate)
				barber.PUT("/appointments/:id/status", appointmentHandler.UpdateStatus)

				barber.GET("/profile", profileHandler.Get)
				barber.PATCH("/profile", profileHandler.Update)
				barber.GET("/working-hours", profileHandler.GetWorkingHours)
				barber.PUT("/working-hours", profileHandler.UpdateWorkingHours)

				barber.GET("/portfolio", portfolioHandler.List)
				barber.POST("/portfolio", portfolioHandler.Upload)
				barber.DELETE("/portfolio/:id", portfolioHandler.Delete)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/users", adminHandler.ListUsers)
				admin.POST("/barbers", adminHandler.CreateBarber)

				admin.GET("/appointments", adminHandler.ListAppointments)
				admin.PUT("/appointments/:id/status", appointmentHandler.UpdateStatus)

				admin.GET("/stats", adminHandler.GetStats)
				admin.GET("/audit-logs", auditLogsHandler.List)

				admin.POST("/services", serviceHandler.Create)
				admin.GET("/services", serviceHandler.List)
				admin.PATCH("/services/:id", serviceHandler.Update)
				admin.DELETE("/services/:id", serviceHandler.Delete)

				admin.GET("/notifications", notificationHandler.ListAdmin)
				admin.PATCH("/notifications/:id/read", notificationHandler.MarkAdminRead)
			}
		}
	}
}
