package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MeetupServices/meetup-scheduler/internal/audit"
	"github.com/MeetupServices/meetup-scheduler/internal/config"
	"github.com/MeetupServices/meetup-scheduler/internal/handlers"
	infraRepo "github.com/MeetupServices/meetup-scheduler/internal/infra/repository"
	"github.com/MeetupServices/meetup-scheduler/internal/middleware"
	"github.com/MeetupServices/meetup-scheduler/internal/policy"
	"github.com/MeetupServices/meetup-scheduler/internal/storage"
	"github.com/MeetupServices/meetup-scheduler/internal/token"
	ucBooking "github.com/MeetupServices/meetup-scheduler/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, logger *zap.Logger, rdb *redis.Client) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	issuer := token.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTLMin, cfg.RefreshTokenTTLDays)
	tokenStore := token.NewStore(rdb)

	attachmentStore := storage.NewAttachmentStore(cfg)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, logger)

	// ======================================================
	// USE CASES - BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(bookingRepo, auditDispatcher)
	cancelBookingUC := ucBooking.NewCancelBooking(bookingRepo, auditDispatcher)
	listBookingsUC := ucBooking.NewListBookings(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, issuer, tokenStore, auditDispatcher)
	meHandler := handlers.NewMeHandler(db)
	slotHandler := handlers.NewSlotHandler(db, auditDispatcher)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		cancelBookingUC,
		listBookingsUC,
		bookingRepo,
		attachmentStore,
		auditDispatcher,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH (anonymous, rate limited)
		// ------------------------------
		authLimit := middleware.RateLimit(rdb, cfg.AuthRatePerMinute)

		api.POST("/register", authLimit, authHandler.Register)
		api.POST("/token", authLimit, authHandler.Token)
		api.POST("/token/refresh", authLimit, authHandler.TokenRefresh)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(issuer))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// SLOTS
			// ------------------------------
			teacherOnly := middleware.RequireAllowed(policy.CanManageSlots)

			secured.GET("/slots", slotHandler.List)
			secured.GET("/slots/:id", slotHandler.Retrieve)
			secured.POST("/slots", teacherOnly, slotHandler.Create)
			secured.PUT("/slots/:id", teacherOnly, slotHandler.Update)
			secured.PATCH("/slots/:id", teacherOnly, slotHandler.Update)
			secured.DELETE("/slots/:id", teacherOnly, slotHandler.Delete)
			secured.POST("/slots/:id/mark_unavailable", teacherOnly, slotHandler.MarkUnavailable)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			studentOnly := middleware.RequireAllowed(policy.CanCreateBooking)

			secured.GET("/bookings", bookingHandler.List)
			secured.POST("/bookings", studentOnly, bookingHandler.Create)
			secured.GET("/bookings/:id", bookingHandler.Retrieve)
			secured.PUT("/bookings/:id", bookingHandler.Update)
			secured.PATCH("/bookings/:id", bookingHandler.Update)
			secured.DELETE("/bookings/:id", bookingHandler.Delete)
			secured.POST("/bookings/:id/cancel", bookingHandler.Cancel)
			secured.POST("/bookings/:id/attachment", bookingHandler.UploadAttachment)

			// ------------------------------
			// AUDIT
			// ------------------------------
			secured.GET("/audit-logs", middleware.RequireAllowed(policy.CanViewAuditLogs), auditLogsHandler.List)
		}
	}
}
