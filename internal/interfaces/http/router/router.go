package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comunidad/backend/internal/domain/identity"
	"github.com/comunidad/backend/internal/infrastructure/auth"
	"github.com/comunidad/backend/internal/infrastructure/logger"
	"github.com/comunidad/backend/internal/interfaces/http/handler"
	"github.com/comunidad/backend/internal/interfaces/http/middleware"
)

// Handlers groups every HTTP handler the router wires up
type Handlers struct {
	System        *handler.SystemHandler
	Auth          *handler.AuthHandler
	User          *handler.UserHandler
	Resident      *handler.ResidentHandler
	Token         *handler.TokenHandler
	Payment       *handler.PaymentHandler
	FuneralPlan   *handler.FuneralPlanHandler
	FuneralClient *handler.FuneralClientHandler
	Casket        *handler.CasketHandler
	Fiscal        *handler.FiscalHandler
}

// Config configures the HTTP router
type Config struct {
	Handlers       Handlers
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist
	CORS           middleware.CORSConfig
	// LoginRateLimit caps login attempts per client IP per minute.
	// Zero disables rate limiting.
	LoginRateLimit int
	Logger         *zap.Logger
	// TracingEnabled turns on per-request server spans.
	TracingEnabled bool
	ServiceName    string
}

// New builds the gin engine with all routes and middleware wired
func New(cfg Config) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestID())
	if cfg.TracingEnabled {
		engine.Use(middleware.Tracing(cfg.ServiceName))
		engine.Use(middleware.SpanTags())
	}
	engine.Use(logger.Recovery(cfg.Logger))
	engine.Use(logger.RequestLogger(cfg.Logger))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(cfg.CORS))

	h := cfg.Handlers

	engine.GET("/health", h.System.Health)
	engine.GET("/ready", h.System.Ready)

	api := engine.Group("/api/v1")

	authGroup := api.Group("/auth")
	if cfg.LoginRateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.LoginRateLimit, time.Minute)
		authGroup.Use(middleware.RateLimit(limiter))
	}
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/refresh", h.Auth.Refresh)

	protected := api.Group("")
	protected.Use(middleware.JWTAuth(middleware.JWTMiddlewareConfig{
		JWTService:     cfg.JWTService,
		TokenBlacklist: cfg.TokenBlacklist,
		Logger:         cfg.Logger,
	}))

	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/auth/me", h.Auth.Me)
	protected.POST("/auth/change-password", h.Auth.ChangePassword)

	// Operators and admins share the day-to-day surface
	staff := protected.Group("")
	staff.Use(middleware.RequireRole(string(identity.RoleAdmin), string(identity.RoleOperator)))

	residents := staff.Group("/residents")
	residents.POST("", h.Resident.Create)
	residents.GET("", h.Resident.List)
	residents.GET("/:id", h.Resident.Get)
	residents.PUT("/:id", h.Resident.Update)
	residents.DELETE("/:id", h.Resident.Delete)
	residents.GET("/:id/notifications", h.Resident.Notifications)
	residents.GET("/:id/tokens", h.Token.ListByResident)
	residents.GET("/:id/payments", h.Payment.ListByResident)

	tokens := staff.Group("/tokens")
	tokens.POST("", h.Token.Create)
	tokens.POST("/:id/activate", h.Token.Activate)
	tokens.POST("/:id/deactivate", h.Token.Deactivate)
	tokens.DELETE("/:id", h.Token.Delete)

	payments := staff.Group("/payments")
	payments.POST("", h.Payment.Record)
	payments.GET("", h.Payment.List)
	payments.GET("/:id", h.Payment.Get)
	payments.POST("/:id/validate", h.Payment.Validate)
	payments.POST("/sweep-overdue", h.Payment.SweepOverdue)
	payments.POST("/send-reminders", h.Payment.SendReminders)

	funeral := staff.Group("/funeral")
	funeral.POST("/plans", h.FuneralPlan.Create)
	funeral.GET("/plans", h.FuneralPlan.List)
	funeral.GET("/plans/:id", h.FuneralPlan.Get)
	funeral.PUT("/plans/:id/pricing", h.FuneralPlan.UpdatePricing)
	funeral.POST("/plans/:id/deactivate", h.FuneralPlan.Deactivate)
	funeral.DELETE("/plans/:id", h.FuneralPlan.Delete)

	funeral.POST("/clients", h.FuneralClient.Create)
	funeral.GET("/clients", h.FuneralClient.List)
	funeral.GET("/clients/:id", h.FuneralClient.Get)
	funeral.POST("/clients/:id/switch-plan", h.FuneralClient.SwitchPlan)
	funeral.POST("/clients/:id/cancel", h.FuneralClient.Cancel)
	funeral.DELETE("/clients/:id", h.FuneralClient.Delete)

	funeral.POST("/caskets", h.Casket.Create)
	funeral.GET("/caskets", h.Casket.List)
	funeral.GET("/caskets/:id", h.Casket.Get)
	funeral.POST("/caskets/:id/adjust-stock", h.Casket.AdjustStock)
	funeral.DELETE("/caskets/:id", h.Casket.Delete)

	// Admin-only surface
	admin := protected.Group("")
	admin.Use(middleware.RequireRole(string(identity.RoleAdmin)))

	users := admin.Group("/users")
	users.POST("", h.User.Create)
	users.GET("", h.User.List)
	users.GET("/:id", h.User.Get)
	users.PUT("/:id", h.User.Update)
	users.POST("/:id/reset-password", h.User.ResetPassword)
	users.POST("/:id/activate", h.User.Activate)
	users.POST("/:id/deactivate", h.User.Deactivate)
	users.DELETE("/:id", h.User.Delete)

	fiscal := admin.Group("/fiscal")
	fiscal.GET("/settings", h.Fiscal.Get)
	fiscal.PUT("/settings", h.Fiscal.Update)
	fiscal.POST("/invoice-number", h.Fiscal.NextInvoiceNumber)
	fiscal.POST("/logo/upload-url", h.Fiscal.PrepareLogoUpload)
	fiscal.POST("/logo/confirm", h.Fiscal.ConfirmLogoUpload)
	fiscal.GET("/logo", h.Fiscal.LogoURL)

	return engine
}
