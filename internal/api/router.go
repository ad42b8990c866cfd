package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/lamesa/ordering-gateway/internal/api/handler"
	"github.com/lamesa/ordering-gateway/internal/api/middleware"
	"github.com/lamesa/ordering-gateway/internal/core/domain"
	"github.com/lamesa/ordering-gateway/internal/core/ports"
	"github.com/lamesa/ordering-gateway/internal/core/service"
	redisstore "github.com/lamesa/ordering-gateway/internal/infrastructure/db/redis"
	"github.com/lamesa/ordering-gateway/internal/pkg/config"
	"github.com/lamesa/ordering-gateway/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, rdb *redis.Client, upstream ports.Upstream, compensation ports.CompensationQueue) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(middleware.SessionCookie())

	// --- Dependencies ---
	tokens := redisstore.NewTokenStore(rdb)
	carts := redisstore.NewCartStore(rdb)
	profiles := redisstore.NewProfileCache(rdb, cfg.Session.ProfileTTL)

	sessions := service.NewSessionService(tokens, profiles, upstream, cfg.Session.ResolveBudget, log)
	cartService := service.NewCartService(carts, upstream, log)
	checkoutService := service.NewCheckoutService(carts, upstream, upstream, compensation, log)

	authHandler := handler.NewAuthHandler(upstream, tokens, log)
	menuHandler := handler.NewMenuHandler(upstream)
	cartHandler := handler.NewCartHandler(cartService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	orderHandler := handler.NewOrderHandler(upstream)
	profileHandler := handler.NewProfileHandler(upstream, sessions, tokens)
	paymentResultHandler := handler.NewPaymentResultHandler(tokens, upstream, log)

	clientOnly := middleware.Guard(sessions, tokens, log, domain.RoleClient)
	adminOnly := middleware.Guard(sessions, tokens, log, domain.RoleAdmin)
	anyRole := middleware.Guard(sessions, tokens, log)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/login-info", authHandler.LoginInfo)
	e.POST("/auth/password-reset", authHandler.RequestPasswordReset)
	e.POST("/auth/password-reset/confirm", authHandler.ResetPassword)
	e.POST("/auth/confirm-account", authHandler.ConfirmAccount)
	e.POST("/auth/unlock", authHandler.RequestUnlock)
	e.POST("/auth/unlock/confirm", authHandler.ConfirmUnlock)

	// The provider redirects the shopper back here whether or not the
	// session survived the round trip, so the route stays unguarded.
	e.GET("/payment/result", paymentResultHandler.Result)

	// --- Client routes ---
	client := e.Group("/client", clientOnly)
	client.GET("/menu", menuHandler.List)
	client.GET("/cart", cartHandler.Get)
	client.POST("/cart/items", cartHandler.AddItem)
	client.DELETE("/cart/items/:id", cartHandler.RemoveItem)
	client.DELETE("/cart", cartHandler.Clear)
	client.POST("/checkout", checkoutHandler.Checkout)
	client.GET("/orders", orderHandler.Mine)

	// --- Admin routes ---
	admin := e.Group("/admin", adminOnly)
	admin.GET("/orders", orderHandler.List)
	admin.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	admin.GET("/menu", menuHandler.List)
	admin.POST("/menu", menuHandler.Create)
	admin.PUT("/menu/:id", menuHandler.Update)
	admin.DELETE("/menu/:id", menuHandler.Delete)

	// --- Profile routes (both roles) ---
	profile := e.Group("/profile", anyRole)
	profile.GET("", profileHandler.Get)
	profile.PUT("", profileHandler.Update)
	profile.DELETE("", profileHandler.Delete)
	profile.PUT("/password", profileHandler.UpdatePassword)
	profile.POST("/email", profileHandler.RequestEmailUpdate)
	profile.POST("/email/confirm", profileHandler.ConfirmEmailUpdate)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
