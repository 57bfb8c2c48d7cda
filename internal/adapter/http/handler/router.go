package handler

import (
	"account-ledger/internal/adapter/http/middleware"
	redisStore "account-ledger/internal/adapter/storage/redis"
	"account-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	LedgerSvc      ports.LedgerService
	HistorySvc     ports.HistoryService
	UserRepo       ports.UserRepository
	TokenSvc       ports.TokenService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/sign-up", rl("auth_sign_up"), authHandler.SignUp)
		auth.POST("/sign-in", rl("auth_sign_in"), authHandler.SignIn)
	}

	// --- JWT-authenticated routes ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	transferHandler := NewTransferHandler(deps.LedgerSvc)
	historyHandler := NewHistoryHandler(deps.HistorySvc)
	userHandler := NewUserHandler(deps.UserRepo)

	v1.GET("/auth/validate", jwtAuth, rl("reads"), authHandler.Validate)

	users := v1.Group("/users", jwtAuth)
	{
		users.GET("", rl("reads"), userHandler.List)
	}

	transfers := v1.Group("/transfers", jwtAuth)
	{
		transfers.POST("", rl("transfers"), transferHandler.Create)
	}

	transactions := v1.Group("/transactions", jwtAuth)
	{
		transactions.GET("", rl("reads"), historyHandler.Transactions)
	}

	accounts := v1.Group("/accounts", jwtAuth)
	{
		accounts.GET("/balance", rl("reads"), historyHandler.Balance)
	}

	return r
}
