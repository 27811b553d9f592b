package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"goride/internal/domain"
	"goride/internal/handler"
	"goride/internal/middleware"
	"goride/internal/service"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler  *handler.AuthHandler
	FareHandler  *handler.FareHandler
	RideHandler  *handler.RideHandler
	AdminHandler *handler.AdminHandler
	AuthService  *service.AuthService
	RedisClient  *redis.Client
	NewRelicApp  *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered. Every
// protected group is behind the session middleware plus an access-gate
// middleware carrying that group's role whitelist.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.Metrics())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	// Health check and metrics.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	session := middleware.Authenticate(deps.AuthService)

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Public auth routes.
		auth := v1.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
			auth.GET("/me", session, middleware.RequireRoles(), deps.AuthHandler.Me)
		}

		// Fare quotes are public: the booking form shows an estimate
		// before the rider commits to anything.
		v1.POST("/fare/estimate", deps.FareHandler.Estimate)

		// Ride routes.
		rides := v1.Group("/rides", session)
		{
			rides.POST("", middleware.RequireRoles(domain.RoleRider), middleware.Idempotency(deps.RedisClient), deps.RideHandler.RequestRide)
			rides.GET("", middleware.RequireRoles(domain.RoleRider, domain.RoleAdmin), deps.RideHandler.ListRides)
			rides.GET("/:id", middleware.RequireRoles(domain.RoleRider, domain.RoleAdmin), deps.RideHandler.GetRide)
			rides.POST("/:id/cancel", middleware.RequireRoles(domain.RoleRider, domain.RoleAdmin), deps.RideHandler.CancelRide)
		}

		// Admin routes.
		admin := v1.Group("/admin", session, middleware.RequireRoles(domain.RoleAdmin))
		{
			admin.GET("/users", deps.AdminHandler.ListUsers)
			admin.POST("/users/:id/block", deps.AdminHandler.BlockUser)
			admin.POST("/users/:id/unblock", deps.AdminHandler.UnblockUser)
			admin.POST("/drivers/:id/approve", deps.AdminHandler.ApproveDriver)
			admin.POST("/drivers/:id/suspend", deps.AdminHandler.SuspendDriver)
			admin.POST("/drivers/:id/reinstate", deps.AdminHandler.ReinstateDriver)
		}
	}

	return router
}
