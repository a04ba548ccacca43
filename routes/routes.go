package routes

import (
	"context"
	"net/http"

	"dropoff-intake-api/config"
	"dropoff-intake-api/controllers"
	"dropoff-intake-api/dashboard"
	"dropoff-intake-api/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies are the collaborators the routes are wired to.
type Dependencies struct {
	Submissions *controllers.SubmissionController
	Auth        config.AuthConfig
	Ping        func(context.Context) error

	// TrustedProxies is handed to gin; nil trusts no forwarding headers.
	TrustedProxies []string
}

// NewRouter builds the engine with the global middleware chain and all routes.
func NewRouter(log *zap.Logger, deps Dependencies) *gin.Engine {
	router := gin.New()
	if err := router.SetTrustedProxies(deps.TrustedProxies); err != nil {
		log.Error("Invalid TRUSTED_PROXIES, trusting none", zap.Error(err))
		_ = router.SetTrustedProxies(nil)
	}

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORSMiddleware())

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	SetupRoutes(router, deps)
	return router
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	requireAuth := middleware.BasicAuth(deps.Auth.Realm, deps.Auth.Users)

	api := router.Group("/api")
	{
		// Public routes
		api.POST("/submit", deps.Submissions.CreateSubmission)
		api.GET("/health", controllers.HealthCheck(deps.Ping))

		// Protected routes (require dashboard credentials)
		protected := api.Group("")
		protected.Use(requireAuth)
		{
			protected.GET("/submissions", deps.Submissions.GetSubmissions)
			protected.POST("/submissions/:id/status", deps.Submissions.UpdateSubmissionStatus)
		}
	}

	dashboard.RegisterDashboardPage(router, requireAuth)
}
