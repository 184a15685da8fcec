package api

import (
	"alcyxob/gymbuddy/internal/metrics"
	"alcyxob/gymbuddy/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services bundles what the HTTP layer depends on.
type Services struct {
	Auth     service.AuthService
	Workouts service.WorkoutService
	Progress service.ProgressService
	Partners service.PartnerService
}

// MetricsOptions controls the /metrics endpoint. A nil Gatherer disables it.
type MetricsOptions struct {
	Manager  *metrics.Manager
	Gatherer prometheus.Gatherer
	Path     string
}

func SetupRoutes(router *gin.Engine, services Services, metricsOpts MetricsOptions) {
	authHandler := NewAuthHandler(services.Auth)
	workoutHandler := NewWorkoutHandler(services.Workouts, services.Progress)
	partnerHandler := NewPartnerHandler(services.Partners)

	router.Use(PanicRecovery(metricsOpts.Manager), RequestLogger(), RequestMetrics(metricsOpts.Manager))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	if metricsOpts.Gatherer != nil {
		path := metricsOpts.Path
		if path == "" {
			path = "/metrics"
		}
		router.GET(path, gin.WrapH(promhttp.HandlerFor(metricsOpts.Gatherer, promhttp.HandlerOpts{})))
	}

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(AuthMiddleware(services.Auth))
	{
		protected.GET("/me", authHandler.Me)
		protected.GET("/stats", workoutHandler.GetStats)
		protected.GET("/catalog/body-parts", workoutHandler.GetBodyParts)

		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("", workoutHandler.GenerateWorkout)
			workoutGroup.GET("/week", workoutHandler.GetCurrentWeek)
			workoutGroup.GET("/favorites", workoutHandler.GetFavorites)
			workoutGroup.GET("/:id", workoutHandler.GetWorkout)
			workoutGroup.DELETE("/:id", workoutHandler.DeleteWorkout)
			workoutGroup.POST("/:id/copy", workoutHandler.CopyWorkout)
			workoutGroup.POST("/:id/complete", workoutHandler.CompleteWorkout)
			workoutGroup.PUT("/:id/favorite", workoutHandler.SetFavorite)
		}

		// PUT /api/v1/exercises/{exerciseId}/sets/{setNumber}
		protected.PUT("/exercises/:exerciseId/sets/:setNumber", workoutHandler.UpdateSet)

		partnerGroup := protected.Group("/partners")
		{
			partnerGroup.GET("", partnerHandler.ListPartners)
			partnerGroup.POST("/invites", partnerHandler.SendInvite)
			partnerGroup.PUT("/invites/:id", partnerHandler.RespondToInvite)
			partnerGroup.DELETE("/invites/:id", partnerHandler.CancelInvite)
			partnerGroup.GET("/:partnerId/week", partnerHandler.GetPartnerWeek)
		}

		protected.GET("/users/search", partnerHandler.SearchUsers)
	}
}
