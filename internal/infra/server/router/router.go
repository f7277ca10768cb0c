// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/billtrack/recurring-engine/internal/integration/entrypoint/controller"
	"github.com/billtrack/recurring-engine/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine               *gin.Engine
	healthController     *controller.HealthController
	recurringController  *controller.RecurringController
	projectionController *controller.ProjectionController
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	recurringController *controller.RecurringController,
	projectionController *controller.ProjectionController,
) *Router {
	return &Router{
		healthController:     healthController,
		recurringController:  recurringController,
		projectionController: projectionController,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
	r.engine.GET("/health/ready", r.healthController.Ready)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	v1.Use(middleware.UserScope())
	{
		if r.recurringController != nil {
			recurringGroup := v1.Group("/recurring")
			{
				recurringGroup.POST("/detect", r.recurringController.Detect)
				recurringGroup.GET("", r.recurringController.List)
				recurringGroup.DELETE("/:id", r.recurringController.Delete)
				recurringGroup.POST("/:id/links", r.recurringController.Link)
				recurringGroup.DELETE("/:id/links/:transactionId", r.recurringController.Unlink)
			}
		}

		if r.projectionController != nil {
			projectionGroup := v1.Group("/projection")
			{
				projectionGroup.GET("/upcoming", r.projectionController.GetUpcoming)
				projectionGroup.GET("/period", r.projectionController.GetPeriod)
				projectionGroup.GET("/cashflow", r.projectionController.GetCashFlow)
			}
		}
	}
}
