// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finance-records/backend/internal/domain/entity"
	"github.com/finance-records/backend/internal/integration/entrypoint/controller"
	"github.com/finance-records/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine             *gin.Engine
	healthController   *controller.HealthController
	authController     *controller.AuthController
	categoryController *controller.CategoryController
	incomeController   *controller.RecordController
	expenseController  *controller.RecordController
	metricsController  *controller.MetricsController
	loginRateLimiter   *middleware.RateLimiter
	authMiddleware     *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	categoryController *controller.CategoryController,
	incomeController *controller.RecordController,
	expenseController *controller.RecordController,
	metricsController *controller.MetricsController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:   healthController,
		authController:     authController,
		categoryController: categoryController,
		incomeController:   incomeController,
		expenseController:  expenseController,
		metricsController:  metricsController,
		loginRateLimiter:   loginRateLimiter,
		authMiddleware:     authMiddleware,
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
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
			auth.POST("/refresh", r.authController.Refresh)
			auth.POST("/logout", r.authController.Logout)
		}

		categories := v1.Group("/categories")
		categories.Use(r.authMiddleware.Authenticate())
		{
			categories.GET("", r.categoryController.List)
			categories.POST("", r.categoryController.Create)
			categories.PATCH("/:id", r.categoryController.Update)
			categories.DELETE("/:id", r.categoryController.Delete)
		}

		r.setupRecordRoutes(v1, "/incomes", r.incomeController, entity.RecordKindIncome)
		r.setupRecordRoutes(v1, "/expenses", r.expenseController, entity.RecordKindExpense)

		metrics := v1.Group("/metrics")
		metrics.Use(r.authMiddleware.Authenticate())
		{
			metrics.GET("", r.metricsController.Summary)
		}
	}
}

// setupRecordRoutes mounts the identical income and expense surfaces.
func (r *Router) setupRecordRoutes(
	v1 *gin.RouterGroup,
	path string,
	recordController *controller.RecordController,
	kind entity.RecordKind,
) {
	records := v1.Group(path)
	records.Use(r.authMiddleware.Authenticate())
	{
		records.GET("", recordController.List)
		records.POST("", recordController.Create)
		records.PATCH("/:id", recordController.Update)
		records.DELETE("/:id", recordController.Delete)
		records.GET("/history", recordController.ListHistory)
		records.GET("/delta", r.metricsController.Delta(kind))
	}
}
