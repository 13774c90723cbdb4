package http

import (
	"todo_service/internal/config"
	"todo_service/internal/http/handlers"
	"todo_service/internal/http/middleware"
	"todo_service/internal/repository"
	"todo_service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewEngine builds a gin engine with the middleware chain every route shares.
// Recovery sits inside the logger and metrics so a panic is still recorded
// as a 500.
func NewEngine() *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	return r
}

func RegisterRoutes(r *gin.Engine, store repository.TaskStore, cfg *config.Config, version string) {
	tasks := service.NewTaskService(repository.WithMetrics(store))
	h := handlers.NewHandlerWithConfig(tasks, handlers.HandlerConfig{
		RequestTimeout: cfg.RequestTimeout,
	})
	healthHandler := handlers.NewHealthHandler(store, cfg.StoreDriver, version)

	// Ops endpoints (no rate limiting)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	registerTaskRoutes(r, h, middleware.RateLimit(cfg.APIRateLimit, cfg.APIRateWindow))
}

// registerTaskRoutes mounts the task API at the root. Literal paths are
// registered before /:id; gin also matches static segments first.
func registerTaskRoutes(r gin.IRoutes, h *handlers.Handler, limit gin.HandlerFunc) {
	r.GET("/", limit, h.ListTasks)
	r.POST("/", limit, h.CreateTask)
	r.POST("/reorder-tasks", limit, h.ReorderTasks)
	r.GET("/due-today", limit, h.DueToday)

	r.GET("/:id", limit, h.GetTask)
	r.PUT("/:id", limit, h.UpdateTask)
	r.DELETE("/:id", limit, h.DeleteTask)
}
