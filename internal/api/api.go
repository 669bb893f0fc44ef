// Package api exposes the task services over HTTP with gin.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"task-manager/internal/api/docs"
	"task-manager/internal/logging"
	"task-manager/internal/services"
)

// WelcomeMessage is served on GET /.
const WelcomeMessage = "Task manager API. See /swagger/index.html for the endpoint reference."

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options tune the router.
type Options struct {
	RequestTimeout time.Duration
	EnableSwagger  bool
	EnableMetrics  bool
	Logger         logging.Logger
	// Metrics may be shared across routers; nil creates a fresh registry.
	Metrics *Metrics
}

// API binds the HTTP surface to the services.
type API struct {
	services *services.ServiceContainer
	store    Pinger
	metrics  *Metrics
	opts     Options
}

// New creates a new API instance.
func New(container *services.ServiceContainer, store Pinger, opts Options) *API {
	if opts.Logger == nil {
		opts.Logger = logging.GetDefault()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &API{
		services: container,
		store:    store,
		metrics:  metrics,
		opts:     opts,
	}
}

// Metrics returns the collectors fed by the router.
func (a *API) Metrics() *Metrics {
	return a.metrics
}

// Router builds the gin engine with every route registered.
func (a *API) Router() *gin.Engine {
	router := gin.New()
	router.Use(
		Recovery(),
		RequestID(a.opts.Logger),
		RequestLogger(),
		a.metrics.Middleware(),
	)

	router.GET("/", a.welcome)
	router.GET("/healthz", a.healthz)
	router.GET("/readyz", a.readyz)
	if a.opts.EnableMetrics {
		router.GET("/metrics", gin.WrapH(a.metrics.Handler()))
	}
	if a.opts.EnableSwagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(
			swaggerFiles.Handler,
			ginSwagger.InstanceName(docs.SwaggerInfo.InstanceName()),
		))
	}

	tasks := router.Group("/tasks", Timeout(a.opts.RequestTimeout))
	{
		tasks.GET("", a.listTasks)
		tasks.POST("", a.createTask)
		tasks.GET("/summary", a.getSummary)
		tasks.GET("/search", a.searchTasks)
		tasks.GET("/search/date", a.searchByDate)
		tasks.DELETE("/by-date", a.deleteByDate)
		tasks.GET("/:id", a.getTask)
		tasks.PUT("/:id", a.updateTask)
		tasks.PUT("/:id/create-date", a.setCreateDate)
		tasks.DELETE("/:id", a.deleteTask)
	}

	return router
}

// welcome returns the service banner
//
//	@Summary	Welcome banner
//	@Tags		meta
//	@Produce	plain
//	@Success	200	{string}	string
//	@Router		/ [get]
func (a *API) welcome(c *gin.Context) {
	c.String(http.StatusOK, WelcomeMessage)
}

// healthz reports liveness
//
//	@Summary	Liveness probe
//	@Tags		meta
//	@Produce	json
//	@Success	200	{object}	api.StatusResponse
//	@Router		/healthz [get]
func (a *API) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// readyz pings the store
//
//	@Summary	Readiness probe
//	@Tags		meta
//	@Produce	json
//	@Success	200	{object}	api.StatusResponse
//	@Failure	503	{object}	api.StatusResponse
//	@Router		/readyz [get]
func (a *API) readyz(c *gin.Context) {
	if a.store == nil {
		c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
		return
	}
	if err := a.store.Ping(c.Request.Context()); err != nil {
		logging.FromContext(c.Request.Context()).Warn("store not ready", "error", err)
		c.JSON(http.StatusServiceUnavailable, StatusResponse{Status: "unavailable"})
		return
	}
	c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}
