package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/madorn/bond-mcp-server/pkg/api/handlers"
	"github.com/madorn/bond-mcp-server/pkg/bond"
	"github.com/madorn/bond-mcp-server/pkg/bond/schema"
	"github.com/madorn/bond-mcp-server/pkg/config"
)

// Router holds the Gin engine and dependencies
type Router struct {
	engine    *gin.Engine
	cfg       *config.Config
	newClient bond.Factory
	validator *schema.Validator
}

// NewRouter creates the REST facade over the bridge. A nil factory
// uses the configured bridge host; tests inject their own.
func NewRouter(cfg *config.Config, factory bond.Factory, validator *schema.Validator) *Router {
	gin.SetMode(gin.ReleaseMode)

	if factory == nil {
		factory = func() *bond.Client {
			return bond.NewClient(cfg.BondHost, cfg.BondToken, bond.Options{
				Timeout:    cfg.Timeout,
				MaxRetries: cfg.MaxRetries,
				RetryDelay: cfg.RetryDelay,
			})
		}
	}

	engine := gin.New()
	SetupMiddleware(engine)

	router := &Router{
		engine:    engine,
		cfg:       cfg,
		newClient: factory,
		validator: validator,
	}

	router.setupRoutes()

	return router
}

// setupRoutes configures all API routes
func (r *Router) setupRoutes() {
	// Swagger UI
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/swagger/index.html")
	})

	bridgeHandler := handlers.NewBridgeHandler(r.cfg, r.newClient)
	r.engine.GET("/health", bridgeHandler.Health)

	v1 := r.engine.Group("/api/v1")
	{
		v1.GET("/health", bridgeHandler.Health)
		v1.GET("/bridge", bridgeHandler.GetBridge)

		devicesHandler := handlers.NewDevicesHandler(r.newClient)
		controlHandler := handlers.NewControlHandler(r.newClient, r.validator)
		devices := v1.Group("/devices")
		{
			devices.GET("", devicesHandler.ListDevices)
			devices.GET("/:id", devicesHandler.GetDevice)
			devices.GET("/:id/state", devicesHandler.GetState)
			devices.PUT("/:id/actions/:action", controlHandler.SendAction)
		}
	}
}

// Engine exposes the underlying Gin engine for tests.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
