// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"easypark/internal/auth"
	"easypark/internal/billing"
	"easypark/internal/facilities"
	"easypark/internal/gateevents"
	"easypark/internal/sessions"
	"easypark/internal/shared/config"
	"easypark/internal/shared/database"
	"easypark/internal/slots"
	"easypark/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config     *config.Config
	db         *database.DB
	recognizer sessions.PlateReader
	publisher  gateevents.Publisher

	// shared across feature setups
	cacheService    cache.Service
	slotPool        slots.Pool
	facilityService facilities.Service
}

// NewRouter creates a new router instance. The recognizer and publisher are
// constructed in main because they hold resources that need closing on
// shutdown.
func NewRouter(cfg *config.Config, db *database.DB, recognizer sessions.PlateReader, publisher gateevents.Publisher) *Router {
	return &Router{
		config:     cfg,
		db:         db,
		recognizer: recognizer,
		publisher:  publisher,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// Cache is optional: feature services fall back to the database when
	// Redis is not available
	if r.db.GetRedis() != nil {
		r.cacheService = cache.NewService(r.db.GetRedis())
	}

	r.slotPool = slots.NewPool(r.db.GetPostgreSQL())

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)

		// Facility routes first: the gate routes bill against facility rates
		r.setupFacilityRoutes(api)

		r.setupGateRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "easypark-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "easypark-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController)

	authRouter.SetupRoutes(rg)
}

// setupFacilityRoutes configures facility management routes
func (r *Router) setupFacilityRoutes(rg *gin.RouterGroup) {
	facilityRepo := facilities.NewRepository(r.db.GetPostgreSQL())
	facilityService := facilities.NewService(facilityRepo, r.slotPool)
	if r.cacheService != nil {
		facilityService.SetCacheService(r.cacheService)
	}

	// Stored for the gate routes, which bill against facility rates
	r.facilityService = facilityService

	facilityController := facilities.NewController(facilityService, r.slotPool)
	facilities.SetupFacilityRoutes(rg, facilityController)
}

// setupGateRoutes configures gate entry/exit routes
func (r *Router) setupGateRoutes(rg *gin.RouterGroup) {
	sessionRepo := sessions.NewRepository(r.db.GetPostgreSQL())
	refBuilder := billing.NewReferenceBuilder(r.config.Payment.PayeeVPA, r.config.Payment.PayeeName, r.config.Payment.Currency)

	sessionService := sessions.NewService(sessionRepo, r.slotPool, r.facilityService, r.recognizer, r.publisher, refBuilder)
	if r.cacheService != nil {
		sessionService.SetCacheService(r.cacheService)
	}

	sessionController := sessions.NewController(sessionService, r.config)
	sessions.SetupGateRoutes(rg, sessionController)
}
