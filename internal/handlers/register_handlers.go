package handlers

import (
	"log"
	"time"

	"github.com/Alialhaj1/SLMS-sub007/cmd/docs"
	portssvc "github.com/Alialhaj1/SLMS-sub007/internal/core/ports/services"
	"github.com/Alialhaj1/SLMS-sub007/internal/middleware"
	"github.com/Alialhaj1/SLMS-sub007/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	if len(cfg.CORSAllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
		corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
		corsConfig.MaxAge = 12 * time.Hour
		r.Use(cors.New(corsConfig))
	}

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	// Number allocation is the hottest administrative endpoint; throttle it
	// per client IP.
	rate, err := limiter.NewRateFromFormatted(cfg.GenerateRateLimit)
	if err != nil {
		log.Printf("Warning: invalid GENERATE_RATE_LIMIT %q, defaulting to 120-M\n", cfg.GenerateRateLimit)
		rate, _ = limiter.NewRateFromFormatted("120-M")
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)
	generateLimiter := middleware.RateLimit(ipLimiter)

	// Delegate route registration to specific handlers, passing required services
	RegisterNumberingRoutes(v1, services.Numbering, generateLimiter)
	RegisterLedgerRoutes(v1, services.Ledger)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
