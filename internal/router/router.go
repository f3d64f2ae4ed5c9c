package router

import (
	"time"

	"github.com/sankalp-nadiger/Auditryx/internal/config"
	"github.com/sankalp-nadiger/Auditryx/internal/handler"
	"github.com/sankalp-nadiger/Auditryx/internal/infra"
	"github.com/sankalp-nadiger/Auditryx/internal/middleware"
	"github.com/sankalp-nadiger/Auditryx/internal/repository"
	"github.com/sankalp-nadiger/Auditryx/internal/service"
	"github.com/sankalp-nadiger/Auditryx/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, advisoryCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	geocoder := infra.NewOpenWeatherClient(cfg.OpenWeatherAPIKey, cfg.OpenWeatherBaseURL)
	advisor := infra.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL, advisoryCB)
	reference := infra.NewReferenceDataset(cfg.ReferenceDatasetPath)

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	complianceRepo := repository.NewComplianceRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	metricsSvc := service.NewMetricsService()
	supplierSvc := service.NewSupplierService(supplierRepo, complianceRepo, userRepo, metricsSvc, advisor, dispatcher, cfg.ReportStoragePath)
	complianceSvc := service.NewComplianceService(complianceRepo, supplierRepo)
	weatherSvc := service.NewWeatherService(supplierRepo, complianceRepo, userRepo, geocoder, geocoder, advisor, dispatcher)
	rankingSvc := service.NewRankingService(supplierRepo, complianceRepo, geocoder, geocoder, advisor, reference)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	suppliersH := handler.NewSuppliersHandler(supplierSvc)
	complianceH := handler.NewComplianceHandler(complianceSvc)
	weatherH := handler.NewWeatherHandler(weatherSvc, rankingSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, advisoryCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		suppliers := v1.Group("/suppliers")
		{
			suppliers.POST("", suppliersH.Create)
			suppliers.GET("", suppliersH.List)
			suppliers.GET("/:id", suppliersH.GetByID)
			suppliers.PUT("/:id", suppliersH.Update)
			suppliers.DELETE("/:id", suppliersH.Delete)
			suppliers.GET("/:id/metrics", suppliersH.Metrics)
			suppliers.GET("/:id/insight", suppliersH.Insight)
			suppliers.GET("/:id/report", suppliersH.Report)
			suppliers.POST("/:id/report/email", suppliersH.EmailReport)
		}

		compliance := v1.Group("/compliance")
		{
			compliance.POST("", complianceH.Create)
			compliance.GET("", complianceH.List)
			compliance.GET("/supplier/:supplier_id", complianceH.ListBySupplier)
			compliance.PUT("/:id", complianceH.Update)
			compliance.DELETE("/:id", complianceH.Delete)
		}

		weather := v1.Group("/weather")
		{
			weather.GET("/today/:supplier_id", weatherH.Today)
			weather.GET("/history/:supplier_id", weatherH.History)
			weather.GET("/recommend-supplier", weatherH.RecommendSupplier)
			weather.POST("/check-impact", weatherH.CheckImpact)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
