package app

import (
	"net/http"

	"github.com/aswanthpvtk/employee-Task-Backend/internal/employee"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/messaging/kafka"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/middleware"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/section"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/shared/audit"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type moduleDeps struct {
	Sections   section.Repository
	Employees  employee.Repository
	Redis      *redis.Client
	Publisher  kafka.Publisher
	Audit      audit.Logger
	JWTSecret  string
	UpdateMode employee.UpdateMode
	RateLimit  rate.Limit
	RateBurst  int
	Logger     *zap.Logger
}

func registerModules(router *gin.Engine, deps moduleDeps) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.L()
	}

	// --- Services ---
	sectionService := section.NewService(section.Deps{
		Repo:      deps.Sections,
		Cleaner:   deps.Employees,
		Redis:     deps.Redis,
		Publisher: deps.Publisher,
		Audit:     deps.Audit,
		Logger:    logger,
	})
	employeeService := employee.NewService(employee.Deps{
		Repo:        deps.Employees,
		Catalog:     sectionService,
		Publisher:   deps.Publisher,
		DefaultMode: deps.UpdateMode,
		Logger:      logger,
	})

	// --- Handlers ---
	sectionHandler := section.NewHandler(sectionService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)

	// --- Routes Registration ---
	router.Use(middleware.ContextLogger(logger))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	if deps.RateLimit > 0 && deps.RateBurst > 0 {
		api.Use(middleware.RateLimitByIP(deps.RateLimit, deps.RateBurst))
	}
	{
		section.RegisterRoutes(api, sectionHandler, middleware.AdminOnly(deps.JWTSecret))
		employee.RegisterRoutes(api, employeeHandler, middleware.Idempotency(deps.Redis))
	}
}
