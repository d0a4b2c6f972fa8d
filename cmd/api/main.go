package main

import (
	"time"

	"github.com/aswanthpvtk/employee-Task-Backend/internal/app"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/bootstrap"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/config"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/shared/apperror"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/shared/audit"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/shared/logging"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, sync, err := logging.Setup(cfg)
	if err != nil {
		panic(err)
	}
	defer sync()

	apperror.Init()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	auditLogger := audit.NewZapLogger()

	// build dependency + routes
	cleanup, err := app.BuildApp(r, cfg, auditLogger)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer cleanup()

	if err := bootstrap.StartHTTPServer(
		r,
		bootstrap.ServerConfig{
			Port:         cfg.Port,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		auditLogger,
	); err != nil {
		logger.Error("http server stopped", zap.Error(err))
	}
}
