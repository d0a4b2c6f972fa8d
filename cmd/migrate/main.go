package main

import (
	"github.com/aswanthpvtk/employee-Task-Backend/internal/app"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/config"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/shared/logging"

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

	if err := app.Migrate(cfg); err != nil {
		logger.Fatal("migrate failed", zap.Error(err))
	}
}
