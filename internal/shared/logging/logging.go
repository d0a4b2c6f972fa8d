package logging

import (
	"github.com/aswanthpvtk/employee-Task-Backend/internal/config"

	"go.uber.org/zap"
)

// Setup builds the process logger and installs it as the zap global.
// Callers should defer the returned sync func.
func Setup(cfg config.Config) (*zap.Logger, func(), error) {
	build := zap.NewDevelopment
	if cfg.IsProduction() {
		build = zap.NewProduction
	}

	logger, err := build()
	if err != nil {
		return nil, nil, err
	}
	restore := zap.ReplaceGlobals(logger)

	return logger, func() {
		_ = logger.Sync()
		restore()
	}, nil
}
