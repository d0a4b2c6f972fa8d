package logging

import (
	"testing"

	"github.com/aswanthpvtk/employee-Task-Backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestSetup(t *testing.T) {
	t.Run("development logs debug", func(t *testing.T) {
		logger, sync, err := Setup(config.Config{AppEnv: "development"})
		require.NoError(t, err)
		defer sync()

		assert.Same(t, logger, zap.L())
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("production starts at info", func(t *testing.T) {
		logger, sync, err := Setup(config.Config{AppEnv: "production"})
		require.NoError(t, err)
		defer sync()

		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
		assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	})
}
