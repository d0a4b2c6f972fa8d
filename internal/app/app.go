package app

import (
	"context"
	"time"

	"github.com/aswanthpvtk/employee-Task-Backend/internal/config"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/employee"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/messaging/kafka"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/shared/audit"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const schemaTimeout = 30 * time.Second

// BuildApp connects the configured store and the optional Redis and Kafka
// clients, then mounts every module on router. The returned cleanup closes
// whatever was opened.
func BuildApp(router *gin.Engine, cfg config.Config, auditLogger audit.Logger) (func(), error) {
	logger := zap.L().Named("app")
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// 1. Setup Infrastructure
	st, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	closers = append(closers, st.close)

	ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
	defer cancel()
	if err := st.ensureSchema(ctx); err != nil {
		cleanup()
		return nil, err
	}
	logger.Info("storage ready", zap.String("driver", cfg.StorageDriver))

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.ConnectRetries)
		if err != nil {
			cleanup()
			return nil, err
		}
		closers = append(closers, func() { _ = rdb.Close() })
	} else {
		logger.Info("REDIS_ADDR not set, catalog cache and idempotency disabled")
	}

	publisher := kafka.NoopPublisher()
	if cfg.KafkaBroker != "" {
		writer, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.ConnectRetries)
		if err != nil {
			cleanup()
			return nil, err
		}
		closers = append(closers, func() { _ = writer.Close() })
		publisher = kafka.NewPublisher(writer)
	} else {
		logger.Info("KAFKA_BROKER not set, lifecycle events disabled")
	}

	// 2. Register Modules & Routes
	registerModules(router, moduleDeps{
		Sections:   st.sections,
		Employees:  st.employees,
		Redis:      rdb,
		Publisher:  publisher,
		Audit:      auditLogger,
		JWTSecret:  cfg.JWTSecret,
		UpdateMode: employee.UpdateMode(cfg.EmployeeUpdateMode),
		RateLimit:  rate.Limit(cfg.RateLimitRPS),
		RateBurst:  cfg.RateLimitBurst,
		Logger:     zap.L(),
	})
	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET not set, section writes are unguarded")
	}

	return cleanup, nil
}

// Migrate connects the configured store and ensures its schema.
func Migrate(cfg config.Config) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.close()

	ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
	defer cancel()
	if err := st.ensureSchema(ctx); err != nil {
		return err
	}

	zap.L().Named("app").Info("schema ensured", zap.String("driver", cfg.StorageDriver))
	return nil
}
