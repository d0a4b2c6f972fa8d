package app

import (
	"context"
	"fmt"

	"github.com/aswanthpvtk/employee-Task-Backend/internal/config"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/employee"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/section"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/shared/connection"

	"go.uber.org/zap"
)

// store holds the repositories of the configured backend.
type store struct {
	sections  section.Repository
	employees employee.Repository
	close     func()
}

func openStore(cfg config.Config) (*store, error) {
	switch cfg.StorageDriver {
	case config.StorageMongo:
		client, err := connection.ConnectMongoWithRetry(cfg.MongoURI, cfg.ConnectRetries)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDatabase)
		return &store{
			sections:  section.NewMongoRepository(db),
			employees: employee.NewMongoRepository(db),
			close: func() {
				ctx, cancel := connection.CloseTimeout()
				defer cancel()
				if err := client.Disconnect(ctx); err != nil {
					zap.L().Warn("mongo disconnect failed", zap.Error(err))
				}
			},
		}, nil

	case config.StoragePostgres:
		pg := cfg.Postgres
		db, err := connection.ConnectGORMWithRetry(connection.PostgresConfig{
			Host:     pg.Host,
			User:     pg.User,
			Password: pg.Password,
			DBName:   pg.DBName,
			Port:     pg.Port,
			SSLMode:  pg.SSLMode,
		}, cfg.ConnectRetries)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		return &store{
			sections:  section.NewGormRepository(db),
			employees: employee.NewGormRepository(db),
			close: func() {
				if err := sqlDB.Close(); err != nil {
					zap.L().Warn("postgres close failed", zap.Error(err))
				}
			},
		}, nil
	}

	return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
}

// ensureSchema creates indexes (mongo) or migrates tables (postgres).
// Sections go first so the catalog exists before employees reference it.
func (s *store) ensureSchema(ctx context.Context) error {
	if err := s.sections.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("sections schema: %w", err)
	}
	if err := s.employees.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("employees schema: %w", err)
	}
	return nil
}
