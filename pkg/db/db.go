package db

import (
	"github.com/lexflow/lexfin/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/plugin/prometheus"
)

// Module provides the gorm connection.
var Module = fx.Provide(Open)

// Open opens the configured database and attaches the prometheus
// DBStats collector so pool metrics show up on /metrics.
func Open(cfg config.Config, logger *zap.Logger) (*gorm.DB, error) {
	dialector, err := Dialect(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := conn.Use(prometheus.New(prometheus.Config{
		DBName:          cfg.DBName,
		RefreshInterval: 15,
	})); err != nil {
		logger.Warn("db metrics plugin not attached", zap.Error(err))
	}

	logger.Info("database connected", zap.String("type", cfg.DBType))
	return conn, nil
}
