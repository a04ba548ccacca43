package config

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB opens the MySQL handle. Nothing is dialed here: an unreachable
// server is reported by the first query, so startup never aborts on it.
// On failure DB stays nil and callers report a storage error per request.
func InitDB(cfg *Config, log *zap.Logger) *gorm.DB {
	// In production, suppress SQL logs unless explicitly re-enabled via DEBUG_SQL=true.
	logLevel := logger.Info
	if cfg.IsProduction() && !cfg.DebugSQL {
		logLevel = logger.Warn
	}

	gormConfig := &gorm.Config{
		Logger: logger.New(
			zap.NewStdLog(log.Named("gorm")),
			logger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  logLevel,
				IgnoreRecordNotFoundError: true,
			},
		),
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	}

	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       cfg.Database.DSN(),
		SkipInitializeWithVersion: true,
	}), gormConfig)
	if err != nil {
		log.Error("Failed to open database", zap.Error(err))
		return nil
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	DB = db
	log.Info("Database handle ready",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Database),
	)
	return db
}
