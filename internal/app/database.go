package app

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Gachagokimani/Cybersmarter-business-system/config"
)

// getDatabase opens the configured database. The process holds one pooled
// handle for its lifetime; request handlers scope it with WithContext.
func getDatabase(cfg config.DBConfig, workdir string) *gorm.DB {
	loglevel := logger.Silent
	if cfg.Debug {
		loglevel = logger.Info
	}
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(loglevel),
	}

	var dialector gorm.Dialector
	switch cfg.Type {
	case "sqlite":
		_ = os.MkdirAll(workdir, 0o755)
		dialector = sqlite.Open(path.Join(workdir, fmt.Sprintf("%s.db", cfg.Name)))
	default:
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC",
			cfg.Host, cfg.User, cfg.Passwd, cfg.Name, cfg.Port,
		)
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		zap.S().Panicf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		zap.S().Panicf("failed to get database pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxConn)
	sqlDB.SetMaxIdleConns(cfg.IdleConn)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db
}
