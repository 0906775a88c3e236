package db

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"socialnet/config"
	dbmysql "socialnet/db/mysql"
	dbsqlite "socialnet/db/sqlite"
)

const (
	ModeSQLite       = "sqlite"
	ModeSQLiteMemory = "sqlite_memory"
	ModeMySQL        = "mysql"
)

// Open returns a *gorm.DB for the configured database mode.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	switch cfg.Mode {
	case ModeSQLite:
		return dbsqlite.Open(cfg.SQLitePath)
	case ModeSQLiteMemory:
		// Unique shared-cache DSN so all connections see one in-memory DB.
		dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
		return dbsqlite.Open(dsn)
	case ModeMySQL:
		return dbmysql.Open(cfg.MySQLDSN, cfg.MySQLMaxOpen, cfg.MySQLMaxIdle, cfg.MySQLMaxLife)
	default:
		return nil, fmt.Errorf("db: unknown mode %q", cfg.Mode)
	}
}
