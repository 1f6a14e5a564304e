package db

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"notesapi/internal/model"
)

// Open returns a connected GORM DB instance for the given URL.
//
//	postgres://… or postgresql://…  PostgreSQL
//	sqlite://<path> or sqlite://:memory:  SQLite
//	anything else  MySQL DSN
func Open(url string, cfg *gorm.Config) (*gorm.DB, error) {
	if cfg == nil {
		cfg = &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		}
	}
	dialector, err := Dialector(url)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if dialector.Name() == "sqlite" {
		// A single connection keeps :memory: databases alive and avoids
		// SQLITE_BUSY between concurrent writers.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlite pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// Dialector picks the GORM driver from the URL scheme.
func Dialector(url string) (gorm.Dialector, error) {
	switch {
	case url == "":
		return nil, fmt.Errorf("empty database url")
	case strings.HasPrefix(url, "postgres://"):
		return postgres.Open("postgresql://" + strings.TrimPrefix(url, "postgres://")), nil
	case strings.HasPrefix(url, "postgresql://"):
		return postgres.Open(url), nil
	case strings.HasPrefix(url, "sqlite://"):
		return sqlite.Open(sqliteDSN(strings.TrimPrefix(url, "sqlite://"))), nil
	default:
		return mysql.Open(url), nil
	}
}

func sqliteDSN(path string) string {
	const fk = "_pragma=foreign_keys(1)"
	if strings.Contains(path, "?") {
		return path + "&" + fk
	}
	return path + "?" + fk
}

// Migrate creates or updates every table, dropping them first when reset is set.
func Migrate(db *gorm.DB, reset bool) error {
	tables := model.All()
	if reset {
		for i := len(tables) - 1; i >= 0; i-- {
			if err := db.Migrator().DropTable(tables[i]); err != nil {
				return fmt.Errorf("drop table: %w", err)
			}
		}
	}
	if err := db.AutoMigrate(tables...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
