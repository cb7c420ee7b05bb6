package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"mira/internal/model"
)

// Supported values for Open's driver argument.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Open returns a connected GORM DB instance for the given driver.
// SQL statements slower than 200ms and query errors are logged through log.
func Open(driver, dsn string, log *slog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverMySQL:
		dialector = mysql.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}

	return open(dialector, log)
}

func open(dialector gorm.Dialector, log *slog.Logger) (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}
	if log != nil {
		cfg.Logger = gormlogger.New(
			slog.NewLogLogger(log.Handler(), slog.LevelWarn),
			gormlogger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		)
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", dialector.Name(), err)
	}
	return db, nil
}

// Models lists every persisted type in dependency order.
func Models() []any {
	return []any{
		&model.User{},
		&model.EmailVerificationCode{},
		&model.Trip{},
		&model.TripMessage{},
	}
}

// Migrate creates or updates the schema. With reset set, all tables are
// dropped first.
func Migrate(db *gorm.DB, reset bool) error {
	models := Models()
	if reset {
		// drop children before parents
		for i := len(models) - 1; i >= 0; i-- {
			if err := db.Migrator().DropTable(models[i]); err != nil {
				return fmt.Errorf("drop table: %w", err)
			}
		}
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
