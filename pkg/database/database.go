package database

import (
	"fmt"
	"learning_center_backend/internal/config"
	"learning_center_backend/internal/model"
	"learning_center_backend/pkg/logger"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Models lists every table managed by AutoMigrate.
var Models = []interface{}{
	&model.User{},
	&model.Group{},
	&model.Lesson{},
	&model.Exam{},
	&model.ExamAttempt{},
	&model.UserExamAttempt{},
	&model.Course{},
	&model.SubCourse{},
	&model.News{},
	&model.Contact{},
	&model.Homepage{},
	&model.FAQ{},
	&model.AboutUs{},
	&model.StatsLog{},
}

func dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			cfg.Charset,
			cfg.ParseTime,
		)
		return mysql.Open(dsn), nil
	case "postgres":
		sslMode := cfg.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, sslMode)
		return postgres.Open(dsn), nil
	case "sqlite":
		path := cfg.Path
		if path == "" {
			path = "learning_center.db"
		}
		return sqlite.Open(path), nil
	}
	return nil, errors.Errorf("unsupported database driver %q", cfg.Driver)
}

func logLevel(mode string) gormlogger.LogLevel {
	switch mode {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	}
	return gormlogger.Warn
}

// InitDB opens the configured database and, when migrate is set, brings the
// schema up to date and applies the seed file.
func InitDB(cfg *config.DatabaseConfig, migrate bool, seedFile string) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel(cfg.LogMode)),
		// Unique index violations surface as gorm.ErrDuplicatedKey.
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open %s database", cfg.Driver)
	}

	logger.Log.Info("Database connection established", zap.String("driver", cfg.Driver))

	if !migrate {
		return db, nil
	}

	if err := Migrate(db); err != nil {
		return nil, errors.Wrap(err, "migrate")
	}
	logger.Log.Info("Database migration completed")

	if err := Seed(db, seedFile); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models...)
}
