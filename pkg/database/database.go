package database

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"registry-service/internal/model"
	"registry-service/pkg/config"
)

var DB *gorm.DB

// InitDB opens the database connection, runs migrations and seeds the
// bootstrap account. PostgreSQL is used when DATABASE_URL is set; otherwise
// the service falls back to an embedded SQLite file.
func InitDB(cfg *config.Config) error {
	var err error

	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(cfg.DB.LogLevel),
	}

	if cfg.DB.URL != "" {
		// PreferSimpleProtocol prevents "prepared statement already exists"
		// errors behind connection poolers.
		pgConfig := postgres.Config{
			DSN:                  cfg.DB.URL,
			PreferSimpleProtocol: true,
		}
		DB, err = gorm.Open(postgres.New(pgConfig), gormConfig)
	} else {
		DB, err = gorm.Open(sqlite.Open(cfg.DB.SQLitePath), gormConfig)
	}
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	if cfg.DB.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	}
	if cfg.DB.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	}
	if cfg.DB.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)
	}

	if err := DB.AutoMigrate(&model.User{}, &model.Record{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := seedBootstrapUser(DB, cfg); err != nil {
		return fmt.Errorf("failed to seed bootstrap user: %w", err)
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// seedBootstrapUser creates the fixed seed account once. Existing accounts
// are never touched.
func seedBootstrapUser(db *gorm.DB, cfg *config.Config) error {
	var existing model.User
	result := db.Where("username = ?", cfg.Bootstrap.Username).First(&existing)
	if result.Error == nil {
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Bootstrap.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := model.User{
		Username:     cfg.Bootstrap.Username,
		PasswordHash: string(hash),
	}
	return db.Create(&user).Error
}
