package database

import (
	"fmt"

	"github.com/gabrielsaDRC/calculadora-banco-imobiliario/internal/config"
	"github.com/gabrielsaDRC/calculadora-banco-imobiliario/internal/logger"
	"github.com/gabrielsaDRC/calculadora-banco-imobiliario/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Log.Fatal("failed to connect to database", zap.Error(err))
	}

	logger.Log.Info("database connected")
	return db
}

func AutoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Session{},
		&models.Player{},
		&models.Transaction{},
	)
	if err != nil {
		logger.Log.Fatal("failed to auto-migrate", zap.Error(err))
	}
	logger.Log.Info("database migrated")
}
