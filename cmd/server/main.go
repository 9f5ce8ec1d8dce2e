package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gabrielsaDRC/calculadora-banco-imobiliario/internal/config"
	"github.com/gabrielsaDRC/calculadora-banco-imobiliario/internal/database"
	"github.com/gabrielsaDRC/calculadora-banco-imobiliario/internal/logger"
	"github.com/gabrielsaDRC/calculadora-banco-imobiliario/internal/routes"

	"go.uber.org/zap"
)

// @title           Banco Imobiliário API
// @version         1.0
// @description     Shared ledger for in-person board-game banking: sessions, players, bank transfers and history
// @BasePath        /

func main() {
	logger.Init()
	defer logger.Log.Sync()

	cfg := config.Load()
	db := database.Connect(cfg)
	database.AutoMigrate(db)

	router := routes.New(db, cfg)

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	logger.Log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("graceful shutdown failed", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Log.Info("server stopped")
}
