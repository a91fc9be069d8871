package main

import (
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"meal-planner/internal/config"
	"meal-planner/internal/database"
	"meal-planner/internal/meal"
	"meal-planner/internal/planner"
	"meal-planner/internal/telegram"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.NewFromEnv()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	if err := cfg.ValidateForBot(); err != nil {
		logger.Fatal("incomplete bot configuration", zap.Error(err))
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	service := planner.NewService(meal.NewRepository(db.SQL), planner.NewPlanRepository(db.SQL))

	bot, err := telegram.NewBot(cfg, service, logger)
	if err != nil {
		logger.Fatal("failed to initialize telegram bot", zap.Error(err))
	}
	bot.RegisterHandlers()

	logger.Info("listening for telegram updates", zap.String("addr", cfg.ListenAddr))
	if err := http.ListenAndServe(cfg.ListenAddr, nil); err != nil {
		logger.Fatal("http server stopped", zap.Error(err))
	}
}
