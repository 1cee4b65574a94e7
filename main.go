package main

import (
	"go.uber.org/zap"

	"github.com/MathiasEthan/RaAI/internal/api"
	"github.com/MathiasEthan/RaAI/internal/cache"
	"github.com/MathiasEthan/RaAI/internal/config"
	"github.com/MathiasEthan/RaAI/internal/database"
	logger "github.com/MathiasEthan/RaAI/internal/logging"
	"github.com/MathiasEthan/RaAI/internal/models"
	"github.com/MathiasEthan/RaAI/internal/router"
	"github.com/MathiasEthan/RaAI/internal/services"
	"github.com/MathiasEthan/RaAI/internal/store"
)

func main() {
	// Configuration loads before the real logger exists, so bootstrap
	// with a plain console logger.
	bootLog, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize bootstrap logger: " + err.Error())
	}
	if err := config.Init(".", bootLog); err != nil {
		bootLog.Fatal("Failed to load configuration", zap.Error(err))
	}

	log, err := logger.Init(".", config.Conf.Logging)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	// Client-side state: database-backed when one is configured,
	// in-memory otherwise.
	var appStore store.Store
	useDB := config.Conf.Database.Enabled
	if useDB {
		database.Init(log)
		appStore = store.NewGormStore(database.DB)
	} else {
		log.Warn("Database disabled, state will not survive restarts")
		appStore = store.NewMemStore()
	}

	client := api.New(config.Conf.Backend.BaseURL, config.Conf.Backend.Timeout, appStore)

	appCache := cache.New(config.Conf.Redis, log)

	// Load the daily check-in questionnaire at startup
	questionnaire, err := models.LoadQuestionnaire(config.Conf.Checkin.QuestionsFile)
	if err != nil {
		log.Fatal("Failed to load check-in questionnaire", zap.Error(err))
	}

	health := services.NewHealthMonitor(log, client, 0)
	health.Start()

	reminder := services.NewReminder(log, appStore)
	reminder.Start()

	r := router.Setup(router.Deps{
		Log:           log,
		Questionnaire: questionnaire,
		Store:         appStore,
		Client:        client,
		Cache:         appCache,
		Health:        health,
		UseDB:         useDB,
	})

	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}
