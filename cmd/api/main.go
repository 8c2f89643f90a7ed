package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"scenario-builder/internal/api/handlers"
	"scenario-builder/internal/api/middleware"
	"scenario-builder/internal/config"
	"scenario-builder/internal/options"
	"scenario-builder/internal/scenario"
	"scenario-builder/internal/submit"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "scenario-builder",
	})

	cfg := config.Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			logger.Fatal("failed to load config", "path", path, "error", err)
		}
		cfg = loaded
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	// One page session per process. The session's form, structure and edit
	// state all live and die with the server.
	provider := options.NewClient(cfg.Provider.APIKey, cfg.Provider.BaseURL, logger)
	provider.Client.Timeout = time.Duration(cfg.Provider.TimeoutSeconds) * time.Second
	coordinator := submit.NewCoordinator(
		cfg.Submission.URL,
		time.Duration(cfg.Submission.TimeoutSeconds)*time.Second,
		logger,
	)
	session := scenario.NewSession(
		provider,
		coordinator,
		&scenario.LogNavigator{Logger: logger},
		&scenario.LogViewDataSink{Logger: logger},
		logger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	session.Start(ctx)
	logger.Info("session started", "session_id", session.ID, "provider", cfg.Provider.BaseURL)

	settingsHandler := handlers.NewSettingsHandler(session)
	formHandler := handlers.NewFormHandler(session)
	scenarioHandler := handlers.NewScenarioHandler(session)
	viewHandler := handlers.NewViewHandler(session)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "session_id": session.ID})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/settings", settingsHandler.GetSettings)
		api.POST("/settings/:key/reload", settingsHandler.ReloadCategory)
		api.GET("/features", settingsHandler.GetFeatures)

		api.GET("/form", formHandler.GetForm)
		api.PUT("/form/fields", formHandler.SetField)
		api.POST("/starting-values", formHandler.ReceiveStartingValues)

		api.POST("/scenarios", scenarioHandler.CreateScenario)
		api.POST("/view", viewHandler.ShowRow)
	}

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("starting API server", "addr", addr)
	if err := router.Run(addr); err != nil {
		logger.Fatal("server exited", "error", err)
	}
}
