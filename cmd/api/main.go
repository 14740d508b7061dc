package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/murder-house/internal/config"
	"github.com/jwebster45206/murder-house/internal/handlers"
	"github.com/jwebster45206/murder-house/internal/logger"
	"github.com/jwebster45206/murder-house/internal/middleware"
	llmnarrative "github.com/jwebster45206/murder-house/internal/narrative"
	"github.com/jwebster45206/murder-house/internal/services"
	"github.com/jwebster45206/murder-house/internal/session"
	"github.com/jwebster45206/murder-house/internal/storage"
	"github.com/jwebster45206/murder-house/pkg/narrative"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Murder House API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"llm_provider", cfg.LLMProvider,
		"model_name", cfg.ModelName)

	var llmService services.LLMService
	switch cfg.LLMProvider {
	case config.ProviderAnthropic:
		llmService = services.NewAnthropicService(cfg.AnthropicAPIKey, cfg.ModelName, log)
		log.Info("Using Anthropic LLM provider")
	case config.ProviderOpenAI:
		llmService = services.NewChatGPTService(cfg.OpenAIAPIKey, cfg.ModelName, log)
		log.Info("Using OpenAI LLM provider")
	default:
		log.Info("Using static narration")
	}

	var gateway narrative.Gateway = narrative.Static{}
	if llmService != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		if err := llmService.InitModel(ctx, cfg.ModelName); err != nil {
			cancel()
			log.Error("Failed to initialize LLM model", "error", err, "model", cfg.ModelName)
			os.Exit(1)
		}
		cancel()
		gateway = llmnarrative.NewLLMGateway(llmService, cfg.NarrativeTimeout, log)
	}

	store := storage.NewRedisStorage(cfg.RedisURL, cfg.SessionTTL, log)
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()
	if err := store.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}

	manager := session.NewManager(store, gateway, cfg.LockTimeout, log)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(store, cfg.LLMProvider, log)
	mux.Handle("/health", healthHandler)

	sessionHandler := handlers.NewSessionHandler(manager, log)
	mux.Handle("/v1/sessions", sessionHandler)
	mux.Handle("/v1/sessions/", sessionHandler)

	handler := middleware.Logger(middleware.Recover(mux))
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
		// Starting a session waits on two rounds of narration (names, intro).
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.LockTimeout + 2*cfg.NarrativeTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	log.Info("Server exited")
}
