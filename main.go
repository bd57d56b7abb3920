package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	generativeAI "github.com/FACorreiaa/go-genai-sdk/lib"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/FACorreiaa/loci-planner/internal/app/domain/generator"
	"github.com/FACorreiaa/loci-planner/internal/pkg/config"
	"github.com/FACorreiaa/loci-planner/internal/routes"
	"github.com/FACorreiaa/loci-planner/internal/server"
	"github.com/FACorreiaa/loci-planner/pkg/logger"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Observability.LogLevel,
		zap.String("service", cfg.Observability.ServiceName),
		zap.String("version", version),
	); err != nil {
		return err
	}
	zlog := logger.L()
	defer func() { _ = zlog.Sync() }()

	if cfg.Session.InsecureSecret {
		zlog.Warn("SESSION_SECRET not set, signing session cookies with the development key")
	}

	otelShutdown, appMetrics, err := server.InitObservability(cfg.Observability, version, zlog)
	if err != nil {
		return err
	}

	// The SDK exits the process on an empty key, so only build it when one is set.
	var llm generator.LLMClient
	if cfg.LLM.GeminiAPIKey != "" {
		chatClient, err := generativeAI.NewLLMChatClient(context.Background(), cfg.LLM.GeminiAPIKey)
		if err != nil {
			return err
		}
		llm = chatClient
		zlog.Info("Gemini client ready", zap.String("model", chatClient.ModelName))
	} else {
		zlog.Warn("GEMINI_API_KEY not set, itinerary generation will fail")
	}

	srv := server.New(cfg, zlog)
	defer srv.Close()

	router := server.SetupRouter(routes.Dependencies{
		Config:  cfg,
		Caches:  srv.Caches(),
		LLM:     llm,
		Metrics: appMetrics,
		Logger:  zlog,
	})

	if err := server.SetupAssets(router); err != nil {
		zlog.Error("Failed to setup assets", zap.Error(err))
		return err
	}

	srv.SetRouter(router)

	server.StartPprofServer(cfg.Observability.PprofAddr, zlog)

	httpServer := srv.HTTPServer()

	done := make(chan struct{})
	go server.GracefulShutdown(httpServer, zlog, done, otelShutdown)

	zlog.Info("Server starting",
		zap.String("port", cfg.ServerPort),
		zap.String("itinerary_api", cfg.Itinerary.APIURL),
	)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zlog.Error("Server error", zap.Error(err))
		return err
	}

	<-done
	zlog.Info("Graceful shutdown complete")

	return nil
}
