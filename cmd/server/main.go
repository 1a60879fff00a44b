package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/spf13/cobra"

	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/config"
	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/handler"
	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/infrastructure/gemini"
	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/infrastructure/smartsearch"
	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/router"
	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/usecase"
	"github.com/kellenmace/wpe-vector-db-ai-chatbot/pkg/logger"
)

var (
	cfgFile string
	version = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:   "chatbot-server",
	Short: "Streaming chat API server with vector-search grounding",
	Long: `chatbot-server is an HTTP API server built on the Hertz framework.
It answers chat requests over SSE, grounding each answer in documents
retrieved from a Smart Search vector database and streamed from the
Gemini generation API.`,
	Version: version,
	Run:     runServer,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "configs/config.yaml", "path to config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func runServer(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.Setup(cfg.Log); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	slog.Info("chatbot server starting",
		"version", version,
		"config", cfgFile,
	)

	// Route Hertz framework logs through slog
	hlog.SetLogger(logger.NewHertzSlogAdapter(slog.Default()))

	// Missing credentials are a warning, not a startup failure: requests
	// degrade per the error frame contract instead.
	if cfg.Generator.APIKey == "" {
		slog.Warn("generator API key not configured, chat requests will fail")
	}
	if cfg.SmartSearch.URL == "" || cfg.SmartSearch.AccessToken == "" {
		slog.Warn("smart search not configured, answers will lack database context")
	}

	retriever, err := smartsearch.NewClient(cfg.SmartSearch, slog.Default())
	if err != nil {
		slog.Error("failed to create smart search client", "error", err)
		os.Exit(1)
	}

	generator, err := gemini.NewClient(cfg.Generator, slog.Default())
	if err != nil {
		slog.Error("failed to create generator client", "error", err)
		os.Exit(1)
	}

	chatUsecase := usecase.NewChatUsecase(retriever, generator, cfg.Generator.APIKey != "", slog.Default())
	chatHandler := handler.NewChatHandler(chatUsecase, slog.Default())
	healthHandler := handler.NewHealthHandler(cfg)

	h := server.Default(
		server.WithHostPorts(cfg.GetServerAddr()),
		server.WithReadTimeout(cfg.Server.ReadTimeout),
		server.WithWriteTimeout(cfg.Server.WriteTimeout),
		server.WithMaxRequestBodySize(cfg.Server.MaxRequestBodySize*1024*1024),
	)

	router.Setup(h, chatHandler, healthHandler)

	slog.Info("server started",
		"address", cfg.GetServerAddr(),
		"mode", cfg.Server.Mode,
	)

	go func() {
		if err := h.Run(); err != nil {
			slog.Error("server run failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := h.Shutdown(ctx); err != nil {
		slog.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
