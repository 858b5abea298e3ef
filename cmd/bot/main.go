// cmd/bot/main.go
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"stockline/internal/config"
	"stockline/internal/interpreter"
	"stockline/internal/inventory"
	"stockline/internal/line"
	"stockline/internal/session"
	"stockline/internal/storage"
	"stockline/internal/telemetry"
)

func main() {
	configPath := flag.String("config", os.Getenv("STOCKLINE_CONFIG"), "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.ChannelSecret == "" || cfg.ChannelToken == "" {
		log.Fatal("LINE_CHANNEL_SECRET and LINE_CHANNEL_ACCESS_TOKEN must be set")
	}

	ctx := context.Background()
	shutdown, err := telemetry.Init(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	store := storage.NewStore(cfg.InventoryFile)
	audit := storage.NewAuditLog(cfg.AuditFile)
	engine := inventory.NewService(store, audit)
	sessions := session.NewManager()
	interp := interpreter.New(engine, sessions, audit)
	apiBase := cfg.LineAPIBase
	if apiBase == "" {
		apiBase = line.DefaultAPIBase
	}
	client := line.NewClient(apiBase, cfg.ChannelToken)
	handler := line.NewHandler(cfg.ChannelSecret, interp, client)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Mount("/", handler.Routes())

	log.Printf("stockline listening on %s", cfg.ListenAddr)
	log.Fatal(http.ListenAndServe(cfg.ListenAddr, router))
}
