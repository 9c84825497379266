package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"clienthub/internal/assistant"
	"clienthub/internal/audit"
	"clienthub/internal/config"
	"clienthub/internal/portal"
	"clienthub/internal/server"
	"clienthub/internal/store"
)

func main() {
	cfg := config.Load()

	st, err := store.Open(cfg.DBDSN)
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	ctx := context.Background()
	if err := store.SeedAdmin(ctx, st, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	recorder := audit.NewRecorder(st, slog.Default())
	defer recorder.Close()

	var gen assistant.Generator
	if cfg.OpenAIKey != "" {
		gen = assistant.NewOpenAI(cfg.OpenAIKey, cfg.OpenAIModel)
	} else {
		slog.Warn("OPENAI_API_KEY not set, assistant endpoints disabled")
	}

	svc := portal.NewService(st, recorder, gen, slog.Default())
	r := server.NewRouter(cfg, svc)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
