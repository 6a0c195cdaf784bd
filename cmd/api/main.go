package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/neuralchat/backend/internal/config"
	"github.com/neuralchat/backend/internal/handler"
	"github.com/neuralchat/backend/internal/model/persona"
	aiService "github.com/neuralchat/backend/internal/service/ai"
	"github.com/neuralchat/backend/internal/service/audit"
	chatService "github.com/neuralchat/backend/internal/service/chat"
	turnService "github.com/neuralchat/backend/internal/service/turn"
	"github.com/neuralchat/backend/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	registry := persona.NewStaticRegistry(persona.Seed())
	snapshot := store.NewFileStore(cfg.Store.SnapshotPath)
	sessions := chatService.NewService(snapshot, registry.List()[0].ID)

	var turns *turnService.Service
	if cfg.AI.Enabled() {
		gateway, err := aiService.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize completion gateway: %v", err)
			log.Println("continuing without chat functionality - check GROQ_API_KEY and model settings")
		} else {
			var notifier *audit.Notifier
			if cfg.Audit.LogURL != "" {
				notifier = audit.NewNotifier(cfg.Audit.LogURL)
				log.Printf("submission audit log enabled, target=%s", cfg.Audit.LogURL)
			}
			turns = turnService.NewService(sessions, registry, gateway, notifier)
			log.Println("completion gateway initialized successfully")
		}
	} else {
		log.Println("GROQ_API_KEY not configured, chat submissions disabled")
	}

	router := handler.NewRouter(registry, sessions, turns)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Neural Chat backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
