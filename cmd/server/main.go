package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/fortunesim/fortune-simulator-backend/internal/api"
	"github.com/fortunesim/fortune-simulator-backend/internal/config"
	"github.com/fortunesim/fortune-simulator-backend/internal/database"
	"github.com/fortunesim/fortune-simulator-backend/internal/generator"
	"github.com/fortunesim/fortune-simulator-backend/internal/service"
	"github.com/fortunesim/fortune-simulator-backend/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	// Snapshot export needs a key; generate an ephemeral one when unset
	// so export works within a single process lifetime.
	exportKey := cfg.ExportKey
	if exportKey == "" {
		exportKey, err = store.GenerateExportKey()
		if err != nil {
			log.Fatalf("Failed to generate export key: %v", err)
		}
		log.Println("EXPORT_KEY not set; using an ephemeral key, export tokens will not survive a restart")
	}
	exporter, err := store.NewExporter(exportKey)
	if err != nil {
		log.Fatalf("Failed to initialize exporter: %v", err)
	}

	saves := store.NewSaveRepository(db)
	gen := generator.NewClient(cfg.Generator.APIKey, cfg.Generator.BaseURL, cfg.Generator.Model,
		rand.New(rand.NewSource(time.Now().UnixNano())))
	if !gen.Enabled() {
		log.Println("GENERATOR_API_KEY not set; serving built-in fallback events")
	}

	systemService := service.NewSystemService(db)
	gameService := service.NewGameService(saves, gen, exporter)

	// Create router
	router := api.NewRouter(systemService, gameService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Periodic autosave of sessions with unsaved progress
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Autosave.Spec, func() {
		saved, err := gameService.AutosaveAll()
		if err != nil {
			log.Printf("Autosave: %v", err)
		}
		if saved > 0 {
			log.Printf("Autosaved %d session(s)", saved)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule autosave: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		scheduler.Start()
		<-ctx.Done()

		log.Println("Shutting down server...")
		<-scheduler.Stop().Done()

		// Final save sweep before the process exits.
		if _, err := gameService.AutosaveAll(); err != nil {
			log.Printf("Final autosave: %v", err)
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server exited")
}
