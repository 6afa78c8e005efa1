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

	"DataLens/internal/collector"
	"DataLens/internal/config"
	"DataLens/internal/dashboard"
	"DataLens/internal/dataset"
	"DataLens/internal/scheduler"
	"DataLens/internal/store"
	"DataLens/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] DataLens starting...")

	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] no .env file found")
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	gin.SetMode(cfg.Server.Mode)

	// Init fetcher
	var fetcher collector.Fetcher
	switch cfg.Quotes.Provider {
	case config.ProviderFinanceGo:
		fetcher = collector.NewFinanceGoFetcher()
	default:
		fetcher = collector.NewYahooFetcher(cfg.Quotes.BaseURL, cfg.Proxy, cfg.Quotes.Timeout)
	}
	log.Printf("[INFO] quote source: %s (%s)", fetcher.Name(), cfg.Quotes.Symbol)

	// Init upload store
	var uploads store.Store
	if cfg.Database.SQLitePath != "" {
		ss, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite store failed, using memory: %v", err)
			uploads = store.NewMemoryStore()
		} else {
			uploads = ss
		}
	} else {
		uploads = store.NewMemoryStore()
	}
	defer uploads.Close()

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, uploads, cfg.Uploads.TTL)
	if err := sched.Register(cfg.Uploads.PurgeCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	renderer := &dashboard.Renderer{
		Quotes:    collector.NewCollector(fetcher, cfg.Quotes.Symbol),
		Tables:    dataset.NewLoader(cfg.Dataset.SampleURL, cfg.Proxy, cfg.Quotes.Timeout),
		Uploads:   uploads,
		QuoteFile: cfg.Quotes.DownloadName,
	}
	router, err := web.NewRouter(&web.Handler{
		Renderer: renderer,
		Uploads:  uploads,
		MaxBytes: cfg.Uploads.MaxBytes,
	})
	if err != nil {
		log.Fatalf("[FATAL] init router: %v", err)
	}

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: router}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()
	log.Printf("[INFO] DataLens is listening on %s. Press Ctrl+C to stop.", cfg.Server.Addr)

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	shutdownCtx, done := context.WithTimeout(ctx, 10*time.Second)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] http shutdown: %v", err)
	}
	cancel()
	log.Println("[INFO] DataLens stopped")
}
