package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"signalscout-engine/internal/config"
	"signalscout-engine/internal/domain"
	"signalscout-engine/internal/events"
	"signalscout-engine/internal/httpapi"
	"signalscout-engine/internal/plan"
	"signalscout-engine/internal/research"
	"signalscout-engine/internal/scheduler"
	"signalscout-engine/internal/store"

	"github.com/gofrs/flock"
)

func main() {
	var (
		serve = flag.Bool("serve", false, "run the HTTP API")
		query = flag.String("query", "", "run one research pass for this query and print JSON")
	)
	flag.Parse()

	dataDir := os.Getenv("SIGNALSCOUT_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// one engine per data dir; two writers on the same sqlite file is a bad time
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		log.Fatalf("lock: %v", err)
	}
	if !ok {
		log.Fatalf("another engine instance is already using %s", dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	cfgPath, err := config.EnsureUserConfig(dataDir)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatal(err)
	}

	db, err := store.Open(filepath.Join(dataDir, "signalscout.db"))
	if err != nil {
		log.Fatalf("store open failed: %v", err)
	}
	defer func() { _ = db.Close() }()

	engine := buildEngine(cfg)
	companies := make([]domain.CompanyRef, 0, len(cfg.Companies))
	for _, co := range cfg.Companies {
		companies = append(companies, domain.CompanyRef{Name: co.Name, Domain: co.Domain})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case *query != "":
		runOnce(ctx, engine, db, *query, companies)
	case *serve:
		runServer(ctx, cfg, cfgPath, engine, db, companies)
	default:
		fmt.Fprintln(os.Stderr, "usage: engine -serve | -query \"...\"")
		os.Exit(2)
	}
}

func runOnce(ctx context.Context, engine *research.Engine, db *store.DB, query string, companies []domain.CompanyRef) {
	result := engine.RunResearch(ctx, query, companies, func(ev plan.ProgressEvent) {
		log.Printf("[%s] %s %s (%d%%)", ev.StepID, ev.Category, ev.Description, ev.Percent)
	})

	saveCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.SaveRun(saveCtx, result); err != nil {
		log.Printf("[engine] save run failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(result)
}

func runServer(ctx context.Context, cfg config.Config, cfgPath string, engine *research.Engine, db *store.DB, companies []domain.CompanyRef) {
	hub := events.NewHub()

	var cfgVal atomic.Value
	cfgVal.Store(cfg)

	deps := httpapi.Deps{
		DB:          db,
		Hub:         hub,
		CfgVal:      &cfgVal,
		CfgPath:     cfgPath,
		Companies:   companies,
		RunResearch: engine.RunResearch,
	}

	handler := httpapi.Chain(
		httpapi.NewMux(deps),
		httpapi.Recover,
		httpapi.RequestID,
		httpapi.Cors,
		httpapi.AccessLog,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf("127.0.0.1:%d", cfg.App.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if cfg.Watch.Enabled {
		go scheduler.Every(ctx, time.Duration(cfg.Watch.IntervalMinutes)*time.Minute, "watch",
			func(ctx context.Context) error {
				result := engine.RunResearch(ctx, cfg.Watch.Query, companies, func(ev plan.ProgressEvent) {
					hub.Publish(events.Make("", events.TypeStepProgress, ev))
				})
				hub.Publish(events.Make(result.ID, events.TypeRunFinished, map[string]any{
					"candidates": len(result.Candidates),
				}))
				saveCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				return db.SaveRun(saveCtx, result)
			})
	}

	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
	}()

	log.Printf("[engine] listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
