package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cognicore/ejaan/internal/app"
	"github.com/cognicore/ejaan/pkg/ejaan/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		stop()
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("ejaan-server", flag.ContinueOnError)
	var (
		configPath  = fs.String("config", app.GetEnv("EJAAN_CONFIG", ""), "Config file (optional)")
		catalogPath = fs.String("catalog", "", "Affix catalog file (optional)")
		wordsPath   = fs.String("words", "", "Word list file")
		dbPath      = fs.String("db", app.GetEnv("EJAAN_DB", ""), "SQLite dictionary database")
		redisAddr   = fs.String("redis", app.GetEnv("REDIS_ADDR", ""), "Redis address for custom words")
		addr        = fs.String("addr", app.GetEnv("HTTP_ADDR", ":8080"), "Listen address")
		workers     = fs.Int("workers", app.GetEnvInt("EJAAN_WORKERS", 0), "Parallel workers per request")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	loader := config.Loader{ConfigPath: *configPath, CatalogPath: *catalogPath}
	comp, err := loader.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if *wordsPath != "" {
		comp.Config.Sources.WordsPath = *wordsPath
	}
	if *dbPath != "" {
		comp.Config.Sources.SQLitePath = *dbPath
	}
	if *redisAddr != "" {
		comp.Config.Sources.RedisAddr = *redisAddr
	}
	if *workers > 0 {
		comp.Config.Workers = *workers
	}
	interval, err := comp.Config.Refresh()
	if err != nil {
		return err
	}

	a, err := app.Open(ctx, comp)
	if err != nil {
		return fmt.Errorf("open engine: %w", err)
	}
	defer a.Close()

	go a.Run(ctx, interval)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           (&server{engine: a.Engine}).routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s (refresh every %s)", *addr, interval)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
