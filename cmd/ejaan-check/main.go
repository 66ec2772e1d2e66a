package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/cognicore/ejaan/internal/app"
	"github.com/cognicore/ejaan/internal/textsource"
	"github.com/cognicore/ejaan/pkg/ejaan/config"
	"github.com/cognicore/ejaan/pkg/ejaan/report"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

// run returns instead of exiting so the engine is always closed.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("ejaan-check", flag.ContinueOnError)
	var (
		configPath  = fs.String("config", "", "Config file (optional)")
		catalogPath = fs.String("catalog", "", "Affix catalog file (optional)")
		wordsPath   = fs.String("words", "", "Word list file, one word per line")
		dbPath      = fs.String("db", app.GetEnv("EJAAN_DB", ""), "SQLite dictionary database")
		redisAddr   = fs.String("redis", app.GetEnv("REDIS_ADDR", ""), "Redis address for custom words")
		outPath     = fs.String("out", "", "Output file (default stdout)")
		format      = fs.String("format", "text", "Output format: text or json")
		workers     = fs.Int("workers", 0, "Parallel workers (overrides config)")
	)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: ejaan-check [flags] <file.txt|file.html|file.docx>\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}
	if *format != "text" && *format != "json" {
		return fmt.Errorf("--format must be text or json, got %q", *format)
	}
	docPath := fs.Arg(0)

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

	a, err := app.Open(ctx, comp)
	if err != nil {
		return fmt.Errorf("open engine: %w", err)
	}
	defer a.Close()

	text, err := textsource.Extract(docPath)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	r, err := a.Report(ctx, filepath.Base(docPath), text)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}
	log.Printf("checked %d words, %d distinct misspellings", r.Total, len(r.Entries))

	out := stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	if *format == "json" {
		err = report.WriteJSON(out, r)
	} else {
		err = report.WriteText(out, r)
	}
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
