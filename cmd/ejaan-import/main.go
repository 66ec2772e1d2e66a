package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/cognicore/ejaan/internal/app"
	"github.com/cognicore/ejaan/internal/wordlist"
	"github.com/cognicore/ejaan/pkg/ejaan/lexicon"
	"github.com/cognicore/ejaan/pkg/ejaan/store/sqlite"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("ejaan-import", flag.ContinueOnError)
	var (
		dbPath = fs.String("db", app.GetEnv("EJAAN_DB", ""), "SQLite dictionary database (required)")
		table  = fs.String("table", "kbbi", "Dictionary table")
		column = fs.String("column", "kata", "Word column")
		format = fs.String("format", "list", "Input format: list (one word per line) or yaml")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *dbPath == "" {
		return errors.New("--db required")
	}
	if fs.NArg() == 0 {
		return errors.New("at least one word file required")
	}

	st, err := sqlite.OpenSQLite(ctx, *dbPath, sqlite.Config{Table: *table, Column: *column})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	total := 0
	for _, path := range fs.Args() {
		var words []string
		switch *format {
		case "yaml":
			lex, err := lexicon.LoadFromYAML(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			words = lex.All()
		default:
			words, err = wordlist.Load(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
		}

		added, err := st.AddWords(ctx, words)
		if err != nil {
			return fmt.Errorf("import %s: %w", path, err)
		}
		log.Printf("%s: %d words read, %d new", path, len(words), added)
		total += added
	}

	count, err := st.CountWords(ctx)
	if err != nil {
		return err
	}
	log.Printf("Imported %d new words; dictionary now has %d", total, count)
	return nil
}
