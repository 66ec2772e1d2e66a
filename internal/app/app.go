// Package app wires configuration into a running engine for the binaries.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/cognicore/ejaan/pkg/ejaan"
	"github.com/cognicore/ejaan/pkg/ejaan/config"
	"github.com/cognicore/ejaan/pkg/ejaan/customdict"
	"github.com/cognicore/ejaan/pkg/ejaan/internalerr"
	"github.com/cognicore/ejaan/pkg/ejaan/source"
	"github.com/cognicore/ejaan/pkg/ejaan/store/sqlite"
)

// App is an engine plus the connections it owns.
type App struct {
	*ejaan.Engine
	redis *redis.Client
}

// Open builds the engine described by comp. Enabled sources are read in this
// order: sqlite dictionary table, word list file, YAML list, inline extra
// words, Redis custom dictionary.
func Open(ctx context.Context, comp *config.Components) (*App, error) {
	cfg := comp.Config
	cc, err := cfg.CheckerConfig()
	if err != nil {
		return nil, err
	}

	a := &App{}
	opts := ejaan.Options{
		Catalog:  comp.Catalog,
		Checker:  cc,
		OnReload: logReload,
	}

	src := cfg.Sources
	if src.SQLitePath != "" {
		st, err := sqlite.OpenSQLite(ctx, src.SQLitePath, sqlite.Config{Table: src.Table, Column: src.Column})
		if err != nil {
			return nil, fmt.Errorf("open dictionary database: %w", err)
		}
		opts.Store = st
		opts.Sources = append(opts.Sources, source.FromStore(st))
	}
	if src.WordsPath != "" {
		opts.Sources = append(opts.Sources, source.FromFile(src.WordsPath))
	}
	if src.YAMLPath != "" {
		opts.Sources = append(opts.Sources, source.FromYAML(src.YAMLPath))
	}
	if len(src.Extra) > 0 {
		opts.Sources = append(opts.Sources, source.Static(src.Extra))
	}
	if src.RedisAddr != "" {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     src.RedisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       GetEnvInt("REDIS_DB", 0),
		})
		opts.Custom = customdict.NewRedis(a.redis, src.RedisKey)
		opts.Sources = append(opts.Sources, source.FromCustom(opts.Custom))
	}

	if len(opts.Sources) == 0 {
		log.Printf("warning: no dictionary source configured")
	}

	eng, err := ejaan.New(ctx, opts)
	if err != nil {
		if opts.Store != nil {
			opts.Store.Close()
		}
		if a.redis != nil {
			a.redis.Close()
		}
		return nil, err
	}
	a.Engine = eng
	return a, nil
}

// Close releases the engine store and the Redis client.
func (a *App) Close() error {
	var errs []error
	if a.Engine != nil {
		errs = append(errs, a.Engine.Close())
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	return errors.Join(errs...)
}

func logReload(ev ejaan.ReloadEvent) {
	switch {
	case ev.Kept:
		log.Printf("dictionary refresh failed, keeping %d words: %v", ev.Words, ev.Err)
	case errors.Is(ev.Err, internalerr.ErrEmptyDictionary):
		log.Printf("warning: dictionary is empty, every word will be flagged: %v", ev.Err)
	case ev.Err != nil:
		log.Printf("dictionary loaded with errors (%d words): %v", ev.Words, ev.Err)
	default:
		log.Printf("dictionary loaded: %d words", ev.Words)
	}
}

// GetEnv returns the environment value for key, or def when unset.
func GetEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

// GetEnvInt is GetEnv for integers; unparsable values fall back to def.
func GetEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return def
}
