package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/ejaan/pkg/ejaan/checker"
	"github.com/cognicore/ejaan/pkg/ejaan/internalerr"
	"github.com/cognicore/ejaan/pkg/ejaan/similarity"
	"github.com/cognicore/ejaan/pkg/ejaan/suggest"
)

// DefaultRefreshInterval matches the one hour cache lifetime of the hosted dictionary.
const DefaultRefreshInterval = time.Hour

// Config is the checker configuration file.
type Config struct {
	Suggest         Suggest `yaml:"suggest"`
	Workers         int     `yaml:"workers"`
	RefreshInterval string  `yaml:"refresh_interval"` // Go duration, e.g. "30m"
	CatalogPath     string  `yaml:"catalog"`
	Sources         Sources `yaml:"sources"`
}

// Suggest configures suggestion ranking.
type Suggest struct {
	MaxResults    int     `yaml:"max_results"`
	MinSimilarity float64 `yaml:"min_similarity"`
	Metric        string  `yaml:"metric"`
}

// Sources lists where dictionary words come from. Empty fields are disabled.
type Sources struct {
	WordsPath  string   `yaml:"words"`
	YAMLPath   string   `yaml:"yaml"`
	SQLitePath string   `yaml:"sqlite"`
	Table      string   `yaml:"table"`
	Column     string   `yaml:"column"`
	RedisAddr  string   `yaml:"redis_addr"`
	RedisKey   string   `yaml:"redis_key"`
	Extra      []string `yaml:"extra"` // inline words
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Suggest: Suggest{
			MaxResults:    suggest.DefaultMaxResults,
			MinSimilarity: suggest.DefaultMinSimilarity,
			Metric:        similarity.NameRatio,
		},
		Workers:         1,
		RefreshInterval: DefaultRefreshInterval.String(),
		Sources: Sources{
			Table:  "kbbi",
			Column: "kata",
		},
	}
}

// Load reads a YAML config file on top of Default().
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	// zero means "unset" to the ranker
	if c.Suggest.MaxResults <= 0 {
		return fmt.Errorf("%w: suggest.max_results %d must be positive", internalerr.ErrInvalidConfig, c.Suggest.MaxResults)
	}
	if c.Suggest.MinSimilarity <= 0 || c.Suggest.MinSimilarity > 1 {
		return fmt.Errorf("%w: suggest.min_similarity %v outside (0,1]", internalerr.ErrInvalidConfig, c.Suggest.MinSimilarity)
	}
	if c.Suggest.Metric != "" {
		if _, err := similarity.ByName(c.Suggest.Metric); err != nil {
			return err
		}
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d", internalerr.ErrInvalidConfig, c.Workers)
	}
	if _, err := c.Refresh(); err != nil {
		return err
	}
	return nil
}

// Refresh parses RefreshInterval. Empty means DefaultRefreshInterval; zero disables refresh.
func (c *Config) Refresh() (time.Duration, error) {
	if c.RefreshInterval == "" {
		return DefaultRefreshInterval, nil
	}
	d, err := time.ParseDuration(c.RefreshInterval)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: refresh_interval %q", internalerr.ErrInvalidConfig, c.RefreshInterval)
	}
	return d, nil
}

// CheckerConfig resolves the checker settings.
func (c *Config) CheckerConfig() (checker.Config, error) {
	opts := suggest.Options{
		MaxResults:    c.Suggest.MaxResults,
		MinSimilarity: c.Suggest.MinSimilarity,
	}
	if c.Suggest.Metric != "" {
		m, err := similarity.ByName(c.Suggest.Metric)
		if err != nil {
			return checker.Config{}, err
		}
		opts.Metric = m
	}
	return checker.Config{Workers: c.Workers, Ranker: opts}, nil
}
