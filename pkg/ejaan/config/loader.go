package config

import (
	"fmt"

	"github.com/cognicore/ejaan/pkg/ejaan/affix"
)

// Loader loads the configuration files and constructs components
type Loader struct {
	ConfigPath  string
	CatalogPath string // overrides Config.CatalogPath when set
}

// Components holds all loaded configuration components
type Components struct {
	Config  *Config
	Catalog *affix.Catalog
}

// Load reads the configuration files and returns initialized components
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	if l.ConfigPath != "" {
		cfg, err := Load(l.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		comp.Config = cfg
	} else {
		comp.Config = Default()
	}

	catalogPath := l.CatalogPath
	if catalogPath == "" {
		catalogPath = comp.Config.CatalogPath
	}
	if catalogPath != "" {
		cat, err := affix.LoadCatalog(catalogPath)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		comp.Catalog = cat
	} else {
		comp.Catalog = affix.Default()
	}

	return comp, nil
}
