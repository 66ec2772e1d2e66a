package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/cognicore/ejaan/internal/wordlist"
	"github.com/cognicore/ejaan/pkg/ejaan/customdict"
	"github.com/cognicore/ejaan/pkg/ejaan/lexicon"
	"github.com/cognicore/ejaan/pkg/ejaan/store"
)

// Source supplies dictionary words.
type Source interface {
	Name() string
	Words(ctx context.Context) ([]string, error)
}

// Merge gathers the words of every source in order. A failing source does not
// stop the others: Merge returns what it gathered together with a joined error
// naming each failed source.
func Merge(ctx context.Context, sources ...Source) ([]string, error) {
	var (
		words []string
		errs  []error
	)
	for _, s := range sources {
		if err := ctx.Err(); err != nil {
			return words, err
		}
		w, err := s.Words(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("source %s: %w", s.Name(), err))
			continue
		}
		words = append(words, w...)
	}
	return words, errors.Join(errs...)
}

type storeSource struct{ st store.Store }

// FromStore reads the dictionary table of st.
func FromStore(st store.Store) Source { return storeSource{st} }

func (s storeSource) Name() string { return "store" }
func (s storeSource) Words(ctx context.Context) ([]string, error) {
	return s.st.Words(ctx)
}

type customSource struct{ d *customdict.Dict }

// FromCustom reads user-added words.
func FromCustom(d *customdict.Dict) Source { return customSource{d} }

func (s customSource) Name() string { return "custom" }
func (s customSource) Words(ctx context.Context) ([]string, error) {
	return s.d.All(ctx)
}

type fileSource struct{ path string }

// FromFile reads a newline separated word list.
func FromFile(path string) Source { return fileSource{path} }

func (s fileSource) Name() string { return "file:" + s.path }
func (s fileSource) Words(context.Context) ([]string, error) {
	return wordlist.Load(s.path)
}

type yamlSource struct{ path string }

// FromYAML reads a `words:` YAML list.
func FromYAML(path string) Source { return yamlSource{path} }

func (s yamlSource) Name() string { return "yaml:" + s.path }
func (s yamlSource) Words(context.Context) ([]string, error) {
	lex, err := lexicon.LoadFromYAML(s.path)
	if err != nil {
		return nil, err
	}
	return lex.All(), nil
}

// Static is a fixed word list.
type Static []string

func (Static) Name() string { return "static" }
func (s Static) Words(context.Context) ([]string, error) {
	out := make([]string, len(s))
	copy(out, s)
	return out, nil
}
