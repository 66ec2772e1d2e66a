// Package ejaan checks Indonesian spelling against a refreshable dictionary.
//
// An Engine gathers words from its sources into an immutable lexicon snapshot,
// validates tokens morphologically against it and ranks suggestions for the
// misses. Reload replaces the snapshot; in-flight checks keep the one they
// started with.
package ejaan

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cognicore/ejaan/pkg/ejaan/affix"
	"github.com/cognicore/ejaan/pkg/ejaan/checker"
	"github.com/cognicore/ejaan/pkg/ejaan/customdict"
	"github.com/cognicore/ejaan/pkg/ejaan/internalerr"
	"github.com/cognicore/ejaan/pkg/ejaan/lexicon"
	"github.com/cognicore/ejaan/pkg/ejaan/report"
	"github.com/cognicore/ejaan/pkg/ejaan/source"
	"github.com/cognicore/ejaan/pkg/ejaan/store"
)

// Engine is the spell checking facade
type Engine struct {
	sources  []source.Source
	catalog  *affix.Catalog
	cfg      checker.Config
	store    store.Store
	custom   *customdict.Dict
	onReload func(ReloadEvent)

	holder   *lexicon.Holder
	reloadMu sync.Mutex
	reports  *report.Builder
	now      func() time.Time
}

// Options configures an Engine
type Options struct {
	Sources []source.Source
	Catalog *affix.Catalog // nil selects affix.Default()
	Checker checker.Config
	Store   store.Store      // optional: report persistence, word fallback for AddWord
	Custom  *customdict.Dict // optional: target of AddWord/RemoveWord
	// OnReload is called after every reload, including the one made by New.
	OnReload func(ReloadEvent)
}

// ReloadEvent describes the outcome of one reload.
type ReloadEvent struct {
	Words int
	Kept  bool // sources failed and the previous snapshot stayed in place
	Err   error
}

// New creates an Engine and loads the first snapshot. Source failures do not
// fail New; they are reported through Options.OnReload and leave whatever
// could be gathered (possibly nothing) in place.
func New(ctx context.Context, opts Options) (*Engine, error) {
	cat := opts.Catalog
	if cat == nil {
		cat = affix.Default()
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		sources:  opts.Sources,
		catalog:  cat,
		cfg:      opts.Checker,
		store:    opts.Store,
		custom:   opts.Custom,
		onReload: opts.OnReload,
		holder:   lexicon.NewHolder(nil),
		reports:  report.NewBuilder(),
		now:      time.Now,
	}
	e.Reload(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e, nil
}

// Close releases the store, if any.
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}

// Reload gathers words from every source and installs a new snapshot.
//
// When a source fails and a non-empty snapshot is already installed, the old
// snapshot is kept. Without one, whatever was gathered is installed. An empty
// result is reported as ErrEmptyDictionary but still installed.
func (e *Engine) Reload(ctx context.Context) (int, error) {
	e.reloadMu.Lock()
	defer e.reloadMu.Unlock()

	words, err := source.Merge(ctx, e.sources...)
	prev := e.holder.Current()

	if err != nil && !prev.Empty() {
		e.notify(ReloadEvent{Words: prev.Len(), Kept: true, Err: err})
		return prev.Len(), err
	}

	lex := prev.Refresh(words)
	e.holder.Swap(lex)
	if lex.Empty() {
		err = errors.Join(internalerr.ErrEmptyDictionary, err)
	}
	e.notify(ReloadEvent{Words: lex.Len(), Err: err})
	return lex.Len(), err
}

func (e *Engine) notify(ev ReloadEvent) {
	if e.onReload != nil {
		e.onReload(ev)
	}
}

// Run reloads every interval until ctx is done. A non-positive interval
// disables refreshing and Run just waits for ctx.
func (e *Engine) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// failures are reported through OnReload
			e.Reload(ctx)
		}
	}
}

// Lexicon returns the snapshot in effect.
func (e *Engine) Lexicon() *lexicon.Lexicon {
	return e.holder.Current()
}

// Stats describes the snapshot in effect.
func (e *Engine) Stats() lexicon.LexiconStats {
	return e.holder.Current().Stats()
}

func (e *Engine) newChecker() *checker.Checker {
	return checker.New(e.holder.Current(), e.catalog, e.cfg)
}

// Check checks pre-split tokens.
func (e *Engine) Check(ctx context.Context, raw []string) ([]checker.Result, error) {
	return e.newChecker().Check(ctx, raw)
}

// CheckText tokenizes text and checks every word.
func (e *Engine) CheckText(ctx context.Context, text string) ([]checker.Result, error) {
	return e.newChecker().CheckText(ctx, text)
}

// Report checks text and summarizes its misspellings. The report is saved
// when the engine has a store.
func (e *Engine) Report(ctx context.Context, sourceName, text string) (report.Report, error) {
	results, err := e.CheckText(ctx, text)
	if err != nil {
		return report.Report{}, err
	}

	r := e.reports.Build(sourceName, results, e.now())
	if e.store != nil {
		if err := e.store.SaveReport(ctx, r); err != nil {
			return r, fmt.Errorf("save report: %w", err)
		}
	}
	return r, nil
}

// GetReport loads a saved report.
func (e *Engine) GetReport(ctx context.Context, id string) (report.Report, error) {
	if e.store == nil {
		return report.Report{}, fmt.Errorf("no report store: %w", internalerr.ErrStoreUnavailable)
	}
	return e.store.GetReport(ctx, id)
}

// AddWord stores a user word (in the custom dictionary, or the store when
// there is none) and reloads. Reload failures go to OnReload only; the word
// itself was stored.
func (e *Engine) AddWord(ctx context.Context, word string) error {
	switch {
	case e.custom != nil:
		if _, err := e.custom.Add(ctx, word); err != nil {
			return err
		}
	case e.store != nil:
		if _, err := e.store.AddWords(ctx, []string{word}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("no writable dictionary: %w", internalerr.ErrStoreUnavailable)
	}
	e.Reload(ctx)
	return nil
}

// RemoveWord deletes a user word and reloads.
func (e *Engine) RemoveWord(ctx context.Context, word string) error {
	switch {
	case e.custom != nil:
		if err := e.custom.Remove(ctx, word); err != nil {
			return err
		}
	case e.store != nil:
		if err := e.store.RemoveWord(ctx, word); err != nil {
			return err
		}
	default:
		return fmt.Errorf("no writable dictionary: %w", internalerr.ErrStoreUnavailable)
	}
	e.Reload(ctx)
	return nil
}
