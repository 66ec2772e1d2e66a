package store

import (
	"context"

	"github.com/cognicore/ejaan/pkg/ejaan/report"
)

// Store persists the dictionary word list and saved check reports.
type Store interface {
	Close() error

	// Dictionary
	Words(ctx context.Context) ([]string, error)
	AddWords(ctx context.Context, words []string) (int, error)
	RemoveWord(ctx context.Context, word string) error
	CountWords(ctx context.Context) (int, error)

	// Reports
	SaveReport(ctx context.Context, r report.Report) error
	GetReport(ctx context.Context, id string) (report.Report, error)
}
