// Package memory is an in-process ReportWriter used by tests and the
// memory data backend.
package memory

import (
	"context"
	"sync"

	"boxpay/internal/sheets"
)

type Store struct {
	mu     sync.Mutex
	sheets map[string][][]any
}

var _ sheets.ReportWriter = (*Store)(nil)

func New() *Store {
	return &Store{sheets: make(map[string][][]any)}
}

func (s *Store) WriteYear(_ context.Context, year string, rows [][]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([][]any, len(rows))
	for i, row := range rows {
		copied[i] = append([]any(nil), row...)
	}
	s.sheets[year] = copied
	return nil
}

// Rows returns the last export for year, or nil if none happened.
func (s *Store) Rows(year string) [][]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sheets[year]
}
