// Package mis is the read side of the recruiter activity rollup: fetching the
// MIS summary, tracking local expand/collapse state, and fetching daily
// reports.
package mis

import (
	"context"
	"fmt"
	"sync"

	"github.com/hireova/screening-desk/internal/models"
)

// Service is the slice of the API client the aggregator needs.
type Service interface {
	MISSummary(ctx context.Context) ([]models.RecruiterSummaryRow, error)
	DailyReport(ctx context.Context, date string) ([]models.ReportRow, error)
}

// Aggregator holds the fetched summary and the purely-local expansion state.
// All computation happens server-side; this type only stores and decodes.
type Aggregator struct {
	mu        sync.Mutex
	svc       Service
	rows      []models.RecruiterSummaryRow
	rowOpen   map[string]bool
	entryOpen map[string]bool
	busy      bool
}

// NewAggregator creates an aggregator over the given service.
func NewAggregator(svc Service) *Aggregator {
	return &Aggregator{
		svc:       svc,
		rowOpen:   map[string]bool{},
		entryOpen: map[string]bool{},
	}
}

// Fetch replaces the summary wholesale and resets all expansion state, so
// keys from a previous fetch never silently apply to new data. Concurrent
// fetches are rejected, not queued.
func (a *Aggregator) Fetch(ctx context.Context) error {
	a.mu.Lock()
	if a.busy {
		a.mu.Unlock()
		return fmt.Errorf("a summary fetch is already in progress")
	}
	a.busy = true
	a.mu.Unlock()

	rows, err := a.svc.MISSummary(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.busy = false
	if err != nil {
		return err
	}
	a.rows = rows
	a.rowOpen = map[string]bool{}
	a.entryOpen = map[string]bool{}
	return nil
}

// Rows returns the current summary in service order.
func (a *Aggregator) Rows() []models.RecruiterSummaryRow {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]models.RecruiterSummaryRow, len(a.rows))
	copy(out, a.rows)
	return out
}

// ToggleRow flips the history panel of one recruiter's row. No network
// effect.
func (a *Aggregator) ToggleRow(recruiter string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rowOpen[recruiter] = !a.rowOpen[recruiter]
}

// RowExpanded reports whether a recruiter's history panel is open.
func (a *Aggregator) RowExpanded(recruiter string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rowOpen[recruiter]
}

// ToggleEntry flips the detail panel of one history entry, keyed by the
// (row, entry) pair independently of the row's own expansion.
func (a *Aggregator) ToggleEntry(recruiter string, entry int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	key := entryKey(recruiter, entry)
	a.entryOpen[key] = !a.entryOpen[key]
}

// EntryExpanded reports whether a history entry's detail panel is open.
func (a *Aggregator) EntryExpanded(recruiter string, entry int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.entryOpen[entryKey(recruiter, entry)]
}

// DailyReport fetches the per-recruiter totals for one date. It does not
// touch the summary or its expansion state.
func (a *Aggregator) DailyReport(ctx context.Context, date string) ([]models.ReportRow, error) {
	return a.svc.DailyReport(ctx, date)
}

// Reset drops the summary and expansion state. Called on logout.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rows = nil
	a.rowOpen = map[string]bool{}
	a.entryOpen = map[string]bool{}
}

func entryKey(recruiter string, entry int) string {
	return fmt.Sprintf("%s\x00%d", recruiter, entry)
}
