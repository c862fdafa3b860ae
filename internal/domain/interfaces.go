package domain

import (
	"context"
	"time"
)

// MarketDataProvider defines the upstream market-data operations the
// scanner depends on.
type MarketDataProvider interface {
	GetQuote(ctx context.Context, symbol, resolution string) (Quote, error)
	GetSupportResistance(ctx context.Context, symbol, resolution string) ([]float64, error)
}

// Invocation is one journal entry describing a completed scan request.
// It carries outcome metadata only; no quote or level data is stored.
type Invocation struct {
	ID             int64     `json:"id"`
	StartedAt      time.Time `json:"started_at"`
	Status         int       `json:"status"`
	DurationMs     int64     `json:"duration_ms"`
	SymbolsScanned int       `json:"symbols_scanned"`
	SymbolsBroken  int       `json:"symbols_broken"`
}

// InvocationJournal defines storage for scan invocation records.
type InvocationJournal interface {
	SaveInvocation(ctx context.Context, inv *Invocation) error
	ListInvocations(ctx context.Context, limit int) ([]*Invocation, error)
}
