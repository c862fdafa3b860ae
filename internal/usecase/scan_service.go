package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/vitos/stock_level_scanner/internal/domain"
	"go.uber.org/zap"
)

// ScanService runs one level-break scan over the configured symbol
// universe. All symbols are fetched concurrently, and within each
// symbol the quote and the support/resistance fetch also run
// concurrently. The join is all-or-nothing: any upstream failure fails
// the whole scan.
type ScanService struct {
	provider   domain.MarketDataProvider
	evaluator  *BreakEvaluator
	symbols    []string
	resolution string
	logger     *zap.Logger
}

func NewScanService(provider domain.MarketDataProvider, symbols []string, resolution string, logger *zap.Logger) *ScanService {
	return &ScanService{
		provider:   provider,
		evaluator:  NewBreakEvaluator(),
		symbols:    symbols,
		resolution: resolution,
		logger:     logger,
	}
}

func (s *ScanService) Symbols() []string {
	return s.symbols
}

// Scan fetches and evaluates every configured symbol and returns only
// the symbols with at least one broken level. The result is never nil
// so an empty scan serializes as [].
func (s *ScanService) Scan(ctx context.Context) ([]domain.ScanResult, error) {
	results := make([]domain.ScanResult, len(s.symbols))
	errs := make([]error, len(s.symbols))

	var wg sync.WaitGroup
	for i, symbol := range s.symbols {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			data, err := s.fetchSymbol(ctx, symbol)
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = domain.ScanResult{
				Symbol:       symbol,
				BrokenLevels: s.evaluator.EvaluateAll(data),
			}
		}(i, symbol)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	broken := make([]domain.ScanResult, 0, len(results))
	for _, r := range results {
		if len(r.BrokenLevels) > 0 {
			broken = append(broken, r)
		}
	}

	s.logger.Info("Scan complete",
		zap.Int("symbols", len(s.symbols)),
		zap.Int("broken", len(broken)))

	return broken, nil
}

// fetchSymbol issues the two upstream calls for one symbol in parallel
// and merges them.
func (s *ScanService) fetchSymbol(ctx context.Context, symbol string) (domain.SymbolData, error) {
	var (
		quote    domain.Quote
		levels   []float64
		quoteErr error
		levelErr error
		wg       sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		quote, quoteErr = s.provider.GetQuote(ctx, symbol, s.resolution)
	}()
	go func() {
		defer wg.Done()
		levels, levelErr = s.provider.GetSupportResistance(ctx, symbol, s.resolution)
	}()
	wg.Wait()

	if quoteErr != nil {
		return domain.SymbolData{}, fmt.Errorf("quote %s: %w", symbol, quoteErr)
	}
	if levelErr != nil {
		return domain.SymbolData{}, fmt.Errorf("support-resistance %s: %w", symbol, levelErr)
	}

	return domain.SymbolData{Symbol: symbol, Quote: quote, Levels: levels}, nil
}
