package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/vitos/stock_level_scanner/internal/domain"
	"github.com/vitos/stock_level_scanner/internal/usecase"
	"go.uber.org/zap"
)

// Scheduler runs the scan on an internal cron spec, for deployments
// without an external trigger. Outcomes are journaled the same way
// HTTP invocations are.
type Scheduler struct {
	cron    *cron.Cron
	scanner *usecase.ScanService
	journal domain.InvocationJournal
	logger  *zap.Logger
	ctx     context.Context
}

func New(ctx context.Context, scanner *usecase.ScanService, journal domain.InvocationJournal, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		scanner: scanner,
		journal: journal,
		logger:  logger,
		ctx:     ctx,
	}
}

// Register adds the scan task under the given 6-field cron spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.runScan); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

func (s *Scheduler) runScan() {
	started := time.Now()
	results, err := s.scanner.Scan(s.ctx)

	inv := &domain.Invocation{
		StartedAt:      started,
		DurationMs:     time.Since(started).Milliseconds(),
		SymbolsScanned: len(s.scanner.Symbols()),
	}

	if err != nil {
		s.logger.Error("Scheduled scan failed", zap.Error(err))
		inv.Status = 502
		inv.SymbolsScanned = 0
	} else {
		inv.Status = 200
		inv.SymbolsBroken = len(results)
		for _, r := range results {
			s.logger.Info("Broken levels",
				zap.String("symbol", r.Symbol),
				zap.Int("count", len(r.BrokenLevels)))
		}
	}

	if err := s.journal.SaveInvocation(s.ctx, inv); err != nil {
		s.logger.Error("Failed to journal scheduled scan", zap.Error(err))
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}
