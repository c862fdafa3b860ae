package web

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vitos/stock_level_scanner/internal/domain"
	"github.com/vitos/stock_level_scanner/internal/usecase"
	"go.uber.org/zap"
)

// PriceSource exposes last traded prices when the trade stream is
// enabled.
type PriceSource interface {
	LastPrices() map[string]float64
}

type Server struct {
	router    *http.ServeMux
	server    *http.Server
	cronToken string
	scanner   *usecase.ScanService
	journal   domain.InvocationJournal
	prices    PriceSource
	logger    *zap.Logger
}

func NewServer(
	port int,
	cronToken string,
	scanner *usecase.ScanService,
	journal domain.InvocationJournal,
	prices PriceSource,
	logger *zap.Logger,
) *Server {
	s := &Server{
		router:    http.NewServeMux(),
		cronToken: cronToken,
		scanner:   scanner,
		journal:   journal,
		prices:    prices,
		logger:    logger,
	}
	s.routes()
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.router,
	}
	return s
}

func (s *Server) routes() {
	// Scan endpoint. No method restriction: the cron trigger is not
	// guaranteed to use GET.
	s.router.HandleFunc("/scan", s.handleScan)

	// Journal
	s.router.HandleFunc("GET /invocations", s.handleInvocations)

	// Stream prices
	s.router.HandleFunc("GET /prices", s.handlePrices)

	// Status
	s.router.HandleFunc("GET /status", s.handleStatus)
}

func (s *Server) Start() error {
	s.logger.Info("Starting web server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
