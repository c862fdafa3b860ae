package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vitos/stock_level_scanner/internal/domain"
	"go.uber.org/zap"
)

// bearerToken extracts the token from an "<scheme> <token>" header
// value. An absent or malformed header yields the empty string, which
// never matches a non-empty secret.
func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	s.logger.Info("Scan request",
		zap.String("method", r.Method),
		zap.String("remote", r.RemoteAddr))

	// Deployment guard first: an unconfigured secret is a 500, checked
	// before the request's own credentials.
	if s.cronToken == "" {
		s.failScan(w, started, http.StatusInternalServerError, "config not setup")
		return
	}

	if bearerToken(r.Header.Get("Authorization")) != s.cronToken {
		s.failScan(w, started, http.StatusUnauthorized, "unauthorized")
		return
	}

	// Both params are required for compatibility with the original
	// trigger contract, but the scanned universe and resolution come
	// from configuration.
	query := r.URL.Query()
	if !query.Has("symbol") {
		s.failScan(w, started, http.StatusPreconditionFailed, "missing symbol")
		return
	}
	if !query.Has("resolution") {
		s.failScan(w, started, http.StatusPreconditionFailed, "missing resolution")
		return
	}

	results, err := s.scanner.Scan(r.Context())
	if err != nil {
		s.logger.Error("Scan failed", zap.Error(err))
		s.failScan(w, started, http.StatusBadGateway, "upstream fetch failed")
		return
	}

	s.journalize(started, http.StatusOK, len(s.scanner.Symbols()), len(results))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(results); err != nil {
		s.logger.Error("Failed to encode scan results", zap.Error(err))
	}
}

func (s *Server) failScan(w http.ResponseWriter, started time.Time, status int, msg string) {
	s.journalize(started, status, 0, 0)
	http.Error(w, msg, status)
}

// journalize records the invocation outcome. Journal failures are
// logged, never surfaced to the caller.
func (s *Server) journalize(started time.Time, status, scanned, broken int) {
	inv := &domain.Invocation{
		StartedAt:      started,
		Status:         status,
		DurationMs:     time.Since(started).Milliseconds(),
		SymbolsScanned: scanned,
		SymbolsBroken:  broken,
	}
	if err := s.journal.SaveInvocation(context.Background(), inv); err != nil {
		s.logger.Error("Failed to journal invocation", zap.Error(err))
	}
}

func (s *Server) handleInvocations(w http.ResponseWriter, r *http.Request) {
	if bearerToken(r.Header.Get("Authorization")) != s.cronToken || s.cronToken == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	invocations, err := s.journal.ListInvocations(r.Context(), limit)
	if err != nil {
		s.logger.Error("Failed to list invocations", zap.Error(err))
		http.Error(w, "Failed to list invocations", http.StatusInternalServerError)
		return
	}
	if invocations == nil {
		invocations = []*domain.Invocation{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(invocations); err != nil {
		s.logger.Error("Failed to encode invocations", zap.Error(err))
	}
}

func (s *Server) handlePrices(w http.ResponseWriter, r *http.Request) {
	if bearerToken(r.Header.Get("Authorization")) != s.cronToken || s.cronToken == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if s.prices == nil {
		http.Error(w, "stream disabled", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.prices.LastPrices()); err != nil {
		s.logger.Error("Failed to encode prices", zap.Error(err))
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("ok"))
}
