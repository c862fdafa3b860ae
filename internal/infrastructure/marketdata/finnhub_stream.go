package marketdata

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// FinnhubStream keeps the last traded price per symbol from the
// Finnhub trade websocket. It is optional; the scan path never depends
// on it.
type FinnhubStream struct {
	token  string
	wsURL  string
	logger *zap.Logger

	mu     sync.Mutex
	conn   *websocket.Conn
	prices map[string]float64
}

type tradeMessage struct {
	Type string `json:"type"`
	Data []struct {
		Symbol string  `json:"s"`
		Price  float64 `json:"p"`
		Time   int64   `json:"t"`
		Volume float64 `json:"v"`
	} `json:"data"`
}

func NewFinnhubStream(token, wsURL string, logger *zap.Logger) *FinnhubStream {
	if wsURL == "" {
		wsURL = FinnhubWSURL
	}
	return &FinnhubStream{
		token:  token,
		wsURL:  wsURL,
		logger: logger,
		prices: make(map[string]float64),
	}
}

// Connect dials the trade socket and subscribes to the given symbols.
func (s *FinnhubStream) Connect(symbols []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		return s.subscribe(symbols)
	}

	c, _, err := websocket.DefaultDialer.Dial(s.wsURL+"?token="+s.token, nil)
	if err != nil {
		return err
	}
	s.conn = c

	go s.readLoop(c)

	return s.subscribe(symbols)
}

func (s *FinnhubStream) subscribe(symbols []string) error {
	for _, sym := range symbols {
		msg := map[string]interface{}{
			"type":   "subscribe",
			"symbol": sym,
		}
		if err := s.conn.WriteJSON(msg); err != nil {
			return err
		}
	}
	return nil
}

func (s *FinnhubStream) readLoop(c *websocket.Conn) {
	defer func() {
		c.Close()
		s.mu.Lock()
		if s.conn == c {
			s.conn = nil
		}
		s.mu.Unlock()
	}()

	for {
		_, message, err := c.ReadMessage()
		if err != nil {
			s.logger.Warn("Trade stream read error", zap.Error(err))
			return
		}

		var msg tradeMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		if msg.Type != "trade" {
			continue
		}

		s.mu.Lock()
		for _, t := range msg.Data {
			s.prices[t.Symbol] = t.Price
		}
		s.mu.Unlock()
	}
}

// LastPrices returns a snapshot of the last traded price per symbol.
func (s *FinnhubStream) LastPrices() map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]float64, len(s.prices))
	for sym, p := range s.prices {
		out[sym] = p
	}
	return out
}

// Close tears down the socket if connected.
func (s *FinnhubStream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
}
