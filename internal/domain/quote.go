package domain

// Quote is one day's OHLC bar for a symbol, as returned by the
// market-data provider. Field tags match the upstream schema.
type Quote struct {
	Open  float64 `json:"o"`
	High  float64 `json:"h"`
	Low   float64 `json:"l"`
	Close float64 `json:"c"`
}

// LevelBreak marks a support/resistance level crossed by the day's
// price action. A broken support is reported under Resistance and a
// broken resistance under Support: once breached, the level flips roles.
type LevelBreak struct {
	Broke        bool     `json:"broke"`
	Resistance   *float64 `json:"resistance,omitempty"`
	Support      *float64 `json:"support,omitempty"`
	ClosedBroken bool     `json:"closedBroken"`
}

// SymbolData is the merged result of the two upstream fetches for one
// symbol: the daily quote plus the detected technical levels, in the
// order the provider returned them.
type SymbolData struct {
	Symbol string
	Quote  Quote
	Levels []float64
}

// ScanResult is the per-symbol output of a scan. Only symbols with at
// least one break survive into the response.
type ScanResult struct {
	Symbol       string       `json:"symbol"`
	BrokenLevels []LevelBreak `json:"brokenLevels"`
}
