package usecase_test

import (
	"testing"

	"github.com/vitos/stock_level_scanner/internal/domain"
	"github.com/vitos/stock_level_scanner/internal/usecase"
)

func TestEvaluateLevel(t *testing.T) {
	evaluator := usecase.NewBreakEvaluator()

	tests := []struct {
		name             string
		quote            domain.Quote
		level            float64
		wantBroke        bool
		wantResistance   bool // support-break reports under resistance
		wantSupport      bool // resistance-break reports under support
		wantClosedBroken bool
	}{
		{
			name:             "Up through level, close held above",
			quote:            domain.Quote{Open: 100, High: 110, Low: 95, Close: 108},
			level:            105,
			wantBroke:        true,
			wantResistance:   true,
			wantClosedBroken: true,
		},
		{
			name:             "Up through level, close fell back",
			quote:            domain.Quote{Open: 100, High: 110, Low: 95, Close: 103},
			level:            105,
			wantBroke:        true,
			wantResistance:   true,
			wantClosedBroken: false,
		},
		{
			name:             "Down through level, close held below",
			quote:            domain.Quote{Open: 100, High: 102, Low: 90, Close: 92},
			level:            95,
			wantBroke:        true,
			wantSupport:      true,
			wantClosedBroken: true,
		},
		{
			name:             "Down through level, close recovered",
			quote:            domain.Quote{Open: 100, High: 102, Low: 90, Close: 97},
			level:            95,
			wantBroke:        true,
			wantSupport:      true,
			wantClosedBroken: false,
		},
		{
			name:      "Level never reached",
			quote:     domain.Quote{Open: 100, High: 101, Low: 99, Close: 100},
			level:     200,
			wantBroke: false,
		},
		{
			name:             "Open exactly at level counts as upward break",
			quote:            domain.Quote{Open: 105, High: 110, Low: 104, Close: 105},
			level:            105,
			wantBroke:        true,
			wantResistance:   true,
			wantClosedBroken: true,
		},
		{
			name:             "Degenerate flat quote takes the support branch",
			quote:            domain.Quote{Open: 105, High: 105, Low: 105, Close: 105},
			level:            105,
			wantBroke:        true,
			wantResistance:   true,
			wantClosedBroken: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evaluator.EvaluateLevel(tt.quote, tt.level)

			if got.Broke != tt.wantBroke {
				t.Errorf("Broke = %v, want %v", got.Broke, tt.wantBroke)
			}
			if tt.wantResistance {
				if got.Resistance == nil || *got.Resistance != tt.level {
					t.Errorf("Resistance = %v, want %v", got.Resistance, tt.level)
				}
				if got.Support != nil {
					t.Errorf("Support set on a support-break: %v", *got.Support)
				}
			}
			if tt.wantSupport {
				if got.Support == nil || *got.Support != tt.level {
					t.Errorf("Support = %v, want %v", got.Support, tt.level)
				}
				if got.Resistance != nil {
					t.Errorf("Resistance set on a resistance-break: %v", *got.Resistance)
				}
			}
			if !tt.wantBroke && (got.Resistance != nil || got.Support != nil) {
				t.Errorf("level fields set on a non-break: %+v", got)
			}
			if got.ClosedBroken != tt.wantClosedBroken {
				t.Errorf("ClosedBroken = %v, want %v", got.ClosedBroken, tt.wantClosedBroken)
			}
		})
	}
}

func TestEvaluateAll_FiltersAndKeepsOrder(t *testing.T) {
	evaluator := usecase.NewBreakEvaluator()

	data := domain.SymbolData{
		Symbol: "AAPL",
		Quote:  domain.Quote{Open: 100, High: 110, Low: 90, Close: 108},
		// 105: broken upward. 200: untouched. 95: broken downward.
		Levels: []float64{105, 200, 95},
	}

	breaks := evaluator.EvaluateAll(data)
	if len(breaks) != 2 {
		t.Fatalf("got %d breaks, want 2", len(breaks))
	}

	if breaks[0].Resistance == nil || *breaks[0].Resistance != 105 {
		t.Errorf("first break should be the 105 upward break, got %+v", breaks[0])
	}
	if breaks[1].Support == nil || *breaks[1].Support != 95 {
		t.Errorf("second break should be the 95 downward break, got %+v", breaks[1])
	}
}

func TestEvaluateAll_NoLevels(t *testing.T) {
	evaluator := usecase.NewBreakEvaluator()

	breaks := evaluator.EvaluateAll(domain.SymbolData{
		Symbol: "MSFT",
		Quote:  domain.Quote{Open: 100, High: 101, Low: 99, Close: 100},
	})
	if len(breaks) != 0 {
		t.Errorf("got %d breaks, want 0", len(breaks))
	}
}
