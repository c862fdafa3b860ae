package usecase

import "github.com/vitos/stock_level_scanner/internal/domain"

type BreakEvaluator struct{}

func NewBreakEvaluator() *BreakEvaluator {
	return &BreakEvaluator{}
}

// EvaluateLevel checks one level against the day's quote.
// Support break: the day opened at or below the level and the high
// reached it (price moved up through). The broken support becomes the
// new resistance reference, so it is reported under Resistance.
// Resistance break: opened at or above, the low reached it (price moved
// down through), reported under Support. Support is checked first; a
// degenerate quote touching the level from both sides yields only the
// support branch.
func (e *BreakEvaluator) EvaluateLevel(q domain.Quote, level float64) domain.LevelBreak {
	if q.Open <= level && q.High >= level {
		l := level
		return domain.LevelBreak{
			Broke:        true,
			Resistance:   &l,
			ClosedBroken: q.Close >= level,
		}
	}
	if q.Open >= level && q.Low <= level {
		l := level
		return domain.LevelBreak{
			Broke:        true,
			Support:      &l,
			ClosedBroken: q.Close <= level,
		}
	}
	return domain.LevelBreak{Broke: false}
}

// EvaluateAll returns the breaks for every level that was actually
// crossed, in the same order the levels arrived. Untouched levels are
// dropped.
func (e *BreakEvaluator) EvaluateAll(data domain.SymbolData) []domain.LevelBreak {
	var breaks []domain.LevelBreak
	for _, level := range data.Levels {
		if b := e.EvaluateLevel(data.Quote, level); b.Broke {
			breaks = append(breaks, b)
		}
	}
	return breaks
}
