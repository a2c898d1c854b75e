package types

import "strings"

// StrategyScores holds one address to score map per strategy, in strategy order.
type StrategyScores []map[string]float64

// Score returns the score of addr for the strategy at index i, or 0 if unknown.
// Addresses are matched case-insensitively since score APIs return checksummed addresses.
func (s StrategyScores) Score(i int, addr string) float64 {
	if i < 0 || i >= len(s) {
		return 0
	}
	if v, ok := s[i][addr]; ok {
		return v
	}
	for k, v := range s[i] {
		if strings.EqualFold(k, addr) {
			return v
		}
	}
	return 0
}

// Normalize returns a copy with lowercase addresses, so that lookups hit the fast path.
func (s StrategyScores) Normalize() StrategyScores {
	out := make(StrategyScores, len(s))
	for i, m := range s {
		out[i] = make(map[string]float64, len(m))
		for addr, v := range m {
			out[i][strings.ToLower(addr)] = v
		}
	}
	return out
}
