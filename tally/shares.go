package tally

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/govsnap/govsnap/common/types"
)

var errNoWeight = errors.New("weights sum to zero")

// share is the fraction of a voter's balance credited to a 0-based choice index.
type share struct {
	choice int
	weight float64
}

// shares spreads one vote over the choices of its proposal. Shares are ordered by choice so
// that accumulation order, and therefore the results, do not depend on map iteration.
func shares(method types.VotingMethod, vote *types.Vote, choices int) ([]share, error) {
	switch method {
	case types.Basic, types.SingleChoice:
		choice, err := vote.SingleChoice()
		if err != nil {
			return nil, err
		}
		if err := checkIndex(choice, choices); err != nil {
			return nil, err
		}
		return []share{{choice: choice - 1, weight: 1}}, nil
	case types.Approval:
		list, err := indexList(vote, choices)
		if err != nil {
			return nil, err
		}
		out := make([]share, 0, len(list))
		for _, choice := range list {
			out = append(out, share{choice: choice - 1, weight: 1})
		}
		return sortShares(out), nil
	case types.Weighted:
		weights, err := weightList(vote, choices)
		if err != nil {
			return nil, err
		}
		return normalize(weights, func(w float64) float64 { return w })
	case types.Quadratic:
		weights, err := weightList(vote, choices)
		if err != nil {
			return nil, err
		}
		return normalize(weights, math.Sqrt)
	case types.RankedChoice:
		list, err := indexList(vote, choices)
		if err != nil {
			return nil, err
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("%w: empty ranking", types.ErrMalformedChoice)
		}
		n := len(list)
		total := float64(n*(n+1)) / 2
		out := make([]share, 0, n)
		for rank, choice := range list {
			out = append(out, share{choice: choice - 1, weight: float64(n-rank) / total})
		}
		return sortShares(out), nil
	}
	return nil, fmt.Errorf("%w: %q", types.ErrUnknownVotingMethod, method)
}

func checkIndex(choice, choices int) error {
	if choice < 1 || choice > choices {
		return fmt.Errorf("%w: choice %d out of range 1..%d", types.ErrMalformedChoice, choice, choices)
	}
	return nil
}

// indexList decodes a list of distinct 1-based indices, preserving order.
func indexList(vote *types.Vote, choices int) ([]int, error) {
	list, err := vote.ChoiceList()
	if err != nil {
		return nil, err
	}
	seen := make(map[int]struct{}, len(list))
	for _, choice := range list {
		if err := checkIndex(choice, choices); err != nil {
			return nil, err
		}
		if _, ok := seen[choice]; ok {
			return nil, fmt.Errorf("%w: choice %d repeated", types.ErrMalformedChoice, choice)
		}
		seen[choice] = struct{}{}
	}
	return list, nil
}

// weightList decodes a weight map into shares holding the raw weights.
func weightList(vote *types.Vote, choices int) ([]share, error) {
	weights, err := vote.ChoiceWeights()
	if err != nil {
		return nil, err
	}
	out := make([]share, 0, len(weights))
	for choice, w := range weights {
		if err := checkIndex(choice, choices); err != nil {
			return nil, err
		}
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: invalid weight %v for choice %d", types.ErrMalformedChoice, w, choice)
		}
		out = append(out, share{choice: choice - 1, weight: w})
	}
	return sortShares(out), nil
}

// normalize maps every weight through f and scales the results to sum to 1. Weights are
// first normalized to sum to 1, so the shares do not change when all weights are rescaled.
func normalize(weights []share, f func(float64) float64) ([]share, error) {
	var sum float64
	for _, s := range weights {
		sum += s.weight
	}
	if sum <= 0 {
		return nil, fmt.Errorf("%w: %w", types.ErrMalformedChoice, errNoWeight)
	}
	var total float64
	out := make([]share, len(weights))
	for i, s := range weights {
		out[i] = share{choice: s.choice, weight: f(s.weight / sum)}
		total += out[i].weight
	}
	for i := range out {
		out[i].weight /= total
	}
	return out, nil
}

func sortShares(s []share) []share {
	sort.Slice(s, func(i, j int) bool { return s[i].choice < s[j].choice })
	return s
}

// instantRunoff replaces Borda ballots by the voter's highest ranked choice still standing
// after eliminations. The choice with the lowest first-preference total is eliminated, the
// highest index on a tie, until one choice holds a strict majority or two remain. A ballot
// whose choices were all eliminated is exhausted and credits nothing.
func instantRunoff(votes []types.ScoredVote, ballots [][]share, choices int) [][]share {
	rankings := make([][]int, len(votes))
	for i := range votes {
		if ballots[i] == nil {
			continue
		}
		// ballots were validated by shares
		rankings[i], _ = votes[i].ChoiceList()
	}

	eliminated := make([]bool, choices)
	standing := choices
	top := func(ranking []int) int {
		for _, choice := range ranking {
			if !eliminated[choice-1] {
				return choice - 1
			}
		}
		return -1
	}
	for {
		totals := make([]float64, choices)
		var sum float64
		for i, ranking := range rankings {
			if c := top(ranking); c >= 0 {
				totals[c] += votes[i].Balance
				sum += votes[i].Balance
			}
		}
		if standing <= 2 || sum == 0 {
			break
		}
		leader, weakest := -1, -1
		for c := range totals {
			if eliminated[c] {
				continue
			}
			if leader < 0 || totals[c] > totals[leader] {
				leader = c
			}
			if weakest < 0 || totals[c] <= totals[weakest] {
				weakest = c
			}
		}
		if totals[leader] > sum/2 {
			break
		}
		eliminated[weakest] = true
		standing--
	}

	out := make([][]share, len(votes))
	for i, ranking := range rankings {
		if ballots[i] == nil {
			continue
		}
		out[i] = []share{}
		if c := top(ranking); c >= 0 {
			out[i] = []share{{choice: c, weight: 1}}
		}
	}
	return out
}
