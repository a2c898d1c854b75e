package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrMalformedChoice is returned when a vote choice does not have the shape its voting method expects.
var ErrMalformedChoice = errors.New("malformed choice")

// Vote is a raw vote as fetched from the hub. Choice stays opaque until interpreted
// for the proposal's voting method.
type Vote struct {
	Voter   string          `json:"voter"`
	Choice  json.RawMessage `json:"choice"`
	Created uint64          `json:"created"`
}

// ScoredVote is a vote enriched with its voter's strategy scores at the proposal snapshot.
type ScoredVote struct {
	Vote
	Scores  []float64 `json:"scores"`
	Balance float64   `json:"balance"`
}

// SingleChoice decodes a 1-based choice index.
func (v *Vote) SingleChoice() (int, error) {
	var choice int
	if err := json.Unmarshal(v.Choice, &choice); err != nil {
		return 0, fmt.Errorf("%w: expected index: %w", ErrMalformedChoice, err)
	}
	return choice, nil
}

// ChoiceList decodes a list of 1-based choice indices.
func (v *Vote) ChoiceList() ([]int, error) {
	var choices []int
	if err := json.Unmarshal(v.Choice, &choices); err != nil {
		return nil, fmt.Errorf("%w: expected index list: %w", ErrMalformedChoice, err)
	}
	return choices, nil
}

// ChoiceWeights decodes an index to weight map keyed by 1-based choice index. The hub stores
// these choices either as an object or as a string holding the object JSON, both are accepted.
func (v *Vote) ChoiceWeights() (map[int]float64, error) {
	raw := bytes.TrimSpace(v.Choice)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedChoice, err)
		}
		raw = []byte(s)
	}
	var byKey map[string]float64
	if err := json.Unmarshal(raw, &byKey); err != nil {
		return nil, fmt.Errorf("%w: expected weight map: %w", ErrMalformedChoice, err)
	}
	weights := make(map[int]float64, len(byKey))
	for key, w := range byKey {
		idx, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%w: choice key %q is not an index", ErrMalformedChoice, key)
		}
		weights[idx] = w
	}
	return weights, nil
}
