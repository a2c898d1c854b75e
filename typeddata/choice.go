package typeddata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"github.com/govsnap/govsnap/common/types"
)

// encodeChoice rewrites a vote choice into its wire form for the proposal's voting method and
// returns the EIP-712 type of the choice member.
func encodeChoice(proposal *types.Proposal, choice any) (any, string, error) {
	raw, err := json.Marshal(choice)
	if err != nil {
		return nil, "", fmt.Errorf("%w: encoding choice: %w", ErrInvalidPayload, err)
	}
	vote := types.Vote{Choice: raw}
	n := len(proposal.Choices)

	switch proposal.Type {
	case types.Basic, types.SingleChoice:
		idx, err := vote.SingleChoice()
		if err != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrInvalidPayload, err)
		}
		if err := checkIndex(idx, n); err != nil {
			return nil, "", err
		}
		return uint32(idx), "uint32", nil

	case types.Approval, types.RankedChoice:
		list, err := vote.ChoiceList()
		if err != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrInvalidPayload, err)
		}
		if proposal.Type == types.RankedChoice && len(list) == 0 {
			return nil, "", fmt.Errorf("%w: ranked choice needs at least one preference", ErrInvalidPayload)
		}
		out := make([]uint32, 0, len(list))
		for _, idx := range list {
			if err := checkIndex(idx, n); err != nil {
				return nil, "", err
			}
			if slices.Contains(out, uint32(idx)) {
				return nil, "", fmt.Errorf("%w: choice %d listed twice", ErrInvalidPayload, idx)
			}
			out = append(out, uint32(idx))
		}
		return out, "uint32[]", nil

	case types.Quadratic, types.Weighted:
		weights, err := vote.ChoiceWeights()
		if err != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrInvalidPayload, err)
		}
		var sum float64
		for idx, w := range weights {
			if err := checkIndex(idx, n); err != nil {
				return nil, "", err
			}
			if w < 0 {
				return nil, "", fmt.Errorf("%w: negative weight for choice %d", ErrInvalidPayload, idx)
			}
			sum += w
		}
		if sum <= 0 {
			return nil, "", fmt.Errorf("%w: weights must not all be zero", ErrInvalidPayload)
		}
		encoded, err := weightsJSON(weights)
		if err != nil {
			return nil, "", err
		}
		return encoded, "string", nil
	}
	return nil, "", fmt.Errorf("%w: %w: %q", ErrInvalidPayload, types.ErrUnknownVotingMethod, string(proposal.Type))
}

func checkIndex(idx, choices int) error {
	if idx < 1 || (choices > 0 && idx > choices) {
		return fmt.Errorf("%w: choice %d out of range [1, %d]", ErrInvalidPayload, idx, choices)
	}
	return nil
}

// weightsJSON serializes a weight map with keys in ascending numeric order, the order a
// JavaScript object keeps for integer keys.
func weightsJSON(weights map[int]float64) (string, error) {
	keys := make([]int, 0, len(weights))
	for k := range weights {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		w, err := json.Marshal(weights[k])
		if err != nil {
			return "", fmt.Errorf("%w: weight for choice %d: %w", ErrInvalidPayload, k, err)
		}
		buf.WriteByte('"')
		buf.WriteString(strconv.Itoa(k))
		buf.WriteString(`":`)
		buf.Write(w)
	}
	buf.WriteByte('}')
	return buf.String(), nil
}

// jsonString compacts raw JSON into the string form carried by the message. Empty input
// becomes an empty object.
func jsonString(raw json.RawMessage) (string, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return "{}", nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return buf.String(), nil
}
