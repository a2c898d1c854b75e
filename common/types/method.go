package types

import (
	"errors"
	"fmt"
)

// ErrUnknownVotingMethod is returned when a proposal type is not one of the supported methods.
var ErrUnknownVotingMethod = errors.New("unknown voting method")

// VotingMethod selects how choices on a proposal are interpreted and tabulated.
type VotingMethod string

const (
	Basic        VotingMethod = "basic"
	SingleChoice VotingMethod = "single-choice"
	Approval     VotingMethod = "approval"
	Quadratic    VotingMethod = "quadratic"
	RankedChoice VotingMethod = "ranked-choice"
	Weighted     VotingMethod = "weighted"
)

// ParseVotingMethod returns the method with the given name.
func ParseVotingMethod(s string) (VotingMethod, error) {
	m := VotingMethod(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownVotingMethod, s)
	}
	return m, nil
}

// Valid reports whether m is a supported method.
func (m VotingMethod) Valid() bool {
	switch m {
	case Basic, SingleChoice, Approval, Quadratic, RankedChoice, Weighted:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (m VotingMethod) String() string {
	return string(m)
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty method defaults to single-choice.
func (m *VotingMethod) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*m = SingleChoice
		return nil
	}
	parsed, err := ParseVotingMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ProposalState is the lifecycle state of a proposal as reported by the hub.
type ProposalState string

const (
	Pending ProposalState = "pending"
	Active  ProposalState = "active"
	Closed  ProposalState = "closed"
)
