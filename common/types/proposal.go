package types

import "strings"

// Proposal is a read-only view of a proposal fetched from the hub.
type Proposal struct {
	ID       string        `json:"id"`
	Space    string        `json:"space"`
	Type     VotingMethod  `json:"type"`
	Choices  []string      `json:"choices"`
	Start    uint64        `json:"start"`
	End      uint64        `json:"end"`
	Snapshot uint64        `json:"snapshot,string"`
	State    ProposalState `json:"state"`
	Author   string        `json:"author"`
	Network  string        `json:"network,omitempty"`
	// Strategies overrides the space strategies when non-empty.
	Strategies []Strategy `json:"strategies,omitempty"`
}

// IsHashID reports whether the proposal uses a 0x-prefixed hash id rather than a legacy id.
// Actions referencing the proposal select their typed-data schema variant from this alone.
func (p *Proposal) IsHashID() bool {
	return IsHashID(p.ID)
}

// IsHashID reports whether id is a 0x-prefixed hash id.
func IsHashID(id string) bool {
	return strings.HasPrefix(id, "0x")
}

// StrategiesOr returns the proposal strategies, falling back to the space strategies.
func (p *Proposal) StrategiesOr(space *Space) []Strategy {
	if len(p.Strategies) > 0 || space == nil {
		return p.Strategies
	}
	return space.Strategies
}

// NetworkOr returns the proposal network, falling back to the space network.
func (p *Proposal) NetworkOr(space *Space) string {
	if p.Network != "" || space == nil {
		return p.Network
	}
	return space.Network
}
