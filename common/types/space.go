package types

// Strategy is a named scoring function with arbitrary parameters, evaluated by the score API.
type Strategy struct {
	Name    string         `json:"name"`
	Network string         `json:"network,omitempty"`
	Params  map[string]any `json:"params"`
}

// VotingSettings are the space-wide voting defaults.
type VotingSettings struct {
	Delay  uint64  `json:"delay"`
	Period uint64  `json:"period"`
	Quorum float64 `json:"quorum"`
}

// Space is a governance space. It is immutable for a given snapshot height.
type Space struct {
	ID         string         `json:"id"`
	Name       string         `json:"name,omitempty"`
	Network    string         `json:"network"`
	Symbol     string         `json:"symbol"`
	Strategies []Strategy     `json:"strategies"`
	Voting     VotingSettings `json:"voting"`
}
