package typeddata

import (
	"encoding/json"

	"github.com/govsnap/govsnap/common/types"
)

// Base is embedded by every payload. Timestamp overrides the builder clock, it is meant for
// replaying an already built envelope and for tests.
type Base struct {
	From      string `validate:"required,eth_addr"`
	Timestamp int64  `validate:"gte=0"`
}

func (b Base) base() Base { return b }

// Payload is implemented by the payload type of every kind.
type Payload interface {
	base() Base
}

// ProposalPayload creates a proposal in a space.
type ProposalPayload struct {
	Base
	Space      string             `validate:"required"`
	Type       types.VotingMethod `validate:"required"`
	Title      string             `validate:"required,max=256"`
	Discussion string             `validate:"omitempty,url"`
	Choices    []string           `validate:"required,min=1,dive,required"`
	Start      uint64             `validate:"required"`
	End        uint64             `validate:"required,gtfield=Start"`
	Snapshot   uint64             `validate:"required"`
	Body       string
	// Network and Strategies default to the space values when empty.
	Network    string
	Strategies []types.Strategy
	Plugins    json.RawMessage
	Metadata   json.RawMessage
}

// VotePayload casts a vote. Choice is an index, a list of indices or an index to weight map
// depending on the proposal type.
type VotePayload struct {
	Base
	Space    string          `validate:"required"`
	Proposal *types.Proposal `validate:"required"`
	Choice   any             `validate:"required"`
	Reason   string
	App      string
	Metadata json.RawMessage
}

// CancelProposalPayload deletes a proposal.
type CancelProposalPayload struct {
	Base
	Space    string `validate:"required"`
	Proposal string `validate:"required"`
}

// SettingsPayload replaces the settings of a space.
type SettingsPayload struct {
	Base
	Space    string          `validate:"required"`
	Settings json.RawMessage `validate:"required"`
}

// SpacePayload is used by subscribe, unsubscribe, follow and unfollow.
type SpacePayload struct {
	Base
	Space string `validate:"required"`
}

// WalletPayload follows or unfollows another address.
type WalletPayload struct {
	Base
	Wallet string `validate:"required,eth_addr"`
}

// AliasPayload authorizes an alias address to act on behalf of From.
type AliasPayload struct {
	Base
	Alias string `validate:"required,eth_addr"`
}
