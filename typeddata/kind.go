package typeddata

import (
	"errors"
	"fmt"

	"github.com/govsnap/govsnap/common/types"
)

var (
	// ErrUnknownKind is returned for an action kind the builder has no schema for.
	ErrUnknownKind = errors.New("unknown action kind")
	// ErrInvalidPayload is returned when a payload fails validation or does not match its kind.
	ErrInvalidPayload = errors.New("invalid payload")
)

// Kind identifies a signable action.
type Kind string

const (
	KindProposal       Kind = "proposal"
	KindVote           Kind = "vote"
	KindDeleteProposal Kind = "delete-proposal"
	KindSettings       Kind = "settings"
	KindSubscribe      Kind = "subscribe"
	KindUnsubscribe    Kind = "unsubscribe"
	KindFollow         Kind = "follow"
	KindUnfollow       Kind = "unfollow"
	KindFollowWallet   Kind = "followWallet"
	KindUnfollowWallet Kind = "unfollowWallet"
	KindAlias          Kind = "alias"
)

// Kinds lists every supported kind.
var Kinds = []Kind{
	KindProposal, KindVote, KindDeleteProposal, KindSettings,
	KindSubscribe, KindUnsubscribe, KindFollow, KindUnfollow,
	KindFollowWallet, KindUnfollowWallet, KindAlias,
}

// PrimaryType returns the EIP-712 type name signed for the kind.
func (k Kind) PrimaryType() (string, error) {
	switch k {
	case KindProposal:
		return "Proposal", nil
	case KindVote:
		return "Vote", nil
	case KindDeleteProposal:
		return "CancelProposal", nil
	case KindSettings:
		return "Space", nil
	case KindSubscribe:
		return "Subscribe", nil
	case KindUnsubscribe:
		return "Unsubscribe", nil
	case KindFollow:
		return "Follow", nil
	case KindUnfollow:
		return "Unfollow", nil
	case KindFollowWallet:
		return "WalletFollow", nil
	case KindUnfollowWallet:
		return "WalletUnfollow", nil
	case KindAlias:
		return "Alias", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
}

// Field is one member of an EIP-712 struct type.
type Field struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Types maps type names to their ordered fields.
type Types map[string][]Field

const (
	proposalRefLegacy = "string"
	proposalRefHash   = "bytes32"
)

// proposalRefType selects the schema variant for actions referencing a proposal.
func proposalRefType(id string) string {
	if types.IsHashID(id) {
		return proposalRefHash
	}
	return proposalRefLegacy
}

func proposalFields() []Field {
	return []Field{
		{Name: "from", Type: "address"},
		{Name: "space", Type: "string"},
		{Name: "timestamp", Type: "uint64"},
		{Name: "type", Type: "string"},
		{Name: "title", Type: "string"},
		{Name: "body", Type: "string"},
		{Name: "discussion", Type: "string"},
		{Name: "choices", Type: "string[]"},
		{Name: "start", Type: "uint64"},
		{Name: "end", Type: "uint64"},
		{Name: "snapshot", Type: "uint64"},
		{Name: "network", Type: "string"},
		{Name: "strategies", Type: "string"},
		{Name: "plugins", Type: "string"},
		{Name: "metadata", Type: "string"},
	}
}

func voteFields(refType, choiceType string) []Field {
	return []Field{
		{Name: "from", Type: "address"},
		{Name: "space", Type: "string"},
		{Name: "timestamp", Type: "uint64"},
		{Name: "proposal", Type: refType},
		{Name: "choice", Type: choiceType},
		{Name: "reason", Type: "string"},
		{Name: "app", Type: "string"},
		{Name: "metadata", Type: "string"},
	}
}

func cancelProposalFields(refType string) []Field {
	return []Field{
		{Name: "from", Type: "address"},
		{Name: "space", Type: "string"},
		{Name: "timestamp", Type: "uint64"},
		{Name: "proposal", Type: refType},
	}
}

func settingsFields() []Field {
	return []Field{
		{Name: "from", Type: "address"},
		{Name: "space", Type: "string"},
		{Name: "timestamp", Type: "uint64"},
		{Name: "settings", Type: "string"},
	}
}

func spaceFields() []Field {
	return []Field{
		{Name: "from", Type: "address"},
		{Name: "space", Type: "string"},
		{Name: "timestamp", Type: "uint64"},
	}
}

func walletFields() []Field {
	return []Field{
		{Name: "from", Type: "address"},
		{Name: "wallet", Type: "address"},
		{Name: "timestamp", Type: "uint64"},
	}
}

func aliasFields() []Field {
	return []Field{
		{Name: "from", Type: "address"},
		{Name: "alias", Type: "address"},
		{Name: "timestamp", Type: "uint64"},
	}
}
