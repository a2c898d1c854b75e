// Package typeddata builds the EIP-712 envelopes signed for governance actions.
package typeddata

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/govsnap/govsnap/common/types"
)

// Builder assembles envelopes for one signing domain. It is safe for concurrent use.
type Builder struct {
	domain   Domain
	clock    clockwork.Clock
	logger   *zap.Logger
	validate *validator.Validate
}

// BuilderOpt modifies Builder.
type BuilderOpt func(*Builder)

// WithClock sets the clock used for message timestamps.
func WithClock(clock clockwork.Clock) BuilderOpt {
	return func(b *Builder) {
		b.clock = clock
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) BuilderOpt {
	return func(b *Builder) {
		b.logger = logger
	}
}

// NewBuilder returns a builder for the given domain.
func NewBuilder(domain Domain, opts ...BuilderOpt) *Builder {
	b := &Builder{
		domain:   domain,
		clock:    clockwork.NewRealClock(),
		logger:   zap.NewNop(),
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Domain returns the signing domain of the builder.
func (b *Builder) Domain() Domain {
	return b.domain
}

// Build returns the envelope for the action. space is optional and only used to default the
// network and strategies of a new proposal. from and timestamp are always injected here.
func (b *Builder) Build(kind Kind, payload Payload, space *types.Space) (*Envelope, error) {
	primaryType, err := kind.PrimaryType()
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: nil payload for %s", ErrInvalidPayload, kind)
	}
	if err := b.validate.Struct(payload); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPayload, kind, err)
	}
	base := payload.base()
	timestamp := base.Timestamp
	if timestamp == 0 {
		timestamp = b.clock.Now().Unix()
	}

	var (
		fields  []Field
		message Message
	)
	switch kind {
	case KindProposal:
		fields, message, err = buildProposal(kind, payload, space)
	case KindVote:
		fields, message, err = buildVote(kind, payload)
	case KindDeleteProposal:
		fields, message, err = buildCancelProposal(kind, payload)
	case KindSettings:
		fields, message, err = buildSettings(kind, payload)
	case KindSubscribe, KindUnsubscribe, KindFollow, KindUnfollow:
		var p *SpacePayload
		if p, err = payloadAs[SpacePayload](kind, payload); err == nil {
			fields = spaceFields()
			message = Message{{"space", p.Space}}
		}
	case KindFollowWallet, KindUnfollowWallet:
		var p *WalletPayload
		if p, err = payloadAs[WalletPayload](kind, payload); err == nil {
			fields = walletFields()
			message = Message{{"wallet", p.Wallet}}
		}
	case KindAlias:
		var p *AliasPayload
		if p, err = payloadAs[AliasPayload](kind, payload); err == nil {
			fields = aliasFields()
			message = Message{{"alias", p.Alias}}
		}
	}
	if err != nil {
		return nil, err
	}
	message.Set("from", base.From)
	message.Set("timestamp", timestamp)

	env := &Envelope{
		Kind:   kind,
		Domain: b.domain,
		Types: Types{
			primaryType: fields,
			domainType:  b.domain.Fields(),
		},
		Message:     ordered(message, fields),
		PrimaryType: primaryType,
	}
	b.logger.Debug("built action",
		zap.String("kind", string(kind)),
		zap.String("primary_type", primaryType),
		zap.String("from", base.From),
		zap.Int64("timestamp", timestamp),
	)
	return env, nil
}

func buildProposal(kind Kind, payload Payload, space *types.Space) ([]Field, Message, error) {
	p, err := payloadAs[ProposalPayload](kind, payload)
	if err != nil {
		return nil, nil, err
	}
	if !p.Type.Valid() {
		return nil, nil, fmt.Errorf("%w: %w: %q", ErrInvalidPayload, types.ErrUnknownVotingMethod, string(p.Type))
	}
	network, strategies := p.Network, p.Strategies
	if space != nil {
		if network == "" {
			network = space.Network
		}
		if len(strategies) == 0 {
			strategies = space.Strategies
		}
	}
	if network == "" {
		return nil, nil, fmt.Errorf("%w: proposal network is not set", ErrInvalidPayload)
	}
	if strategies == nil {
		strategies = []types.Strategy{}
	}
	encodedStrategies, err := json.Marshal(strategies)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: strategies: %w", ErrInvalidPayload, err)
	}
	plugins, err := jsonString(p.Plugins)
	if err != nil {
		return nil, nil, err
	}
	metadata, err := jsonString(p.Metadata)
	if err != nil {
		return nil, nil, err
	}
	return proposalFields(), Message{
		{"space", p.Space},
		{"type", string(p.Type)},
		{"title", p.Title},
		{"body", p.Body},
		{"discussion", p.Discussion},
		{"choices", p.Choices},
		{"start", p.Start},
		{"end", p.End},
		{"snapshot", p.Snapshot},
		{"network", network},
		{"strategies", string(encodedStrategies)},
		{"plugins", plugins},
		{"metadata", metadata},
	}, nil
}

func buildVote(kind Kind, payload Payload) ([]Field, Message, error) {
	p, err := payloadAs[VotePayload](kind, payload)
	if err != nil {
		return nil, nil, err
	}
	if err := checkProposalRef(p.Proposal.ID); err != nil {
		return nil, nil, err
	}
	choice, choiceType, err := encodeChoice(p.Proposal, p.Choice)
	if err != nil {
		return nil, nil, err
	}
	metadata, err := jsonString(p.Metadata)
	if err != nil {
		return nil, nil, err
	}
	return voteFields(proposalRefType(p.Proposal.ID), choiceType), Message{
		{"space", p.Space},
		{"proposal", p.Proposal.ID},
		{"choice", choice},
		{"reason", p.Reason},
		{"app", p.App},
		{"metadata", metadata},
	}, nil
}

func buildCancelProposal(kind Kind, payload Payload) ([]Field, Message, error) {
	p, err := payloadAs[CancelProposalPayload](kind, payload)
	if err != nil {
		return nil, nil, err
	}
	if err := checkProposalRef(p.Proposal); err != nil {
		return nil, nil, err
	}
	return cancelProposalFields(proposalRefType(p.Proposal)), Message{
		{"space", p.Space},
		{"proposal", p.Proposal},
	}, nil
}

func buildSettings(kind Kind, payload Payload) ([]Field, Message, error) {
	p, err := payloadAs[SettingsPayload](kind, payload)
	if err != nil {
		return nil, nil, err
	}
	settings, err := jsonString(p.Settings)
	if err != nil {
		return nil, nil, err
	}
	if err := checkSettings(settings); err != nil {
		return nil, nil, err
	}
	return settingsFields(), Message{
		{"space", p.Space},
		{"settings", settings},
	}, nil
}

// checkProposalRef verifies that a hash id fits the bytes32 variant it selects.
func checkProposalRef(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty proposal id", ErrInvalidPayload)
	}
	if !types.IsHashID(id) {
		return nil
	}
	raw, err := hexutil.Decode(id)
	if err != nil || len(raw) != 32 {
		return fmt.Errorf("%w: proposal id %s is not a 32 byte hash", ErrInvalidPayload, id)
	}
	return nil
}

func payloadAs[T any](kind Kind, payload Payload) (*T, error) {
	switch p := any(payload).(type) {
	case *T:
		return p, nil
	case T:
		return &p, nil
	}
	var want T
	return nil, fmt.Errorf("%w: %s expects %T, got %T", ErrInvalidPayload, kind, want, payload)
}

// ordered returns the message members in field order.
func ordered(message Message, fields []Field) Message {
	out := make(Message, 0, len(fields))
	for _, f := range fields {
		if v, ok := message.Get(f.Name); ok {
			out = append(out, Entry{Name: f.Name, Value: v})
		}
	}
	return out
}
