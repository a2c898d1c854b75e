package router

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/govsnap/govsnap/signing"
)

type LocalOpt func(*LocalBackend)

func WithLocalLogger(logger *zap.Logger) LocalOpt {
	return func(b *LocalBackend) {
		b.logger = logger
	}
}

// WithOrigin sets the origin shown by the key module for queued messages.
func WithOrigin(origin string) LocalOpt {
	return func(b *LocalBackend) {
		b.origin = origin
	}
}

// LocalBackend signs with the local key module. Every request goes through the module's
// approval queue and is signed exactly once.
type LocalBackend struct {
	keystore Keystore
	origin   string
	logger   *zap.Logger
}

func NewLocalBackend(keystore Keystore, opts ...LocalOpt) *LocalBackend {
	b := &LocalBackend{
		keystore: keystore,
		origin:   "govsnap",
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *LocalBackend) Name() string {
	return "local"
}

// Sign queues, approves and signs the request envelope. A locked key module fails with
// ErrLockedSigner before the request changes status.
func (b *LocalBackend) Sign(ctx context.Context, req *Request) (string, error) {
	if !b.keystore.IsUnlocked() {
		return "", ErrLockedSigner
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := req.Action.JSON()
	if err != nil {
		return "", fmt.Errorf("encoding envelope: %w", err)
	}
	logger := b.logger.With(zap.Stringer("request", req.ID))

	params := signing.MessageParams{From: req.Address, Data: string(data)}
	id, err := b.keystore.AddUnapprovedMessage(params, signing.MessageMeta{
		Origin: b.origin,
		Kind:   string(req.Action.Kind),
	})
	if err != nil {
		return "", fmt.Errorf("queueing message: %w", err)
	}
	if err := req.transition(StatusPendingApproval); err != nil {
		b.discard(logger, id)
		return "", err
	}
	logger.Debug("message queued", zap.String("message", id))

	params.ID = id
	canonical, err := b.keystore.ApproveMessage(params)
	if err != nil {
		b.discard(logger, id)
		return "", fmt.Errorf("approving message %s: %w", id, err)
	}
	if err := req.transition(StatusApproved); err != nil {
		b.discard(logger, id)
		return "", err
	}

	sig, err := b.keystore.SignTypedMessage(canonical, signing.SignTypedDataV4)
	if err != nil {
		b.discard(logger, id)
	}
	switch {
	case errors.Is(err, signing.ErrLocked):
		return "", fmt.Errorf("%w: %w", ErrLockedSigner, err)
	case err != nil:
		return "", fmt.Errorf("signing message %s: %w", id, err)
	}
	if err := b.keystore.SetMessageStatusSigned(id, sig); err != nil {
		return "", fmt.Errorf("marking message %s signed: %w", id, err)
	}
	logger.Debug("message signed", zap.String("message", id))
	return sig, nil
}

// discard rejects a queued message the request will not sign.
func (b *LocalBackend) discard(logger *zap.Logger, id string) {
	if err := b.keystore.RejectMessage(id); err != nil {
		logger.Warn("failed to reject queued message", zap.String("message", id), zap.Error(err))
	}
}
