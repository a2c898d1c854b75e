// Package router drives actions through signing and submission.
//
// A request is built from an action payload, signed by one of two backends and submitted to
// the hub:
//
//	CREATED -> PENDING_APPROVAL -> APPROVED -> SIGNED   (local key module)
//	CREATED -> REQUESTED -> SIGNED                       (remote wallet session)
//	SIGNED -> SUBMITTED -> ACCEPTED | REJECTED
//
// Any status before ACCEPTED may end in REJECTED. The envelope that is signed is the one
// returned by the builder, and the same envelope is submitted.
package router

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/govsnap/govsnap/common/types"
	"github.com/govsnap/govsnap/typeddata"
)

type Config struct {
	// SignTimeout bounds the time a backend may take to sign. Zero disables it.
	SignTimeout time.Duration `mapstructure:"sign-timeout"`
}

func DefaultConfig() Config {
	return Config{
		SignTimeout: 2 * time.Minute,
	}
}

type Opt func(*Router)

func WithLogger(logger *zap.Logger) Opt {
	return func(r *Router) {
		r.logger = logger
	}
}

func WithConfig(cfg Config) Opt {
	return func(r *Router) {
		r.cfg = cfg
	}
}

func WithClock(clock clockwork.Clock) Opt {
	return func(r *Router) {
		r.clock = clock
	}
}

// Router builds, signs and submits actions.
type Router struct {
	builder   *typeddata.Builder
	submitter Submitter
	cfg       Config
	clock     clockwork.Clock
	logger    *zap.Logger
}

func New(builder *typeddata.Builder, submitter Submitter, opts ...Opt) *Router {
	r := &Router{
		builder:   builder,
		submitter: submitter,
		cfg:       DefaultConfig(),
		clock:     clockwork.NewRealClock(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Build returns a new request for an action. Builder errors are returned as is.
func (r *Router) Build(kind typeddata.Kind, payload typeddata.Payload, space *types.Space) (*Request, error) {
	env, err := r.builder.Build(kind, payload, space)
	if err != nil {
		return nil, err
	}
	req := &Request{
		ID:      uuid.New(),
		Address: env.From(),
		Action:  env,
		Status:  StatusCreated,
		now:     r.clock.Now,
		logger:  r.logger,
	}
	transitionsTotal.WithLabelValues(string(StatusCreated)).Inc()
	r.logger.Debug("sign request created",
		zap.Stringer("request", req.ID),
		zap.String("kind", string(kind)),
		zap.String("address", req.Address),
	)
	return req, nil
}

// Send signs req with signer and submits it to the hub. On ErrLockedSigner the request stays
// CREATED and may be sent again once the key is unlocked, on any other error it is REJECTED
// with the error recorded in req.Err.
func (r *Router) Send(ctx context.Context, signer Signer, req *Request) error {
	if req.Status != StatusCreated {
		return transitionError(req.Status, StatusSigned)
	}
	logger := r.logger.With(zap.Stringer("request", req.ID), zap.String("backend", signer.Name()))

	signCtx, cancel := context.WithCancelCause(ctx)
	if r.cfg.SignTimeout > 0 {
		timer := r.clock.AfterFunc(r.cfg.SignTimeout, func() { cancel(errSignTimeout) })
		defer timer.Stop()
	}
	start := r.clock.Now()
	sig, err := signer.Sign(signCtx, req)
	cancel(nil)
	if err != nil {
		if errors.Is(err, ErrLockedSigner) && req.Status == StatusCreated {
			logger.Info("signer is locked, request kept for retry")
			return err
		}
		logger.Warn("signing failed", zap.Error(err))
		req.reject(err)
		return err
	}
	signDuration.WithLabelValues(signer.Name()).Observe(r.clock.Since(start).Seconds())
	req.Signature = sig
	if err := req.transition(StatusSigned); err != nil {
		req.reject(err)
		return err
	}

	if err := req.transition(StatusSubmitted); err != nil {
		req.reject(err)
		return err
	}
	receipt, err := r.submitter.Submit(ctx, req.Address, req.Signature, req.Action)
	if err != nil {
		logger.Warn("submission failed", zap.Error(err))
		req.reject(err)
		return err
	}
	req.Receipt = receipt
	if err := req.transition(StatusAccepted); err != nil {
		return err
	}
	logger.Info("action accepted", zap.String("receipt", receipt.ID), zap.String("type", req.Action.PrimaryType))
	return nil
}

// Do builds a request for an action and sends it. The request is returned even when sending
// fails so that its status and error can be inspected.
func (r *Router) Do(
	ctx context.Context,
	signer Signer,
	kind typeddata.Kind,
	payload typeddata.Payload,
	space *types.Space,
) (*Request, error) {
	req, err := r.Build(kind, payload, space)
	if err != nil {
		return nil, err
	}
	return req, r.Send(ctx, signer, req)
}
