package router

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/govsnap/govsnap/typeddata"
)

// Event is a lifecycle event of a remote wallet session.
type Event string

const (
	EventConnect         Event = "connect"
	EventDisconnect      Event = "disconnect"
	EventCallRequestSent Event = "call_request_sent"
)

var errDisconnected = errors.New("remote session disconnected")

type RemoteOpt func(*RemoteBackend)

func WithRemoteLogger(logger *zap.Logger) RemoteOpt {
	return func(b *RemoteBackend) {
		b.logger = logger
	}
}

// WithTimeout sets how long to wait for the wallet to answer a sign call. By default the
// call waits until the context is done.
func WithTimeout(timeout time.Duration) RemoteOpt {
	return func(b *RemoteBackend) {
		b.timeout = timeout
	}
}

func WithRemoteClock(clock clockwork.Clock) RemoteOpt {
	return func(b *RemoteBackend) {
		b.clock = clock
	}
}

// RemoteBackend signs through a remote wallet session. Only one sign call is outstanding on
// the session at a time, later calls wait their turn.
type RemoteBackend struct {
	session Session
	timeout time.Duration
	clock   clockwork.Clock
	logger  *zap.Logger
	turn    chan struct{}

	mu       sync.Mutex
	inflight context.CancelCauseFunc
}

func NewRemoteBackend(session Session, opts ...RemoteOpt) *RemoteBackend {
	b := &RemoteBackend{
		session: session,
		clock:   clockwork.NewRealClock(),
		logger:  zap.NewNop(),
		turn:    make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *RemoteBackend) Name() string {
	return "remote"
}

// HandleEvent feeds a session lifecycle event to the backend. A disconnect fails the call in
// flight with ErrSessionUnavailable.
func (b *RemoteBackend) HandleEvent(event Event) {
	switch event {
	case EventConnect:
		b.logger.Info("remote session connected")
	case EventDisconnect:
		b.logger.Warn("remote session disconnected")
		b.mu.Lock()
		if b.inflight != nil {
			b.inflight(errDisconnected)
		}
		b.mu.Unlock()
	case EventCallRequestSent:
		b.logger.Debug("sign request delivered to remote wallet")
	default:
		b.logger.Debug("ignoring unknown session event", zap.String("event", string(event)))
	}
}

// Sign sends the request envelope to the wallet and waits for its signature. The signature
// must recover to the request address.
//
// A call that times out or loses its session fails right away, but the session keeps its turn
// until the wallet answers it since the wallet cannot be told to abort.
func (b *RemoteBackend) Sign(ctx context.Context, req *Request) (string, error) {
	remoteQueued.Inc()
	defer remoteQueued.Dec()
	select {
	case b.turn <- struct{}{}:
	case <-ctx.Done():
		return "", b.sessionError(ctx, ctx.Err())
	}
	handedOff := false
	defer func() {
		if !handedOff {
			<-b.turn
		}
	}()

	if !b.session.Connected() {
		return "", fmt.Errorf("%w: %w", ErrSessionUnavailable, errDisconnected)
	}
	data, err := req.Action.JSON()
	if err != nil {
		return "", fmt.Errorf("encoding envelope: %w", err)
	}
	if err := req.transition(StatusRequested); err != nil {
		return "", err
	}

	callCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	b.mu.Lock()
	b.inflight = cancel
	b.mu.Unlock()
	defer func() {
		b.mu.Lock()
		b.inflight = nil
		b.mu.Unlock()
	}()
	if b.timeout > 0 {
		timer := b.clock.AfterFunc(b.timeout, func() { cancel(errSignTimeout) })
		defer timer.Stop()
	}

	type answer struct {
		sig string
		err error
	}
	answered := make(chan answer, 1)
	handedOff = true
	go func() {
		defer func() { <-b.turn }()
		sig, err := b.session.SignTypedData(callCtx, req.Address, data)
		answered <- answer{sig: sig, err: err}
	}()

	var a answer
	select {
	case a = <-answered:
	case <-callCtx.Done():
		b.logger.Debug("sign call abandoned, waiting for the wallet to answer",
			zap.Stringer("request", req.ID),
			zap.Error(context.Cause(callCtx)),
		)
		a.err = context.Cause(callCtx)
	}
	if a.err != nil {
		return "", b.sessionError(callCtx, a.err)
	}
	if err := checkSigner(req, a.sig); err != nil {
		return "", err
	}
	return a.sig, nil
}

func (b *RemoteBackend) sessionError(callCtx context.Context, err error) error {
	var rpcErr *RPCError
	switch cause := context.Cause(callCtx); {
	case errors.Is(cause, errSignTimeout), errors.Is(cause, errDisconnected):
		return fmt.Errorf("%w: %w", ErrSessionUnavailable, cause)
	case errors.Is(err, ErrUserRejected),
		errors.As(err, &rpcErr) && rpcErr.Code == UserRejectedCode:
		return fmt.Errorf("%w: %w", ErrSessionRejected, err)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrSessionUnavailable, errSignTimeout)
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, ErrSessionUnavailable), errors.Is(err, ErrSessionRejected):
		return err
	}
	return fmt.Errorf("%w: %w", ErrSessionUnavailable, err)
}

func checkSigner(req *Request, sig string) error {
	signer, err := typeddata.RecoverSigner(req.Action, sig)
	if err != nil {
		return err
	}
	if !strings.EqualFold(signer.Hex(), req.Address) {
		return fmt.Errorf("%w: signed by %s, expected %s", typeddata.ErrInvalidSignature, signer.Hex(), req.Address)
	}
	return nil
}
