package router

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"github.com/govsnap/govsnap/common/types"
	"github.com/govsnap/govsnap/hub"
	"github.com/govsnap/govsnap/signing"
	"github.com/govsnap/govsnap/typeddata"
)

const testPassword = "hunter2"

var legacyProposal = &types.Proposal{ID: "42", Space: "gov.eth", Type: types.SingleChoice, Choices: []string{"Yes", "No"}}

func statuses(req *Request) []Status {
	out := []Status{StatusCreated}
	for _, tr := range req.History {
		out = append(out, tr.To)
	}
	return out
}

func newRouter(t *testing.T, submitter Submitter, opts ...Opt) *Router {
	builder := typeddata.NewBuilder(typeddata.DefaultDomain())
	return New(builder, submitter, append([]Opt{WithLogger(zaptest.NewLogger(t))}, opts...)...)
}

func votePayload(from string) *typeddata.VotePayload {
	return &typeddata.VotePayload{
		Base:     typeddata.Base{From: from},
		Space:    "gov.eth",
		Proposal: legacyProposal,
		Choice:   1,
	}
}

func signEnvelope(t *testing.T, priv *ecdsa.PrivateKey, env *typeddata.Envelope) string {
	t.Helper()
	hash, err := env.Hash()
	require.NoError(t, err)
	sig, err := crypto.Sign(hash.Bytes(), priv)
	require.NoError(t, err)
	sig[crypto.RecoveryIDOffset] += 27
	return hexutil.Encode(sig)
}

// wallet answers sign calls like a remote wallet holding priv.
func wallet(t *testing.T, priv *ecdsa.PrivateKey) func(context.Context, string, []byte) (string, error) {
	return func(_ context.Context, address string, envelope []byte) (string, error) {
		require.Equal(t, crypto.PubkeyToAddress(priv.PublicKey).Hex(), address)
		env, err := typeddata.Parse(envelope)
		require.NoError(t, err)
		return signEnvelope(t, priv, env), nil
	}
}

func acceptAll(t *testing.T, submitter *MockSubmitter) {
	submitter.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, address, sig string, env *typeddata.Envelope) (*hub.Receipt, error) {
			signer, err := typeddata.RecoverSigner(env, sig)
			require.NoError(t, err)
			require.Equal(t, signer.Hex(), address)
			return &hub.Receipt{ID: "0xreceipt"}, nil
		}).AnyTimes()
}

func TestStatus_CanTransition(t *testing.T) {
	for _, tc := range []struct {
		from, to Status
		ok       bool
	}{
		{StatusCreated, StatusPendingApproval, true},
		{StatusCreated, StatusRequested, true},
		{StatusCreated, StatusSigned, false},
		{StatusPendingApproval, StatusApproved, true},
		{StatusApproved, StatusSigned, true},
		{StatusRequested, StatusSigned, true},
		{StatusRequested, StatusApproved, false},
		{StatusSigned, StatusSubmitted, true},
		{StatusSubmitted, StatusAccepted, true},
		{StatusSubmitted, StatusSigned, false},
		{StatusApproved, StatusRejected, true},
		{StatusAccepted, StatusRejected, false},
		{StatusRejected, StatusCreated, false},
	} {
		require.Equal(t, tc.ok, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestRouter_LocalKeyring(t *testing.T) {
	keyring, err := signing.NewKeyring(signing.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	submitter := NewMockSubmitter(gomock.NewController(t))
	r := newRouter(t, submitter)

	req, err := r.Build(typeddata.KindVote, votePayload(keyring.Address().Hex()), nil)
	require.NoError(t, err)
	original, err := req.Action.JSON()
	require.NoError(t, err)

	submitter.EXPECT().Submit(gomock.Any(), keyring.Address().Hex(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _, sig string, env *typeddata.Envelope) (*hub.Receipt, error) {
			require.Same(t, req.Action, env)
			submitted, err := env.JSON()
			require.NoError(t, err)
			require.JSONEq(t, string(original), string(submitted))
			signer, err := typeddata.RecoverSigner(env, sig)
			require.NoError(t, err)
			require.Equal(t, keyring.Address(), signer)
			return &hub.Receipt{ID: "0xreceipt", IPFS: "bafy"}, nil
		})

	require.NoError(t, r.Send(context.Background(), NewLocalBackend(keyring), req))
	require.Equal(t, StatusAccepted, req.Status)
	require.Equal(t, []Status{
		StatusCreated, StatusPendingApproval, StatusApproved, StatusSigned, StatusSubmitted, StatusAccepted,
	}, statuses(req))
	require.Equal(t, "0xreceipt", req.Receipt.ID)
	require.NoError(t, req.Err)
}

func TestRouter_LockedSignerKeepsRequest(t *testing.T) {
	priv, err := crypto.GenerateKey()
	require.NoError(t, err)
	ks := keystore.NewKeyStore(t.TempDir(), keystore.LightScryptN, keystore.LightScryptP)
	account, err := ks.ImportECDSA(priv, testPassword)
	require.NoError(t, err)
	data, err := ks.Export(account, testPassword, testPassword)
	require.NoError(t, err)
	keyring, err := signing.NewKeyring(signing.FromKeystoreJSON(data))
	require.NoError(t, err)

	submitter := NewMockSubmitter(gomock.NewController(t))
	acceptAll(t, submitter)
	r := newRouter(t, submitter)
	backend := NewLocalBackend(keyring, WithLocalLogger(zaptest.NewLogger(t)))

	req, err := r.Build(typeddata.KindVote, votePayload(account.Address.Hex()), nil)
	require.NoError(t, err)
	action := req.Action

	err = r.Send(context.Background(), backend, req)
	require.ErrorIs(t, err, ErrLockedSigner)
	require.Equal(t, StatusCreated, req.Status)
	require.Empty(t, req.History)

	require.NoError(t, keyring.Unlock(testPassword))
	require.NoError(t, r.Send(context.Background(), backend, req))
	require.Equal(t, StatusAccepted, req.Status)
	require.Same(t, action, req.Action)
}

func TestRouter_LocalSigningErrorRejects(t *testing.T) {
	ctrl := gomock.NewController(t)
	keys := NewMockKeystore(ctrl)
	submitter := NewMockSubmitter(ctrl)
	r := newRouter(t, submitter)

	req, err := r.Build(typeddata.KindVote, votePayload("0x9c1C6b7e4F5e8f3a1D2b3C4d5E6f7a8B9c0D1e2F"), nil)
	require.NoError(t, err)

	keys.EXPECT().IsUnlocked().Return(true)
	keys.EXPECT().AddUnapprovedMessage(gomock.Any(), signing.MessageMeta{Origin: "govsnap", Kind: "vote"}).
		Return("msg-1", nil)
	keys.EXPECT().ApproveMessage(gomock.Any()).DoAndReturn(
		func(params signing.MessageParams) (signing.MessageParams, error) {
			require.Equal(t, "msg-1", params.ID)
			return params, nil
		})
	keys.EXPECT().SignTypedMessage(gomock.Any(), signing.SignTypedDataV4).Return("", signing.ErrLocked)
	keys.EXPECT().RejectMessage("msg-1").Return(nil)

	err = r.Send(context.Background(), NewLocalBackend(keys), req)
	require.ErrorIs(t, err, ErrLockedSigner)
	require.Equal(t, StatusRejected, req.Status, "lock after approval is terminal")
	require.Equal(t, []Status{StatusCreated, StatusPendingApproval, StatusApproved, StatusRejected}, statuses(req))
	require.ErrorIs(t, req.Err, signing.ErrLocked)
}

func TestRouter_LocalApproveErrorDiscardsMessage(t *testing.T) {
	keyring, err := signing.NewKeyring()
	require.NoError(t, err)
	ctrl := gomock.NewController(t)
	keys := NewMockKeystore(ctrl)
	r := newRouter(t, NewMockSubmitter(ctrl))

	var queued string
	keys.EXPECT().IsUnlocked().Return(true)
	keys.EXPECT().AddUnapprovedMessage(gomock.Any(), gomock.Any()).DoAndReturn(
		func(params signing.MessageParams, meta signing.MessageMeta) (string, error) {
			id, err := keyring.AddUnapprovedMessage(params, meta)
			queued = id
			return id, err
		})
	keys.EXPECT().ApproveMessage(gomock.Any()).Return(signing.MessageParams{}, errors.New("approval window closed"))
	keys.EXPECT().RejectMessage(gomock.Any()).DoAndReturn(keyring.RejectMessage)

	req, err := r.Do(context.Background(), NewLocalBackend(keys), typeddata.KindVote,
		votePayload(keyring.Address().Hex()), nil)
	require.ErrorContains(t, err, "approval window closed")
	require.Equal(t, StatusRejected, req.Status)

	status, ok := keyring.MessageStatus(queued)
	require.True(t, ok)
	require.Equal(t, signing.StatusRejected, status)
}

func TestRouter_LocalSignsOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	keys := NewMockKeystore(ctrl)
	submitter := NewMockSubmitter(ctrl)
	r := newRouter(t, submitter)

	keys.EXPECT().IsUnlocked().Return(true)
	keys.EXPECT().AddUnapprovedMessage(gomock.Any(), gomock.Any()).Return("msg-1", nil)
	keys.EXPECT().ApproveMessage(gomock.Any()).DoAndReturn(
		func(params signing.MessageParams) (signing.MessageParams, error) { return params, nil })
	keys.EXPECT().SignTypedMessage(gomock.Any(), signing.SignTypedDataV4).Return("0xsig", nil).Times(1)
	keys.EXPECT().SetMessageStatusSigned("msg-1", "0xsig").Return(nil)
	submitter.EXPECT().Submit(gomock.Any(), gomock.Any(), "0xsig", gomock.Any()).Return(&hub.Receipt{ID: "0x1"}, nil)

	req, err := r.Do(context.Background(), NewLocalBackend(keys), typeddata.KindVote,
		votePayload("0x9c1C6b7e4F5e8f3a1D2b3C4d5E6f7a8B9c0D1e2F"), nil)
	require.NoError(t, err)
	require.Equal(t, StatusAccepted, req.Status)

	err = r.Send(context.Background(), NewLocalBackend(keys), req)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRouter_HubRejection(t *testing.T) {
	priv, err := crypto.GenerateKey()
	require.NoError(t, err)
	keyring, err := signing.NewKeyring(signing.WithPrivateKey(priv))
	require.NoError(t, err)
	submitter := NewMockSubmitter(gomock.NewController(t))
	submitter.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, &hub.RejectedError{
		StatusCode: 400,
		Code:       "client_error",
		Message:    "no voting power",
	})

	r := newRouter(t, submitter)
	req, err := r.Do(context.Background(), NewLocalBackend(keyring), typeddata.KindVote,
		votePayload(keyring.Address().Hex()), nil)
	require.ErrorIs(t, err, hub.ErrHubRejected)
	require.ErrorContains(t, err, "no voting power")
	require.Equal(t, StatusRejected, req.Status)
	require.Equal(t, StatusSubmitted, req.History[len(req.History)-1].From)
	require.NotEmpty(t, req.Signature)
	require.Nil(t, req.Receipt)
}

func TestRouter_RemoteSession(t *testing.T) {
	priv, err := crypto.GenerateKey()
	require.NoError(t, err)
	ctrl := gomock.NewController(t)
	session := NewMockSession(ctrl)
	session.EXPECT().Connected().Return(true)
	session.EXPECT().SignTypedData(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(wallet(t, priv))
	submitter := NewMockSubmitter(ctrl)
	acceptAll(t, submitter)

	r := newRouter(t, submitter)
	backend := NewRemoteBackend(session, WithRemoteLogger(zaptest.NewLogger(t)))
	req, err := r.Do(context.Background(), backend, typeddata.KindVote,
		votePayload(crypto.PubkeyToAddress(priv.PublicKey).Hex()), nil)
	require.NoError(t, err)
	require.Equal(t, []Status{
		StatusCreated, StatusRequested, StatusSigned, StatusSubmitted, StatusAccepted,
	}, statuses(req))
}

func TestRouter_RemoteRejected(t *testing.T) {
	for _, tc := range []struct {
		desc string
		err  error
	}{
		{desc: "rpc code", err: &RPCError{Code: UserRejectedCode, Message: "User denied message signature"}},
		{desc: "sentinel", err: ErrUserRejected},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			session := NewMockSession(ctrl)
			session.EXPECT().Connected().Return(true)
			session.EXPECT().SignTypedData(gomock.Any(), gomock.Any(), gomock.Any()).Return("", tc.err)

			r := newRouter(t, NewMockSubmitter(ctrl))
			req, err := r.Do(context.Background(), NewRemoteBackend(session), typeddata.KindVote,
				votePayload("0x9c1C6b7e4F5e8f3a1D2b3C4d5E6f7a8B9c0D1e2F"), nil)
			require.ErrorIs(t, err, ErrSessionRejected)
			require.NotErrorIs(t, err, ErrSessionUnavailable)
			require.Equal(t, StatusRejected, req.Status)
		})
	}
}

func TestRouter_RemoteUnavailable(t *testing.T) {
	t.Run("not connected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		session := NewMockSession(ctrl)
		session.EXPECT().Connected().Return(false)

		r := newRouter(t, NewMockSubmitter(ctrl))
		req, err := r.Do(context.Background(), NewRemoteBackend(session), typeddata.KindVote,
			votePayload("0x9c1C6b7e4F5e8f3a1D2b3C4d5E6f7a8B9c0D1e2F"), nil)
		require.ErrorIs(t, err, ErrSessionUnavailable)
		require.Equal(t, StatusRejected, req.Status)
	})
	t.Run("transport error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		session := NewMockSession(ctrl)
		session.EXPECT().Connected().Return(true)
		session.EXPECT().SignTypedData(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("relay down"))

		r := newRouter(t, NewMockSubmitter(ctrl))
		_, err := r.Do(context.Background(), NewRemoteBackend(session), typeddata.KindVote,
			votePayload("0x9c1C6b7e4F5e8f3a1D2b3C4d5E6f7a8B9c0D1e2F"), nil)
		require.ErrorIs(t, err, ErrSessionUnavailable)
		require.ErrorContains(t, err, "relay down")
	})
}

func blockUntilCanceled(ctx context.Context, _ string, _ []byte) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestRouter_RemoteTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	session := NewMockSession(ctrl)
	session.EXPECT().Connected().Return(true)
	session.EXPECT().SignTypedData(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(blockUntilCanceled)

	clock := clockwork.NewFakeClock()
	backend := NewRemoteBackend(session, WithTimeout(30*time.Second), WithRemoteClock(clock))
	r := newRouter(t, NewMockSubmitter(ctrl))
	req, err := r.Build(typeddata.KindVote, votePayload("0x9c1C6b7e4F5e8f3a1D2b3C4d5E6f7a8B9c0D1e2F"), nil)
	require.NoError(t, err)

	errc := make(chan error, 1)
	go func() { errc <- r.Send(context.Background(), backend, req) }()
	clock.BlockUntil(1)
	clock.Advance(30 * time.Second)

	select {
	case err := <-errc:
		require.ErrorIs(t, err, ErrSessionUnavailable)
	case <-time.After(5 * time.Second):
		require.FailNow(t, "sign call did not time out")
	}
	require.Equal(t, StatusRejected, req.Status)
}

func TestRouter_RemoteDisconnectFailsInflightCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	session := NewMockSession(ctrl)
	started := make(chan struct{})
	session.EXPECT().Connected().Return(true)
	session.EXPECT().SignTypedData(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, address string, envelope []byte) (string, error) {
			close(started)
			return blockUntilCanceled(ctx, address, envelope)
		})

	backend := NewRemoteBackend(session)
	r := newRouter(t, NewMockSubmitter(ctrl))
	req, err := r.Build(typeddata.KindVote, votePayload("0x9c1C6b7e4F5e8f3a1D2b3C4d5E6f7a8B9c0D1e2F"), nil)
	require.NoError(t, err)

	errc := make(chan error, 1)
	go func() { errc <- r.Send(context.Background(), backend, req) }()
	<-started
	backend.HandleEvent(EventCallRequestSent)
	backend.HandleEvent(EventDisconnect)

	require.ErrorIs(t, <-errc, ErrSessionUnavailable)
	require.Equal(t, StatusRejected, req.Status)
}

func TestRouter_RemoteOneCallAtATime(t *testing.T) {
	priv, err := crypto.GenerateKey()
	require.NoError(t, err)
	ctrl := gomock.NewController(t)
	session := NewMockSession(ctrl)
	session.EXPECT().Connected().Return(true).AnyTimes()

	var active, peak atomic.Int32
	sign := wallet(t, priv)
	session.EXPECT().SignTypedData(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, address string, envelope []byte) (string, error) {
			n := active.Add(1)
			defer active.Add(-1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			return sign(ctx, address, envelope)
		}).Times(4)
	submitter := NewMockSubmitter(ctrl)
	acceptAll(t, submitter)

	r := newRouter(t, submitter)
	backend := NewRemoteBackend(session)
	from := crypto.PubkeyToAddress(priv.PublicKey).Hex()

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req, err := r.Do(context.Background(), backend, typeddata.KindVote, votePayload(from), nil)
			require.NoError(t, err)
			require.Equal(t, StatusAccepted, req.Status)
		}()
	}
	wg.Wait()
	require.EqualValues(t, 1, peak.Load())
}

func TestRouter_RemoteTimedOutCallKeepsSessionBusy(t *testing.T) {
	priv, err := crypto.GenerateKey()
	require.NoError(t, err)
	ctrl := gomock.NewController(t)
	session := NewMockSession(ctrl)
	session.EXPECT().Connected().Return(true).AnyTimes()

	var calls, active, peak atomic.Int32
	started := make(chan struct{})
	answer := make(chan struct{})
	sign := wallet(t, priv)
	session.EXPECT().SignTypedData(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, address string, envelope []byte) (string, error) {
			n := active.Add(1)
			defer active.Add(-1)
			if n > peak.Load() {
				peak.Store(n)
			}
			if calls.Add(1) == 1 {
				close(started)
				<-answer
				return "", errors.New("answered too late")
			}
			return sign(ctx, address, envelope)
		}).Times(2)
	submitter := NewMockSubmitter(ctrl)
	acceptAll(t, submitter)

	clock := clockwork.NewFakeClock()
	backend := NewRemoteBackend(session, WithTimeout(30*time.Second), WithRemoteClock(clock))
	r := newRouter(t, submitter)
	from := crypto.PubkeyToAddress(priv.PublicKey).Hex()

	first, err := r.Build(typeddata.KindVote, votePayload(from), nil)
	require.NoError(t, err)
	errc := make(chan error, 1)
	go func() { errc <- r.Send(context.Background(), backend, first) }()
	<-started
	clock.BlockUntil(1)
	clock.Advance(30 * time.Second)
	require.ErrorIs(t, <-errc, ErrSessionUnavailable)
	require.Equal(t, StatusRejected, first.Status)

	second, err := r.Build(typeddata.KindVote, votePayload(from), nil)
	require.NoError(t, err)
	go func() { errc <- r.Send(context.Background(), backend, second) }()
	require.Never(t, func() bool { return calls.Load() > 1 }, 50*time.Millisecond, 5*time.Millisecond,
		"second call sent while the wallet still holds the first")

	close(answer)
	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		require.FailNow(t, "second request never got its turn")
	}
	require.Equal(t, StatusAccepted, second.Status)
	require.EqualValues(t, 1, peak.Load())
}

func TestRouter_SignTimeout(t *testing.T) {
	from := "0x9c1C6b7e4F5e8f3a1D2b3C4d5E6f7a8B9c0D1e2F"
	t.Run("any signer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		signer := NewMockSigner(ctrl)
		signer.EXPECT().Name().Return("slow").AnyTimes()
		signer.EXPECT().Sign(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, _ *Request) (string, error) {
				<-ctx.Done()
				return "", context.Cause(ctx)
			})

		clock := clockwork.NewFakeClock()
		r := newRouter(t, NewMockSubmitter(ctrl), WithClock(clock), WithConfig(Config{SignTimeout: 10 * time.Second}))
		req, err := r.Build(typeddata.KindVote, votePayload(from), nil)
		require.NoError(t, err)

		errc := make(chan error, 1)
		go func() { errc <- r.Send(context.Background(), signer, req) }()
		clock.BlockUntil(1)
		clock.Advance(9 * time.Second)
		require.Never(t, func() bool { return len(errc) > 0 }, 20*time.Millisecond, 5*time.Millisecond)
		clock.Advance(time.Second)

		require.ErrorIs(t, <-errc, errSignTimeout)
		require.Equal(t, StatusRejected, req.Status)
		require.ErrorIs(t, req.Err, errSignTimeout)
	})
	t.Run("remote session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		session := NewMockSession(ctrl)
		session.EXPECT().Connected().Return(true)
		session.EXPECT().SignTypedData(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(blockUntilCanceled)

		clock := clockwork.NewFakeClock()
		r := newRouter(t, NewMockSubmitter(ctrl), WithClock(clock), WithConfig(Config{SignTimeout: time.Minute}))
		req, err := r.Build(typeddata.KindVote, votePayload(from), nil)
		require.NoError(t, err)

		errc := make(chan error, 1)
		go func() { errc <- r.Send(context.Background(), NewRemoteBackend(session), req) }()
		clock.BlockUntil(1)
		clock.Advance(time.Minute)

		err = <-errc
		require.ErrorIs(t, err, ErrSessionUnavailable)
		require.ErrorIs(t, err, errSignTimeout)
		require.Equal(t, StatusRejected, req.Status)
	})
}

func TestRouter_RemoteWrongSigner(t *testing.T) {
	other, err := crypto.GenerateKey()
	require.NoError(t, err)
	ctrl := gomock.NewController(t)
	session := NewMockSession(ctrl)
	session.EXPECT().Connected().Return(true)
	session.EXPECT().SignTypedData(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, envelope []byte) (string, error) {
			env, err := typeddata.Parse(envelope)
			require.NoError(t, err)
			return signEnvelope(t, other, env), nil
		})

	r := newRouter(t, NewMockSubmitter(ctrl))
	req, err := r.Do(context.Background(), NewRemoteBackend(session), typeddata.KindVote,
		votePayload("0x9c1C6b7e4F5e8f3a1D2b3C4d5E6f7a8B9c0D1e2F"), nil)
	require.ErrorIs(t, err, typeddata.ErrInvalidSignature)
	require.Equal(t, StatusRejected, req.Status)
}

func TestRouter_BuildErrors(t *testing.T) {
	r := newRouter(t, NewMockSubmitter(gomock.NewController(t)))
	_, err := r.Build("poll", votePayload("0x9c1C6b7e4F5e8f3a1D2b3C4d5E6f7a8B9c0D1e2F"), nil)
	require.ErrorIs(t, err, typeddata.ErrUnknownKind)

	_, err = r.Build(typeddata.KindVote, votePayload("not-an-address"), nil)
	require.ErrorIs(t, err, typeddata.ErrInvalidPayload)
}

func TestRouter_UsesClockForHistory(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Unix(1_700_000_000, 0))
	ctrl := gomock.NewController(t)
	signer := NewMockSigner(ctrl)
	signer.EXPECT().Name().Return("fake").AnyTimes()
	signer.EXPECT().Sign(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req *Request) (string, error) {
		return "0xsig", req.transition(StatusRequested)
	})
	submitter := NewMockSubmitter(ctrl)
	submitter.EXPECT().Submit(gomock.Any(), gomock.Any(), "0xsig", gomock.Any()).Return(&hub.Receipt{ID: "0x1"}, nil)

	r := newRouter(t, submitter, WithClock(clock), WithConfig(Config{SignTimeout: time.Second}))
	req, err := r.Do(context.Background(), signer, typeddata.KindVote,
		votePayload("0x9c1C6b7e4F5e8f3a1D2b3C4d5E6f7a8B9c0D1e2F"), nil)
	require.NoError(t, err)
	for _, tr := range req.History {
		require.Equal(t, clock.Now(), tr.At)
	}
}
