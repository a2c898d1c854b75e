package hub

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/govsnap/govsnap/common/types"
	"github.com/govsnap/govsnap/typeddata"
)

const voter = "0x9c1C6b7e4F5e8f3a1D2b3C4d5E6f7a8B9c0D1e2F"

func testEnvelope(t *testing.T) *typeddata.Envelope {
	t.Helper()
	env, err := typeddata.NewBuilder(typeddata.DefaultDomain()).Build(typeddata.KindVote, &typeddata.VotePayload{
		Base:     typeddata.Base{From: voter, Timestamp: 1_700_000_000},
		Space:    "gov.eth",
		Proposal: &types.Proposal{ID: "42", Type: types.Basic, Choices: []string{"For", "Against", "Abstain"}},
		Choice:   1,
	}, nil)
	require.NoError(t, err)
	return env
}

func testClient(t *testing.T, url string) *Client {
	t.Helper()
	cfg := DefaultConfig()
	cfg.MaxRetries = 2
	cfg.RetryDelay = time.Millisecond
	c, err := NewClient(url, WithConfig(cfg), WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	return c
}

func TestSubmit_Accepted(t *testing.T) {
	env := testEnvelope(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/msg", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Equal(t, IdempotencyKey(voter, env), r.Header.Get(IdempotencyHeader))

		var body struct {
			Address string `json:"address"`
			Sig     string `json:"sig"`
			Data    struct {
				Domain  map[string]any             `json:"domain"`
				Types   map[string]json.RawMessage `json:"types"`
				Message map[string]any             `json:"message"`
			} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, voter, body.Address)
		require.Equal(t, "0xsig", body.Sig)
		require.Equal(t, "snapshot", body.Data.Domain["name"])
		require.Contains(t, body.Data.Types, "Vote")
		require.NotContains(t, body.Data.Types, "EIP712Domain")
		require.Equal(t, "gov.eth", body.Data.Message["space"])

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"0xabc","ipfs":"bafy","relayer":{"address":"0xrelayer","receipt":"0xreceipt"}}`)
	}))
	defer srv.Close()

	receipt, err := testClient(t, srv.URL).Submit(context.Background(), voter, "0xsig", env)
	require.NoError(t, err)
	require.Equal(t, "0xabc", receipt.ID)
	require.Equal(t, "bafy", receipt.IPFS)
	require.Equal(t, Relayer{Address: "0xrelayer", Receipt: "0xreceipt"}, receipt.Relayer)
	require.NotEmpty(t, receipt.Raw)
}

func TestSubmit_RejectedIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":"client_error","error_description":"proposal not found"}`)
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL).Submit(context.Background(), voter, "0xsig", testEnvelope(t))
	require.ErrorIs(t, err, ErrHubRejected)
	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	require.Equal(t, http.StatusBadRequest, rejected.StatusCode)
	require.Equal(t, "client_error", rejected.Code)
	require.Equal(t, "proposal not found", rejected.Message)
	require.EqualValues(t, 1, calls.Load())
}

func TestSubmit_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	keys := make(chan string, 3)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys <- r.Header.Get(IdempotencyHeader)
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		io.WriteString(w, `{"id":"0xabc","ipfs":"bafy","relayer":{}}`)
	}))
	defer srv.Close()

	receipt, err := testClient(t, srv.URL).Submit(context.Background(), voter, "0xsig", testEnvelope(t))
	require.NoError(t, err)
	require.Equal(t, "0xabc", receipt.ID)
	require.EqualValues(t, 2, calls.Load())
	require.Equal(t, <-keys, <-keys)
}

func TestSubmit_RetriesExhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		io.WriteString(w, "maintenance")
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL).Submit(context.Background(), voter, "0xsig", testEnvelope(t))
	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	require.Equal(t, http.StatusServiceUnavailable, rejected.StatusCode)
	require.Equal(t, "maintenance", rejected.Message)
	require.EqualValues(t, 3, calls.Load())
}

func TestSubmit_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := testClient(t, srv.URL).Submit(ctx, voter, "0xsig", testEnvelope(t))
	require.ErrorIs(t, err, context.Canceled)
	require.NotErrorIs(t, err, ErrHubRejected)
}

func TestNewClient(t *testing.T) {
	c, err := NewClient("seq.example.org")
	require.Error(t, err)
	require.Nil(t, c)

	c, err = NewClient("https://seq.example.org")
	require.NoError(t, err)
	require.Equal(t, "https://seq.example.org/api/msg", c.baseURL.JoinPath("api", "msg").String())
}

func TestIdempotencyKey(t *testing.T) {
	env := testEnvelope(t)
	require.Equal(t, "0x9c1c6b7e4f5e8f3a1d2b3c4d5e6f7a8b9c0d1e2f:1700000000:Vote", IdempotencyKey(voter, env))
}
