package router

import (
	"context"

	"github.com/govsnap/govsnap/hub"
	"github.com/govsnap/govsnap/signing"
	"github.com/govsnap/govsnap/typeddata"
)

//go:generate mockgen -typed -package=router -destination=mocks.go -source=./interface.go

// Signer produces the signature of a request envelope. It moves the request through its
// backend specific statuses, the router takes care of SIGNED and everything after.
type Signer interface {
	Name() string
	Sign(ctx context.Context, req *Request) (string, error)
}

// Submitter delivers a signed envelope to the hub.
type Submitter interface {
	Submit(ctx context.Context, address, signature string, env *typeddata.Envelope) (*hub.Receipt, error)
}

// Keystore is the local key module holding the signing key and its queue of pending messages.
type Keystore interface {
	IsUnlocked() bool
	AddUnapprovedMessage(params signing.MessageParams, meta signing.MessageMeta) (string, error)
	ApproveMessage(params signing.MessageParams) (signing.MessageParams, error)
	SignTypedMessage(params signing.MessageParams, version string) (string, error)
	SetMessageStatusSigned(id, signature string) error
	RejectMessage(id string) error
}

// Session is a connection to a remote wallet. SignTypedData sends [address, envelope] to the
// wallet and waits for its signature.
type Session interface {
	Connected() bool
	SignTypedData(ctx context.Context, address string, envelope []byte) (string, error)
}

var (
	_ Submitter = (*hub.Client)(nil)
	_ Keystore  = (*signing.Keyring)(nil)
	_ Signer    = (*LocalBackend)(nil)
	_ Signer    = (*RemoteBackend)(nil)
)
