package router

import (
	"errors"
	"fmt"
)

var (
	// ErrLockedSigner is returned when the local key is locked. The request is left untouched
	// so it can be signed after unlocking.
	ErrLockedSigner = errors.New("local signer is locked")
	// ErrSessionRejected is returned when the remote wallet user declines to sign.
	ErrSessionRejected = errors.New("remote session rejected the request")
	// ErrSessionUnavailable is returned when the remote session is disconnected, fails or
	// does not answer in time.
	ErrSessionUnavailable = errors.New("remote session unavailable")
	// ErrUserRejected may be returned by a Session when the user declines.
	ErrUserRejected = errors.New("user rejected the request")

	errSignTimeout = errors.New("signer did not answer in time")
)

// UserRejectedCode is the JSON-RPC error code wallets use when the user declines a request.
const UserRejectedCode = 4001

// RPCError is an error answered by a remote wallet.
type RPCError struct {
	Code    int
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}
