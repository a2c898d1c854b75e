package typeddata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// ErrInvalidSignature is returned when a signature cannot be decoded or recovered.
var ErrInvalidSignature = errors.New("invalid signature")

// Envelope is the signable structure for one action. The signature is always computed over
// the exact envelope returned by the builder.
type Envelope struct {
	Kind        Kind    `json:"-"`
	Domain      Domain  `json:"domain"`
	Types       Types   `json:"types"`
	Message     Message `json:"message"`
	PrimaryType string  `json:"primaryType"`
}

// From returns the signer address carried in the message.
func (e *Envelope) From() string {
	v, _ := e.Message.Get("from")
	s, _ := v.(string)
	return s
}

// Timestamp returns the message timestamp in seconds.
func (e *Envelope) Timestamp() int64 {
	v, ok := e.Message.Get("timestamp")
	if !ok {
		return 0
	}
	ts, _ := toInt64(v)
	return ts
}

// Clone returns a copy that shares no slices or maps with e.
func (e *Envelope) Clone() *Envelope {
	types := make(Types, len(e.Types))
	for name, fields := range e.Types {
		types[name] = slices.Clone(fields)
	}
	return &Envelope{
		Kind:        e.Kind,
		Domain:      e.Domain,
		Types:       types,
		Message:     slices.Clone(e.Message),
		PrimaryType: e.PrimaryType,
	}
}

// Equal reports whether both envelopes have the same kind and serialize identically, i.e.
// whether they produce the same signature.
func (e *Envelope) Equal(other *Envelope) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.Kind != other.Kind {
		return false
	}
	a, err := e.JSON()
	if err != nil {
		return false
	}
	b, err := other.JSON()
	if err != nil {
		return false
	}
	return bytes.Equal(a, b)
}

// JSON returns the canonical serialization of the envelope.
func (e *Envelope) JSON() ([]byte, error) {
	return json.Marshal(e)
}

// Parse decodes a serialized envelope.
func Parse(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding envelope: %w", err)
	}
	if env.PrimaryType == "" || len(env.Types[env.PrimaryType]) == 0 {
		return nil, fmt.Errorf("%w: missing primary type", ErrInvalidPayload)
	}
	return &env, nil
}

// Hash returns the EIP-712 digest keccak256(0x1901 || domainSeparator || hashStruct(message)).
func (e *Envelope) Hash() (common.Hash, error) {
	fields := e.Types[e.PrimaryType]
	message, err := e.Message.typedDataMessage(fields)
	if err != nil {
		return common.Hash{}, err
	}
	types := apitypes.Types{}
	for name, fields := range e.Types {
		converted := make([]apitypes.Type, len(fields))
		for i, f := range fields {
			converted[i] = apitypes.Type{Name: f.Name, Type: f.Type}
		}
		types[name] = converted
	}
	if _, ok := types[domainType]; !ok {
		domainFields := e.Domain.Fields()
		converted := make([]apitypes.Type, len(domainFields))
		for i, f := range domainFields {
			converted[i] = apitypes.Type{Name: f.Name, Type: f.Type}
		}
		types[domainType] = converted
	}
	typed := apitypes.TypedData{
		Types:       types,
		PrimaryType: e.PrimaryType,
		Domain:      e.Domain.typedDataDomain(),
		Message:     message,
	}
	domainSeparator, err := typed.HashStruct(domainType, typed.Domain.Map())
	if err != nil {
		return common.Hash{}, fmt.Errorf("hashing domain: %w", err)
	}
	messageHash, err := typed.HashStruct(typed.PrimaryType, typed.Message)
	if err != nil {
		return common.Hash{}, fmt.Errorf("hashing message: %w", err)
	}
	raw := make([]byte, 0, 2+len(domainSeparator)+len(messageHash))
	raw = append(raw, 0x19, 0x01)
	raw = append(raw, domainSeparator...)
	raw = append(raw, messageHash...)
	return crypto.Keccak256Hash(raw), nil
}

// RecoverSigner returns the address that produced signature over the envelope.
func RecoverSigner(e *Envelope, signature string) (common.Address, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("%w: length %d", ErrInvalidSignature, len(sig))
	}
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}
	hash, err := e.Hash()
	if err != nil {
		return common.Address{}, err
	}
	pub, err := crypto.SigToPub(hash.Bytes(), sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}
