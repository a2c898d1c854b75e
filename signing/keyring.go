// Package signing implements the local key module: a keyring holding one secp256k1 key with a
// queue of typed-data messages that are approved and signed one at a time.
package signing

import (
	"bytes"
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	hdwallet "github.com/miguelmota/go-ethereum-hdwallet"
	"github.com/natefinch/atomic"
	"go.uber.org/zap"

	"github.com/govsnap/govsnap/typeddata"
)

// DefaultDerivationPath is the first account of the standard Ethereum derivation path.
const DefaultDerivationPath = "m/44'/60'/0'/0/0"

// SignTypedDataV4 is the only typed-data signing version supported.
const SignTypedDataV4 = "V4"

// finishedMessages is how many signed or rejected messages keep a queryable status.
const finishedMessages = 256

var (
	ErrLocked             = errors.New("keyring is locked")
	ErrWrongPassword      = errors.New("wrong password")
	ErrUnknownMessage     = errors.New("unknown message")
	ErrAlreadySigned      = errors.New("message already signed")
	ErrNotApproved        = errors.New("message is not approved")
	ErrUnknownAccount     = errors.New("message is not from the keyring account")
	ErrUnsupportedVersion = errors.New("unsupported typed data version")
	ErrDataMismatch       = errors.New("data does not match the queued message")
)

// MessageParams are the parameters of a typed-data signing request. Data holds the
// serialized envelope.
type MessageParams struct {
	ID   string `json:"id,omitempty"`
	From string `json:"from"`
	Data string `json:"data"`
}

// MessageMeta describes where a message came from, it is kept for display only.
type MessageMeta struct {
	Origin string `json:"origin"`
	Kind   string `json:"kind"`
}

// MessageStatus is the state of a queued message.
type MessageStatus string

const (
	StatusUnapproved MessageStatus = "unapproved"
	StatusApproved   MessageStatus = "approved"
	StatusSigned     MessageStatus = "signed"
	StatusRejected   MessageStatus = "rejected"
)

type message struct {
	params    MessageParams
	meta      MessageMeta
	status    MessageStatus
	signature string
}

type keyringOption struct {
	priv      *ecdsa.PrivateKey
	encrypted []byte
	file      string
	scryptN   int
	scryptP   int
	logger    *zap.Logger
}

// KeyringOptionFunc modifies Keyring.
type KeyringOptionFunc func(*keyringOption) error

// WithPrivateKey sets the key of an unlocked keyring.
func WithPrivateKey(priv *ecdsa.PrivateKey) KeyringOptionFunc {
	return func(opt *keyringOption) error {
		if opt.priv != nil || opt.encrypted != nil {
			return errors.New("invalid option WithPrivateKey: key already set")
		}
		if priv == nil {
			return errors.New("invalid option WithPrivateKey: nil key")
		}
		opt.priv = priv
		return nil
	}
}

// WithHexKey sets the key of an unlocked keyring from its hex encoding.
func WithHexKey(hexKey string) KeyringOptionFunc {
	return func(opt *keyringOption) error {
		priv, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
		if err != nil {
			return fmt.Errorf("decoding private key: %w", err)
		}
		return WithPrivateKey(priv)(opt)
	}
}

// FromMnemonic derives the key of an unlocked keyring from a BIP-39 mnemonic.
func FromMnemonic(mnemonic, path string) KeyringOptionFunc {
	return func(opt *keyringOption) error {
		wallet, err := hdwallet.NewFromMnemonic(mnemonic)
		if err != nil {
			return fmt.Errorf("loading mnemonic: %w", err)
		}
		if path == "" {
			path = DefaultDerivationPath
		}
		derivation, err := hdwallet.ParseDerivationPath(path)
		if err != nil {
			return fmt.Errorf("parsing derivation path %s: %w", path, err)
		}
		account, err := wallet.Derive(derivation, false)
		if err != nil {
			return fmt.Errorf("deriving %s: %w", path, err)
		}
		priv, err := wallet.PrivateKey(account)
		if err != nil {
			return fmt.Errorf("deriving private key: %w", err)
		}
		return WithPrivateKey(priv)(opt)
	}
}

// FromKeystoreJSON loads an encrypted key. The keyring stays locked until Unlock.
func FromKeystoreJSON(data []byte) KeyringOptionFunc {
	return func(opt *keyringOption) error {
		if opt.priv != nil || opt.encrypted != nil {
			return errors.New("invalid option FromKeystoreJSON: key already set")
		}
		if _, err := keystoreAddress(data); err != nil {
			return err
		}
		opt.encrypted = data
		return nil
	}
}

// FromFile loads an encrypted key from a keystore file.
func FromFile(path string) KeyringOptionFunc {
	return func(opt *keyringOption) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to open keystore file at %s: %w", path, err)
		}
		if err := FromKeystoreJSON(data)(opt); err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		opt.file = filepath.Base(path)
		return nil
	}
}

// WithScrypt sets the scrypt parameters used when the key is encrypted by Export or Save.
func WithScrypt(n, p int) KeyringOptionFunc {
	return func(opt *keyringOption) error {
		if n <= 0 || p <= 0 {
			return fmt.Errorf("invalid option WithScrypt: n=%d p=%d", n, p)
		}
		opt.scryptN, opt.scryptP = n, p
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) KeyringOptionFunc {
	return func(opt *keyringOption) error {
		opt.logger = logger
		return nil
	}
}

// Keyring is the local key module. It is safe for concurrent use.
type Keyring struct {
	logger  *zap.Logger
	address common.Address
	scryptN int
	scryptP int

	mu        sync.Mutex
	priv      *ecdsa.PrivateKey
	encrypted []byte
	file      string
	messages  map[string]*message
	finished  *lru.Cache[string, MessageStatus]
}

// NewKeyring returns a keyring. Without a key option a fresh key is generated.
func NewKeyring(opts ...KeyringOptionFunc) (*Keyring, error) {
	cfg := &keyringOption{
		scryptN: keystore.StandardScryptN,
		scryptP: keystore.StandardScryptP,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	finished, err := lru.New[string, MessageStatus](finishedMessages)
	if err != nil {
		return nil, err
	}
	k := &Keyring{
		finished:  finished,
		logger:    cfg.logger,
		scryptN:   cfg.scryptN,
		scryptP:   cfg.scryptP,
		priv:      cfg.priv,
		encrypted: cfg.encrypted,
		file:      cfg.file,
		messages:  make(map[string]*message),
	}
	switch {
	case cfg.encrypted != nil:
		addr, err := keystoreAddress(cfg.encrypted)
		if err != nil {
			return nil, err
		}
		k.address = addr
	case cfg.priv == nil:
		priv, err := crypto.GenerateKey()
		if err != nil {
			return nil, fmt.Errorf("could not generate key: %w", err)
		}
		k.priv = priv
		fallthrough
	default:
		k.address = crypto.PubkeyToAddress(k.priv.PublicKey)
	}
	return k, nil
}

func keystoreAddress(data []byte) (common.Address, error) {
	var header struct {
		Address string `json:"address"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return common.Address{}, fmt.Errorf("decoding keystore: %w", err)
	}
	if !common.IsHexAddress(header.Address) {
		return common.Address{}, fmt.Errorf("keystore has invalid address %q", header.Address)
	}
	return common.HexToAddress(header.Address), nil
}

// Address returns the account address of the keyring.
func (k *Keyring) Address() common.Address {
	return k.address
}

// Name returns the keystore file name the key was loaded from or saved to, if any.
func (k *Keyring) Name() string {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.file
}

// Export encrypts the key with password and returns it in the keystore JSON format.
func (k *Keyring) Export(password string) ([]byte, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.export(password)
}

func (k *Keyring) export(password string) ([]byte, error) {
	if k.priv == nil {
		return nil, ErrLocked
	}
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("generating key id: %w", err)
	}
	key := &keystore.Key{Id: id, Address: k.address, PrivateKey: k.priv}
	data, err := keystore.EncryptKey(key, password, k.scryptN, k.scryptP)
	if err != nil {
		return nil, fmt.Errorf("encrypting key: %w", err)
	}
	return data, nil
}

// Save writes the key encrypted with password to path, replacing any existing file
// atomically. A keyring created from a plain key can be locked once saved.
func (k *Keyring) Save(path, password string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	data, err := k.export(password)
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing keystore file %s: %w", path, err)
	}
	k.encrypted = data
	k.file = filepath.Base(path)
	k.logger.Info("keyring saved", zap.Stringer("address", k.address), zap.String("file", k.file))
	return nil
}

// IsUnlocked reports whether the key is available for signing.
func (k *Keyring) IsUnlocked() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.priv != nil
}

// Unlock decrypts the keystore with password.
func (k *Keyring) Unlock(password string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.priv != nil {
		return nil
	}
	key, err := keystore.DecryptKey(k.encrypted, password)
	switch {
	case errors.Is(err, keystore.ErrDecrypt):
		return ErrWrongPassword
	case err != nil:
		return fmt.Errorf("decrypting keystore: %w", err)
	}
	k.priv = key.PrivateKey
	k.logger.Info("keyring unlocked", zap.Stringer("address", k.address))
	return nil
}

// Lock drops the decrypted key. Keyrings created from a plain key cannot be locked.
func (k *Keyring) Lock() {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.encrypted != nil {
		k.priv = nil
	}
}

// AddUnapprovedMessage queues a message and returns its id.
func (k *Keyring) AddUnapprovedMessage(params MessageParams, meta MessageMeta) (string, error) {
	if !strings.EqualFold(params.From, k.address.Hex()) {
		return "", fmt.Errorf("%w: %s", ErrUnknownAccount, params.From)
	}
	if _, err := typeddata.Parse([]byte(params.Data)); err != nil {
		return "", err
	}
	id := uuid.NewString()
	params.ID = id

	k.mu.Lock()
	defer k.mu.Unlock()
	k.messages[id] = &message{params: params, meta: meta, status: StatusUnapproved}
	k.logger.Debug("queued typed message", zap.String("id", id), zap.String("kind", meta.Kind))
	return id, nil
}

// ApproveMessage approves a queued message and returns its canonical params. Canonicalization
// lowercases the address and re-encodes the data without changing what is signed. params must
// carry the data the message was queued with.
func (k *Keyring) ApproveMessage(params MessageParams) (MessageParams, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	msg, err := k.pending(params.ID)
	if err != nil {
		return MessageParams{}, err
	}
	if msg.status != StatusUnapproved {
		return MessageParams{}, fmt.Errorf("cannot approve message %s in status %s", params.ID, msg.status)
	}
	env, err := sameDigest(msg.params.Data, params.Data)
	if err != nil {
		return MessageParams{}, fmt.Errorf("message %s: %w", params.ID, err)
	}
	data, err := env.JSON()
	if err != nil {
		return MessageParams{}, err
	}
	canonical := MessageParams{
		ID:   params.ID,
		From: strings.ToLower(params.From),
		Data: string(data),
	}
	msg.params = canonical
	msg.status = StatusApproved
	return canonical, nil
}

// sameDigest parses both serialized envelopes and fails unless they hash to the same digest.
// It returns the envelope parsed from queued.
func sameDigest(queued, data string) (*typeddata.Envelope, error) {
	want, err := typeddata.Parse([]byte(queued))
	if err != nil {
		return nil, err
	}
	got, err := typeddata.Parse([]byte(data))
	if err != nil {
		return nil, err
	}
	wantHash, err := want.Hash()
	if err != nil {
		return nil, err
	}
	gotHash, err := got.Hash()
	if err != nil {
		return nil, err
	}
	if wantHash != gotHash {
		return nil, ErrDataMismatch
	}
	return want, nil
}

// SignTypedMessage signs an approved message. The signed data is the one stored at approval,
// params.Data must equal it. A message is signed at most once.
func (k *Keyring) SignTypedMessage(params MessageParams, version string) (string, error) {
	if version != SignTypedDataV4 {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedVersion, version)
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	if k.priv == nil {
		return "", ErrLocked
	}
	msg, err := k.pending(params.ID)
	if err != nil {
		return "", err
	}
	switch {
	case msg.signature != "":
		return "", fmt.Errorf("%w: %s", ErrAlreadySigned, params.ID)
	case msg.status != StatusApproved:
		return "", fmt.Errorf("%w: %s is %s", ErrNotApproved, params.ID, msg.status)
	case params.Data != msg.params.Data:
		return "", fmt.Errorf("%w: %s", ErrDataMismatch, params.ID)
	}
	env, err := typeddata.Parse([]byte(msg.params.Data))
	if err != nil {
		return "", err
	}
	hash, err := env.Hash()
	if err != nil {
		return "", err
	}
	sig, err := crypto.Sign(hash.Bytes(), k.priv)
	if err != nil {
		return "", fmt.Errorf("signing message %s: %w", params.ID, err)
	}
	sig[crypto.RecoveryIDOffset] += 27
	msg.signature = hexutil.Encode(sig)
	return msg.signature, nil
}

// SetMessageStatusSigned marks a message as signed with the given signature. The message leaves
// the queue, its status stays queryable for a while.
func (k *Keyring) SetMessageStatusSigned(id, signature string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	msg, err := k.pending(id)
	if err != nil {
		return err
	}
	if msg.signature != signature {
		return fmt.Errorf("signature does not match the one produced for %s", id)
	}
	k.finish(id, StatusSigned)
	k.logger.Debug("typed message signed", zap.String("id", id))
	return nil
}

// RejectMessage marks a message as rejected, it can no longer be approved or signed.
func (k *Keyring) RejectMessage(id string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if _, err := k.pending(id); err != nil {
		return err
	}
	k.finish(id, StatusRejected)
	k.logger.Debug("typed message rejected", zap.String("id", id))
	return nil
}

// MessageStatus returns the status of a queued message or of a recently finished one.
func (k *Keyring) MessageStatus(id string) (MessageStatus, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if msg, ok := k.messages[id]; ok {
		return msg.status, true
	}
	return k.finished.Get(id)
}

func (k *Keyring) pending(id string) (*message, error) {
	msg, ok := k.messages[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMessage, id)
	}
	return msg, nil
}

func (k *Keyring) finish(id string, status MessageStatus) {
	delete(k.messages, id)
	k.finished.Add(id, status)
}
