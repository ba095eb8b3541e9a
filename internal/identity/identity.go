// Package identity resolves the caller's access tier and name from the
// credential token sent by the frontend. The token is a NaCl secretbox
// sealed with a shared key: base64(nonce || ciphertext) over "tier|name".
package identity

import (
	"crypto/rand"
	"encoding/base64"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/crypto/nacl/secretbox"

	"github.com/paylinq/askhr/internal/model"
)

// ErrInvalidToken is returned for tokens that fail to decode, decrypt, or parse.
var ErrInvalidToken = eris.New("identity: invalid token")

// Resolver resolves a credential into an access tier and identity name.
type Resolver interface {
	Resolve(token string) (model.AccessTier, string, error)
}

// SecretboxResolver implements Resolver with a NaCl secretbox shared key.
type SecretboxResolver struct {
	key [32]byte
}

// NewSecretboxResolver creates a resolver from a base64-encoded 32-byte key.
func NewSecretboxResolver(keyB64 string) (*SecretboxResolver, error) {
	raw, err := base64.StdEncoding.DecodeString(keyB64)
	if err != nil {
		return nil, eris.Wrap(err, "identity: decode key")
	}
	if len(raw) != 32 {
		return nil, eris.Errorf("identity: key must be 32 bytes, got %d", len(raw))
	}
	r := &SecretboxResolver{}
	copy(r.key[:], raw)
	return r, nil
}

// Seal produces a token for the given tier and name. Used by the token
// command and by tests; the frontend normally mints its own.
func (r *SecretboxResolver) Seal(tier model.AccessTier, name string) (string, error) {
	if !tier.Valid() {
		return "", eris.Errorf("identity: invalid tier %q", tier)
	}
	if name == "" || strings.Contains(name, "|") {
		return "", eris.Errorf("identity: invalid name %q", name)
	}

	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", eris.Wrap(err, "identity: nonce")
	}

	sealed := secretbox.Seal(nonce[:], []byte(string(tier)+"|"+name), &nonce, &r.key)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Resolve opens the token and parses "tier|name".
func (r *SecretboxResolver) Resolve(token string) (model.AccessTier, string, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", "", ErrInvalidToken
	}
	if len(raw) <= 24 {
		return "", "", ErrInvalidToken
	}

	var nonce [24]byte
	copy(nonce[:], raw[:24])
	plain, ok := secretbox.Open(nil, raw[24:], &nonce, &r.key)
	if !ok {
		return "", "", ErrInvalidToken
	}

	tier, name, found := strings.Cut(string(plain), "|")
	if !found || name == "" {
		return "", "", ErrInvalidToken
	}
	t := model.AccessTier(tier)
	if !t.Valid() {
		return "", "", ErrInvalidToken
	}

	return t, name, nil
}
