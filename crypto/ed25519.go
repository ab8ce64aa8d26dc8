/*
Package crypto holds the ed25519 keys used to sign transactions. A public
key is turned into a royalty.Condition, and the address of that condition
identifies the signer, for example the authority of a track or the owner of
a wallet.
*/
package crypto

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is used for the conditions of signature based
// authentication.
const ExtensionName = "sigs"

// PublicKey is a raw ed25519 public key.
type PublicKey []byte

// Verify verifies the signature was created with this message and public key
func (p PublicKey) Verify(message, sig []byte) bool {
	if len(p) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p), message, sig)
}

// Condition encodes the public key into a permission
func (p PublicKey) Condition() royalty.Condition {
	return royalty.NewCondition(ExtensionName, "ed25519", p)
}

// Address returns the address of the condition of this key.
func (p PublicKey) Address() royalty.Address {
	return p.Condition().Address()
}

// PrivateKey is an ed25519 signing key.
type PrivateKey struct {
	key ed25519.PrivateKey
}

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) []byte {
	return ed25519.Sign(p.key, message)
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() PublicKey {
	return PublicKey(p.key.Public().(ed25519.PublicKey))
}

// Bytes returns the raw representation of the key that can be loaded with
// PrivateKeyFromBytes.
func (p *PrivateKey) Bytes() []byte {
	return append([]byte(nil), p.key...)
}

// GenPrivKeyEd25519 returns a random new private key
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{key: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) (*PrivateKey, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, errors.Wrapf(errors.ErrInput, "seed must be %d bytes", ed25519.SeedSize)
	}
	return &PrivateKey{key: ed25519.NewKeyFromSeed(seed)}, nil
}

// PrivateKeyFromBytes loads a private key from its raw representation.
func PrivateKeyFromBytes(raw []byte) (*PrivateKey, error) {
	if len(raw) != ed25519.PrivateKeySize {
		return nil, errors.Wrapf(errors.ErrInput, "invalid private key length: %d", len(raw))
	}
	return &PrivateKey{key: append(ed25519.PrivateKey(nil), raw...)}, nil
}
