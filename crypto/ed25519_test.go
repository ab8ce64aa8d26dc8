package crypto

import (
	"bytes"
	"testing"

	"github.com/iov-one/royalty/errors"
)

func TestSignVerify(t *testing.T) {
	priv := GenPrivKeyEd25519()
	pub := priv.PublicKey()
	msg := []byte("distribute 100 to track_001")

	sig := priv.Sign(msg)
	if !pub.Verify(msg, sig) {
		t.Fatal("signature must verify")
	}
	if pub.Verify([]byte("distribute 101 to track_001"), sig) {
		t.Fatal("signature of another message must not verify")
	}
	other := GenPrivKeyEd25519().PublicKey()
	if other.Verify(msg, sig) {
		t.Fatal("signature must not verify with another key")
	}
}

func TestKeyFromSeedIsDeterministic(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	a, err := PrivKeyEd25519FromSeed(seed)
	if err != nil {
		t.Fatalf("cannot create key: %s", err)
	}
	b, err := PrivKeyEd25519FromSeed(seed)
	if err != nil {
		t.Fatalf("cannot create key: %s", err)
	}
	if !a.PublicKey().Address().Equals(b.PublicKey().Address()) {
		t.Fatal("same seed must produce the same address")
	}
	if _, err := PrivKeyEd25519FromSeed([]byte("short")); !errors.ErrInput.Is(err) {
		t.Fatalf("want input error, got %+v", err)
	}
}

func TestPrivateKeyBytes(t *testing.T) {
	priv := GenPrivKeyEd25519()
	loaded, err := PrivateKeyFromBytes(priv.Bytes())
	if err != nil {
		t.Fatalf("cannot load key: %s", err)
	}
	if !bytes.Equal(loaded.PublicKey(), priv.PublicKey()) {
		t.Fatal("loaded key differs")
	}
	if _, err := PrivateKeyFromBytes([]byte{1, 2, 3}); !errors.ErrInput.Is(err) {
		t.Fatalf("want input error, got %+v", err)
	}
}

func TestConditionFormat(t *testing.T) {
	pub := GenPrivKeyEd25519().PublicKey()
	ext, typ, data, err := pub.Condition().Parse()
	if err != nil {
		t.Fatalf("cannot parse condition: %s", err)
	}
	if ext != ExtensionName || typ != "ed25519" || !bytes.Equal(data, pub) {
		t.Fatalf("unexpected condition: %s", pub.Condition())
	}
}
