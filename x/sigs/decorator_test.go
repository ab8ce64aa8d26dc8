package sigs

import (
	"context"
	"testing"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/crypto"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/store"
	"github.com/iov-one/royalty/royaltytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecorator(t *testing.T) {
	kv := store.MemStore()
	checkKv := kv.CacheWrap()
	signers := new(sigCheckHandler)
	d := NewDecorator()
	chainID := "royalty-test"
	ctx := royalty.WithChainID(context.Background(), chainID)

	priv := crypto.GenPrivKeyEd25519()
	perms := []royalty.Condition{priv.PublicKey().Condition()}

	tx := newStdTx([]byte("distribute"))
	sig, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	sig1, err := SignTx(priv, tx, chainID, 1)
	require.NoError(t, err)

	deliver := func(dec royalty.Decorator, my royalty.Tx) error {
		_, err := dec.Deliver(ctx, kv, my, signers)
		return err
	}
	check := func(dec royalty.Decorator, my royalty.Tx) error {
		_, err := dec.Check(ctx, checkKv, my, signers)
		return err
	}

	for i, fn := range []func(royalty.Decorator, royalty.Tx) error{check, deliver} {
		// test with no sigs
		tx.Signatures = nil
		err := fn(d, tx)
		assert.True(t, errors.ErrUnauthorized.Is(err), "%d: %v", i, err)

		// test with one
		tx.Signatures = []*StdSignature{sig}
		err = fn(d, tx)
		assert.NoError(t, err, "%d", i)
		assert.Equal(t, perms, signers.Signers)

		// test with replay
		err = fn(d, tx)
		assert.True(t, ErrInvalidSequence.Is(err), "%d: %v", i, err)

		// test allowing none
		ad := d.AllowMissingSigs()
		tx.Signatures = nil
		err = fn(ad, tx)
		assert.NoError(t, err, "%d", i)
		assert.Equal(t, []royalty.Condition{}, signers.Signers)

		// test allowing, with next sequence
		tx.Signatures = []*StdSignature{sig1}
		err = fn(ad, tx)
		assert.NoError(t, err, "%d", i)
		assert.Equal(t, perms, signers.Signers)
	}
}

func TestDecoratorRejectsUnsignedTx(t *testing.T) {
	ctx := royalty.WithChainID(context.Background(), "royalty-test")
	kv := store.MemStore()
	tx := &royaltytest.Tx{Msg: &royaltytest.Msg{RoutePath: "track/initialize"}}

	_, err := NewDecorator().Deliver(ctx, kv, tx, &royaltytest.Handler{})
	assert.True(t, errors.ErrUnauthorized.Is(err))

	_, err = NewDecorator().AllowMissingSigs().Deliver(ctx, kv, tx, &royaltytest.Handler{})
	assert.NoError(t, err)
}

func TestDecoratorWrongChain(t *testing.T) {
	kv := store.MemStore()
	priv := crypto.GenPrivKeyEd25519()
	tx := newStdTx([]byte("initialize"))
	sig, err := SignTx(priv, tx, "other-chain", 0)
	require.NoError(t, err)
	tx.Signatures = []*StdSignature{sig}

	ctx := royalty.WithChainID(context.Background(), "royalty-test")
	_, err = NewDecorator().Check(ctx, kv, tx, &royaltytest.Handler{})
	assert.True(t, errors.ErrUnauthorized.Is(err), "%v", err)
}
