package utils

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/iov-one/royalty"

	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/store"
	"github.com/iov-one/royalty/royaltytest"
	"github.com/iov-one/royalty/royaltytest/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestRecovery(t *testing.T) {
	h := royaltytest.Decorate(royaltytest.PanicHandler{Msg: "track store corrupted"}, NewRecovery())
	ctx := context.Background()
	db := store.MemStore()

	_, err := h.Check(ctx, db, &royaltytest.Tx{})
	assert.IsErr(t, errors.ErrPanic, err)

	_, err = h.Deliver(ctx, db, &royaltytest.Tx{})
	assert.IsErr(t, errors.ErrPanic, err)

	// panic details are not returned to the client
	if _, log := errors.Info(err, false); log != "internal error" {
		t.Fatalf("panic message leaked: %q", log)
	}
}

func TestRecoveryPassesResults(t *testing.T) {
	inner := &royaltytest.Handler{DeliverErr: errors.ErrNotFound}
	h := royaltytest.Decorate(inner, NewRecovery())

	res, err := h.Check(context.Background(), store.MemStore(), &royaltytest.Tx{})
	assert.Nil(t, err)
	if res == nil {
		t.Fatal("want a check result")
	}
	_, err = h.Deliver(context.Background(), store.MemStore(), &royaltytest.Tx{})
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestRecoveryLogsPanic(t *testing.T) {
	var buf bytes.Buffer
	ctx := royalty.WithLogger(context.Background(), log.NewTMLogger(&buf))
	tx := &royaltytest.Tx{Msg: &royaltytest.Msg{RoutePath: "track/distribute"}}
	h := royaltytest.Decorate(royaltytest.PanicHandler{Msg: "track store corrupted"}, NewRecovery())

	_, err := h.Deliver(ctx, store.MemStore(), tx)
	assert.IsErr(t, errors.ErrPanic, err)

	out := buf.String()
	for _, want := range []string{"handler panicked", "call=deliver", "path=track/distribute", "track store corrupted"} {
		if !strings.Contains(out, want) {
			t.Errorf("%q not logged: %s", want, out)
		}
	}
}
