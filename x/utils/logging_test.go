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
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewFilter(log.NewTMLogger(&buf), log.AllowInfo())
	ctx := royalty.WithLogger(context.Background(), logger)
	tx := &royaltytest.Tx{Msg: &royaltytest.Msg{RoutePath: "track/distribute"}}
	db := store.MemStore()

	ok := royaltytest.Decorate(&royaltytest.Handler{
		DeliverResult: royalty.DeliverResult{Log: "paid 2 contributors"},
	}, NewLogging())
	_, err := ok.Deliver(ctx, db, tx)
	assert.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "paid 2 contributors")
	assert.Contains(t, out, "path=track/distribute")

	// successful check is only logged at debug level
	buf.Reset()
	_, err = ok.Check(ctx, db, tx)
	assert.NoError(t, err)
	assert.Empty(t, buf.String())

	buf.Reset()
	failing := royaltytest.Decorate(&royaltytest.Handler{
		CheckErr: errors.ErrUnauthorized,
	}, NewLogging())
	_, err = failing.Check(ctx, db, tx)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	out = buf.String()
	assert.True(t, strings.HasPrefix(out, "E["), "want error level entry, got %q", out)
	assert.Contains(t, out, "unauthorized")
}
