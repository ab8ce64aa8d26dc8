package app

import (
	"context"
	"testing"

	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/royaltytest"
	"github.com/stretchr/testify/assert"
)

func TestRouter(t *testing.T) {
	r := NewRouter()
	good := &royaltytest.Msg{RoutePath: "track/good"}
	bad := &royaltytest.Msg{RoutePath: "track/bad"}
	missing := &royaltytest.Msg{RoutePath: "track/missing"}

	counter := &royaltytest.Handler{}
	r.Handle(good, counter)
	r.Handle(bad, &royaltytest.Handler{DeliverErr: errors.ErrAmount})

	// make sure invalid registrations panic
	assert.Panics(t, func() { r.Handle(good, counter) })
	assert.Panics(t, func() { r.Handle(&royaltytest.Msg{RoutePath: "l:7"}, counter) })
	assert.ElementsMatch(t, []string{"track/good", "track/bad"}, r.Paths())

	ctx := context.Background()
	_, err := r.Check(ctx, nil, &royaltytest.Tx{Msg: good})
	assert.NoError(t, err)
	_, err = r.Deliver(ctx, nil, &royaltytest.Tx{Msg: good})
	assert.NoError(t, err)
	assert.Equal(t, 2, counter.CallCount())

	_, err = r.Deliver(ctx, nil, &royaltytest.Tx{Msg: bad})
	assert.True(t, errors.ErrAmount.Is(err))

	_, err = r.Deliver(ctx, nil, &royaltytest.Tx{Msg: missing})
	assert.True(t, errors.ErrNotFound.Is(err))
	_, err = r.Check(ctx, nil, &royaltytest.Tx{Msg: missing})
	assert.True(t, errors.ErrNotFound.Is(err))

	_, err = r.Check(ctx, nil, &royaltytest.Tx{})
	assert.True(t, errors.ErrMsg.Is(err))
	_, err = r.Check(ctx, nil, &royaltytest.Tx{Err: errors.ErrType})
	assert.True(t, errors.ErrType.Is(err))

	assert.Equal(t, 2, counter.CallCount())
}
