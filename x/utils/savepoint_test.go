package utils

import (
	"context"
	"testing"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/store"
	"github.com/iov-one/royalty/royaltytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavepoint(t *testing.T) {
	// always written before calling the decorator
	ok, ov := []byte("demo"), []byte("data")
	// key, value written by the handler
	nk, nv := []byte{1, 2, 3}, []byte{4, 5, 6}
	derr := errors.ErrState.New("something went wrong")

	cases := map[string]struct {
		save    royalty.Decorator
		handler royalty.Handler
		check   bool // whether to call Check or Deliver
		wantErr bool

		written [][]byte
		missing [][]byte
	}{
		"savepoint deactivated, returns error, both written": {
			save:    NewSavepoint(),
			handler: &royaltytest.WriteHandler{Key: nk, Value: nv, Err: derr},
			check:   true,
			wantErr: true,
			written: [][]byte{ok, nk},
		},
		"savepoint activated, returns error, one written": {
			save:    NewSavepoint().OnCheck(),
			handler: &royaltytest.WriteHandler{Key: nk, Value: nv, Err: derr},
			check:   true,
			wantErr: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"savepoint activated for deliver, returns error, one written": {
			save:    NewSavepoint().OnDeliver(),
			handler: &royaltytest.WriteHandler{Key: nk, Value: nv, Err: derr},
			wantErr: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"double activation maintains both behaviors": {
			save:    NewSavepoint().OnDeliver().OnCheck(),
			handler: &royaltytest.WriteHandler{Key: nk, Value: nv, Err: derr},
			wantErr: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"savepoint on check does not affect deliver": {
			save:    NewSavepoint().OnCheck(),
			handler: &royaltytest.WriteHandler{Key: nk, Value: nv, Err: derr},
			wantErr: true,
			written: [][]byte{ok, nk},
		},
		"success is written": {
			save:    NewSavepoint().OnCheck().OnDeliver(),
			handler: &royaltytest.WriteHandler{Key: nk, Value: nv},
			written: [][]byte{ok, nk},
		},
		"panic is rolled back when recovered outside": {
			save:    NewSavepoint().OnDeliver(),
			handler: royaltytest.PanicHandler{Msg: "boom"},
			wantErr: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := context.Background()
			kv := store.MemStore()
			require.NoError(t, kv.Set(ok, ov))

			// recovery is outside of the savepoint, as in the app stack
			h := royaltytest.Decorate(royaltytest.Decorate(tc.handler, tc.save), NewRecovery())
			var err error
			if tc.check {
				_, err = h.Check(ctx, kv, &royaltytest.Tx{})
			} else {
				_, err = h.Deliver(ctx, kv, &royaltytest.Tx{})
			}
			assert.Equal(t, tc.wantErr, err != nil, "unexpected error: %v", err)

			for _, k := range tc.written {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.True(t, has, "%x", k)
			}
			for _, k := range tc.missing {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.False(t, has, "%x", k)
			}
		})
	}
}
