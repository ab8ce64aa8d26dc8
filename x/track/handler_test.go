package track

import (
	"context"
	"testing"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/store"
	"github.com/iov-one/royalty/royaltytest"
	"github.com/iov-one/royalty/royaltytest/assert"
	"github.com/iov-one/royalty/x/cash"
	"github.com/iov-one/royalty/x/utils"
)

func newMetadata() *royalty.Metadata {
	return &royalty.Metadata{Schema: 1}
}

func newRouter(auth *royaltytest.Auth, ctrl CashController) *testRegistry {
	r := &testRegistry{handlers: make(map[string]royalty.Handler)}
	RegisterRoutes(r, auth, ctrl)
	return r
}

// testRegistry is the minimal royalty.Registry used to collect the
// handlers registered by RegisterRoutes.
type testRegistry struct {
	handlers map[string]royalty.Handler
}

func (r *testRegistry) Handle(m royalty.Msg, h royalty.Handler) {
	r.handlers[m.Path()] = h
}

func (r *testRegistry) handler(t testing.TB, m royalty.Msg) royalty.Handler {
	t.Helper()
	h, ok := r.handlers[m.Path()]
	if !ok {
		t.Fatalf("no handler for %q", m.Path())
	}
	return h
}

func TestInitialize(t *testing.T) {
	authority := royaltytest.NewCondition()

	cases := map[string]struct {
		signer      royalty.Condition
		existing    string
		msg         royalty.Msg
		wantCheck   *errors.Error
		wantDeliver *errors.Error
	}{
		"new track": {
			signer: authority,
			msg:    &InitializeMsg{Metadata: newMetadata(), MusicID: "song-1"},
		},
		"already initialized": {
			signer:      authority,
			existing:    "song-1",
			msg:         &InitializeMsg{Metadata: newMetadata(), MusicID: "song-1"},
			wantCheck:   ErrAlreadyInitialized,
			wantDeliver: ErrAlreadyInitialized,
		},
		"other music id": {
			signer:   authority,
			existing: "song-2",
			msg:      &InitializeMsg{Metadata: newMetadata(), MusicID: "song-1"},
		},
		"no signer": {
			msg:         &InitializeMsg{Metadata: newMetadata(), MusicID: "song-1"},
			wantCheck:   ErrUnauthorized,
			wantDeliver: ErrUnauthorized,
		},
		"missing music id": {
			signer:      authority,
			msg:         &InitializeMsg{Metadata: newMetadata()},
			wantCheck:   errors.ErrEmpty,
			wantDeliver: errors.ErrEmpty,
		},
		"missing metadata": {
			signer:      authority,
			msg:         &InitializeMsg{MusicID: "song-1"},
			wantCheck:   errors.ErrMetadata,
			wantDeliver: errors.ErrMetadata,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			auth := &royaltytest.Auth{Signer: tc.signer}
			r := newRouter(auth, cash.NewController(cash.NewBucket()))
			h := r.handler(t, tc.msg)

			kv := store.MemStore()
			var previous *Track
			if tc.existing != "" {
				previous = NewTrack(tc.existing, royaltytest.NewCondition().Address())
				assert.Nil(t, previous.AddContributor(royaltytest.NewCondition().Address(), "Human", 10))
				assert.Nil(t, NewBucket().Put(kv, []byte(tc.existing), previous))
			}

			tx := &royaltytest.Tx{Msg: tc.msg}
			ctx := context.Background()
			_, err := h.Check(ctx, kv.CacheWrap(), tx)
			assert.IsErr(t, tc.wantCheck, err)
			res, err := h.Deliver(ctx, kv, tx)
			assert.IsErr(t, tc.wantDeliver, err)

			if previous != nil {
				var stored Track
				assert.Nil(t, NewBucket().One(kv, []byte(tc.existing), &stored))
				assert.Equal(t, previous, &stored)
			}
			if tc.wantDeliver != nil {
				return
			}
			msg := tc.msg.(*InitializeMsg)
			assert.Equal(t, []byte(msg.MusicID), res.Data)

			var stored Track
			assert.Nil(t, NewBucket().One(kv, []byte(msg.MusicID), &stored))
			assert.Equal(t, NewTrack(msg.MusicID, authority.Address()), &stored)
		})
	}
}

func TestAddContribution(t *testing.T) {
	authority := royaltytest.NewCondition()
	human := royaltytest.NewCondition().Address()
	ai := royaltytest.NewCondition().Address()

	contribution := func(addr royalty.Address, kind string, weight uint32) *AddContributionMsg {
		return &AddContributionMsg{
			Metadata:    newMetadata(),
			MusicID:     "song-1",
			Contributor: addr,
			Kind:        kind,
			Weight:      weight,
		}
	}

	cases := map[string]struct {
		signer      royalty.Condition
		existing    []*AddContributionMsg
		msg         royalty.Msg
		wantCheck   *errors.Error
		wantDeliver *errors.Error
	}{
		"first contribution": {
			signer: authority,
			msg:    contribution(human, "Human", 40),
		},
		"second contribution": {
			signer:   authority,
			existing: []*AddContributionMsg{contribution(human, "Human", 40)},
			msg:      contribution(ai, "AI", 60),
		},
		"unknown track": {
			signer:      authority,
			msg:         &AddContributionMsg{Metadata: newMetadata(), MusicID: "song-2", Contributor: human, Kind: "Human", Weight: 1},
			wantCheck:   errors.ErrNotFound,
			wantDeliver: errors.ErrNotFound,
		},
		"not the authority": {
			signer:      royaltytest.NewCondition(),
			msg:         contribution(human, "Human", 40),
			wantCheck:   ErrUnauthorized,
			wantDeliver: ErrUnauthorized,
		},
		"weight overflow": {
			signer:      authority,
			existing:    []*AddContributionMsg{contribution(human, "Human", 50)},
			msg:         contribution(ai, "AI", 51),
			wantCheck:   ErrWeightOverflow,
			wantDeliver: ErrWeightOverflow,
		},
		"single weight above the total limit": {
			signer:      authority,
			msg:         contribution(human, "Human", 101),
			wantCheck:   ErrWeightOverflow,
			wantDeliver: ErrWeightOverflow,
		},
		"capacity exceeded": {
			signer:      authority,
			existing:    []*AddContributionMsg{contribution(human, "Human", 10), contribution(ai, "AI", 10)},
			msg:         contribution(royaltytest.NewCondition().Address(), "AI", 10),
			wantCheck:   ErrCapacityExceeded,
			wantDeliver: ErrCapacityExceeded,
		},
		"duplicated contributor": {
			signer:      authority,
			existing:    []*AddContributionMsg{contribution(human, "Human", 10)},
			msg:         contribution(human, "AI", 10),
			wantCheck:   ErrContributorExists,
			wantDeliver: ErrContributorExists,
		},
		"invalid weight": {
			signer:      authority,
			msg:         contribution(human, "Human", 0),
			wantCheck:   errors.ErrInput,
			wantDeliver: errors.ErrInput,
		},
		"message is validated before the signer": {
			signer:      royaltytest.NewCondition(),
			msg:         contribution(human, "Human", 0),
			wantCheck:   errors.ErrInput,
			wantDeliver: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			kv := store.MemStore()
			ctrl := cash.NewController(cash.NewBucket())

			setup := newRouter(&royaltytest.Auth{Signer: authority}, ctrl)
			ctx := context.Background()
			initMsg := &InitializeMsg{Metadata: newMetadata(), MusicID: "song-1"}
			_, err := setup.handler(t, initMsg).Deliver(ctx, kv, &royaltytest.Tx{Msg: initMsg})
			assert.Nil(t, err)
			for _, m := range tc.existing {
				_, err := setup.handler(t, m).Deliver(ctx, kv, &royaltytest.Tx{Msg: m})
				assert.Nil(t, err)
			}
			var before Track
			assert.Nil(t, NewBucket().One(kv, []byte("song-1"), &before))

			r := newRouter(&royaltytest.Auth{Signer: tc.signer}, ctrl)
			h := r.handler(t, tc.msg)
			tx := &royaltytest.Tx{Msg: tc.msg}
			_, err = h.Check(ctx, kv.CacheWrap(), tx)
			assert.IsErr(t, tc.wantCheck, err)
			_, err = h.Deliver(ctx, kv, tx)
			assert.IsErr(t, tc.wantDeliver, err)

			var after Track
			assert.Nil(t, NewBucket().One(kv, []byte("song-1"), &after))
			if tc.wantDeliver != nil {
				assert.Equal(t, &before, &after)
				return
			}
			msg := tc.msg.(*AddContributionMsg)
			assert.Equal(t, len(before.Contributors)+1, len(after.Contributors))
			assert.Equal(t, before.TotalWeight+msg.Weight, after.TotalWeight)
			last := after.Contributors[len(after.Contributors)-1]
			assert.Equal(t, msg.Contributor, last.Identity)
			assert.Equal(t, msg.Kind, last.Kind)
			assert.Equal(t, msg.Weight, last.Weight)
		})
	}
}

func TestDistribute(t *testing.T) {
	authority := royaltytest.NewCondition()
	source := authority.Address()
	human := royaltytest.NewCondition().Address()
	ai := royaltytest.NewCondition().Address()

	cases := map[string]struct {
		signer      royalty.Condition
		weights     []uint32
		fund        uint64
		msg         *DistributeMsg
		wantCheck   *errors.Error
		wantDeliver *errors.Error
		wantHuman   uint64
		wantAI      uint64
	}{
		"forty sixty split": {
			signer:    authority,
			weights:   []uint32{40, 60},
			fund:      100000000,
			msg:       &DistributeMsg{Amount: 100000000, Payees: []royalty.Address{human, ai}},
			wantHuman: 40000000,
			wantAI:    60000000,
		},
		"remainder goes to the last contributor": {
			signer:    authority,
			weights:   []uint32{1, 2},
			fund:      1000,
			msg:       &DistributeMsg{Amount: 100, Payees: []royalty.Address{human, ai}},
			wantHuman: 33,
			wantAI:    67,
		},
		"single contributor": {
			signer:    authority,
			weights:   []uint32{30},
			fund:      500,
			msg:       &DistributeMsg{Amount: 500, Payees: []royalty.Address{human}},
			wantHuman: 500,
		},
		"zero amount": {
			signer:  authority,
			weights: []uint32{40, 60},
			msg:     &DistributeMsg{Amount: 0, Payees: []royalty.Address{human, ai}},
		},
		"share rounded to zero": {
			signer:  authority,
			weights: []uint32{1, 99},
			fund:    10,
			msg:     &DistributeMsg{Amount: 10, Payees: []royalty.Address{human, ai}},
			wantAI:  10,
		},
		"not the authority": {
			signer:      royaltytest.NewCondition(),
			weights:     []uint32{40, 60},
			fund:        100,
			msg:         &DistributeMsg{Amount: 100, Payees: []royalty.Address{human, ai}},
			wantCheck:   ErrUnauthorized,
			wantDeliver: ErrUnauthorized,
		},
		"no contributors": {
			signer:      authority,
			fund:        100,
			msg:         &DistributeMsg{Amount: 100},
			wantCheck:   ErrNoContributors,
			wantDeliver: ErrNoContributors,
		},
		"payees in the wrong order": {
			signer:      authority,
			weights:     []uint32{40, 60},
			fund:        100,
			msg:         &DistributeMsg{Amount: 100, Payees: []royalty.Address{ai, human}},
			wantCheck:   ErrPayeeMismatch,
			wantDeliver: ErrPayeeMismatch,
		},
		"missing payee": {
			signer:      authority,
			weights:     []uint32{40, 60},
			fund:        100,
			msg:         &DistributeMsg{Amount: 100, Payees: []royalty.Address{human}},
			wantCheck:   ErrPayeeMismatch,
			wantDeliver: ErrPayeeMismatch,
		},
		"insufficient funds": {
			signer:      authority,
			weights:     []uint32{40, 60},
			fund:        99,
			msg:         &DistributeMsg{Amount: 100, Payees: []royalty.Address{human, ai}},
			wantCheck:   ErrInsufficientFunds,
			wantDeliver: ErrInsufficientFunds,
		},
		"unknown track": {
			signer:      authority,
			weights:     []uint32{40, 60},
			fund:        100,
			msg:         &DistributeMsg{MusicID: "song-2", Amount: 100, Payees: []royalty.Address{human, ai}},
			wantCheck:   errors.ErrNotFound,
			wantDeliver: errors.ErrNotFound,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			kv := store.MemStore()
			ctrl := cash.NewController(cash.NewBucket())
			tr := NewTrack("song-1", authority.Address())
			ids := []royalty.Address{human, ai}
			kinds := []string{"Human", "AI"}
			for i, w := range tc.weights {
				assert.Nil(t, tr.AddContributor(ids[i], kinds[i], w))
			}
			assert.Nil(t, NewBucket().Put(kv, []byte("song-1"), tr))
			if tc.fund > 0 {
				assert.Nil(t, ctrl.Issue(kv, source, tc.fund))
			}

			tc.msg.Metadata = newMetadata()
			tc.msg.Source = source
			if tc.msg.MusicID == "" {
				tc.msg.MusicID = "song-1"
			}

			h := newRouter(&royaltytest.Auth{Signer: tc.signer}, ctrl).handler(t, tc.msg)
			tx := &royaltytest.Tx{Msg: tc.msg}
			ctx := context.Background()
			_, err := h.Check(ctx, kv.CacheWrap(), tx)
			assert.IsErr(t, tc.wantCheck, err)
			res, err := h.Deliver(ctx, kv, tx)
			assert.IsErr(t, tc.wantDeliver, err)

			assertBalance(t, ctrl, kv, human, tc.wantHuman)
			assertBalance(t, ctrl, kv, ai, tc.wantAI)
			if tc.wantDeliver != nil {
				assertBalance(t, ctrl, kv, source, tc.fund)
				return
			}
			assertBalance(t, ctrl, kv, source, tc.fund-tc.msg.Amount)

			got, err := DecodeResult(res.Data)
			assert.Nil(t, err)
			assert.Equal(t, "song-1", got.MusicID)
			assert.Equal(t, len(tc.msg.Payees), len(got.Payouts))
			assert.Equal(t, tc.msg.Amount, got.Total())
			assert.Equal(t, human, got.PayeeAddress(0))
			assert.Equal(t, tc.wantHuman, got.Payouts[0].Amount)

			var after Track
			assert.Nil(t, NewBucket().One(kv, []byte("song-1"), &after))
			assert.Equal(t, tr, &after)
		})
	}
}

// TestDistributeTwice ensures distribution has no memory. Every call moves
// the full amount again.
func TestDistributeTwice(t *testing.T) {
	authority := royaltytest.NewCondition()
	human := royaltytest.NewCondition().Address()
	ai := royaltytest.NewCondition().Address()

	kv := store.MemStore()
	ctrl := cash.NewController(cash.NewBucket())
	assert.Nil(t, ctrl.Issue(kv, authority.Address(), 250))
	r := newRouter(&royaltytest.Auth{Signer: authority}, ctrl)
	ctx := context.Background()

	msgs := []royalty.Msg{
		&InitializeMsg{Metadata: newMetadata(), MusicID: "song-1"},
		&AddContributionMsg{Metadata: newMetadata(), MusicID: "song-1", Contributor: human, Kind: "Human", Weight: 40},
		&AddContributionMsg{Metadata: newMetadata(), MusicID: "song-1", Contributor: ai, Kind: "AI", Weight: 60},
	}
	for _, m := range msgs {
		_, err := r.handler(t, m).Deliver(ctx, kv, &royaltytest.Tx{Msg: m})
		assert.Nil(t, err)
	}

	dist := &DistributeMsg{
		Metadata: newMetadata(),
		MusicID:  "song-1",
		Amount:   100,
		Source:   authority.Address(),
		Payees:   []royalty.Address{human, ai},
	}
	h := r.handler(t, dist)
	for i := 0; i < 2; i++ {
		_, err := h.Deliver(ctx, kv, &royaltytest.Tx{Msg: dist})
		assert.Nil(t, err)
	}
	assertBalance(t, ctrl, kv, human, 80)
	assertBalance(t, ctrl, kv, ai, 120)
	assertBalance(t, ctrl, kv, authority.Address(), 50)

	// A third call is not covered anymore.
	_, err := h.Deliver(ctx, kv, &royaltytest.Tx{Msg: dist})
	assert.IsErr(t, ErrInsufficientFunds, err)
	assertBalance(t, ctrl, kv, authority.Address(), 50)
}

// TestDistributeRollback ensures that a failing payout does not leave the
// previous payouts in the store when the handler runs behind a savepoint.
func TestDistributeRollback(t *testing.T) {
	authority := royaltytest.NewCondition()
	human := royaltytest.NewCondition().Address()
	ai := royaltytest.NewCondition().Address()

	kv := store.MemStore()
	base := cash.NewController(cash.NewBucket())
	assert.Nil(t, base.Issue(kv, authority.Address(), 100))

	tr := NewTrack("song-1", authority.Address())
	assert.Nil(t, tr.AddContributor(human, "Human", 40))
	assert.Nil(t, tr.AddContributor(ai, "AI", 60))
	assert.Nil(t, NewBucket().Put(kv, []byte("song-1"), tr))

	ctrl := &failingCash{BaseController: base, failAt: 2}
	msg := &DistributeMsg{
		Metadata: newMetadata(),
		MusicID:  "song-1",
		Amount:   100,
		Source:   authority.Address(),
		Payees:   []royalty.Address{human, ai},
	}
	h := newRouter(&royaltytest.Auth{Signer: authority}, ctrl).handler(t, msg)
	h = royaltytest.Decorate(h, utils.NewSavepoint().OnDeliver())

	_, err := h.Deliver(context.Background(), kv, &royaltytest.Tx{Msg: msg})
	assert.IsErr(t, errors.ErrDatabase, err)
	assert.Equal(t, 2, ctrl.calls)

	assertBalance(t, base, kv, human, 0)
	assertBalance(t, base, kv, ai, 0)
	assertBalance(t, base, kv, authority.Address(), 100)
}

// failingCash fails the transfer with the given sequence number.
type failingCash struct {
	cash.BaseController
	failAt int
	calls  int
}

func (f *failingCash) Transfer(db royalty.KVStore, src, dest royalty.Address, amount uint64, authorizer royalty.Address) error {
	f.calls++
	if f.calls == f.failAt {
		return errors.Wrap(errors.ErrDatabase, "transfer failed")
	}
	return f.BaseController.Transfer(db, src, dest, amount, authorizer)
}

func assertBalance(t testing.TB, ctrl CashController, db royalty.ReadOnlyKVStore, addr royalty.Address, want uint64) {
	t.Helper()
	got, err := ctrl.Balance(db, addr)
	if err != nil {
		t.Fatalf("balance of %s: %s", addr, err)
	}
	if got != want {
		t.Fatalf("balance of %s: want %d, got %d", addr, want, got)
	}
}
