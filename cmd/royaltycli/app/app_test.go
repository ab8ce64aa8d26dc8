package royaltyapp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/app"
	"github.com/iov-one/royalty/crypto"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/x/cash"
	"github.com/iov-one/royalty/x/sigs"
	"github.com/iov-one/royalty/x/track"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

const chainID = "royalty-test"

type testNode struct {
	t   *testing.T
	app *app.Application
	seq map[string]int64
}

func newTestNode(t *testing.T, accounts ...cash.GenesisAccount) *testNode {
	t.Helper()
	a, err := Application("", log.NewNopLogger(), true)
	require.NoError(t, err)

	raw, err := json.Marshal(accounts)
	require.NoError(t, err)
	require.NoError(t, a.InitChain(app.Genesis{
		ChainID:  chainID,
		AppState: royalty.Options{"cash": raw},
	}))
	_, err = a.Commit()
	require.NoError(t, err)
	return &testNode{t: t, app: a, seq: make(map[string]int64)}
}

// deliver signs the message with all keys, delivers it and commits.
func (n *testNode) deliver(msg royalty.Msg, keys ...*crypto.PrivateKey) (*royalty.DeliverResult, error) {
	n.t.Helper()
	tx, err := NewTx(msg)
	require.NoError(n.t, err)
	for _, k := range keys {
		addr := k.PublicKey().Address().String()
		sig, err := sigs.SignTx(k, tx, chainID, n.seq[addr])
		require.NoError(n.t, err)
		tx.Signatures = append(tx.Signatures, sig)
	}
	raw, err := royalty.Marshal(tx)
	require.NoError(n.t, err)

	ctx := context.Background()
	if _, err := n.app.CheckTx(ctx, raw); err != nil {
		return nil, err
	}
	res, err := n.app.DeliverTx(ctx, raw)
	if err == nil {
		for _, k := range keys {
			n.seq[k.PublicKey().Address().String()]++
		}
	}
	_, cerr := n.app.Commit()
	require.NoError(n.t, cerr)
	return res, err
}

func (n *testNode) balance(addr royalty.Address) uint64 {
	n.t.Helper()
	models, _, err := n.app.Query("/wallets", addr)
	require.NoError(n.t, err)
	if len(models) == 0 {
		return 0
	}
	var w cash.Wallet
	require.NoError(n.t, royalty.Unmarshal(models[0].Value, &w))
	return w.Amount
}

func (n *testNode) track(musicID string) *track.Track {
	n.t.Helper()
	models, _, err := n.app.Query("/tracks", []byte(musicID))
	require.NoError(n.t, err)
	require.Len(n.t, models, 1)
	var tr track.Track
	require.NoError(n.t, royalty.Unmarshal(models[0].Value, &tr))
	return &tr
}

func TestRoyaltyScenario(t *testing.T) {
	authority := crypto.GenPrivKeyEd25519()
	human := crypto.GenPrivKeyEd25519().PublicKey().Address()
	ai := crypto.GenPrivKeyEd25519().PublicKey().Address()
	source := authority.PublicKey().Address()

	node := newTestNode(t, cash.GenesisAccount{Address: source, Amount: 250000000})
	meta := &royalty.Metadata{Schema: 1}

	_, err := node.deliver(&track.InitializeMsg{Metadata: meta, MusicID: "song-1"}, authority)
	require.NoError(t, err)
	_, err = node.deliver(&track.InitializeMsg{Metadata: meta, MusicID: "song-1"}, authority)
	assert.True(t, track.ErrAlreadyInitialized.Is(err))

	_, err = node.deliver(&track.AddContributionMsg{Metadata: meta, MusicID: "song-1", Contributor: human, Kind: "Human", Weight: 40}, authority)
	require.NoError(t, err)
	_, err = node.deliver(&track.AddContributionMsg{Metadata: meta, MusicID: "song-1", Contributor: ai, Kind: "AI", Weight: 60}, authority)
	require.NoError(t, err)

	tr := node.track("song-1")
	assert.Equal(t, uint32(100), tr.TotalWeight)
	assert.Equal(t, source, tr.Authority)
	require.Len(t, tr.Contributors, 2)
	assert.Equal(t, "Human", tr.Contributors[0].Kind)
	assert.Equal(t, "AI", tr.Contributors[1].Kind)

	dist := &track.DistributeMsg{
		Metadata: meta,
		MusicID:  "song-1",
		Amount:   100000000,
		Source:   source,
		Payees:   []royalty.Address{human, ai},
	}
	res, err := node.deliver(dist, authority)
	require.NoError(t, err)
	result, err := track.DecodeResult(res.Data)
	require.NoError(t, err)
	assert.Equal(t, uint64(100000000), result.Total())

	assert.Equal(t, uint64(40000000), node.balance(human))
	assert.Equal(t, uint64(60000000), node.balance(ai))
	assert.Equal(t, uint64(150000000), node.balance(source))

	// distribution can be repeated
	_, err = node.deliver(dist, authority)
	require.NoError(t, err)
	assert.Equal(t, uint64(80000000), node.balance(human))
	assert.Equal(t, uint64(120000000), node.balance(ai))
	assert.Equal(t, uint64(50000000), node.balance(source))

	// not enough funds for a third time, nothing moves
	_, err = node.deliver(dist, authority)
	assert.True(t, track.ErrInsufficientFunds.Is(err))
	assert.Equal(t, uint64(80000000), node.balance(human))
	assert.Equal(t, uint64(50000000), node.balance(source))

	// a stranger cannot distribute, even from its own wallet
	stranger := crypto.GenPrivKeyEd25519()
	_, err = node.deliver(&track.DistributeMsg{
		Metadata: meta,
		MusicID:  "song-1",
		Amount:   1,
		Source:   stranger.PublicKey().Address(),
		Payees:   []royalty.Address{human, ai},
	}, stranger)
	assert.True(t, track.ErrUnauthorized.Is(err))

	// the track is full
	_, err = node.deliver(&track.AddContributionMsg{Metadata: meta, MusicID: "song-1", Contributor: stranger.PublicKey().Address(), Kind: "AI", Weight: 1}, authority)
	assert.True(t, track.ErrCapacityExceeded.Is(err))
	assert.Equal(t, tr, node.track("song-1"))
}

func TestUnsignedTransaction(t *testing.T) {
	node := newTestNode(t)
	_, err := node.deliver(&track.InitializeMsg{Metadata: &royalty.Metadata{Schema: 1}, MusicID: "song-1"})
	assert.True(t, errors.ErrUnauthorized.Is(err))

	models, _, err := node.app.Query("/tracks", []byte("song-1"))
	require.NoError(t, err)
	assert.Empty(t, models)
}

func TestReplayedTransaction(t *testing.T) {
	key := crypto.GenPrivKeyEd25519()
	node := newTestNode(t)

	tx, err := NewTx(&track.InitializeMsg{Metadata: &royalty.Metadata{Schema: 1}, MusicID: "song-1"})
	require.NoError(t, err)
	sig, err := sigs.SignTx(key, tx, chainID, 0)
	require.NoError(t, err)
	tx.Signatures = []*sigs.StdSignature{sig}
	raw, err := royalty.Marshal(tx)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = node.app.DeliverTx(ctx, raw)
	require.NoError(t, err)
	_, err = node.app.DeliverTx(ctx, raw)
	assert.True(t, sigs.ErrInvalidSequence.Is(err))
}

func TestTxMessages(t *testing.T) {
	meta := &royalty.Metadata{Schema: 1}
	msgs := []royalty.Msg{
		&cash.SendMsg{Metadata: meta, Amount: 1},
		&track.InitializeMsg{Metadata: meta, MusicID: "a"},
		&track.AddContributionMsg{Metadata: meta, MusicID: "a"},
		&track.DistributeMsg{Metadata: meta, MusicID: "a"},
	}
	for _, msg := range msgs {
		tx, err := NewTx(msg)
		require.NoError(t, err)
		raw, err := royalty.Marshal(tx)
		require.NoError(t, err)
		decoded, err := TxDecoder(raw)
		require.NoError(t, err)
		got, err := decoded.GetMsg()
		require.NoError(t, err)
		assert.Equal(t, msg, got)
	}

	_, err := NewTx(nil)
	assert.True(t, errors.ErrType.Is(err))

	both := &Tx{
		SendMsg:       &cash.SendMsg{},
		InitializeMsg: &track.InitializeMsg{},
	}
	_, err = both.GetMsg()
	assert.True(t, errors.ErrMsg.Is(err))
}
