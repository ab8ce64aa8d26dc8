package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Application executes transactions against a CommitKVStore.
type Application struct {
	// mu serializes every call. There is a single writer.
	mu sync.Mutex

	name    string
	logger  log.Logger
	debug   bool
	store   *CommitStore
	decoder royalty.TxDecoder
	handler royalty.Handler
	queries royalty.QueryRouter
	init    royalty.Initializer

	// chainID is loaded from the store, saved once in InitChain
	chainID string
}

// NewApplication loads the latest state of the store.
func NewApplication(
	name string,
	store royalty.CommitKVStore,
	decoder royalty.TxDecoder,
	handler royalty.Handler,
	queries royalty.QueryRouter,
	init royalty.Initializer,
) (*Application, error) {
	cs, err := NewCommitStore(store)
	if err != nil {
		return nil, err
	}
	chainID, err := loadChainID(cs.DeliverStore())
	if err != nil {
		return nil, err
	}
	return &Application{
		name:    name,
		logger:  log.NewNopLogger(),
		store:   cs,
		decoder: decoder,
		handler: handler,
		queries: queries,
		init:    init,
		chainID: chainID,
	}, nil
}

// WithLogger sets the logger passed to every handler.
func (a *Application) WithLogger(logger log.Logger) *Application {
	a.logger = logger
	return a
}

// WithDebug makes the returned errors keep their internal details.
func (a *Application) WithDebug(debug bool) *Application {
	a.debug = debug
	return a
}

// ChainID returns the chain id set at genesis, or an empty string.
func (a *Application) ChainID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.chainID
}

// Info returns the application name and the last commit.
func (a *Application) Info() (string, royalty.CommitID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	id, err := a.store.CommitInfo()
	return a.name, id, err
}

// InitChain stores the chain id and loads the application state. It can be
// called only once for a store. On failure nothing is written.
func (a *Application) InitChain(gen Genesis) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.chainID != "" {
		return errors.Wrapf(errors.ErrState, "state already loaded for chain %q", a.chainID)
	}
	db := a.store.DeliverStore().CacheWrap()
	if err := saveChainID(db, gen.ChainID); err != nil {
		db.Discard()
		return err
	}
	if a.init != nil {
		if err := a.init.FromGenesis(gen.AppState, db); err != nil {
			db.Discard()
			return errors.Wrap(err, "genesis")
		}
	}
	if err := db.Write(); err != nil {
		return errors.Wrap(err, "write genesis")
	}
	a.chainID = gen.ChainID
	a.logger.Info("chain initialized", "chain_id", gen.ChainID)
	return nil
}

// CheckTx runs the handler against the check cache.
func (a *Application) CheckTx(ctx context.Context, txBytes []byte) (*royalty.CheckResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	tx, hctx, err := a.prepare(ctx, "check_tx", txBytes)
	if err != nil {
		return nil, a.redact(err)
	}
	res, err := a.handler.Check(hctx, a.store.CheckStore(), tx)
	return res, a.redact(err)
}

// DeliverTx runs the handler against the deliver cache. The changes are
// persisted on the next Commit.
func (a *Application) DeliverTx(ctx context.Context, txBytes []byte) (*royalty.DeliverResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	tx, hctx, err := a.prepare(ctx, "deliver_tx", txBytes)
	if err != nil {
		return nil, a.redact(err)
	}
	res, err := a.handler.Deliver(hctx, a.store.DeliverStore(), tx)
	return res, a.redact(err)
}

// Commit persists all delivered transactions.
func (a *Application) Commit() (royalty.CommitID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	id, err := a.store.Commit()
	if err != nil {
		return id, err
	}
	a.logger.Debug("commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return id, nil
}

/*
Query reads models from the last committed state.

Path is "/<bucket>", optionally followed by "?prefix" to make a prefix
query. Data is the key, or the key prefix.
*/
func (a *Application) Query(path string, data []byte) ([]royalty.Model, int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	path, mod := splitPath(path)
	qh := a.queries.Handler(path)
	if qh == nil {
		return nil, 0, errors.Wrapf(errors.ErrNotFound, "unexpected query path %q", path)
	}
	info, err := a.store.CommitInfo()
	if err != nil {
		return nil, 0, err
	}
	models, err := qh.Query(a.store.CommittedStore(), mod, data)
	if err != nil {
		return nil, 0, err
	}
	return models, info.Version, nil
}

// Close releases the store if it holds any resources, for example an open
// database.
func (a *Application) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if c, ok := a.store.committed.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// prepare decodes the transaction and builds the handler context.
func (a *Application) prepare(ctx context.Context, call string, txBytes []byte) (royalty.Tx, royalty.Context, error) {
	if a.chainID == "" {
		return nil, nil, errors.Wrap(errors.ErrState, "chain not initialized")
	}
	tx, err := a.loadTx(txBytes)
	if err != nil {
		return nil, nil, err
	}
	info, err := a.store.CommitInfo()
	if err != nil {
		return nil, nil, err
	}
	ctx = royalty.WithChainID(ctx, a.chainID)
	ctx = royalty.WithHeight(ctx, info.Version+1)
	ctx = royalty.WithLogger(ctx, a.logger.With("call", call, "path", royalty.GetPath(tx)))
	return tx, ctx, nil
}

// loadTx calls the decoder, and capture any panics
func (a *Application) loadTx(txBytes []byte) (tx royalty.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = a.decoder(txBytes)
	if err != nil {
		return nil, errors.Wrap(err, "decode tx")
	}
	return tx, nil
}

func (a *Application) redact(err error) error {
	if err == nil || a.debug {
		return err
	}
	return errors.Redact(err)
}

// splitPath splits out the real path along with the query
// modifier (everything after the ?)
func splitPath(path string) (string, string) {
	var mod string
	chunks := strings.SplitN(path, "?", 2)
	if len(chunks) == 2 {
		path = chunks[0]
		mod = chunks[1]
	}
	return path, mod
}
