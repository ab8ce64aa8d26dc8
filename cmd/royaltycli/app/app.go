/*
Package royaltyapp links together all the various components
to construct the royalty application.
*/
package royaltyapp

import (
	"path/filepath"
	"strings"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/app"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/store/iavl"
	"github.com/iov-one/royalty/x"
	"github.com/iov-one/royalty/x/cash"
	"github.com/iov-one/royalty/x/sigs"
	"github.com/iov-one/royalty/x/track"
	"github.com/iov-one/royalty/x/utils"
	"github.com/tendermint/tendermint/libs/log"
)

// Name is returned by Application.Info
const Name = "royalty"

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		// a failed transaction does not change the state, the
		// sequence of the signers included
		utils.NewSavepoint().OnCheck().OnDeliver(),
		sigs.NewDecorator(),
	)
}

// Router returns a router dispatching to the cash and track handlers.
// Both share the same wallet controller.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	ctrl := cash.NewController(cash.NewBucket())
	cash.RegisterRoutes(r, authFn, ctrl)
	track.RegisterRoutes(r, authFn, ctrl)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/wallets", "/tracks" and "/auth"
func QueryRouter() royalty.QueryRouter {
	r := royalty.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		track.RegisterQuery,
		sigs.RegisterQuery,
	)
	return r
}

// Initializers returns the genesis loaders of all extensions.
func Initializers() royalty.Initializer {
	return app.ChainInitializers(
		cash.Initializer{},
		track.Initializer{},
	)
}

// Stack wires up a standard router with a standard decorator
// chain.
func Stack() royalty.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn))
}

// Application constructs an application over the state stored at dbPath.
// An empty path keeps the state in memory.
func Application(dbPath string, logger log.Logger, debug bool) (*app.Application, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return nil, err
	}
	a, err := app.NewApplication(Name, kv, TxDecoder, Stack(), QueryRouter(), Initializers())
	if err != nil {
		return nil, err
	}
	return a.WithLogger(logger).WithDebug(debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (royalty.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.MemCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidently add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name)
}
