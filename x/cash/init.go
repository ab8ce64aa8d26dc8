package cash

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file.
// Addresses are in hex. Owner defaults to the account address.
type GenesisAccount struct {
	Address royalty.Address `json:"address"`
	Owner   royalty.Address `json:"owner,omitempty"`
	Amount  uint64          `json:"amount"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ royalty.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts royalty.Options, kv royalty.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	bucket := NewBucket()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		owner := acct.Owner
		if len(owner) == 0 {
			owner = acct.Address
		}
		w := &Wallet{
			Metadata: &royalty.Metadata{Schema: 1},
			Owner:    owner,
			Amount:   acct.Amount,
		}
		if err := bucket.Put(kv, acct.Address, w); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
