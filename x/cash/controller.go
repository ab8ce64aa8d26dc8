package cash

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/orm"
)

// Controller is the functionality needed by other extensions to read and
// move value.
type Controller interface {
	// Balance returns the amount held by given account. An unknown account
	// holds nothing.
	Balance(db royalty.ReadOnlyKVStore, account royalty.Address) (uint64, error)

	// Owner returns the address allowed to move value out of given
	// account. An unknown account is owned by its own address.
	Owner(db royalty.ReadOnlyKVStore, account royalty.Address) (royalty.Address, error)

	// Transfer moves amount from src to dest. The authorizer must be the
	// owner of src.
	Transfer(db royalty.KVStore, src, dest royalty.Address, amount uint64, authorizer royalty.Address) error

	// Issue creates amount of value in dest.
	Issue(db royalty.KVStore, dest royalty.Address, amount uint64) error
}

// BaseController is a simple implementation of Controller.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller using given bucket.
func NewController(bucket orm.ModelBucket) BaseController {
	return BaseController{bucket: bucket}
}

func (c BaseController) Balance(db royalty.ReadOnlyKVStore, account royalty.Address) (uint64, error) {
	w, err := c.load(db, account)
	if err != nil {
		return 0, err
	}
	return w.Amount, nil
}

func (c BaseController) Owner(db royalty.ReadOnlyKVStore, account royalty.Address) (royalty.Address, error) {
	w, err := c.load(db, account)
	if err != nil {
		return nil, err
	}
	return w.Owner, nil
}

func (c BaseController) Transfer(db royalty.KVStore, src, dest royalty.Address, amount uint64, authorizer royalty.Address) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "transfer amount must be positive")
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	sender, err := c.load(db, src)
	if err != nil {
		return err
	}
	if !sender.Owner.Equals(authorizer) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s is not the owner of %s", authorizer, src)
	}
	if sender.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, requested %d", sender.Amount, amount)
	}
	if src.Equals(dest) {
		return nil
	}

	recipient, err := c.load(db, dest)
	if err != nil {
		return err
	}
	if recipient.Amount+amount < recipient.Amount {
		return errors.Wrapf(errors.ErrOverflow, "balance of %s", dest)
	}

	sender.Amount -= amount
	recipient.Amount += amount
	if err := c.bucket.Put(db, src, sender); err != nil {
		return errors.Wrap(err, "save source")
	}
	if err := c.bucket.Put(db, dest, recipient); err != nil {
		return errors.Wrap(err, "save destination")
	}
	return nil
}

func (c BaseController) Issue(db royalty.KVStore, dest royalty.Address, amount uint64) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	w, err := c.load(db, dest)
	if err != nil {
		return err
	}
	if w.Amount+amount < w.Amount {
		return errors.Wrapf(errors.ErrOverflow, "balance of %s", dest)
	}
	w.Amount += amount
	return c.bucket.Put(db, dest, w)
}

// load returns the wallet stored under given address or an empty wallet
// owned by that address.
func (c BaseController) load(db royalty.ReadOnlyKVStore, account royalty.Address) (*Wallet, error) {
	var w Wallet
	switch err := c.bucket.One(db, account, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{
			Metadata: &royalty.Metadata{Schema: 1},
			Owner:    account.Clone(),
		}, nil
	default:
		return nil, errors.Wrap(err, "load wallet")
	}
}
