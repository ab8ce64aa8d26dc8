package utils

import (
	"fmt"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
)

// Recovery stops a panic raised by a handler further down the chain. The
// panic is returned as ErrPanic, so the application redacts it before it
// reaches a client, and the full value is written to the context logger
// together with the message path.
type Recovery struct{}

var _ royalty.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (r Recovery) Check(ctx royalty.Context, store royalty.KVStore, tx royalty.Tx, next royalty.Checker) (_ *royalty.CheckResult, err error) {
	defer r.recover(ctx, "check", tx, &err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors
func (r Recovery) Deliver(ctx royalty.Context, store royalty.KVStore, tx royalty.Tx, next royalty.Deliverer) (_ *royalty.DeliverResult, err error) {
	defer r.recover(ctx, "deliver", tx, &err)
	return next.Deliver(ctx, store, tx)
}

// recover must be deferred directly.
func (Recovery) recover(ctx royalty.Context, call string, tx royalty.Tx, err *error) {
	p := recover()
	if p == nil {
		return
	}
	*err = errors.Wrapf(errors.ErrPanic, "%v", p)

	path := "(missing)"
	if tx != nil {
		path = royalty.GetPath(tx)
	}
	royalty.GetLogger(ctx).Error("handler panicked",
		"call", call, "path", path, "panic", fmt.Sprint(p))
}
