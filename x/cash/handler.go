package cash

import (
	"fmt"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r royalty.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&SendMsg{}, NewSendHandler(auth, control))
}

// SendHandler will handle sending value between wallets
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ royalty.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and authorized. Funds are
// checked on delivery.
func (h SendHandler) Check(ctx royalty.Context, store royalty.KVStore, tx royalty.Tx) (*royalty.CheckResult, error) {
	if _, _, err := h.validate(ctx, store, tx); err != nil {
		return nil, err
	}
	return &royalty.CheckResult{}, nil
}

// Deliver moves the value from source to destination if
// all preconditions are met
func (h SendHandler) Deliver(ctx royalty.Context, store royalty.KVStore, tx royalty.Tx) (*royalty.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Transfer(store, msg.Source, msg.Destination, msg.Amount, owner); err != nil {
		return nil, err
	}
	return &royalty.DeliverResult{
		Log: fmt.Sprintf("sent %d from %s to %s", msg.Amount, msg.Source, msg.Destination),
	}, nil
}

func (h SendHandler) validate(ctx royalty.Context, store royalty.KVStore, tx royalty.Tx) (*SendMsg, royalty.Address, error) {
	var msg SendMsg
	if err := royalty.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	owner, err := h.control.Owner(store, msg.Source)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, owner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "wallet owner signature missing")
	}
	return &msg, owner, nil
}
