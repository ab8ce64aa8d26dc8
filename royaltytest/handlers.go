package royaltytest

import "github.com/iov-one/royalty"

// Handler is a mock implementation of the royalty.Handler interface.
// It returns configured results and counts the calls.
type Handler struct {
	checkCall   int
	CheckResult royalty.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult royalty.DeliverResult
	DeliverErr    error
}

var _ royalty.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// WriteHandler writes a fixed key/value pair to the store and then
// returns Err. It is used to test that failed transactions leave no
// trace in the state.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ royalty.Handler = (*WriteHandler)(nil)

func (h *WriteHandler) Check(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	return &royalty.CheckResult{}, h.Err
}

func (h *WriteHandler) Deliver(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	return &royalty.DeliverResult{}, h.Err
}

// PanicHandler always panics with given value.
type PanicHandler struct {
	Msg string
}

var _ royalty.Handler = PanicHandler{}

func (p PanicHandler) Check(royalty.Context, royalty.KVStore, royalty.Tx) (*royalty.CheckResult, error) {
	panic(p.Msg)
}

func (p PanicHandler) Deliver(royalty.Context, royalty.KVStore, royalty.Tx) (*royalty.DeliverResult, error) {
	panic(p.Msg)
}
