package sigs

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/royaltytest"
)

// stdTx is a signed transaction used by tests. Its sign bytes are the
// payload.
type stdTx struct {
	royaltytest.Tx
	payload    []byte
	Signatures []*StdSignature
}

var _ SignedTx = (*stdTx)(nil)
var _ royalty.Tx = (*stdTx)(nil)

func newStdTx(payload []byte) *stdTx {
	return &stdTx{
		Tx:      royaltytest.Tx{Msg: &royaltytest.Msg{RoutePath: "test/sigs"}},
		payload: payload,
	}
}

func (tx *stdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *stdTx) GetSignBytes() ([]byte, error) {
	return tx.payload, nil
}

// sigCheckHandler stores the seen signers on each call
type sigCheckHandler struct {
	Signers []royalty.Condition
}

var _ royalty.Handler = (*sigCheckHandler)(nil)

func (s *sigCheckHandler) Check(ctx royalty.Context, store royalty.KVStore, tx royalty.Tx) (*royalty.CheckResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &royalty.CheckResult{}, nil
}

func (s *sigCheckHandler) Deliver(ctx royalty.Context, store royalty.KVStore, tx royalty.Tx) (*royalty.DeliverResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &royalty.DeliverResult{}, nil
}
