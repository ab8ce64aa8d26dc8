package royaltytest

import (
	"fmt"

	"github.com/iov-one/royalty"
)

// Tx represents a transaction carrying a single message.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg royalty.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ royalty.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (royalty.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) Reset()         { *tx = Tx{} }
func (tx *Tx) String() string { return fmt.Sprintf("royaltytest.Tx{%v}", tx.Msg) }
func (*Tx) ProtoMessage()     {}

// Msg represents a message processed within a single transaction.
type Msg struct {
	// RoutePath returned by the path method, consumed by the router.
	RoutePath string
	// Err if set is returned by the Validate method.
	Err error
}

var _ royalty.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Reset()         { *m = Msg{} }
func (m *Msg) String() string { return fmt.Sprintf("royaltytest.Msg{%s}", m.RoutePath) }
func (*Msg) ProtoMessage()    {}
