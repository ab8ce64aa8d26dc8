package royaltyapp

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/x/cash"
	"github.com/iov-one/royalty/x/sigs"
	"github.com/iov-one/royalty/x/track"
)

// Tx carries exactly one message and the signatures authorizing it. Only
// one of the message fields can be set.
type Tx struct {
	Signatures         []*sigs.StdSignature      `protobuf:"bytes,1,rep,name=signatures" json:"signatures,omitempty"`
	SendMsg            *cash.SendMsg             `protobuf:"bytes,51,opt,name=send_msg,json=sendMsg" json:"send_msg,omitempty"`
	InitializeMsg      *track.InitializeMsg      `protobuf:"bytes,60,opt,name=initialize_msg,json=initializeMsg" json:"initialize_msg,omitempty"`
	AddContributionMsg *track.AddContributionMsg `protobuf:"bytes,61,opt,name=add_contribution_msg,json=addContributionMsg" json:"add_contribution_msg,omitempty"`
	DistributeMsg      *track.DistributeMsg      `protobuf:"bytes,62,opt,name=distribute_msg,json=distributeMsg" json:"distribute_msg,omitempty"`
}

// make sure tx fulfills all interfaces
var _ royalty.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

func (tx *Tx) Reset()         { *tx = Tx{} }
func (tx *Tx) String() string { return proto.CompactTextString(tx) }
func (*Tx) ProtoMessage()     {}

// NewTx returns a transaction carrying given message.
func NewTx(msg royalty.Msg) (*Tx, error) {
	var tx Tx
	switch m := msg.(type) {
	case *cash.SendMsg:
		tx.SendMsg = m
	case *track.InitializeMsg:
		tx.InitializeMsg = m
	case *track.AddContributionMsg:
		tx.AddContributionMsg = m
	case *track.DistributeMsg:
		tx.DistributeMsg = m
	default:
		return nil, errors.Wrapf(errors.ErrType, "unsupported message %T", msg)
	}
	return &tx, nil
}

// GetMsg returns the single message set on the transaction.
func (tx *Tx) GetMsg() (royalty.Msg, error) {
	var msgs []royalty.Msg
	if tx.SendMsg != nil {
		msgs = append(msgs, tx.SendMsg)
	}
	if tx.InitializeMsg != nil {
		msgs = append(msgs, tx.InitializeMsg)
	}
	if tx.AddContributionMsg != nil {
		msgs = append(msgs, tx.AddContributionMsg)
	}
	if tx.DistributeMsg != nil {
		msgs = append(msgs, tx.DistributeMsg)
	}
	switch len(msgs) {
	case 0:
		return nil, nil
	case 1:
		return msgs[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrMsg, "%d messages in one transaction", len(msgs))
	}
}

// GetSignatures returns all signatures of the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	sigs := tx.Signatures
	tx.Signatures = nil
	bz, err := royalty.Marshal(tx)
	tx.Signatures = sigs
	return bz, err
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (royalty.Tx, error) {
	tx := new(Tx)
	if err := royalty.Unmarshal(bz, tx); err != nil {
		return nil, err
	}
	return tx, nil
}
