package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
)

const maxMemoSize int = 128

// SendMsg moves Amount from Source to Destination. It must be signed by
// the owner of the Source wallet.
type SendMsg struct {
	Metadata    *royalty.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	Source      royalty.Address   `protobuf:"bytes,2,opt,name=source,proto3,casttype=github.com/iov-one/royalty.Address" json:"source,omitempty"`
	Destination royalty.Address   `protobuf:"bytes,3,opt,name=destination,proto3,casttype=github.com/iov-one/royalty.Address" json:"destination,omitempty"`
	Amount      uint64            `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
	Memo        string            `protobuf:"bytes,5,opt,name=memo,proto3" json:"memo,omitempty"`
}

var _ royalty.Msg = (*SendMsg)(nil)

func (m *SendMsg) Reset()         { *m = SendMsg{} }
func (m *SendMsg) String() string { return proto.CompactTextString(m) }
func (*SendMsg) ProtoMessage()    {}

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	if len(m.Memo) > maxMemoSize {
		errs = errors.Append(errs, errors.Field("Memo", errors.ErrInput, "too long"))
	}
	return errs
}
