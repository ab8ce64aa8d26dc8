package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/orm"
)

// BucketName is where we store the wallets
const BucketName = "cash"

// Wallet is the stored state of a single account.
type Wallet struct {
	Metadata *royalty.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	// Owner is the address allowed to move value out of this wallet.
	Owner  royalty.Address `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/iov-one/royalty.Address" json:"owner,omitempty"`
	Amount uint64          `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
}

var _ orm.Model = (*Wallet)(nil)

func (w *Wallet) Reset()         { *w = Wallet{} }
func (w *Wallet) String() string { return proto.CompactTextString(w) }
func (*Wallet) ProtoMessage()    {}

// Validate requires the metadata and the owner to be set.
func (w *Wallet) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", w.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", w.Owner.Validate())
	return errs
}

func (w *Wallet) Copy() orm.Model {
	return &Wallet{
		Metadata: w.Metadata.Copy(),
		Owner:    w.Owner.Clone(),
		Amount:   w.Amount,
	}
}

// NewBucket returns the bucket holding wallets, keyed by account address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Wallet{})
}

// RegisterQuery will register this bucket as "/wallets"
func RegisterQuery(qr royalty.QueryRouter) {
	NewBucket().Register("wallets", qr)
}
