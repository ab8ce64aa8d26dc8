package track

import (
	"strconv"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
)

const (
	pathInitialize      = "track/initialize"
	pathAddContribution = "track/add_contribution"
	pathDistribute      = "track/distribute"
)

// InitializeMsg creates a new track. The main signer of the transaction
// becomes the track authority.
type InitializeMsg struct {
	Metadata *royalty.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	MusicID  string            `protobuf:"bytes,2,opt,name=music_id,json=musicId,proto3" json:"music_id"`
}

var _ royalty.Msg = (*InitializeMsg)(nil)

func (m *InitializeMsg) Reset()         { *m = InitializeMsg{} }
func (m *InitializeMsg) String() string { return proto.CompactTextString(m) }
func (*InitializeMsg) ProtoMessage()    {}

func (InitializeMsg) Path() string {
	return pathInitialize
}

func (m *InitializeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "MusicID", validateMusicID(m.MusicID))
	return errs
}

// AddContributionMsg registers a contributor with a weight. It must be
// signed by the track authority.
type AddContributionMsg struct {
	Metadata    *royalty.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	MusicID     string            `protobuf:"bytes,2,opt,name=music_id,json=musicId,proto3" json:"music_id"`
	Contributor royalty.Address   `protobuf:"bytes,3,opt,name=contributor,proto3,casttype=github.com/iov-one/royalty.Address" json:"contributor"`
	Kind        string            `protobuf:"bytes,4,opt,name=kind,proto3" json:"kind"`
	Weight      uint32            `protobuf:"varint,5,opt,name=weight,proto3" json:"weight"`
}

var _ royalty.Msg = (*AddContributionMsg)(nil)

func (m *AddContributionMsg) Reset()         { *m = AddContributionMsg{} }
func (m *AddContributionMsg) String() string { return proto.CompactTextString(m) }
func (*AddContributionMsg) ProtoMessage()    {}

func (AddContributionMsg) Path() string {
	return pathAddContribution
}

func (m *AddContributionMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "MusicID", validateMusicID(m.MusicID))
	errs = errors.AppendField(errs, "Contributor", m.Contributor.Validate())
	errs = errors.AppendField(errs, "Kind", validateKind(m.Kind))
	errs = errors.AppendField(errs, "Weight", validateWeight(m.Weight))
	return errs
}

// DistributeMsg splits Amount from the Source wallet between the track
// contributors. Payees are listed in contributor order.
type DistributeMsg struct {
	Metadata *royalty.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	MusicID  string            `protobuf:"bytes,2,opt,name=music_id,json=musicId,proto3" json:"music_id"`
	// Amount can be zero, in which case nothing is transferred.
	Amount uint64            `protobuf:"varint,3,opt,name=amount,proto3" json:"amount"`
	Source royalty.Address   `protobuf:"bytes,4,opt,name=source,proto3,casttype=github.com/iov-one/royalty.Address" json:"source"`
	Payees []royalty.Address `protobuf:"bytes,5,rep,name=payees,casttype=github.com/iov-one/royalty.Address" json:"payees"`
}

var _ royalty.Msg = (*DistributeMsg)(nil)

func (m *DistributeMsg) Reset()         { *m = DistributeMsg{} }
func (m *DistributeMsg) String() string { return proto.CompactTextString(m) }
func (*DistributeMsg) ProtoMessage()    {}

func (DistributeMsg) Path() string {
	return pathDistribute
}

func (m *DistributeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "MusicID", validateMusicID(m.MusicID))
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	if len(m.Payees) > MaxContributors {
		errs = errors.Append(errs, errors.Field("Payees", ErrPayeeMismatch, "more payees than contributor slots"))
	}
	for i, p := range m.Payees {
		errs = errors.AppendField(errs, "Payees."+strconv.Itoa(i), p.Validate())
	}
	return errs
}
