package track

import (
	"strconv"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/orm"
)

const (
	// BucketName is where we store the tracks
	BucketName = "track"

	// MaxContributors is the number of distribution slots of a track.
	MaxContributors = 2

	// MaxTotalWeight is the sum of weights of a fully attributed track.
	MaxTotalWeight = 100

	maxMusicIDLength = 128
	maxKindLength    = 64
)

// Contributor is a participant of a track, paid in proportion to Weight.
type Contributor struct {
	// Identity is the address of the contributor. Payouts go to a wallet
	// owned by this address.
	Identity royalty.Address `protobuf:"bytes,1,opt,name=identity,proto3,casttype=github.com/iov-one/royalty.Address" json:"identity"`
	// Kind classifies the contributor, for example "Human" or "AI".
	Kind   string `protobuf:"bytes,2,opt,name=kind,proto3" json:"kind"`
	Weight uint32 `protobuf:"varint,3,opt,name=weight,proto3" json:"weight"`
}

func (c *Contributor) Reset()         { *c = Contributor{} }
func (c *Contributor) String() string { return proto.CompactTextString(c) }
func (*Contributor) ProtoMessage()    {}

// Validate checks a single contributor entry.
func (c *Contributor) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Identity", c.Identity.Validate())
	errs = errors.AppendField(errs, "Kind", validateKind(c.Kind))
	errs = errors.AppendField(errs, "Weight", validateWeight(c.Weight))
	return errs
}

func validateKind(kind string) error {
	switch n := len(kind); {
	case n == 0:
		return errors.Wrap(errors.ErrEmpty, "kind")
	case n > maxKindLength:
		return errors.Wrapf(errors.ErrInput, "kind longer than %d", maxKindLength)
	}
	return nil
}

// validateWeight rejects only a zero weight. The upper bound is a property
// of the track total and is reported as ErrWeightOverflow.
func validateWeight(w uint32) error {
	if w == 0 {
		return errors.Wrap(errors.ErrInput, "weight must be positive")
	}
	return nil
}

func validateMusicID(id string) error {
	switch n := len(id); {
	case n == 0:
		return errors.Wrap(errors.ErrEmpty, "music id")
	case n > maxMusicIDLength:
		return errors.Wrapf(errors.ErrInput, "music id longer than %d", maxMusicIDLength)
	}
	return nil
}

// Track is the attribution record of a single creative work.
type Track struct {
	Metadata     *royalty.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	MusicID      string            `protobuf:"bytes,2,opt,name=music_id,json=musicId,proto3" json:"music_id"`
	Initialized  bool              `protobuf:"varint,3,opt,name=initialized,proto3" json:"initialized"`
	Contributors []*Contributor    `protobuf:"bytes,4,rep,name=contributors" json:"contributors"`
	// TotalWeight is the sum of all contributor weights. It is always
	// validated against the contributors.
	TotalWeight uint32          `protobuf:"varint,5,opt,name=total_weight,json=totalWeight,proto3" json:"total_weight"`
	Authority   royalty.Address `protobuf:"bytes,6,opt,name=authority,proto3,casttype=github.com/iov-one/royalty.Address" json:"authority"`
}

var _ orm.Model = (*Track)(nil)

func (t *Track) Reset()         { *t = Track{} }
func (t *Track) String() string { return proto.CompactTextString(t) }
func (*Track) ProtoMessage()    {}

// NewTrack returns an initialized track without contributors.
func NewTrack(musicID string, authority royalty.Address) *Track {
	return &Track{
		Metadata:    &royalty.Metadata{Schema: 1},
		MusicID:     musicID,
		Initialized: true,
		Authority:   authority.Clone(),
	}
}

// Validate ensures the track is consistent. The total weight is derived
// from the contributors and must match the stored value.
func (t *Track) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", t.Metadata.Validate())
	errs = errors.AppendField(errs, "MusicID", validateMusicID(t.MusicID))
	errs = errors.AppendField(errs, "Authority", t.Authority.Validate())
	if !t.Initialized {
		errs = errors.Append(errs, errors.Field("Initialized", errors.ErrState, "must be set"))
	}
	if len(t.Contributors) > MaxContributors {
		errs = errors.Append(errs, errors.Field("Contributors", ErrCapacityExceeded, "%d contributors", len(t.Contributors)))
	}

	var total uint64
	seen := make(map[string]struct{}, len(t.Contributors))
	for i, c := range t.Contributors {
		if c == nil {
			errs = errors.Append(errs, errors.Field(contributorField(i), errors.ErrEmpty, "nil contributor"))
			continue
		}
		errs = errors.AppendField(errs, contributorField(i), c.Validate())
		if _, ok := seen[string(c.Identity)]; ok {
			errs = errors.AppendField(errs, contributorField(i), ErrContributorExists)
		}
		seen[string(c.Identity)] = struct{}{}
		total += uint64(c.Weight)
	}
	if total > MaxTotalWeight {
		errs = errors.Append(errs, errors.Field("TotalWeight", ErrWeightOverflow, "%d", total))
	}
	if total != uint64(t.TotalWeight) {
		errs = errors.Append(errs, errors.Field("TotalWeight", errors.ErrModel, "stored %d, contributors sum up to %d", t.TotalWeight, total))
	}
	return errs
}

func contributorField(i int) string {
	return "Contributors." + strconv.Itoa(i)
}

func (t *Track) Copy() orm.Model {
	cs := make([]*Contributor, len(t.Contributors))
	for i, c := range t.Contributors {
		if c == nil {
			continue
		}
		cpy := *c
		cpy.Identity = c.Identity.Clone()
		cs[i] = &cpy
	}
	return &Track{
		Metadata:     t.Metadata.Copy(),
		MusicID:      t.MusicID,
		Initialized:  t.Initialized,
		Contributors: cs,
		TotalWeight:  t.TotalWeight,
		Authority:    t.Authority.Clone(),
	}
}

// AddContributor appends a contributor to the track. The track is not
// modified if an error is returned.
func (t *Track) AddContributor(identity royalty.Address, kind string, weight uint32) error {
	c := &Contributor{Identity: identity.Clone(), Kind: kind, Weight: weight}
	if err := c.Validate(); err != nil {
		return errors.Wrap(err, "contributor")
	}
	if len(t.Contributors) >= MaxContributors {
		return errors.Wrapf(ErrCapacityExceeded, "track has %d contributors", len(t.Contributors))
	}
	if t.HasContributor(identity) {
		return errors.Wrapf(ErrContributorExists, "%s", identity)
	}
	if total := uint64(t.TotalWeight) + uint64(weight); total > MaxTotalWeight {
		return errors.Wrapf(ErrWeightOverflow, "total weight would be %d", total)
	}
	t.Contributors = append(t.Contributors, c)
	t.TotalWeight += weight
	return nil
}

// HasContributor returns true if identity is registered for this track.
func (t *Track) HasContributor(identity royalty.Address) bool {
	for _, c := range t.Contributors {
		if c.Identity.Equals(identity) {
			return true
		}
	}
	return false
}

// Weights returns the contributor weights in slot order.
func (t *Track) Weights() []uint64 {
	ws := make([]uint64, len(t.Contributors))
	for i, c := range t.Contributors {
		ws[i] = uint64(c.Weight)
	}
	return ws
}

// NewBucket returns the bucket holding tracks, keyed by music id.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Track{})
}

// RegisterQuery will register this bucket as "/tracks"
func RegisterQuery(qr royalty.QueryRouter) {
	NewBucket().Register("tracks", qr)
}
