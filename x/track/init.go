package track

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
)

const optKey = "track"

// GenesisTrack is a track created at chain start.
type GenesisTrack struct {
	MusicID      string               `json:"music_id"`
	Authority    royalty.Address      `json:"authority"`
	Contributors []GenesisContributor `json:"contributors"`
}

type GenesisContributor struct {
	Identity royalty.Address `json:"identity"`
	Kind     string          `json:"kind"`
	Weight   uint32          `json:"weight"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ royalty.Initializer = Initializer{}

// FromGenesis creates every listed track. Contributors are added in order
// and must respect the same rules as AddContributionMsg.
func (Initializer) FromGenesis(opts royalty.Options, kv royalty.KVStore) error {
	var tracks []GenesisTrack
	if err := opts.ReadOptions(optKey, &tracks); err != nil {
		return err
	}
	bucket := NewBucket()
	for _, gt := range tracks {
		if err := validateMusicID(gt.MusicID); err != nil {
			return err
		}
		switch err := bucket.Has(kv, []byte(gt.MusicID)); {
		case err == nil:
			return errors.Wrapf(ErrAlreadyInitialized, "music id %q", gt.MusicID)
		case !errors.ErrNotFound.Is(err):
			return errors.Wrapf(err, "track %q", gt.MusicID)
		}
		t := NewTrack(gt.MusicID, gt.Authority)
		for _, c := range gt.Contributors {
			if err := t.AddContributor(c.Identity, c.Kind, c.Weight); err != nil {
				return errors.Wrapf(err, "track %q", gt.MusicID)
			}
		}
		if err := bucket.Put(kv, []byte(t.MusicID), t); err != nil {
			return errors.Wrapf(err, "track %q", gt.MusicID)
		}
	}
	return nil
}
