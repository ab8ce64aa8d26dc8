package track

import (
	"fmt"
	"strings"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/orm"
	"github.com/iov-one/royalty/x"
)

// CashController is the part of the value ledger a distribution needs.
type CashController interface {
	Balance(db royalty.ReadOnlyKVStore, account royalty.Address) (uint64, error)
	Owner(db royalty.ReadOnlyKVStore, account royalty.Address) (royalty.Address, error)
	Transfer(db royalty.KVStore, src, dest royalty.Address, amount uint64, authorizer royalty.Address) error
}

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r royalty.Registry, auth x.Authenticator, cash CashController) {
	bucket := NewBucket()
	r.Handle(&InitializeMsg{}, InitializeHandler{auth: auth, bucket: bucket})
	r.Handle(&AddContributionMsg{}, AddContributionHandler{auth: auth, bucket: bucket})
	r.Handle(&DistributeMsg{}, DistributeHandler{auth: auth, bucket: bucket, cash: cash})
}

// InitializeHandler creates tracks. The message is validated first, then a
// signer is required, then the music id must be unused. The main signer
// becomes the track authority.
type InitializeHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
}

var _ royalty.Handler = InitializeHandler{}

func (h InitializeHandler) Check(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &royalty.CheckResult{}, nil
}

func (h InitializeHandler) Deliver(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.DeliverResult, error) {
	msg, authority, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	t := NewTrack(msg.MusicID, authority)
	if err := h.bucket.Put(db, []byte(t.MusicID), t); err != nil {
		return nil, errors.Wrap(err, "cannot save track")
	}
	royalty.GetLogger(ctx).With("music_id", t.MusicID).Debug("track initialized", "authority", authority)
	return &royalty.DeliverResult{
		Data: []byte(t.MusicID),
		Log:  fmt.Sprintf("track %q initialized", t.MusicID),
	}, nil
}

func (h InitializeHandler) validate(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*InitializeMsg, royalty.Address, error) {
	var msg InitializeMsg
	if err := royalty.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(ErrUnauthorized, "track authority must sign")
	}
	switch err := h.bucket.Has(db, []byte(msg.MusicID)); {
	case err == nil:
		return nil, nil, errors.Wrapf(ErrAlreadyInitialized, "music id %q", msg.MusicID)
	case !errors.ErrNotFound.Is(err):
		return nil, nil, err
	}
	return &msg, signer.Address(), nil
}

// AddContributionHandler registers contributors of a track.
//
// Checks run in this order: message validation (ErrMsg, ErrInput,
// ErrMetadata), track lookup (ErrNotFound), authority signature
// (ErrUnauthorized), capacity (ErrCapacityExceeded), duplicate identity
// (ErrContributorExists) and total weight (ErrWeightOverflow). A malformed
// message is rejected before the signer is looked at.
type AddContributionHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
}

var _ royalty.Handler = AddContributionHandler{}

func (h AddContributionHandler) Check(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &royalty.CheckResult{}, nil
}

func (h AddContributionHandler) Deliver(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.DeliverResult, error) {
	msg, t, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Put(db, []byte(t.MusicID), t); err != nil {
		return nil, errors.Wrap(err, "cannot save track")
	}
	royalty.GetLogger(ctx).With("music_id", t.MusicID).Debug("contributor added",
		"contributor", msg.Contributor, "weight", msg.Weight, "total_weight", t.TotalWeight)
	return &royalty.DeliverResult{
		Log: fmt.Sprintf("%s contributor %s added with weight %d", msg.Kind, msg.Contributor, msg.Weight),
	}, nil
}

// validate returns the track with the contributor appended. Nothing is
// written.
func (h AddContributionHandler) validate(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*AddContributionMsg, *Track, error) {
	var msg AddContributionMsg
	if err := royalty.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	t, err := loadTrack(h.bucket, db, msg.MusicID)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, t.Authority) {
		return nil, nil, errors.Wrap(ErrUnauthorized, "track authority signature missing")
	}
	if err := t.AddContributor(msg.Contributor, msg.Kind, msg.Weight); err != nil {
		return nil, nil, err
	}
	return &msg, t, nil
}

// DistributeHandler splits value between the contributors of a track.
//
// Checks run in this order: message validation, track lookup
// (ErrNotFound), authority signature (ErrUnauthorized), contributors
// present (ErrNoContributors), payees matching the contributors in count
// and order (ErrPayeeMismatch), split arithmetic (ErrOverflow) and source
// balance (ErrInsufficientFunds). A malformed message is rejected before
// the signer is looked at.
type DistributeHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	cash   CashController
}

var _ royalty.Handler = DistributeHandler{}

// Check verifies authorization, payees and the source balance.
func (h DistributeHandler) Check(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &royalty.CheckResult{}, nil
}

// Deliver transfers every non zero share from the source wallet to its
// payee. A failed transfer leaves the already executed transfers in the
// store, the caller must discard it.
func (h DistributeHandler) Deliver(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.DeliverResult, error) {
	msg, t, shares, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	log := royalty.GetLogger(ctx).With("music_id", t.MusicID, "amount", msg.Amount)

	res := DistributeResult{MusicID: t.MusicID, Payouts: make([]Payout, len(shares))}
	lines := make([]string, len(shares))
	for i, share := range shares {
		payee := msg.Payees[i]
		res.Payouts[i] = Payout{Payee: payee, Amount: share}
		lines[i] = fmt.Sprintf("%s=%d", payee, share)
		if share == 0 {
			continue
		}
		if err := h.cash.Transfer(db, msg.Source, payee, share, t.Authority); err != nil {
			return nil, errors.Wrapf(err, "payout to %s", payee)
		}
		log.Debug("payout", "payee", payee, "share", share)
	}

	data, err := EncodeResult(res)
	if err != nil {
		return nil, err
	}
	return &royalty.DeliverResult{
		Data: data,
		Log:  fmt.Sprintf("distributed %d of %q: %s", msg.Amount, t.MusicID, strings.Join(lines, " ")),
	}, nil
}

func (h DistributeHandler) validate(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*DistributeMsg, *Track, []uint64, error) {
	var msg DistributeMsg
	if err := royalty.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	t, err := loadTrack(h.bucket, db, msg.MusicID)
	if err != nil {
		return nil, nil, nil, err
	}
	if !h.auth.HasAddress(ctx, t.Authority) {
		return nil, nil, nil, errors.Wrap(ErrUnauthorized, "track authority signature missing")
	}
	if len(t.Contributors) == 0 || t.TotalWeight == 0 {
		return nil, nil, nil, errors.Wrapf(ErrNoContributors, "music id %q", t.MusicID)
	}
	if err := h.matchPayees(db, t, msg.Payees); err != nil {
		return nil, nil, nil, err
	}
	shares, err := Split(t.Weights(), msg.Amount)
	if err != nil {
		return nil, nil, nil, err
	}
	if msg.Amount > 0 {
		switch balance, err := h.cash.Balance(db, msg.Source); {
		case err != nil:
			return nil, nil, nil, err
		case balance < msg.Amount:
			return nil, nil, nil, errors.Wrapf(ErrInsufficientFunds, "source holds %d, need %d", balance, msg.Amount)
		}
	}
	return &msg, t, shares, nil
}

// matchPayees ensures every payee wallet is owned by the contributor in
// the same slot.
func (h DistributeHandler) matchPayees(db royalty.ReadOnlyKVStore, t *Track, payees []royalty.Address) error {
	if len(payees) != len(t.Contributors) {
		return errors.Wrapf(ErrPayeeMismatch, "%d payees for %d contributors", len(payees), len(t.Contributors))
	}
	for i, c := range t.Contributors {
		owner, err := h.cash.Owner(db, payees[i])
		if err != nil {
			return err
		}
		if !owner.Equals(c.Identity) {
			return errors.Wrapf(ErrPayeeMismatch, "payee %d is not controlled by %s", i, c.Identity)
		}
	}
	return nil
}

func loadTrack(bucket orm.ModelBucket, db royalty.ReadOnlyKVStore, musicID string) (*Track, error) {
	var t Track
	if err := bucket.One(db, []byte(musicID), &t); err != nil {
		return nil, errors.Wrapf(err, "music id %q", musicID)
	}
	return &t, nil
}
