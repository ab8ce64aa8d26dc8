package track

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// Payout is a single share of a distribution.
type Payout struct {
	Payee  []byte `json:"payee"`
	Amount uint64 `json:"amount"`
}

// DistributeResult is returned as the data of a successful distribution.
type DistributeResult struct {
	MusicID string   `json:"music_id"`
	Payouts []Payout `json:"payouts"`
}

// Total returns the sum of all payouts.
func (r DistributeResult) Total() uint64 {
	var total uint64
	for _, p := range r.Payouts {
		total += p.Amount
	}
	return total
}

// PayeeAddress returns the payee of payout i.
func (r DistributeResult) PayeeAddress(i int) royalty.Address {
	return royalty.Address(r.Payouts[i].Payee)
}

// EncodeResult serializes a distribution result.
func EncodeResult(r DistributeResult) ([]byte, error) {
	raw, err := cdc.MarshalBinaryBare(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return raw, nil
}

// DecodeResult parses the data returned by a distribution.
func DecodeResult(raw []byte) (*DistributeResult, error) {
	var r DistributeResult
	if err := cdc.UnmarshalBinaryBare(raw, &r); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return &r, nil
}
