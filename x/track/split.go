package track

import (
	"math/bits"

	"github.com/iov-one/royalty/errors"
)

// Split divides amount between the given weights. Every share but the last
// one is floor(amount * weight / total). The last share receives whatever
// is left, so the shares always sum up to amount.
//
// The multiplication is done on 128 bits and cannot overflow. A zero weight
// results in a zero share.
func Split(weights []uint64, amount uint64) ([]uint64, error) {
	if len(weights) == 0 {
		return nil, errors.Wrap(ErrNoContributors, "no weights")
	}
	var total uint64
	for _, w := range weights {
		sum, carry := bits.Add64(total, w, 0)
		if carry != 0 {
			return nil, errors.Wrap(errors.ErrOverflow, "total weight")
		}
		total = sum
	}
	if total == 0 {
		return nil, errors.Wrap(ErrNoContributors, "total weight is zero")
	}

	last := len(weights) - 1
	shares := make([]uint64, len(weights))
	var paid uint64
	for i, w := range weights[:last] {
		hi, lo := bits.Mul64(amount, w)
		// w <= total, so hi < total and the quotient fits in 64 bits.
		share, _ := bits.Div64(hi, lo, total)
		shares[i] = share
		paid += share
	}
	shares[last] = amount - paid
	return shares, nil
}
