package track

import "github.com/iov-one/royalty/errors"

// x/track reserves 100 ~ 109.
var (
	// ErrAlreadyInitialized is returned when a track with the same music
	// id exists.
	ErrAlreadyInitialized = errors.Register(100, "track already initialized")

	// ErrCapacityExceeded is returned when a contributor is added to a
	// track that has no free slot.
	ErrCapacityExceeded = errors.Register(101, "contributor capacity exceeded")

	// ErrWeightOverflow is returned when the total weight of a track would
	// exceed MaxTotalWeight.
	ErrWeightOverflow = errors.Register(102, "total weight overflow")

	// ErrPayeeMismatch is returned when the payees of a distribution do not
	// match the contributors of the track, in number or order.
	ErrPayeeMismatch = errors.Register(103, "payees do not match contributors")

	// ErrContributorExists is returned when the same identity is registered
	// twice for a track.
	ErrContributorExists = errors.Register(104, "contributor already exists")

	// ErrNoContributors is returned when distributing for a track without
	// any weight.
	ErrNoContributors = errors.Register(105, "no contributors")
)

// Errors that are owned by the framework or the value ledger and returned
// unchanged by this package.
var (
	ErrUnauthorized      = errors.ErrUnauthorized
	ErrInsufficientFunds = errors.ErrInsufficientAmount
)
