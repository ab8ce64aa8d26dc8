/*
Package track records the collaborative authorship of a creative work and
splits royalties between its contributors.

A Track is created once by its authority. The authority then registers up
to MaxContributors contributors, each with a weight, and the sum of all
weights never exceeds MaxTotalWeight. Distribute splits an amount between
the contributors in proportion to their weights and moves the shares from
a source wallet to the contributor wallets. The last contributor receives
the rounding remainder, so the shares always sum up to the amount.

Distribute does not record anything in the Track. It can be repeated and
every call moves the full amount again.
*/
package track
