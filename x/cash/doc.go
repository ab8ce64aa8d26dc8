/*
Package cash defines a simple value ledger: wallets holding a single
non-negative balance, each controlled by an owner.

There is no logic in the value itself, except that the balance of a wallet
may not go below zero or overflow. Only the owner of a wallet can move
value out of it. A wallet that was never stored is empty and owned by its
own address.
*/
package cash
