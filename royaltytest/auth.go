/*
Package royaltytest provides mocks and helpers shared by the tests of all
packages: authenticators, handlers, decorators and transactions.
*/
package royaltytest

import (
	"context"
	"fmt"

	"github.com/iov-one/royalty"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced conditions.
// All conditions referenced by Signer and Signers are considered.
type Auth struct {
	// Signer represents an authentication of a single signer.
	Signer royalty.Condition

	// Signers represents an authentication of multiple signers.
	Signers []royalty.Condition
}

func (a *Auth) GetConditions(royalty.Context) []royalty.Condition {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx royalty.Context, addr royalty.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve permissions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convenience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetConditions(ctx royalty.Context, permissions ...royalty.Condition) royalty.Context {
	return context.WithValue(ctx, a.Key, permissions)
}

func (a *CtxAuth) GetConditions(ctx royalty.Context) []royalty.Condition {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	conds, ok := val.([]royalty.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []royalty.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx royalty.Context, addr royalty.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
