package cash

import (
	"strings"
	"testing"

	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/royaltytest"
	"github.com/iov-one/royalty/royaltytest/assert"
)

func TestValidateSendMsg(t *testing.T) {
	src := royaltytest.NewCondition().Address()
	dest := royaltytest.NewCondition().Address()

	cases := map[string]struct {
		msg        *SendMsg
		wantErrors map[string]*errors.Error
	}{
		"valid": {
			msg: &SendMsg{Metadata: newMetadata(), Source: src, Destination: dest, Amount: 1, Memo: "royalties"},
			wantErrors: map[string]*errors.Error{
				"Metadata":    nil,
				"Source":      nil,
				"Destination": nil,
				"Amount":      nil,
				"Memo":        nil,
			},
		},
		"everything missing": {
			msg: &SendMsg{},
			wantErrors: map[string]*errors.Error{
				"Metadata":    errors.ErrMetadata,
				"Source":      errors.ErrEmpty,
				"Destination": errors.ErrEmpty,
				"Amount":      errors.ErrAmount,
				"Memo":        nil,
			},
		},
		"memo too long": {
			msg: &SendMsg{Metadata: newMetadata(), Source: src, Destination: dest, Amount: 1, Memo: strings.Repeat("x", 129)},
			wantErrors: map[string]*errors.Error{
				"Memo": errors.ErrInput,
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			for field, want := range tc.wantErrors {
				assert.FieldError(t, err, field, want)
			}
		})
	}
}
