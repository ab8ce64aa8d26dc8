package royalty_test

import (
	"testing"

	"github.com/iov-one/royalty"
	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	defer func(c string) { royalty.GitCommit = c }(royalty.GitCommit)

	royalty.GitCommit = ""
	assert.Equal(t, "v0.1.0-dev", royalty.Version())

	royalty.GitCommit = "12345678"
	assert.Equal(t, "v0.1.0-dev 12345678", royalty.Version())
}
