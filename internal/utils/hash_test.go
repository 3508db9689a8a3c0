package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentHash(t *testing.T) {
	// Known SHA-256 vector
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		ContentHash(""))

	a := ContentHash("transferred repo to buyer-org")
	b := ContentHash("transferred repo to buyer-org")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	assert.NotEqual(t, a, ContentHash("transferred repo to other-org"))
}
