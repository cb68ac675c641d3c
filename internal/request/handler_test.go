package request

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShareURL(t *testing.T) {
	r := httptest.NewRequest("POST", "http://valentine.example/api/requests", nil)
	assert.Equal(t, "http://valentine.example/request/abc123", shareURL(r, "abc123"))

	// Behind a TLS-terminating proxy the forwarded proto wins
	r.Header.Set("X-Forwarded-Proto", "https")
	assert.Equal(t, "https://valentine.example/request/abc123", shareURL(r, "abc123"))
}
