package app

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_SinglePageTransport(t *testing.T) {
	c := newHTTPClient(3 * time.Second)
	assert.Equal(t, 60*time.Second, c.Timeout)

	tr, ok := c.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, 3*time.Second, tr.ResponseHeaderTimeout)
	assert.Equal(t, 1, tr.MaxIdleConnsPerHost)
	assert.Equal(t, 2, tr.MaxConnsPerHost)
	assert.NotNil(t, tr.Proxy)
}
