package metrics

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServer(t *testing.T) {
	s := NewServer("127.0.0.1:0")
	assert.Nil(t, s.Addr())
	require.NoError(t, s.Start())
	defer s.Close()

	resp, err := http.Get("http://" + s.Addr().String() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "go_goroutines")

	notFound, err := http.Get("http://" + s.Addr().String() + "/other")
	require.NoError(t, err)
	notFound.Body.Close()
	assert.Equal(t, http.StatusNotFound, notFound.StatusCode)
}

func TestCloseBeforeStart(t *testing.T) {
	NewServer("127.0.0.1:0").Close()
}
