package transfer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientTransfer(t *testing.T) {
	var got transferRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/transfers", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.Transfer(context.Background(), "bob", 300)
	require.NoError(t, err)

	assert.Equal(t, "bob", got.ToAccount)
	assert.Equal(t, int64(300), got.Amount)
	assert.NotEmpty(t, got.Reference)
}

func TestClientTransferGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "insufficient escrow balance", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.Transfer(context.Background(), "bob", 300)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 422")
	assert.Contains(t, err.Error(), "insufficient escrow balance")
}

func TestClientTransferConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL)
	err := c.Transfer(context.Background(), "bob", 300)
	assert.Error(t, err)
}

func TestClientTransferRespectsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL)
	err := c.Transfer(ctx, "bob", 300)
	assert.Error(t, err)
}
