package commit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	_, err := NewClient("", time.Second)
	assert.Error(t, err, "empty endpoint rejected")

	c, err := NewClient("http://localhost:8095/api/v1/task-update", 0)
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestClientSend(t *testing.T) {
	t.Run("accepted record", func(t *testing.T) {
		var got Request
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			json.NewEncoder(w).Encode(Response{Status: "success"})
		}))
		defer server.Close()

		client, err := NewClient(server.URL, time.Second)
		require.NoError(t, err)

		err = client.Send(context.Background(), NewRequest("Jane", "A x 1", "m0000000000"))
		require.NoError(t, err)
		assert.Equal(t, "Jane", got.EmployeeName)
		assert.Equal(t, "m0000000000", got.IsoBarcode)
	})

	t.Run("sink error with message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(Response{Status: "error", Message: "duplicate barcode"})
		}))
		defer server.Close()

		client, err := NewClient(server.URL, time.Second)
		require.NoError(t, err)

		err = client.Send(context.Background(), NewRequest("Jane", "A x 1", "m0000000000"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate barcode")
		assert.Contains(t, err.Error(), "m0000000000")
	})

	t.Run("error status on HTTP 200", func(t *testing.T) {
		// Some sinks report rejection in the body alone.
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(Response{Status: "error"})
		}))
		defer server.Close()

		client, err := NewClient(server.URL, time.Second)
		require.NoError(t, err)

		assert.Error(t, client.Send(context.Background(), NewRequest("Jane", "A x 1", "m0000000001")))
	})

	t.Run("unreachable sink", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client, err := NewClient(server.URL, time.Second)
		require.NoError(t, err)

		err = client.Send(context.Background(), NewRequest("Jane", "A x 1", "m0000000002"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to reach task sink")
	})
}
