package inventory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goshop/orderflow/internal/domains/orders/ports"
)

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient("  ", nil)
	require.Error(t, err)
}

func TestFetchProduct_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/products/5", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"price":9.99,"stock":12}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, srv.Client())
	require.NoError(t, err)

	product, err := client.FetchProduct(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, int64(5), product.ID)
	require.Equal(t, 9.99, product.Price)
	require.Equal(t, int32(12), product.Stock)
}

func TestFetchProduct_StatusClassification(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "not found", status: http.StatusNotFound, wantErr: ports.ErrProductNotFound},
		{name: "server error", status: http.StatusInternalServerError, wantErr: ports.ErrInventoryUnavailable},
		{name: "malformed body", status: http.StatusOK, body: "{", wantErr: ports.ErrInventoryUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client, err := NewClient(srv.URL, srv.Client())
			require.NoError(t, err)

			_, err = client.FetchProduct(context.Background(), 5)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestFetchProduct_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client, err := NewClient(srv.URL, nil)
	require.NoError(t, err)

	_, err = client.FetchProduct(context.Background(), 5)
	require.ErrorIs(t, err, ports.ErrInventoryUnavailable)
}

func TestReduceStock_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/products/5/reduce", r.URL.Path)
		require.Equal(t, "3", r.URL.Query().Get("qty"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"OK"}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, srv.Client())
	require.NoError(t, err)

	require.NoError(t, client.ReduceStock(context.Background(), 5, 3))
}

func TestReduceStock_StatusClassification(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "declined payload", status: http.StatusOK, body: `{"status":"OUT_OF_STOCK"}`, wantErr: ports.ErrStockRejected},
		{name: "client error", status: http.StatusConflict, wantErr: ports.ErrStockRejected},
		{name: "server error", status: http.StatusBadGateway, wantErr: ports.ErrInventoryUnavailable},
		{name: "malformed body", status: http.StatusOK, body: "{", wantErr: ports.ErrInventoryUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client, err := NewClient(srv.URL, srv.Client())
			require.NoError(t, err)

			err = client.ReduceStock(context.Background(), 5, 1)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}
