package catalog_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikolayk812/storefront/internal/catalog"
	pkgerrors "github.com/nikolayk812/storefront/internal/errors"
)

const productsBody = `[
 {"id":1,"title":"Fjallraven - Foldsack No. 1 Backpack","price":109.95,"description":"Your perfect pack","category":"men's clothing","image":"https://fakestoreapi.com/img/81fPKd-2AYL._AC_SL1500_.jpg","rating":{"rate":3.9,"count":120}},
 {"id":2,"title":"Mens Casual Premium Slim Fit T-Shirts ","price":22.3,"description":"Slim-fitting style","category":"men's clothing","image":"https://fakestoreapi.com/img/71-3HjGNDUL._AC_SY879._SX._UX._SY._UY_.jpg","rating":{"rate":4.1,"count":259}}
]`

func TestClientList(t *testing.T) {
	var capturedURL string
	client := newClient(func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		return jsonResponse(http.StatusOK, productsBody), nil
	})

	products, err := client.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "http://catalog.test/products", capturedURL)
	require.Len(t, products, 2)
	assert.Equal(t, 1, products[0].ID)
	assert.True(t, decimal.RequireFromString("109.95").Equal(products[0].Price))
	assert.Equal(t, "men's clothing", products[0].Category)
	assert.Equal(t, 120, products[0].Rating.Count)
	assert.True(t, decimal.RequireFromString("3.9").Equal(products[0].Rating.Rate))
}

func TestClientListEmptyBody(t *testing.T) {
	client := newClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, ""), nil
	})

	products, err := client.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.NotNil(t, products)
}

func TestClientGet(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		transportErr error
		wantTitle    string
		wantNotFound bool
		wantCode     pkgerrors.Code
	}{
		{
			name:      "existing product: ok",
			status:    http.StatusOK,
			body:      `{"id":2,"title":"Mens Casual Premium Slim Fit T-Shirts ","price":22.3}`,
			wantTitle: "Mens Casual Premium Slim Fit T-Shirts ",
		},
		{
			name:         "empty body: not found",
			status:       http.StatusOK,
			body:         "",
			wantNotFound: true,
			wantCode:     pkgerrors.CodeNotFound,
		},
		{
			name:         "null body: not found",
			status:       http.StatusOK,
			body:         "null",
			wantNotFound: true,
			wantCode:     pkgerrors.CodeNotFound,
		},
		{
			name:         "404: not found",
			status:       http.StatusNotFound,
			body:         "no such product",
			wantNotFound: true,
			wantCode:     pkgerrors.CodeNotFound,
		},
		{
			name:     "500: dependency error",
			status:   http.StatusInternalServerError,
			body:     "boom",
			wantCode: pkgerrors.CodeDependency,
		},
		{
			name:     "malformed json: dependency error",
			status:   http.StatusOK,
			body:     `{"id":`,
			wantCode: pkgerrors.CodeDependency,
		},
		{
			name:         "transport failure: dependency error",
			transportErr: errors.New("dial tcp: connection refused"),
			wantCode:     pkgerrors.CodeDependency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var capturedURL string
			client := newClient(func(req *http.Request) (*http.Response, error) {
				capturedURL = req.URL.String()
				if tt.transportErr != nil {
					return nil, tt.transportErr
				}
				return jsonResponse(tt.status, tt.body), nil
			})

			product, err := client.Get(context.Background(), 2)
			assert.Equal(t, "http://catalog.test/products/2", capturedURL)

			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, pkgerrors.CodeOf(err))
				assert.Equal(t, tt.wantNotFound, errors.Is(err, catalog.ErrNotFound))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, product.Title)
		})
	}
}

func TestClientAgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products":
			_, _ = io.WriteString(w, productsBody)
		case "/products/1":
			_, _ = io.WriteString(w, `{"id":1,"title":"Backpack","price":109.95}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := catalog.NewClient(catalog.WithBaseURL(srv.URL+"/"), catalog.WithHTTPClient(srv.Client()))

	products, err := client.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2)

	product, err := client.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Backpack", product.Title)

	_, err = client.Get(context.Background(), 99)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestClientRecorder(t *testing.T) {
	rec := &recordingRecorder{}
	client := catalog.NewClient(
		catalog.WithBaseURL("http://catalog.test"),
		catalog.WithHTTPClient(&http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusBadGateway, "upstream"), nil
		})}),
		catalog.WithRecorder(rec),
	)

	_, err := client.List(context.Background())
	require.Error(t, err)

	require.Len(t, rec.ops, 1)
	assert.Equal(t, "list", rec.ops[0])
	assert.Error(t, rec.errs[0])
}

type recordingRecorder struct {
	ops  []string
	errs []error
}

func (r *recordingRecorder) CatalogFetch(op string, err error, _ time.Duration) {
	r.ops = append(r.ops, op)
	r.errs = append(r.errs, err)
}

func newClient(fn roundTripFunc) *catalog.Client {
	return catalog.NewClient(
		catalog.WithBaseURL("http://catalog.test"),
		catalog.WithHTTPClient(&http.Client{Transport: fn}),
	)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
