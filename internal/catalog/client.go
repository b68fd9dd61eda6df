// Package catalog talks to the remote read-only product catalog.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	pkgerrors "github.com/nikolayk812/storefront/internal/errors"
)

const (
	DefaultBaseURL              = "https://fakestoreapi.com"
	defaultTimeout              = 10 * time.Second
	responseBodyReadLimit int64 = 1024
)

// ErrNotFound is returned when the catalog has no product with the given ID.
var ErrNotFound = errors.New("product not found")

// Recorder observes fetch outcomes.
type Recorder interface {
	CatalogFetch(op string, err error, elapsed time.Duration)
}

// Client wraps the catalog's GET /products and GET /products/{id}.
type Client struct {
	httpClient *http.Client
	baseURL    string
	recorder   Recorder
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the catalog base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(c *Client) {
		c.recorder = r
	}
}

func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client
}

// List fetches every product in the catalog.
func (c *Client) List(ctx context.Context) (_ []domain.Product, err error) {
	defer c.observe("list", time.Now(), &err)

	var products []domain.Product
	found, err := c.get(ctx, "products", &products)
	if err != nil {
		return nil, err
	}
	if !found || products == nil {
		return []domain.Product{}, nil
	}

	return products, nil
}

// Get fetches a single product. A missing product yields ErrNotFound.
func (c *Client) Get(ctx context.Context, id int) (_ domain.Product, err error) {
	defer c.observe("get", time.Now(), &err)

	var product *domain.Product
	found, err := c.get(ctx, "products/"+strconv.Itoa(id), &product)
	if err != nil {
		return domain.Product{}, err
	}
	// fakestoreapi answers unknown IDs with 200 and an empty body.
	if !found || product == nil {
		return domain.Product{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, ErrNotFound, fmt.Sprintf("product %d not found", id))
	}

	return *product, nil
}

// get decodes the JSON body at path into out. found is false on 404 or an
// empty body.
func (c *Client) get(ctx context.Context, path string, out any) (found bool, err error) {
	url := c.buildURL(path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build catalog request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute catalog request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "catalog request failed")
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode catalog response")
	}

	return true, nil
}

func (c *Client) observe(op string, start time.Time, err *error) {
	if c.recorder != nil {
		c.recorder.CatalogFetch(op, *err, time.Since(start))
	}
}

func (c *Client) buildURL(path string) string {
	trimmed := strings.TrimRight(c.baseURL, "/")
	path = strings.TrimLeft(path, "/")
	return fmt.Sprintf("%s/%s", trimmed, path)
}
