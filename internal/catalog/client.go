// Package catalog is a client for the store's WooCommerce REST API (wc/v3).
//
// Products are tagged with the ZIP codes their yard delivers to, so a tag lookup doubles
// as the service area check. Orders are read back for status calls.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/milestonetrucks/voice-agent/internal/circuitbreaker"
	"github.com/milestonetrucks/voice-agent/internal/domain/model"
	"github.com/milestonetrucks/voice-agent/internal/metrics"
	"github.com/rs/zerolog/log"
)

const (
	apiPrefix = "/wp-json/wc/v3"

	productsPerZip    = 100
	ordersPerCustomer = 10

	defaultTimeout = 10 * time.Second
	maxErrorBody   = 512
)

// ErrNotConfigured is returned when the store URL or credentials are missing.
var ErrNotConfigured = errors.New("catalog: woocommerce url and credentials are required")

// StatusError is a non-2xx answer from the store.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog: %s: http %d: %s", e.Op, e.StatusCode, e.Body)
}

// CustomerQuery finds orders by email, phone or both.
type CustomerQuery struct {
	Phone string
	Email string
}

// Catalog is the read side of the store the webhooks depend on.
type Catalog interface {
	ProductsByZip(ctx context.Context, zip string) ([]model.Product, error)
	// ProductBySKU returns nil, nil when no product has the SKU.
	ProductBySKU(ctx context.Context, sku string) (*model.Product, error)
	// OrderByID returns nil, nil when the order does not exist.
	OrderByID(ctx context.Context, id string) (*model.Order, error)
	OrdersByCustomer(ctx context.Context, q CustomerQuery) ([]model.Order, error)
}

// Config holds the store connection settings.
type Config struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	Timeout        time.Duration
}

// Validate reports ErrNotConfigured when a required setting is empty.
func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" ||
		strings.TrimSpace(c.ConsumerKey) == "" ||
		strings.TrimSpace(c.ConsumerSecret) == "" {
		return ErrNotConfigured
	}
	return nil
}

// Client talks to the WooCommerce REST API with query string authentication.
type Client struct {
	cfg     Config
	http    *http.Client
	breaker *circuitbreaker.CircuitBreaker
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithCircuitBreaker guards every store call with cb.
func WithCircuitBreaker(cb *circuitbreaker.CircuitBreaker) Option {
	return func(c *Client) {
		c.breaker = cb
	}
}

// NewClient validates cfg and builds a client.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")

	c := &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the store root, e.g. "https://milestonetrucks.com".
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

// ProductsByZip lists published products tagged with zip.
func (c *Client) ProductsByZip(ctx context.Context, zip string) ([]model.Product, error) {
	q := url.Values{}
	q.Set("tag", zip)
	q.Set("per_page", strconv.Itoa(productsPerZip))
	q.Set("status", "publish")

	var products []model.Product
	if _, err := c.get(ctx, "products_by_zip", "/products", q, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ProductBySKU looks up a single product.
func (c *Client) ProductBySKU(ctx context.Context, sku string) (*model.Product, error) {
	q := url.Values{}
	q.Set("sku", sku)
	q.Set("per_page", "1")

	var products []model.Product
	if _, err := c.get(ctx, "product_by_sku", "/products", q, &products); err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}
	return &products[0], nil
}

// OrderByID fetches an order. A 404 is reported as nil, nil.
func (c *Client) OrderByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	found, err := c.get(ctx, "order_by_id", "/orders/"+url.PathEscape(id), nil, &order)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &order, nil
}

// OrdersByCustomer lists the ten most recent orders matching the query. Email is
// searched by the store; phone is matched here with FilterByPhone.
func (c *Client) OrdersByCustomer(ctx context.Context, cq CustomerQuery) ([]model.Order, error) {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(ordersPerCustomer))
	q.Set("orderby", "date")
	q.Set("order", "desc")
	if cq.Email != "" {
		q.Set("search", cq.Email)
	}

	var orders []model.Order
	if _, err := c.get(ctx, "orders_by_customer", "/orders", q, &orders); err != nil {
		return nil, err
	}

	return FilterByPhone(orders, cq.Phone), nil
}

// minPhoneDigits is the shortest caller input matched against billing phones: a
// local number without area code.
const minPhoneDigits = 7

// FilterByPhone keeps orders whose billing phone matches phone on the trailing digits,
// so "555-0100" matches "+1 (614) 555-0100". Both sides need at least seven digits;
// a shorter phone matches nothing. An empty phone keeps everything.
func FilterByPhone(orders []model.Order, phone string) []model.Order {
	want := lastDigits(phone, 10)
	if want == "" || len(orders) == 0 {
		return orders
	}

	out := make([]model.Order, 0, len(orders))
	if len(want) < minPhoneDigits {
		return out
	}
	for _, o := range orders {
		got := lastDigits(o.Billing.Phone, 10)
		if len(got) < minPhoneDigits {
			continue
		}
		if strings.HasSuffix(got, want) || strings.HasSuffix(want, got) {
			out = append(out, o)
		}
	}
	return out
}

func lastDigits(s string, n int) string {
	d := digitsOnly(s)
	if len(d) > n {
		return d[len(d)-n:]
	}
	return d
}

// get performs a GET and decodes the JSON body into out. found is false on a 404,
// which is not counted against the circuit breaker.
func (c *Client) get(ctx context.Context, op, path string, q url.Values, out any) (found bool, err error) {
	start := time.Now()
	status := "error"
	defer func() {
		metrics.RecordCatalogRequest(op, status, time.Since(start))
	}()

	call := func() error {
		var callErr error
		found, callErr = c.do(ctx, op, path, q, out)
		return callErr
	}

	if c.breaker != nil {
		err = c.breaker.Execute(ctx, call)
	} else {
		err = call()
	}

	switch {
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		status = "circuit_open"
	case err != nil:
		status = "error"
	case !found:
		status = "not_found"
	default:
		status = "ok"
	}

	if err != nil {
		log.Warn().Err(err).Str("operation", op).Msg("Catalog request failed")
	}
	return found, err
}

func (c *Client) do(ctx context.Context, op, path string, q url.Values, out any) (bool, error) {
	if q == nil {
		q = url.Values{}
	}
	q.Set("consumer_key", c.cfg.ConsumerKey)
	q.Set("consumer_secret", c.cfg.ConsumerSecret)

	u := c.cfg.BaseURL + apiPrefix + path + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, fmt.Errorf("catalog: %s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("catalog: %s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, resp.Body)
		return false, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return false, &StatusError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("catalog: %s: decode: %w", op, err)
	}
	return true, nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
