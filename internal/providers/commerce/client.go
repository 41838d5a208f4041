// Package commerce looks up orders in a WooCommerce storefront over its REST
// API.
package commerce

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

	"github.com/brian-kiplagat/image-resizer/internal/domain"
)

// ErrMissingCredentials indicates the client was configured without a
// consumer key/secret pair.
var ErrMissingCredentials = errors.New("commerce: consumer key and secret are required")

// Options configures the storefront client.
type Options struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

// Client performs HTTP calls to the storefront order API.
type Client struct {
	baseURL        string
	consumerKey    string
	consumerSecret string
	httpClient     *http.Client
}

type wcMeta struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

type wcLineItem struct {
	Name     string   `json:"name"`
	MetaData []wcMeta `json:"meta_data"`
}

type wcAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email"`
}

type wcOrder struct {
	ID          int64        `json:"id"`
	Number      string       `json:"number"`
	Status      string       `json:"status"`
	DateCreated string       `json:"date_created"`
	Billing     wcAddress    `json:"billing"`
	Shipping    wcAddress    `json:"shipping"`
	LineItems   []wcLineItem `json:"line_items"`
}

type wcError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewClient constructs a client with sane defaults.
func NewClient(opts Options) (*Client, error) {
	key := strings.TrimSpace(opts.ConsumerKey)
	secret := strings.TrimSpace(opts.ConsumerSecret)
	if key == "" || secret == "" {
		return nil, ErrMissingCredentials
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("commerce: base url is required")
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:        baseURL,
		consumerKey:    key,
		consumerSecret: secret,
		httpClient:     httpClient,
	}, nil
}

// Order fetches one order by id. A non-numeric id is a client error and never
// reaches the network.
func (c *Client) Order(ctx context.Context, id string) (*domain.Order, error) {
	id = strings.TrimSpace(id)
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		return nil, fmt.Errorf("%w: order id %q is not numeric", domain.ErrValidation, id)
	}

	endpoint := fmt.Sprintf("%s/wp-json/wc/v3/orders/%s", c.baseURL, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("commerce: build request: %w", err)
	}
	req.SetBasicAuth(c.consumerKey, c.consumerSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: order lookup: %v", domain.ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: order lookup: %v", domain.ErrPublish, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", domain.ErrPublish, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: order %s", domain.ErrNotFound, id)
	}
	if resp.StatusCode >= 300 {
		var detail wcError
		if err := json.Unmarshal(raw, &detail); err == nil && detail.Message != "" {
			return nil, fmt.Errorf("%w: %s (%s)", domain.ErrPublish, detail.Message, detail.Code)
		}
		return nil, fmt.Errorf("%w: status %d", domain.ErrPublish, resp.StatusCode)
	}

	var decoded wcOrder
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("%w: decode order: %v", domain.ErrPublish, err)
	}
	return mapOrder(&decoded), nil
}

func mapOrder(o *wcOrder) *domain.Order {
	order := &domain.Order{
		ID:              strconv.FormatInt(o.ID, 10),
		Number:          o.Number,
		Status:          strings.ToLower(strings.TrimSpace(o.Status)),
		CustomerName:    joinNonEmpty(" ", o.Billing.FirstName, o.Billing.LastName),
		CustomerEmail:   strings.TrimSpace(o.Billing.Email),
		ShippingAddress: formatAddress(o.Shipping),
	}
	if order.Number == "" {
		order.Number = order.ID
	}
	if t, err := time.Parse("2006-01-02T15:04:05", o.DateCreated); err == nil {
		order.CreatedAt = t
	}
	for _, item := range o.LineItems {
		meta := make(map[string]string, len(item.MetaData))
		for _, m := range item.MetaData {
			meta[m.Key] = metaString(m.Value)
		}
		order.LineItems = append(order.LineItems, domain.LineItem{Name: item.Name, Meta: meta})
	}
	return order
}

// metaString flattens a WooCommerce meta value; non-string values keep their
// JSON form.
func metaString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

func formatAddress(a wcAddress) string {
	return joinNonEmpty(", ",
		joinNonEmpty(" ", a.FirstName, a.LastName),
		a.Address1, a.Address2, a.City, a.State, a.Postcode, a.Country)
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

var _ domain.Commerce = (*Client)(nil)
