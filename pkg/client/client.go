package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Service is a catalog entry as returned by the API
type Service struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	IsActive    bool      `json:"is_active"`
	IsFeatured  bool      `json:"is_featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ServiceInput is the payload for creating or updating a service.
// All fields are text, matching what a dashboard form submits; the
// server performs parsing and validation.
type ServiceInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	IsActive    string `json:"isActive"`
	IsFeatured  string `json:"isFeatured"`
}

// FieldError describes a single invalid input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is an RFC 9457 problem details response from the server
type APIError struct {
	Type   string       `json:"type"`
	Title  string       `json:"title"`
	Status int          `json:"status"`
	Detail string       `json:"detail,omitempty"`
	Errors []FieldError `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (%d): %s", e.Title, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s (%d)", e.Title, e.Status)
}

// IsNotFound reports whether err is an API not-found response
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Config holds client settings
type Config struct {
	BaseURL    string
	HTTPClient *http.Client // optional, defaults to a 10s timeout client
}

// Client talks to the catalog API
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New creates an API client for the given base URL
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("client: base URL is required")
	}
	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpc:   httpc,
	}, nil
}

type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

type collectionEnvelope struct {
	Data  []Service `json:"data"`
	Count int       `json:"count"`
}

// List fetches services matching the given query parameters. Pass the
// url.Values maintained by a FilterController, or nil for no filter.
func (c *Client) List(ctx context.Context, query url.Values) ([]Service, error) {
	endpoint := c.baseURL + "/v1/services"
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var envelope collectionEnvelope
	if err := c.do(req, http.StatusOK, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return []Service{}, nil
	}
	return envelope.Data, nil
}

// Get fetches a single service by ID
func (c *Client) Get(ctx context.Context, id string) (*Service, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serviceURL(id), nil)
	if err != nil {
		return nil, err
	}
	return c.doService(req, http.StatusOK)
}

// Create adds a new service to the catalog
func (c *Client) Create(ctx context.Context, input ServiceInput) (*Service, error) {
	req, err := c.jsonRequest(ctx, http.MethodPost, c.baseURL+"/v1/services", input)
	if err != nil {
		return nil, err
	}
	return c.doService(req, http.StatusCreated)
}

// Update replaces an existing service
func (c *Client) Update(ctx context.Context, id string, input ServiceInput) (*Service, error) {
	req, err := c.jsonRequest(ctx, http.MethodPut, c.serviceURL(id), input)
	if err != nil {
		return nil, err
	}
	return c.doService(req, http.StatusOK)
}

// Delete removes a service from the catalog
func (c *Client) Delete(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.serviceURL(id), nil)
	if err != nil {
		return err
	}
	return c.do(req, http.StatusNoContent, nil)
}

func (c *Client) serviceURL(id string) string {
	return c.baseURL + "/v1/services/" + url.PathEscape(id)
}

func (c *Client) jsonRequest(ctx context.Context, method, endpoint string, body interface{}) (*http.Request, error) {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(body); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// doService executes a request expecting a single service in a data envelope
func (c *Client) doService(req *http.Request, wantStatus int) (*Service, error) {
	var envelope dataEnvelope
	if err := c.do(req, wantStatus, &envelope); err != nil {
		return nil, err
	}
	var svc Service
	if err := json.Unmarshal(envelope.Data, &svc); err != nil {
		return nil, fmt.Errorf("client: decoding service: %w", err)
	}
	return &svc, nil
}

// do executes a request, decoding the body into out on the expected
// status and into an APIError otherwise.
func (c *Client) do(req *http.Request, wantStatus int, out interface{}) error {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != wantStatus {
		apiErr := &APIError{Status: resp.StatusCode, Title: http.StatusText(resp.StatusCode)}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decoding response: %w", err)
	}
	return nil
}
