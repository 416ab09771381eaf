package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const (
	itemsPath = "/api/v1/items"

	headerRequestID = "X-Request-ID"

	fallbackDetail = "Request failed"
)

// APIError is a non-2xx answer from the item API
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return e.Detail
}

// IsNotFound reports whether err is a 404 from the API
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client talks to the /api/v1/items endpoints
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// Option configures a Client
type Option func(*Client)

// WithBearerToken sends token in the Authorization header of every request
func WithBearerToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a client for the API rooted at baseURL, e.g. http://localhost:8080
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type validationEntry struct {
	Msg string `json:"msg"`
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Detail: fallbackDetail}

	data, err := io.ReadAll(resp.Body)
	if err != nil || len(data) == 0 {
		return apiErr
	}

	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil || len(body.Detail) == 0 {
		return apiErr
	}

	var detail string
	if err := json.Unmarshal(body.Detail, &detail); err == nil {
		if detail != "" {
			apiErr.Detail = detail
		}
		return apiErr
	}

	// Validation failures may come back as a list of {loc, msg, type}
	var entries []validationEntry
	if err := json.Unmarshal(body.Detail, &entries); err == nil {
		msgs := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.Msg != "" {
				msgs = append(msgs, e.Msg)
			}
		}
		if len(msgs) > 0 {
			apiErr.Detail = strings.Join(msgs, "; ")
		}
	}
	return apiErr
}
