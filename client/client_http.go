// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/keydesk/keydesk/internal/logging"
	"github.com/keydesk/keydesk/internal/model"
)

// apiBasePath is the fixed prefix of every endpoint.
const apiBasePath = "/api"

// HTTPClient talks JSON to the backend. It makes exactly one attempt per
// call; there are no retries.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// *HTTPClient implements Client
var _ Client = (*HTTPClient)(nil)

// NewHTTPClient validates cfg and returns a ready client.
func NewHTTPClient(cfg Config) (*HTTPClient, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("api base url is empty")
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url %q: %w", cfg.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base url %q: scheme must be http or https", cfg.BaseURL)
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &HTTPClient{
		baseURL:    base + apiBasePath,
		token:      cfg.Token,
		httpClient: hc,
	}, nil
}

// BaseURL returns the resolved API root, including the "/api" prefix.
func (c *HTTPClient) BaseURL() string { return c.baseURL }

func (c *HTTPClient) Close(ctx context.Context) error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// errorBody is the shape of an error response. The backend documents
// "message"; older deployments answer with "error".
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

type messageBody struct {
	Message string `json:"message"`
}

// request sends one JSON request and decodes a 2xx response into out.
func (c *HTTPClient) request(ctx context.Context, method, endpoint string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	logging.Debugf("api: %s %s", method, endpoint)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: genericStatusMessage(resp.StatusCode)}
		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil {
			switch {
			case eb.Message != "":
				apiErr.Message = eb.Message
			case eb.Error != "":
				apiErr.Message = eb.Error
			}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, endpoint, err)
	}
	return nil
}

func (c *HTTPClient) message(ctx context.Context, method, endpoint string) (string, error) {
	var mb messageBody
	if err := c.request(ctx, method, endpoint, nil, &mb); err != nil {
		return "", err
	}
	return mb.Message, nil
}

func pageQuery(endpoint string, page, perPage int) string {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	return endpoint + "?" + q.Encode()
}

// --- Read ---

func (c *HTTPClient) GetStats(ctx context.Context) (model.Stats, error) {
	var resp struct {
		Stats *model.Stats `json:"stats"`
	}
	if err := c.request(ctx, http.MethodGet, "/stats", nil, &resp); err != nil {
		return model.Stats{}, err
	}
	if resp.Stats == nil {
		return model.Stats{}, nil
	}
	return *resp.Stats, nil
}

func (c *HTTPClient) ListKeys(ctx context.Context, page, perPage int) (model.Page[model.KeyRecord], error) {
	var resp struct {
		Keys        []model.KeyRecord `json:"keys"`
		CurrentPage int               `json:"current_page"`
		Pages       int               `json:"pages"`
	}
	if err := c.request(ctx, http.MethodGet, pageQuery("/keys", page, perPage), nil, &resp); err != nil {
		return model.Page[model.KeyRecord]{}, err
	}
	return model.Page[model.KeyRecord]{Items: resp.Keys, CurrentPage: resp.CurrentPage, Pages: resp.Pages}, nil
}

func (c *HTTPClient) GetKey(ctx context.Context, keyValue string) (model.KeyRecord, error) {
	path, err := model.KeyPath(keyValue)
	if err != nil {
		return model.KeyRecord{}, err
	}
	var resp struct {
		Key model.KeyRecord `json:"key"`
	}
	if err := c.request(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return model.KeyRecord{}, err
	}
	return resp.Key, nil
}

func (c *HTTPClient) ListLogs(ctx context.Context, page, perPage int) (model.Page[model.LogRecord], error) {
	var resp struct {
		Logs        []model.LogRecord `json:"logs"`
		CurrentPage int               `json:"current_page"`
		Pages       int               `json:"pages"`
	}
	if err := c.request(ctx, http.MethodGet, pageQuery("/logs", page, perPage), nil, &resp); err != nil {
		return model.Page[model.LogRecord]{}, err
	}
	return model.Page[model.LogRecord]{Items: resp.Logs, CurrentPage: resp.CurrentPage, Pages: resp.Pages}, nil
}

// --- Key lifecycle ---

func (c *HTTPClient) CreateKeys(ctx context.Context, quantity, expirationDays int) (CreateKeysResult, error) {
	payload := struct {
		Quantity       int `json:"quantity"`
		ExpirationDays int `json:"expiration_days"`
	}{quantity, expirationDays}
	var res CreateKeysResult
	if err := c.request(ctx, http.MethodPost, "/keys", payload, &res); err != nil {
		return CreateKeysResult{}, err
	}
	return res, nil
}

func (c *HTTPClient) keyAction(ctx context.Context, method, keyValue, suffix string) (string, error) {
	path, err := model.KeyPath(keyValue)
	if err != nil {
		return "", err
	}
	return c.message(ctx, method, path+suffix)
}

func (c *HTTPClient) PauseKey(ctx context.Context, keyValue string) (string, error) {
	return c.keyAction(ctx, http.MethodPost, keyValue, "/pause")
}

func (c *HTTPClient) UnpauseKey(ctx context.Context, keyValue string) (string, error) {
	return c.keyAction(ctx, http.MethodPost, keyValue, "/unpause")
}

func (c *HTTPClient) ResetHWID(ctx context.Context, keyValue string) (string, error) {
	return c.keyAction(ctx, http.MethodPost, keyValue, "/reset-hwid")
}

func (c *HTTPClient) DeleteKey(ctx context.Context, keyValue string) (string, error) {
	return c.keyAction(ctx, http.MethodDelete, keyValue, "")
}

// --- Bulk ---

func (c *HTTPClient) PauseAllKeys(ctx context.Context) (string, error) {
	return c.message(ctx, http.MethodPost, "/keys/pause-all")
}

func (c *HTTPClient) UnpauseAllKeys(ctx context.Context) (string, error) {
	return c.message(ctx, http.MethodPost, "/keys/unpause-all")
}

func (c *HTTPClient) DeleteAllKeys(ctx context.Context) (string, error) {
	return c.message(ctx, http.MethodDelete, "/keys")
}
