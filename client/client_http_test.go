// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seenRequest struct {
	Method string
	Path   string
	Query  string
	Body   string
	Header http.Header
}

func newTestServer(t *testing.T, status int, body string, seen *seenRequest) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		if seen != nil {
			*seen = seenRequest{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Body: string(b), Header: r.Header.Clone()}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	c, err := NewHTTPClient(Config{BaseURL: srv.URL + "/", Token: "secret"})
	require.NoError(t, err)
	return c
}

func TestNewHTTPClient_RejectsBadBaseURL(t *testing.T) {
	for _, base := range []string{"", "   ", "ftp://example.com", "://nope"} {
		_, err := NewHTTPClient(Config{BaseURL: base})
		assert.Error(t, err, "base %q", base)
	}
}

func TestHTTPClient_ListKeys_SendsPaginationAndHeaders(t *testing.T) {
	var seen seenRequest
	c := newTestServer(t, 200, `{"keys":[{"key_value":"12345678","status":"Em uso","login_count":2,"expiration_days":30}],"current_page":2,"pages":4}`, &seen)

	page, err := c.ListKeys(context.Background(), 2, 20)
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, seen.Method)
	assert.Equal(t, "/api/keys", seen.Path)
	assert.Equal(t, "page=2&per_page=20", seen.Query)
	assert.Equal(t, "application/json", seen.Header.Get("Content-Type"))
	assert.Equal(t, "Bearer secret", seen.Header.Get("Authorization"))
	assert.NotEmpty(t, seen.Header.Get("X-Request-ID"))

	require.Len(t, page.Items, 1)
	assert.Equal(t, "12345678", page.Items[0].KeyValue)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 4, page.Pages)
}

func TestHTTPClient_CreateKeys_PostsBody(t *testing.T) {
	var seen seenRequest
	c := newTestServer(t, 201, `{"message":"2 key(s) created","keys":["11111111","22222222"]}`, &seen)

	res, err := c.CreateKeys(context.Background(), 2, 45)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, seen.Method)
	assert.Equal(t, "/api/keys", seen.Path)
	var body map[string]int
	require.NoError(t, json.Unmarshal([]byte(seen.Body), &body))
	assert.Equal(t, map[string]int{"quantity": 2, "expiration_days": 45}, body)
	assert.Equal(t, "2 key(s) created", res.Message)
	assert.Equal(t, []string{"11111111", "22222222"}, res.Keys)
}

func TestHTTPClient_KeyActions_HitKeyScopedEndpoints(t *testing.T) {
	cases := []struct {
		name   string
		call   func(c *HTTPClient) (string, error)
		method string
		path   string
	}{
		{"pause", func(c *HTTPClient) (string, error) { return c.PauseKey(context.Background(), "12345678") }, http.MethodPost, "/api/keys/12345678/pause"},
		{"unpause", func(c *HTTPClient) (string, error) { return c.UnpauseKey(context.Background(), "12345678") }, http.MethodPost, "/api/keys/12345678/unpause"},
		{"reset", func(c *HTTPClient) (string, error) { return c.ResetHWID(context.Background(), "12345678") }, http.MethodPost, "/api/keys/12345678/reset-hwid"},
		{"delete", func(c *HTTPClient) (string, error) { return c.DeleteKey(context.Background(), "12345678") }, http.MethodDelete, "/api/keys/12345678"},
		{"pause-all", func(c *HTTPClient) (string, error) { return c.PauseAllKeys(context.Background()) }, http.MethodPost, "/api/keys/pause-all"},
		{"unpause-all", func(c *HTTPClient) (string, error) { return c.UnpauseAllKeys(context.Background()) }, http.MethodPost, "/api/keys/unpause-all"},
		{"delete-all", func(c *HTTPClient) (string, error) { return c.DeleteAllKeys(context.Background()) }, http.MethodDelete, "/api/keys"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var seen seenRequest
			c := newTestServer(t, 200, `{"message":"ok"}`, &seen)
			msg, err := tc.call(c)
			require.NoError(t, err)
			assert.Equal(t, "ok", msg)
			assert.Equal(t, tc.method, seen.Method)
			assert.Equal(t, tc.path, seen.Path)
		})
	}
}

func TestHTTPClient_ErrorMessages(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"server message", 404, `{"message":"Key não encontrada"}`, "Key não encontrada"},
		{"legacy error field", 400, `{"success":false,"error":"Dados não fornecidos"}`, "Dados não fornecidos"},
		{"no message", 500, `{}`, "HTTP error! status: 500"},
		{"not json", 502, `<html>bad gateway</html>`, "HTTP error! status: 502"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestServer(t, tc.status, tc.body, nil)
			_, err := c.GetKey(context.Background(), "12345678")
			require.Error(t, err)
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.status, apiErr.Status)
			assert.Equal(t, tc.want, Message(err))
		})
	}
}

func TestHTTPClient_GetKey_RejectsMalformedKeyWithoutRequest(t *testing.T) {
	var seen seenRequest
	c := newTestServer(t, 200, `{}`, &seen)
	_, err := c.GetKey(context.Background(), "../stats")
	require.Error(t, err)
	assert.Empty(t, seen.Method, "no request should have been sent")
}

func TestHTTPClient_GetStats_MissingFieldsDefaultToZero(t *testing.T) {
	c := newTestServer(t, 200, `{"stats":{"total_keys":7}}`, nil)
	s, err := c.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, s.TotalKeys)
	assert.Zero(t, s.ActiveKeys)
	assert.Zero(t, s.UsedKeys)

	c = newTestServer(t, 200, `{}`, nil)
	s, err = c.GetStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, s.TotalKeys)
}

func TestHTTPClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c, err := NewHTTPClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	srv.Close()

	_, err = c.GetStats(context.Background())
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, IsNotFound(err))
	assert.NotErrorAs(t, err, &apiErr)
}
