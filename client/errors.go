// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is returned for every non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// NotFound reports whether the backend answered 404.
func (e *APIError) NotFound() bool {
	return e.Status == http.StatusNotFound
}

// genericStatusMessage is used when the error body carries no message.
func genericStatusMessage(status int) string {
	return fmt.Sprintf("HTTP error! status: %d", status)
}

// Message returns the text to show a user for err: the server supplied
// message for API errors, the error text otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.NotFound()
}
