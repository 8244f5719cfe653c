// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package console

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/keydesk/keydesk/internal/i18n"
	"github.com/keydesk/keydesk/internal/model"
)

// createRequest is the validated form of the creation form.
type createRequest struct {
	Quantity       int `validate:"min=1,max=1000"`
	ExpirationDays int `validate:"min=1,max=365"`
}

type searchRequest struct {
	KeyValue string `validate:"keyvalue"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("keyvalue", func(fl validator.FieldLevel) bool {
		return model.IsKeyValue(fl.Field().String())
	})
	return v
}

// parseCount reads the leading integer of a form field, so "1.5" is 1 and
// "10abc" is 10. No leading digits counts as zero, which the range check
// rejects.
func parseCount(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// validateCreate checks the creation form. On failure it returns the
// localized message for the first offending field.
func (c *Console) validateCreate(quantity, expirationDays string) (createRequest, string) {
	req := createRequest{Quantity: parseCount(quantity), ExpirationDays: parseCount(expirationDays)}
	err := c.validate.Struct(req)
	if err == nil {
		return req, ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "ExpirationDays" {
		return req, i18n.T("console.error.expiration_range")
	}
	return req, i18n.T("console.error.quantity_range")
}

// SanitizeSearch strips everything but ASCII digits from s.
func SanitizeSearch(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
