// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package console

import (
	"context"
	"fmt"

	"github.com/keydesk/keydesk/client"
	"github.com/keydesk/keydesk/internal/i18n"
	"github.com/keydesk/keydesk/internal/model"
	"github.com/keydesk/keydesk/internal/view"
)

// ClickTarget is where a pointer click on the open modal landed.
type ClickTarget int

const (
	// ClickBackdrop is the dimmed area around the dialog box.
	ClickBackdrop ClickTarget = iota
	// ClickContent is anywhere inside the dialog box.
	ClickContent
)

// CreateKeys validates the creation form and creates the keys. On success
// the new keys are shown in the modal, the stats and the first key page are
// reloaded and the form is reset.
func (c *Console) CreateKeys(ctx context.Context, quantity, expirationDays string) (client.CreateKeysResult, error) {
	c.update(func(s *Screen) { s.Form = CreateForm{Quantity: quantity, ExpirationDays: expirationDays} })

	req, msg := c.validateCreate(quantity, expirationDays)
	if msg != "" {
		c.notifier.Error(msg)
		return client.CreateKeysResult{}, fmt.Errorf("%w: %s", ErrValidation, msg)
	}

	res, err := c.client.CreateKeys(ctx, req.Quantity, req.ExpirationDays)
	if err := c.fail("create keys", err); err != nil {
		return client.CreateKeysResult{}, err
	}

	c.notifier.Success(res.Message)
	c.update(func(s *Screen) {
		s.Modal = Modal{Open: true, Content: view.CreatedKeys(res.Keys)}
	})
	_ = c.LoadStats(ctx)
	_, _ = c.LoadKeys(ctx, 1)
	c.update(func(s *Screen) { s.Form = DefaultCreateForm() })
	return res, nil
}

// SearchKey looks up the key typed into the search box and opens its
// details. The input must hold exactly eight digits once everything else is
// stripped; otherwise no request is made.
func (c *Console) SearchKey(ctx context.Context, input string) (model.KeyRecord, error) {
	req := searchRequest{KeyValue: SanitizeSearch(input)}
	if err := c.validate.Struct(req); err != nil {
		msg := i18n.T("console.error.search_format")
		c.notifier.Error(msg)
		return model.KeyRecord{}, fmt.Errorf("%w: %s", ErrValidation, msg)
	}
	k, err := c.client.GetKey(ctx, req.KeyValue)
	if err := c.fail("search key", err); err != nil {
		return model.KeyRecord{}, err
	}
	c.ShowKeyDetails(k)
	return k, nil
}

// ShowKey opens the details of a key on the current page, fetching it when
// it is not there.
func (c *Console) ShowKey(ctx context.Context, keyValue string) error {
	c.mu.Lock()
	var found *model.KeyRecord
	for i := range c.screen.KeyRecords {
		if c.screen.KeyRecords[i].KeyValue == keyValue {
			k := c.screen.KeyRecords[i]
			found = &k
			break
		}
	}
	c.mu.Unlock()
	if found != nil {
		c.ShowKeyDetails(*found)
		return nil
	}
	k, err := c.client.GetKey(ctx, keyValue)
	if err := c.fail("show key", err); err != nil {
		return err
	}
	c.ShowKeyDetails(k)
	return nil
}

// ShowKeyDetails opens the modal with the details of k.
func (c *Console) ShowKeyDetails(k model.KeyRecord) {
	c.update(func(s *Screen) {
		s.Modal = Modal{Open: true, Content: view.KeyDetails(k), KeyValue: k.KeyValue}
	})
}

// ClickModal handles a click on the open modal. Only a click on the backdrop
// closes it. It reports whether the modal was closed.
func (c *Console) ClickModal(target ClickTarget) bool {
	if target != ClickBackdrop {
		return false
	}
	c.CloseModal()
	return true
}

// CloseModal hides the modal and keeps its content.
func (c *Console) CloseModal() {
	c.update(func(s *Screen) { s.Modal.Open = false })
}
