package client

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	applog "github.com/janisto/greeting-demo/internal/platform/logging"
)

// ErrElementNotFound is returned when the target element is absent from the document.
var ErrElementNotFound = errors.New("target element not found")

// Render fetches the greeting once and writes its message into the element
// with elementID. On failure it logs the error and leaves the element as it was.
// A document without the element fails with ErrElementNotFound before any
// request is sent.
func (c *Client) Render(ctx context.Context, doc Document, elementID string) error {
	err := c.render(ctx, doc, elementID)
	if err != nil {
		applog.LogError(ctx, "failed to fetch greeting", err,
			zap.String("url", c.baseURL),
			zap.String("elementId", elementID),
		)
	}
	return err
}

func (c *Client) render(ctx context.Context, doc Document, elementID string) error {
	el, ok := doc.ElementByID(elementID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrElementNotFound, elementID)
	}

	greeting, err := c.Fetch(ctx)
	if err != nil {
		return err
	}

	el.SetText(greeting.Message)
	return nil
}

// Load starts a single Render and returns its completion signal. The channel
// receives the Render result and is then closed.
func (c *Client) Load(ctx context.Context, doc Document, elementID string) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- c.Render(ctx, doc, elementID)
	}()
	return done
}
