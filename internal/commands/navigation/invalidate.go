package navigationcmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-cms-site/internal/commands"
	"github.com/goliatone/go-cms-site/internal/logging"
	"github.com/goliatone/go-cms-site/pkg/interfaces"
)

const invalidateNavigationMessageType = "site.navigation.cache.invalidate"

// Invalidator drops cached page listings so the next menu build refetches them.
type Invalidator interface {
	InvalidatePages(ctx context.Context) error
}

// InvalidateNavigationCommand clears cached navigation inputs.
type InvalidateNavigationCommand struct {
	Reason string `json:"reason,omitempty"`
}

// Type implements command.Message.
func (InvalidateNavigationCommand) Type() string { return invalidateNavigationMessageType }

// Validate satisfies command.Message.
func (m InvalidateNavigationCommand) Validate() error {
	return validation.ValidateStruct(&m, validation.Field(&m.Reason, validation.Length(0, 200)))
}

// InvalidateNavigationHandler clears the page cache behind the menu.
type InvalidateNavigationHandler struct {
	inner *commands.Handler[InvalidateNavigationCommand]
}

// NewInvalidateNavigationHandler constructs the handler over cache.
func NewInvalidateNavigationHandler(cache Invalidator, logger interfaces.Logger, opts ...commands.HandlerOption[InvalidateNavigationCommand]) *InvalidateNavigationHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg InvalidateNavigationCommand) error {
		if err := cache.InvalidatePages(ctx); err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"reason": msg.Reason,
		}).Info("navigation.command.cache.invalidated")
		return nil
	}

	handlerOpts := []commands.HandlerOption[InvalidateNavigationCommand]{
		commands.WithLogger[InvalidateNavigationCommand](baseLogger),
		commands.WithOperation[InvalidateNavigationCommand]("navigation.cache.invalidate"),
	}
	return &InvalidateNavigationHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[InvalidateNavigationCommand].
func (h *InvalidateNavigationHandler) Execute(ctx context.Context, msg InvalidateNavigationCommand) error {
	return h.inner.Execute(ctx, msg)
}
