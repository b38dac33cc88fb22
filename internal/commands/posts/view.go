package postscmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-cms-site/internal/commands"
	"github.com/goliatone/go-cms-site/pkg/interfaces"
	"github.com/goliatone/go-slug"
)

const incrementPostViewMessageType = "site.posts.view.increment"

// IncrementPostViewCommand records one view of a post.
type IncrementPostViewCommand struct {
	Slug string `json:"slug"`
}

// Type implements command.Message.
func (IncrementPostViewCommand) Type() string { return incrementPostViewMessageType }

// Validate requires a well-formed slug.
func (m IncrementPostViewCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Slug,
			validation.Required.Error("slug is required"),
			validation.By(func(value any) error {
				if !slug.IsValid(strings.TrimSpace(value.(string))) {
					return validation.NewError("site.posts.view.slug_invalid", "slug must be url safe")
				}
				return nil
			}),
		),
	)
}

// IncrementPostViewHandler forwards view increments to the backend.
type IncrementPostViewHandler struct {
	inner *commands.Handler[IncrementPostViewCommand]
}

// NewIncrementPostViewHandler constructs the handler over counter.
func NewIncrementPostViewHandler(counter interfaces.ViewCounter, logger interfaces.Logger, opts ...commands.HandlerOption[IncrementPostViewCommand]) *IncrementPostViewHandler {
	exec := func(ctx context.Context, msg IncrementPostViewCommand) error {
		return counter.IncrementPostView(ctx, strings.TrimSpace(msg.Slug))
	}

	handlerOpts := []commands.HandlerOption[IncrementPostViewCommand]{
		commands.WithLogger[IncrementPostViewCommand](logger),
		commands.WithOperation[IncrementPostViewCommand]("posts.view.increment"),
		commands.WithTimeout[IncrementPostViewCommand](commands.DefaultTimeout / 6),
		commands.WithMessageFields(func(msg IncrementPostViewCommand) map[string]any {
			return map[string]any{"post_slug": msg.Slug}
		}),
		commands.WithTelemetry(commands.DurationTelemetry[IncrementPostViewCommand](logger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &IncrementPostViewHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[IncrementPostViewCommand].
func (h *IncrementPostViewHandler) Execute(ctx context.Context, msg IncrementPostViewCommand) error {
	return h.inner.Execute(ctx, msg)
}
