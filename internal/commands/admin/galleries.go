package admincmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-cms-site/internal/commands"
	"github.com/goliatone/go-cms-site/pages"
	"github.com/goliatone/go-cms-site/pkg/interfaces"
	"github.com/goliatone/go-slug"
)

const (
	saveGalleryMessageType   = "site.admin.galleries.save"
	deleteGalleryMessageType = "site.admin.galleries.delete"
)

// SaveGalleryCommand creates a gallery when ID is zero and updates it otherwise.
// An empty slug is derived from the title.
type SaveGalleryCommand struct {
	Gallery pages.Gallery `json:"gallery"`
}

// Type implements command.Message.
func (SaveGalleryCommand) Type() string { return saveGalleryMessageType }

// Validate checks the gallery form.
func (m SaveGalleryCommand) Validate() error {
	g := m.Gallery
	return validation.ValidateStruct(&g,
		validation.Field(&g.PageID, validation.Required, validation.Min(1)),
		validation.Field(&g.Title, validation.Required, validation.Length(2, 200)),
		validation.Field(&g.Slug, validation.By(func(value any) error {
			s, _ := value.(string)
			if s = strings.TrimSpace(s); s != "" && !slug.IsValid(s) {
				return validation.NewError("site.admin.galleries.slug_invalid", "slug must be url safe")
			}
			return nil
		})),
		validation.Field(&g.Images, validation.Each(validation.By(func(value any) error {
			img, _ := value.(pages.GalleryImage)
			if strings.TrimSpace(img.Image) == "" {
				return validation.NewError("site.admin.galleries.image_required", "every gallery image needs a file")
			}
			return nil
		}))),
	)
}

// Normalized returns the command with the slug derived from the title when empty.
func (m SaveGalleryCommand) Normalized() SaveGalleryCommand {
	g := m.Gallery
	g.Title = strings.TrimSpace(g.Title)
	g.Slug = strings.TrimSpace(g.Slug)
	if g.Slug == "" {
		if normalized, err := slug.Normalize(g.Title); err == nil {
			g.Slug = normalized
		}
	}
	return SaveGalleryCommand{Gallery: g}
}

// DeleteGalleryCommand removes a gallery.
type DeleteGalleryCommand struct {
	ID int `json:"id"`
}

// Type implements command.Message.
func (DeleteGalleryCommand) Type() string { return deleteGalleryMessageType }

// Validate requires a positive identifier.
func (m DeleteGalleryCommand) Validate() error {
	return validation.ValidateStruct(&m, validation.Field(&m.ID, validation.Required, validation.Min(1)))
}

// SaveGalleryHandler writes galleries through the backend.
type SaveGalleryHandler struct {
	inner *commands.Handler[SaveGalleryCommand]
}

// NewSaveGalleryHandler constructs the handler over store.
func NewSaveGalleryHandler(store interfaces.GalleryStore, logger interfaces.Logger, opts ...commands.HandlerOption[SaveGalleryCommand]) *SaveGalleryHandler {
	exec := func(ctx context.Context, msg SaveGalleryCommand) error {
		_, err := store.SaveGallery(ctx, msg.Gallery)
		return err
	}
	handlerOpts := []commands.HandlerOption[SaveGalleryCommand]{
		commands.WithLogger[SaveGalleryCommand](logger),
		commands.WithOperation[SaveGalleryCommand]("admin.galleries.save"),
		commands.WithMessageFields(func(msg SaveGalleryCommand) map[string]any {
			return map[string]any{"gallery_id": msg.Gallery.ID, "gallery_slug": msg.Gallery.Slug}
		}),
	}
	return &SaveGalleryHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute normalises the slug and satisfies command.Commander[SaveGalleryCommand].
func (h *SaveGalleryHandler) Execute(ctx context.Context, msg SaveGalleryCommand) error {
	return h.inner.Execute(ctx, msg.Normalized())
}

// DeleteGalleryHandler removes galleries through the backend.
type DeleteGalleryHandler struct {
	inner *commands.Handler[DeleteGalleryCommand]
}

// NewDeleteGalleryHandler constructs the handler over store.
func NewDeleteGalleryHandler(store interfaces.GalleryStore, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteGalleryCommand]) *DeleteGalleryHandler {
	exec := func(ctx context.Context, msg DeleteGalleryCommand) error {
		return store.DeleteGallery(ctx, msg.ID)
	}
	handlerOpts := []commands.HandlerOption[DeleteGalleryCommand]{
		commands.WithLogger[DeleteGalleryCommand](logger),
		commands.WithOperation[DeleteGalleryCommand]("admin.galleries.delete"),
	}
	return &DeleteGalleryHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[DeleteGalleryCommand].
func (h *DeleteGalleryHandler) Execute(ctx context.Context, msg DeleteGalleryCommand) error {
	return h.inner.Execute(ctx, msg)
}
