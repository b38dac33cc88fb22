package admincmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-cms-site/internal/commands"
	"github.com/goliatone/go-cms-site/pkg/interfaces"
	"github.com/goliatone/go-cms-site/sections"
)

const updateSectionMessageType = "site.admin.sections.update"

// UpdateSectionCommand saves one edited page-builder section.
type UpdateSectionCommand struct {
	Update interfaces.SectionUpdate `json:"section"`
}

// Type implements command.Message.
func (UpdateSectionCommand) Type() string { return updateSectionMessageType }

// Validate checks identifiers, the section type and the payload schema.
func (m UpdateSectionCommand) Validate() error {
	u := m.Update
	return validation.ValidateStruct(&u,
		validation.Field(&u.ID, validation.Required, validation.Min(1)),
		validation.Field(&u.PageID, validation.Required, validation.Min(1)),
		validation.Field(&u.Type, validation.Required, validation.By(func(value any) error {
			t, _ := value.(sections.Type)
			if !t.Valid() {
				return validation.NewError("site.admin.sections.type_invalid", "unknown section type")
			}
			return nil
		})),
		validation.Field(&u.Order, validation.Min(0)),
		validation.Field(&u.Data, validation.By(func(any) error {
			if !u.Type.Valid() {
				return nil
			}
			return sections.ValidatePayload(u.Type, u.Data)
		})),
	)
}

// UpdateSectionHandler writes sections through the backend.
type UpdateSectionHandler struct {
	inner *commands.Handler[UpdateSectionCommand]
}

// NewUpdateSectionHandler constructs the handler over writer.
func NewUpdateSectionHandler(writer interfaces.SectionWriter, logger interfaces.Logger, opts ...commands.HandlerOption[UpdateSectionCommand]) *UpdateSectionHandler {
	exec := func(ctx context.Context, msg UpdateSectionCommand) error {
		_, err := writer.UpdateSection(ctx, msg.Update)
		return err
	}
	handlerOpts := []commands.HandlerOption[UpdateSectionCommand]{
		commands.WithLogger[UpdateSectionCommand](logger),
		commands.WithOperation[UpdateSectionCommand]("admin.sections.update"),
		commands.WithMessageFields(func(msg UpdateSectionCommand) map[string]any {
			return map[string]any{
				"section_id":   msg.Update.ID,
				"page_id":      msg.Update.PageID,
				"section_type": msg.Update.Type,
			}
		}),
	}
	return &UpdateSectionHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[UpdateSectionCommand].
func (h *UpdateSectionHandler) Execute(ctx context.Context, msg UpdateSectionCommand) error {
	return h.inner.Execute(ctx, msg)
}
