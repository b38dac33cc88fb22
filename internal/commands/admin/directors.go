package admincmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/goliatone/go-cms-site/content"
	"github.com/goliatone/go-cms-site/internal/commands"
	"github.com/goliatone/go-cms-site/pkg/interfaces"
)

const (
	saveDirectorMessageType   = "site.admin.directors.save"
	deleteDirectorMessageType = "site.admin.directors.delete"
)

// SaveDirectorCommand creates a director when ID is zero and updates it otherwise.
type SaveDirectorCommand struct {
	Director content.Director `json:"director"`
}

// Type implements command.Message.
func (SaveDirectorCommand) Type() string { return saveDirectorMessageType }

// Validate checks the form fields the dashboard requires.
func (m SaveDirectorCommand) Validate() error {
	d := m.Director
	return validation.ValidateStruct(&d,
		validation.Field(&d.Name, validation.Required, validation.Length(2, 120)),
		validation.Field(&d.Position, validation.Required, validation.Length(2, 120)),
		validation.Field(&d.Email, is.EmailFormat),
		validation.Field(&d.SortOrder, validation.Min(0)),
		validation.Field(&d.TermEnd, validation.By(func(any) error {
			if d.TermStart != nil && d.TermEnd != nil && d.TermEnd.Before(*d.TermStart) {
				return validation.NewError("site.admin.directors.term_invalid", "term end must not precede term start")
			}
			return nil
		})),
	)
}

// DeleteDirectorCommand removes a director.
type DeleteDirectorCommand struct {
	ID int `json:"id"`
}

// Type implements command.Message.
func (DeleteDirectorCommand) Type() string { return deleteDirectorMessageType }

// Validate requires a positive identifier.
func (m DeleteDirectorCommand) Validate() error {
	return validation.ValidateStruct(&m, validation.Field(&m.ID, validation.Required, validation.Min(1)))
}

// SaveDirectorHandler writes directors through the backend.
type SaveDirectorHandler struct {
	inner *commands.Handler[SaveDirectorCommand]
}

// NewSaveDirectorHandler constructs the handler over store.
func NewSaveDirectorHandler(store interfaces.DirectorStore, logger interfaces.Logger, opts ...commands.HandlerOption[SaveDirectorCommand]) *SaveDirectorHandler {
	exec := func(ctx context.Context, msg SaveDirectorCommand) error {
		_, err := store.SaveDirector(ctx, msg.Director)
		return err
	}
	handlerOpts := []commands.HandlerOption[SaveDirectorCommand]{
		commands.WithLogger[SaveDirectorCommand](logger),
		commands.WithOperation[SaveDirectorCommand]("admin.directors.save"),
		commands.WithMessageFields(func(msg SaveDirectorCommand) map[string]any {
			return map[string]any{"director_id": msg.Director.ID}
		}),
	}
	return &SaveDirectorHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[SaveDirectorCommand].
func (h *SaveDirectorHandler) Execute(ctx context.Context, msg SaveDirectorCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DeleteDirectorHandler removes directors through the backend.
type DeleteDirectorHandler struct {
	inner *commands.Handler[DeleteDirectorCommand]
}

// NewDeleteDirectorHandler constructs the handler over store.
func NewDeleteDirectorHandler(store interfaces.DirectorStore, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteDirectorCommand]) *DeleteDirectorHandler {
	exec := func(ctx context.Context, msg DeleteDirectorCommand) error {
		return store.DeleteDirector(ctx, msg.ID)
	}
	handlerOpts := []commands.HandlerOption[DeleteDirectorCommand]{
		commands.WithLogger[DeleteDirectorCommand](logger),
		commands.WithOperation[DeleteDirectorCommand]("admin.directors.delete"),
		commands.WithMessageFields(func(msg DeleteDirectorCommand) map[string]any {
			return map[string]any{"director_id": msg.ID}
		}),
	}
	return &DeleteDirectorHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[DeleteDirectorCommand].
func (h *DeleteDirectorHandler) Execute(ctx context.Context, msg DeleteDirectorCommand) error {
	return h.inner.Execute(ctx, msg)
}
