package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-cms-site/pkg/interfaces"
)

const (
	rootModule       = "site"
	routingModule    = "site.routing"
	sectionsModule   = "site.sections"
	navigationModule = "site.navigation"
	httpModule       = "site.http"
	backendModule    = "site.backend"
	importModule     = "site.import"
)

const (
	fieldImportPath   = "import_path"
	fieldImportSlug   = "slug"
	fieldImportAction = "import_action"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger carries the
// module identifier as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// RoutingLogger returns the logger namespace reserved for the route resolver.
func RoutingLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, routingModule)
}

// SectionsLogger returns the logger namespace reserved for section composition.
func SectionsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, sectionsModule)
}

// NavigationLogger returns the logger namespace reserved for menu composition.
func NavigationLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, navigationModule)
}

// HTTPLogger returns the logger namespace reserved for the HTTP surface.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// BackendLogger returns the logger namespace reserved for the backend API client.
func BackendLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, backendModule)
}

// ImportLogger returns the logger namespace reserved for the post import tool.
func ImportLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, importModule)
}

// WithImportContext enriches the logger with the file path, post slug and
// import action. Empty values are ignored.
func WithImportContext(logger interfaces.Logger, path, slug, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldImportPath] = trimmed
	}
	if trimmed := strings.TrimSpace(slug); trimmed != "" {
		fields[fieldImportSlug] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldImportAction] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
