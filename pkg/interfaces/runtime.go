package interfaces

import (
	"context"
	"io"
)

// Logger is the leveled logger every site module writes to. Its method set
// matches go-logger, so a glog logger satisfies it directly.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// FieldsLogger is implemented by loggers that can carry structured fields.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}

// LoggerProvider hands out loggers by module name, e.g. "site.routing".
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// CacheProvider memoises fetched values per key until they expire or their
// prefix is deleted. The go-repository-cache service satisfies it.
type CacheProvider interface {
	GetOrFetch(ctx context.Context, key string, fetchFn any) (any, error)
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// TemplateRenderer renders named views. Output is returned and also written
// to every writer in out.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	Has(name string) bool
}
