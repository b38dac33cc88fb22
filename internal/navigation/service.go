package navigation

import (
	"context"

	"github.com/goliatone/go-cms-site/internal/logging"
	"github.com/goliatone/go-cms-site/pages"
	"github.com/goliatone/go-cms-site/pkg/interfaces"
)

// Service loads the flat page collection and composes the main menu.
type Service struct {
	pages    interfaces.PageSource
	template Template
	urls     URLBuilder
	logger   interfaces.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithTemplate replaces DefaultTemplate.
func WithTemplate(tpl Template) Option {
	return func(s *Service) { s.template = tpl }
}

// WithURLBuilder sets the link builder used for item URLs.
func WithURLBuilder(urls URLBuilder) Option {
	return func(s *Service) {
		if urls != nil {
			s.urls = urls
		}
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService builds a menu service over source.
func NewService(source interfaces.PageSource, opts ...Option) *Service {
	s := &Service{
		pages:    source,
		template: DefaultTemplate(),
		urls:     pathBuilder{},
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Menu returns the composed main menu. A failed page listing yields an empty
// menu; navigation never fails a page render.
func (s *Service) Menu(ctx context.Context) []Item {
	list, err := s.load(ctx)
	if err != nil {
		s.logger.WithContext(ctx).Warn("navigation.pages.load_failed", "error", err)
		return nil
	}
	return ComposeWith(s.template, NewIndex(list), s.urls)
}

// Tree returns the full page hierarchy for the dashboard.
func (s *Service) Tree(ctx context.Context) ([]*pages.Page, error) {
	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return pages.BuildTree(list), nil
}

func (s *Service) load(ctx context.Context) ([]*pages.Page, error) {
	if s == nil || s.pages == nil {
		return nil, nil
	}
	return s.pages.ListPages(ctx)
}
