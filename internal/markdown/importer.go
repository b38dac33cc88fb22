package markdown

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-cms-site/content"
	"github.com/goliatone/go-cms-site/domain"
	"github.com/goliatone/go-cms-site/internal/logging"
	"github.com/goliatone/go-cms-site/pkg/interfaces"
)

var (
	ErrWriterRequired = errors.New("markdown importer: post writer is required")
	ErrTitleMissing   = errors.New("markdown importer: frontmatter title is required")
)

// PostLookup reports existing posts so re-imports skip them.
type PostLookup interface {
	GetPostBySlug(ctx context.Context, slug string) (*content.Post, error)
}

// ImportOptions controls a run.
type ImportOptions struct {
	DryRun bool
}

// ImportResult summarises a run.
type ImportResult struct {
	Created []string
	Skipped []string
	Errors  []error
}

// Importer publishes Markdown documents as posts.
type Importer struct {
	writer   interfaces.PostWriter
	lookup   PostLookup
	renderer *Renderer
	logger   interfaces.Logger
	now      func() time.Time
}

// ImporterConfig wires the importer's collaborators. Lookup is optional.
type ImporterConfig struct {
	Writer   interfaces.PostWriter
	Lookup   PostLookup
	Renderer *Renderer
	Logger   interfaces.Logger
}

// NewImporter builds an Importer.
func NewImporter(cfg ImporterConfig) *Importer {
	renderer := cfg.Renderer
	if renderer == nil {
		renderer = NewRenderer(RenderOptions{})
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Importer{
		writer:   cfg.Writer,
		lookup:   cfg.Lookup,
		renderer: renderer,
		logger:   logger,
		now:      time.Now,
	}
}

// Import converts and creates every document. A failing document is recorded
// and the run continues.
func (i *Importer) Import(ctx context.Context, docs []Document, opts ImportOptions) (ImportResult, error) {
	if i.writer == nil && !opts.DryRun {
		return ImportResult{}, ErrWriterRequired
	}
	var result ImportResult
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		post, err := i.Convert(doc)
		if err != nil {
			i.logger.Warn("markdown.import.invalid", "path", doc.Path, "error", err)
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", doc.Path, err))
			continue
		}
		logger := logging.WithImportContext(i.logger, doc.Path, post.Slug, "create")

		if i.exists(ctx, post.Slug) {
			logging.WithImportContext(i.logger, doc.Path, post.Slug, "skip").Info("markdown.import.skipped")
			result.Skipped = append(result.Skipped, post.Slug)
			continue
		}
		if opts.DryRun {
			logger.Info("markdown.import.dry_run")
			result.Created = append(result.Created, post.Slug)
			continue
		}
		if _, err := i.writer.CreatePost(ctx, post); err != nil {
			logger.Error("markdown.import.failed", "error", err)
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", doc.Path, err))
			continue
		}
		logger.Info("markdown.import.created")
		result.Created = append(result.Created, post.Slug)
	}
	return result, errors.Join(result.Errors...)
}

// Convert maps a document onto a post with rendered HTML content.
func (i *Importer) Convert(doc Document) (content.Post, error) {
	meta := doc.FrontMatter
	if meta.Title == "" {
		return content.Post{}, ErrTitleMissing
	}
	slug, err := content.SlugFor(meta.Slug, meta.Title)
	if err != nil || slug == "" {
		return content.Post{}, fmt.Errorf("markdown importer: slug: %w", err)
	}
	html, err := i.renderer.Render(doc.Body)
	if err != nil {
		return content.Post{}, err
	}

	status := domain.NormalizeStatus(meta.Status)
	if meta.Draft {
		status = domain.StatusDraft
	}
	post := content.Post{
		Slug:          slug,
		Title:         meta.Title,
		Excerpt:       meta.Excerpt,
		Content:       html,
		FeaturedImage: strings.TrimSpace(meta.FeaturedImage),
		Status:        status,
	}
	if status == domain.StatusPublished {
		published := meta.Date
		if published.IsZero() {
			published = i.now().UTC()
		}
		post.PublishedAt = &published
	}
	if name := strings.TrimSpace(meta.Category); name != "" {
		categorySlug, _ := content.SlugFor("", name)
		post.Category = &content.Category{Name: name, Slug: categorySlug}
	}
	for _, ref := range meta.Pages {
		if ref = strings.TrimSpace(ref); ref != "" {
			post.Pages = append(post.Pages, content.PageRef{Slug: ref})
		}
	}
	return post, nil
}

func (i *Importer) exists(ctx context.Context, slug string) bool {
	if i.lookup == nil {
		return false
	}
	post, err := i.lookup.GetPostBySlug(ctx, slug)
	return err == nil && post != nil
}
