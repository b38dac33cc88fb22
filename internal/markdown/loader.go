package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Document is one parsed Markdown file.
type Document struct {
	Path        string
	FrontMatter FrontMatter
	Body        []byte
}

// LoadDirectory parses every file under root matching pattern (default
// "*.md"), in lexical path order.
func LoadDirectory(ctx context.Context, fsys fs.FS, root, pattern string) ([]Document, error) {
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}
	if strings.TrimSpace(root) == "" {
		root = "."
	}

	var paths []string
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		matched, err := path.Match(pattern, path.Base(p))
		if err != nil {
			return fmt.Errorf("markdown loader pattern %q: %w", pattern, err)
		}
		if matched {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	docs := make([]Document, 0, len(paths))
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("markdown loader read %s: %w", p, err)
		}
		meta, body, err := ParseFrontMatter(data)
		if err != nil {
			return nil, fmt.Errorf("markdown loader %s: %w", p, err)
		}
		docs = append(docs, Document{Path: p, FrontMatter: meta, Body: body})
	}
	return docs, nil
}
