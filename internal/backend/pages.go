package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/goliatone/go-cms-site/pages"
	"github.com/goliatone/go-cms-site/sections"
)

// GetPageBySlug implements interfaces.PageSource.
func (c *Client) GetPageBySlug(ctx context.Context, slug string) (*pages.Page, error) {
	var page pages.Page
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/pages/slug/" + segment(slug),
		out:      &page,
		resource: resource{name: "page", key: slug},
		single:   true,
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// ListPages returns the flat page collection.
func (c *Client) ListPages(ctx context.Context) ([]*pages.Page, error) {
	var list []*pages.Page
	if err := c.do(ctx, call{method: http.MethodGet, path: "/pages", out: &list}); err != nil {
		return nil, err
	}
	return list, nil
}

// ListSections implements interfaces.SectionSource. Sections whose payload
// does not decode are returned with DecodeErr set.
func (c *Client) ListSections(ctx context.Context, pageID int) ([]sections.Section, error) {
	var raw json.RawMessage
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     fmt.Sprintf("/pages/%d/sections", pageID),
		out:      &raw,
		resource: resource{name: "page", key: fmt.Sprint(pageID)},
	})
	if err != nil {
		return nil, err
	}
	return sections.DecodeSections(raw)
}

// GetGalleryBySlug implements interfaces.GallerySource.
func (c *Client) GetGalleryBySlug(ctx context.Context, pageID int, slug string) (*pages.Gallery, error) {
	var gallery pages.Gallery
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     fmt.Sprintf("/pages/%d/galleries/%s", pageID, segment(slug)),
		out:      &gallery,
		resource: resource{name: "gallery", key: slug, pageID: pageID},
		single:   true,
	})
	if err != nil {
		return nil, err
	}
	return &gallery, nil
}

// ListGalleries lists the galleries beneath a gallery page.
func (c *Client) ListGalleries(ctx context.Context, pageID int) ([]pages.Gallery, error) {
	var list []pages.Gallery
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   fmt.Sprintf("/pages/%d/galleries", pageID),
		out:    &list,
	})
	return list, err
}

// GetServiceBySlug implements interfaces.ServiceSource.
func (c *Client) GetServiceBySlug(ctx context.Context, pageID int, slug string) (*pages.Service, error) {
	var service pages.Service
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     fmt.Sprintf("/pages/%d/services/%s", pageID, segment(slug)),
		out:      &service,
		resource: resource{name: "service", key: slug, pageID: pageID},
		single:   true,
	})
	if err != nil {
		return nil, err
	}
	return &service, nil
}

// ListServices lists the services beneath a services page.
func (c *Client) ListServices(ctx context.Context, pageID int) ([]pages.Service, error) {
	var list []pages.Service
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   fmt.Sprintf("/pages/%d/services", pageID),
		out:    &list,
	})
	return list, err
}
