package backend

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/goliatone/go-cms-site/content"
	"github.com/goliatone/go-cms-site/pages"
	"github.com/goliatone/go-cms-site/pkg/interfaces"
	"github.com/goliatone/go-cms-site/sections"
)

func (c *Client) ListDirectors(ctx context.Context) ([]content.Director, error) {
	var list []content.Director
	err := c.do(ctx, call{method: http.MethodGet, path: "/directors", out: &list})
	return list, err
}

func (c *Client) GetDirector(ctx context.Context, id int) (*content.Director, error) {
	var director content.Director
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     fmt.Sprintf("/directors/%d", id),
		out:      &director,
		resource: resource{name: "director", key: strconv.Itoa(id)},
	})
	if err != nil {
		return nil, err
	}
	return &director, nil
}

// SaveDirector creates when the ID is zero and updates otherwise.
func (c *Client) SaveDirector(ctx context.Context, director content.Director) (*content.Director, error) {
	req := call{method: http.MethodPost, path: "/directors", body: director}
	if director.ID > 0 {
		req.method = http.MethodPut
		req.path = fmt.Sprintf("/directors/%d", director.ID)
		req.resource = resource{name: "director", key: strconv.Itoa(director.ID)}
	}
	var saved content.Director
	req.out = &saved
	if err := c.do(ctx, req); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *Client) DeleteDirector(ctx context.Context, id int) error {
	return c.do(ctx, call{
		method:   http.MethodDelete,
		path:     fmt.Sprintf("/directors/%d", id),
		resource: resource{name: "director", key: strconv.Itoa(id)},
	})
}

func (c *Client) ListAllGalleries(ctx context.Context) ([]pages.Gallery, error) {
	var list []pages.Gallery
	err := c.do(ctx, call{method: http.MethodGet, path: "/galleries", out: &list})
	return list, err
}

func (c *Client) GetGallery(ctx context.Context, id int) (*pages.Gallery, error) {
	var gallery pages.Gallery
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     fmt.Sprintf("/galleries/%d", id),
		out:      &gallery,
		resource: resource{name: "gallery", key: strconv.Itoa(id)},
	})
	if err != nil {
		return nil, err
	}
	return &gallery, nil
}

// SaveGallery creates when the ID is zero and updates otherwise.
func (c *Client) SaveGallery(ctx context.Context, gallery pages.Gallery) (*pages.Gallery, error) {
	req := call{method: http.MethodPost, path: "/galleries", body: gallery}
	if gallery.ID > 0 {
		req.method = http.MethodPut
		req.path = fmt.Sprintf("/galleries/%d", gallery.ID)
		req.resource = resource{name: "gallery", key: strconv.Itoa(gallery.ID)}
	}
	var saved pages.Gallery
	req.out = &saved
	if err := c.do(ctx, req); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *Client) DeleteGallery(ctx context.Context, id int) error {
	return c.do(ctx, call{
		method:   http.MethodDelete,
		path:     fmt.Sprintf("/galleries/%d", id),
		resource: resource{name: "gallery", key: strconv.Itoa(id)},
	})
}

// UpdateSection implements interfaces.SectionWriter.
func (c *Client) UpdateSection(ctx context.Context, update interfaces.SectionUpdate) (*sections.Section, error) {
	var saved sections.Section
	err := c.do(ctx, call{
		method: http.MethodPut,
		path:   fmt.Sprintf("/sections/%d", update.ID),
		body:   update,
		out:    &saved,
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}
