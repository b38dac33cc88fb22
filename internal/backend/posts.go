package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/goliatone/go-cms-site/content"
	"github.com/goliatone/go-cms-site/domain"
)

// ListPublishedPosts implements interfaces.PostSource.
func (c *Client) ListPublishedPosts(ctx context.Context, page, pageSize int) (content.Listing, error) {
	page, pageSize = content.NormalizePaging(page, pageSize)
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(pageSize))
	query.Set("status", string(domain.StatusPublished))

	var listing content.Listing
	if err := c.do(ctx, call{method: http.MethodGet, path: "/posts", query: query, out: &listing}); err != nil {
		return content.Listing{}, err
	}
	if listing.Page == 0 {
		listing.Page = page
	}
	if listing.PageSize == 0 {
		listing.PageSize = pageSize
	}
	return listing, nil
}

// ListPostsForPage returns the published posts associated with a page.
func (c *Client) ListPostsForPage(ctx context.Context, pageID int) ([]content.Post, error) {
	var list []content.Post
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   fmt.Sprintf("/pages/%d/posts", pageID),
		out:    &list,
	})
	if err != nil {
		return nil, err
	}
	public := list[:0]
	for _, post := range list {
		if post.Status.IsPublic() {
			public = append(public, post)
		}
	}
	return public, nil
}

// GetPostBySlug implements interfaces.PostSource.
func (c *Client) GetPostBySlug(ctx context.Context, slug string) (*content.Post, error) {
	var post content.Post
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/posts/slug/" + segment(slug),
		out:      &post,
		resource: resource{name: "post", key: slug},
		single:   true,
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// IncrementPostView implements interfaces.ViewCounter.
func (c *Client) IncrementPostView(ctx context.Context, slug string) error {
	return c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/posts/slug/" + segment(slug) + "/view",
		resource: resource{name: "post", key: slug},
	})
}

// CreatePost implements interfaces.PostWriter.
func (c *Client) CreatePost(ctx context.Context, post content.Post) (*content.Post, error) {
	var created content.Post
	if err := c.do(ctx, call{method: http.MethodPost, path: "/posts", body: post, out: &created}); err != nil {
		return nil, err
	}
	return &created, nil
}
