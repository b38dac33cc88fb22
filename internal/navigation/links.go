package navigation

import (
	"fmt"
	"strconv"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"
)

// Route names registered in the public group.
const (
	GroupPublic = "public"
	GroupAdmin  = "admin"

	RouteHome    = "home"
	RoutePage    = "page"
	RouteSubPage = "subpage"
	RoutePosts   = "posts"
	RoutePost    = "post"

	RouteDirectors = "directors"
	RouteDirector  = "director"
	RouteGalleries = "galleries"
	RouteGallery   = "gallery"
	RouteSections  = "sections"

	// HomeSlug is the page served at the site root.
	HomeSlug = "pocetna"
)

var adminPaths = map[string]string{
	RouteDirectors: "/directors",
	RouteDirector:  "/directors/:id",
	RouteGalleries: "/galleries",
	RouteGallery:   "/galleries/:id",
	RouteSections:  "/pages/:id/sections",
}

// NewRouteManager registers the public and admin routes under baseURL.
func NewRouteManager(baseURL string) *urlkit.RouteManager {
	return urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    GroupPublic,
				BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
				Paths: map[string]string{
					RouteHome:    "/",
					RoutePage:    "/:slug",
					RouteSubPage: "/:slug/:sub",
					RoutePosts:   "/vijesti",
					RoutePost:    "/vijesti/:slug",
				},
				Groups: []urlkit.GroupConfig{
					{
						Name:  GroupAdmin,
						Path:  "/admin",
						Paths: adminPaths,
					},
				},
			},
		},
	})
}

// Links builds site URLs through a go-urlkit route manager. Failed builds fall
// back to root-relative paths so a misconfigured manager never breaks a menu.
type Links struct {
	public *urlkit.Group
	admin  *urlkit.Group
}

// NewLinks resolves the public and admin groups from manager.
func NewLinks(manager *urlkit.RouteManager) (*Links, error) {
	public, err := lookupGroup(manager, GroupPublic)
	if err != nil {
		return nil, err
	}
	admin, err := lookupChildGroup(public, GroupAdmin)
	if err != nil {
		return nil, err
	}
	return &Links{public: public, admin: admin}, nil
}

// PageURL implements URLBuilder. The home slug maps to the site root.
func (l *Links) PageURL(slug string) string {
	slug = normalizeSlug(slug)
	if slug == "" || slug == HomeSlug {
		return l.build(GroupPublic, RouteHome, nil, nil, "/")
	}
	return l.build(GroupPublic, RoutePage, map[string]any{"slug": slug}, nil, "/"+slug)
}

// SubPageURL links a gallery or service beneath its page.
func (l *Links) SubPageURL(slug, sub string) string {
	slug, sub = normalizeSlug(slug), normalizeSlug(sub)
	return l.build(GroupPublic, RouteSubPage, map[string]any{"slug": slug, "sub": sub}, nil, "/"+slug+"/"+sub)
}

// PostURL links a single post.
func (l *Links) PostURL(slug string) string {
	slug = normalizeSlug(slug)
	return l.build(GroupPublic, RoutePost, map[string]any{"slug": slug}, nil, "/vijesti/"+slug)
}

// PostsURL links a page of the post listing. Page one carries no query.
func (l *Links) PostsURL(page int) string {
	var query map[string]string
	fallback := "/vijesti"
	if page > 1 {
		query = map[string]string{"page": strconv.Itoa(page)}
		fallback += "?page=" + strconv.Itoa(page)
	}
	return l.build(GroupPublic, RoutePosts, nil, query, fallback)
}

// AdminURL links a dashboard route; id is ignored when zero.
func (l *Links) AdminURL(route string, id int) string {
	var params map[string]any
	fallback, ok := adminPaths[route]
	if !ok {
		fallback = "/" + normalizeSlug(route)
	}
	fallback = "/admin" + fallback
	if id > 0 {
		params = map[string]any{"id": strconv.Itoa(id)}
		fallback = strings.Replace(fallback, ":id", strconv.Itoa(id), 1)
	}
	return l.build(GroupAdmin, route, params, nil, fallback)
}

// group returns nil for a nil Links so every builder falls back.
func (l *Links) group(name string) *urlkit.Group {
	if l == nil {
		return nil
	}
	if name == GroupAdmin {
		return l.admin
	}
	return l.public
}

func (l *Links) build(groupName, route string, params map[string]any, query map[string]string, fallback string) string {
	group := l.group(groupName)
	if group == nil {
		return fallback
	}
	builder, err := safeBuilder(group, route)
	if err != nil || builder == nil {
		return fallback
	}
	for key, val := range params {
		builder.WithParam(key, val)
	}
	for key, val := range query {
		builder.WithQuery(key, val)
	}
	url, err := builder.Build()
	if err != nil || strings.TrimSpace(url) == "" {
		return fallback
	}
	return url
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("navigation: urlkit builder panic: %v", rec)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("navigation: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("navigation: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, err
}

func lookupChildGroup(parent *urlkit.Group, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("navigation: child group %q not found", name)
		}
	}()
	group = parent.Group(name)
	return group, err
}
