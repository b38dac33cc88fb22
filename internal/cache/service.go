package cache

import (
	"strings"
	"time"

	"github.com/goliatone/go-cms-site/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
)

// Namespace prefixes every key the site stores.
const Namespace = "site"

// New builds a go-repository-cache service whose entries live for ttl. A
// non-positive ttl keeps the library default.
func New(ttl time.Duration) (interfaces.CacheProvider, error) {
	cfg := repocache.DefaultConfig()
	if ttl > 0 {
		cfg.TTL = ttl
	}
	service, err := repocache.NewCacheService(cfg)
	if err != nil {
		return nil, err
	}
	return service, nil
}

// Key joins parts under the site namespace.
func Key(parts ...string) string {
	return strings.Join(append([]string{Namespace}, parts...), repocache.KeySeparator)
}

// Prefix returns the prefix shared by every key under parts, for use with
// DeleteByPrefix.
func Prefix(parts ...string) string {
	return Key(parts...) + repocache.KeySeparator
}
