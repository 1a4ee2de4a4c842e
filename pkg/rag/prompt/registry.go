package prompt

import (
	"context"
	"errors"
	"sync"
	"time"

	"ai-ragchat-be/pkg/rag"

	"github.com/patrickmn/go-cache"
)

// Registry is an in-process Provider.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]*Template
}

func NewRegistry(templates ...*Template) (*Registry, error) {
	r := &Registry{templates: make(map[string]*Template)}
	for _, t := range templates {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// NewDefaultRegistry holds the built-in rephrase and answer templates.
func NewDefaultRegistry() *Registry {
	r, err := NewRegistry(Defaults()...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) Register(t *Template) error {
	if err := t.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *t
	r.templates[t.Name] = &copied
	return nil
}

func (r *Registry) Resolve(_ context.Context, name string) (*Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.templates[name]
	if !ok {
		return nil, &rag.TemplateNotFoundError{Name: name}
	}
	copied := *t
	return &copied, nil
}

// Chain asks each provider in turn and returns the first template found.
// Errors other than not-found stop the search.
type Chain []Provider

func (c Chain) Resolve(ctx context.Context, name string) (*Template, error) {
	for _, p := range c {
		t, err := p.Resolve(ctx, name)
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, rag.ErrTemplateNotFound) {
			return nil, err
		}
	}
	return nil, &rag.TemplateNotFoundError{Name: name}
}

// CachedProvider memoizes successful lookups of an inner provider.
type CachedProvider struct {
	inner Provider
	cache *cache.Cache
}

// WithCache wraps inner in a CachedProvider. A ttl of zero or less turns
// caching off so every lookup reaches inner.
func WithCache(inner Provider, ttl time.Duration) Provider {
	if ttl <= 0 {
		return inner
	}
	return NewCachedProvider(inner, ttl)
}

// NewCachedProvider keeps entries for ttl. go-cache treats a ttl of zero as
// no expiration; use WithCache for configurable caching.
func NewCachedProvider(inner Provider, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		inner: inner,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *CachedProvider) Resolve(ctx context.Context, name string) (*Template, error) {
	if x, found := c.cache.Get(name); found {
		copied := *x.(*Template)
		return &copied, nil
	}
	t, err := c.inner.Resolve(ctx, name)
	if err != nil {
		return nil, err
	}
	c.cache.Set(name, t, cache.DefaultExpiration)
	copied := *t
	return &copied, nil
}

// Invalidate drops a cached template so the next lookup reaches the inner provider.
func (c *CachedProvider) Invalidate(name string) {
	c.cache.Delete(name)
}
