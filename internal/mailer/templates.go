package mailer

import (
	"fmt"
	"html/template"
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"
)

// templateCache compiles email templates from a fixed directory on
// first use and keeps them for the process lifetime. There is no
// invalidation: templates are deployment artifacts, not runtime data.
type templateCache struct {
	dir string

	mu        sync.RWMutex
	templates map[string]*template.Template
	group     singleflight.Group
}

func newTemplateCache(dir string) *templateCache {
	return &templateCache{
		dir:       dir,
		templates: make(map[string]*template.Template),
	}
}

// Get returns the compiled template for name, loading it once.
// Concurrent first loads of the same name are deduplicated.
func (c *templateCache) Get(name string) (*template.Template, error) {
	c.mu.RLock()
	tmpl, ok := c.templates[name]
	c.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	v, err, _ := c.group.Do(name, func() (any, error) {
		c.mu.RLock()
		cached, ok := c.templates[name]
		c.mu.RUnlock()
		if ok {
			return cached, nil
		}

		path := filepath.Join(c.dir, name+".tmpl")
		parsed, err := template.ParseFiles(path)
		if err != nil {
			return nil, fmt.Errorf("mailer: load template %q: %w", name, err)
		}

		c.mu.Lock()
		c.templates[name] = parsed
		c.mu.Unlock()
		return parsed, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*template.Template), nil
}
