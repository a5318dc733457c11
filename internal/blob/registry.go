package blob

import (
	"sync"

	"github.com/google/uuid"
)

const urlPrefix = "blob:truemirror/"

// Registry hands out temporary URLs that reference blobs until they are revoked.
type Registry struct {
	urls map[string]*Blob
	mu   sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		urls: make(map[string]*Blob),
	}
}

// CreateObjectURL registers b and returns a unique URL for it.
func (r *Registry) CreateObjectURL(b *Blob) string {
	url := urlPrefix + uuid.NewString()

	r.mu.Lock()
	r.urls[url] = b
	r.mu.Unlock()

	return url
}

// Resolve returns the blob behind url, if it has not been revoked.
func (r *Registry) Resolve(url string) (*Blob, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.urls[url]
	return b, ok
}

// RevokeObjectURL releases url. Revoking an unknown url is a no-op.
func (r *Registry) RevokeObjectURL(url string) {
	r.mu.Lock()
	delete(r.urls, url)
	r.mu.Unlock()
}

// Len reports how many URLs are still live.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.urls)
}
