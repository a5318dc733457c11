package download

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"truemirror/internal/blob"
	"truemirror/internal/capture"
)

// Buffer keeps the delivered download in memory until it is written out,
// typically as an HTTP attachment.
type Buffer struct {
	registry *blob.Registry

	mu       sync.Mutex
	filename string
	data     *blob.Blob
}

func NewBuffer(registry *blob.Registry) *Buffer {
	return &Buffer{registry: registry}
}

// Deliver copies the link target out of the registry before the url is revoked.
func (b *Buffer) Deliver(link capture.Link) error {
	target, ok := b.registry.Resolve(link.Href)
	if !ok {
		return ErrRevoked
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.filename = link.Download
	b.data = target
	return nil
}

// Download returns the delivered file, if any.
func (b *Buffer) Download() (string, *blob.Blob, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filename, b.data, b.data != nil
}

// WriteAttachment sends the delivered file as an attachment.
func (b *Buffer) WriteAttachment(w http.ResponseWriter) error {
	name, data, ok := b.Download()
	if !ok {
		return fmt.Errorf("nothing delivered")
	}

	w.Header().Set("Content-Type", data.Type)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(data.Size()))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)

	_, err := w.Write(data.Bytes())
	return err
}
