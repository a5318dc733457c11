// Package frame holds the latest frame of a live camera feed.
package frame

import (
	"image"
	"sync"
	"time"
)

// Buffer holds the most recent frame. It satisfies capture.VideoSource and
// reports a zero size until the first frame arrives.
type Buffer struct {
	img       image.Image
	updatedAt time.Time
	mu        sync.RWMutex
}

func NewBuffer() *Buffer {
	return &Buffer{}
}

// Update replaces the current frame. The buffer takes ownership of img.
func (b *Buffer) Update(img image.Image) {
	b.mu.Lock()
	b.img = img
	b.updatedAt = time.Now()
	b.mu.Unlock()
}

// Reset drops the current frame, e.g. when the camera disconnects.
func (b *Buffer) Reset() {
	b.mu.Lock()
	b.img = nil
	b.updatedAt = time.Time{}
	b.mu.Unlock()
}

func (b *Buffer) VideoWidth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.img == nil {
		return 0
	}
	return b.img.Bounds().Dx()
}

func (b *Buffer) VideoHeight() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.img == nil {
		return 0
	}
	return b.img.Bounds().Dy()
}

func (b *Buffer) CurrentFrame() image.Image {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.img
}

// UpdatedAt returns when the current frame arrived.
func (b *Buffer) UpdatedAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.updatedAt
}
