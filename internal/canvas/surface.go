package canvas

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"sync"

	"truemirror/internal/blob"
)

var (
	ErrInvalidSize = errors.New("surface size must be positive")
	ErrReleased    = errors.New("surface has been released")
)

// Surface is an offscreen RGBA bitmap that frames are drawn into.
type Surface struct {
	img           *image.RGBA
	width, height int
	released      bool
	mu            sync.Mutex
}

// NewSurface allocates a transparent surface of exactly width x height pixels.
func NewSurface(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return &Surface{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		width:  width,
		height: height,
	}, nil
}

func (s *Surface) Width() int  { return s.width }
func (s *Surface) Height() int { return s.height }

// Image exposes the backing bitmap, or nil once the surface is released.
func (s *Surface) Image() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.img
}

// Context2D returns a fresh drawing context with an identity transform.
func (s *Surface) Context2D() (*Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return nil, ErrReleased
	}
	return newContext(s.img), nil
}

// Release drops the backing bitmap. Later calls to Context2D fail and
// ToBlob reports no blob. An encode already in flight keeps its own
// reference and completes.
func (s *Surface) Release() {
	s.mu.Lock()
	s.released = true
	s.img = nil
	s.mu.Unlock()
}

// ToBlob encodes the surface as PNG on a separate goroutine and passes the
// result to done. done receives nil when encoding fails.
func (s *Surface) ToBlob(done func(*blob.Blob)) {
	s.mu.Lock()
	released := s.released
	img := s.img
	s.mu.Unlock()

	go func() {
		if released {
			done(nil)
			return
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			done(nil)
			return
		}
		done(blob.New(buf.Bytes(), blob.PNG))
	}()
}
