// Package capture takes a still frame from a live video source and delivers
// it as a timestamped PNG download.
package capture

import (
	"fmt"
	"image"
	"time"

	"truemirror/internal/blob"
	"truemirror/internal/canvas"
)

// VideoSource is a live visual stream. The capturer only reads from it.
type VideoSource interface {
	// VideoWidth and VideoHeight report the intrinsic size of the current
	// frame, or 0 while no frame is available.
	VideoWidth() int
	VideoHeight() int
	CurrentFrame() image.Image
}

// Surface is the offscreen bitmap a single capture draws into. It is
// released once the capture has been encoded.
type Surface interface {
	Context2D() (*canvas.Context, error)
	ToBlob(done func(*blob.Blob))
	Release()
}

// Link is a transient download link: Href references the encoded image in
// the registry and Download is the suggested file name.
type Link struct {
	Href     string
	Download string
}

// Deliverer triggers the download of a link. The href is only valid for the
// duration of the call.
type Deliverer interface {
	Deliver(link Link) error
}

// DelivererFunc adapts a function to a Deliverer.
type DelivererFunc func(link Link) error

func (f DelivererFunc) Deliver(link Link) error {
	return f(link)
}

// Result reports the outcome of one capture.
type Result struct {
	Filename string
	Width    int
	Height   int
	Mirrored bool
	Size     int
	Err      error
}

// OK reports whether a download was triggered.
func (r Result) OK() bool {
	return r.Err == nil
}

// Capturer runs the capture pipeline. A Capturer is safe for concurrent use;
// every capture owns its surface, blob and URL.
type Capturer struct {
	registry  *blob.Registry
	deliverer Deliverer

	// NewSurface allocates the raster surface.
	NewSurface func(width, height int) (Surface, error)
	// Now stamps the filename at delivery time.
	Now func() time.Time
}

func New(registry *blob.Registry, deliverer Deliverer) *Capturer {
	return &Capturer{
		registry:   registry,
		deliverer:  deliverer,
		NewSurface: newCanvasSurface,
		Now:        time.Now,
	}
}

func newCanvasSurface(width, height int) (Surface, error) {
	return canvas.NewSurface(width, height)
}

// Registry returns the object URL registry used for deliveries.
func (c *Capturer) Registry() *blob.Registry {
	return c.registry
}

// CaptureAndSaveFrame captures the current frame of src, flipped horizontally
// when mirror is set, and hands it to the capturer's deliverer.
//
// The returned channel yields exactly one Result and is then closed. It is
// buffered, so callers that only want the side effect may ignore it.
func (c *Capturer) CaptureAndSaveFrame(src VideoSource, mirror bool) <-chan Result {
	return c.CaptureTo(src, mirror, c.deliverer)
}

// CaptureTo is CaptureAndSaveFrame with an explicit deliverer.
func (c *Capturer) CaptureTo(src VideoSource, mirror bool, d Deliverer) <-chan Result {
	results := make(chan Result, 1)
	finish := func(r Result) {
		results <- r
		close(results)
	}

	width, height := src.VideoWidth(), src.VideoHeight()
	res := Result{Width: width, Height: height, Mirrored: mirror}
	if d == nil {
		res.Err = ErrNoDeliverer
		finish(res)
		return results
	}
	if width <= 0 || height <= 0 {
		res.Err = ErrSourceUnavailable
		finish(res)
		return results
	}
	frame := src.CurrentFrame()
	if frame == nil {
		res.Err = ErrSourceUnavailable
		finish(res)
		return results
	}

	surface, err := c.NewSurface(width, height)
	if err != nil {
		res.Err = fmt.Errorf("%w: %v", ErrNoContext, err)
		finish(res)
		return results
	}
	ctx, err := surface.Context2D()
	if err != nil {
		surface.Release()
		res.Err = fmt.Errorf("%w: %v", ErrNoContext, err)
		finish(res)
		return results
	}
	if ctx == nil {
		surface.Release()
		res.Err = ErrNoContext
		finish(res)
		return results
	}

	if mirror {
		ctx.Translate(float64(width), 0)
		ctx.Scale(-1, 1)
	}
	ctx.DrawImage(frame, 0, 0, float64(width), float64(height))

	surface.ToBlob(func(b *blob.Blob) {
		surface.Release()
		if b == nil || b.Size() == 0 {
			res.Err = ErrEncodeFailed
			finish(res)
			return
		}

		url := c.registry.CreateObjectURL(b)
		res.Filename = Filename(c.Now())
		res.Size = b.Size()
		err := d.Deliver(Link{Href: url, Download: res.Filename})
		c.registry.RevokeObjectURL(url)

		if err != nil {
			res.Err = fmt.Errorf("failed to deliver %s: %w", res.Filename, err)
		}
		finish(res)
	})

	return results
}
