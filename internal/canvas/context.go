package canvas

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

var identity = f64.Aff3{1, 0, 0, 0, 1, 0}

// Context draws onto a surface through a current transformation matrix.
// Transform calls post-multiply the matrix, so the last call applies first
// to drawn coordinates.
type Context struct {
	dst xdraw.Image
	ctm f64.Aff3

	// Interpolator samples the source image. Nearest-neighbour keeps
	// integer scales and flips pixel exact.
	Interpolator xdraw.Interpolator
}

func newContext(dst xdraw.Image) *Context {
	return &Context{
		dst:          dst,
		ctm:          identity,
		Interpolator: xdraw.NearestNeighbor,
	}
}

// Translate moves the origin to (tx, ty).
func (c *Context) Translate(tx, ty float64) {
	c.ctm = mul(c.ctm, f64.Aff3{1, 0, tx, 0, 1, ty})
}

// Scale scales the axes. A negative factor flips that axis.
func (c *Context) Scale(sx, sy float64) {
	c.ctm = mul(c.ctm, f64.Aff3{sx, 0, 0, 0, sy, 0})
}

// ResetTransform restores the identity matrix.
func (c *Context) ResetTransform() {
	c.ctm = identity
}

// Transform returns the current transformation matrix.
func (c *Context) Transform() f64.Aff3 {
	return c.ctm
}

// DrawImage draws all of img into the rectangle (dx, dy, dw, dh), in the
// coordinate space set up by the current transform.
func (c *Context) DrawImage(img image.Image, dx, dy, dw, dh float64) {
	if img == nil || dw == 0 || dh == 0 {
		return
	}
	sr := img.Bounds()
	if sr.Empty() {
		return
	}

	sx := dw / float64(sr.Dx())
	sy := dh / float64(sr.Dy())
	place := f64.Aff3{
		sx, 0, dx - float64(sr.Min.X)*sx,
		0, sy, dy - float64(sr.Min.Y)*sy,
	}

	m := mul(c.ctm, place)
	if dp, ok := translation(m, sr.Min); ok {
		// Transform's integer-translation path mixes up sr.Min.X and sr.Min.Y
		// for sources not anchored at the origin.
		xdraw.Copy(c.dst, dp, img, sr, xdraw.Over, nil)
		return
	}
	c.Interpolator.Transform(c.dst, m, img, sr, xdraw.Over, nil)
}

// translation reports where m moves the source point origin to, when m is a
// pure whole-pixel translation.
func translation(m f64.Aff3, origin image.Point) (image.Point, bool) {
	if m[0] != 1 || m[1] != 0 || m[3] != 0 || m[4] != 1 {
		return image.Point{}, false
	}
	if m[2] != math.Trunc(m[2]) || m[5] != math.Trunc(m[5]) {
		return image.Point{}, false
	}
	return image.Pt(origin.X+int(m[2]), origin.Y+int(m[5])), true
}

// mul returns the affine product m*n.
func mul(m, n f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		m[0]*n[0] + m[1]*n[3],
		m[0]*n[1] + m[1]*n[4],
		m[0]*n[2] + m[1]*n[5] + m[2],
		m[3]*n[0] + m[4]*n[3],
		m[3]*n[1] + m[4]*n[4],
		m[3]*n[2] + m[4]*n[5] + m[5],
	}
}
