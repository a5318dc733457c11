package frame

import "image"

// Snapshot is a fixed-size view of the buffer taken at one instant, so that
// the reported size and the drawn frame always belong together.
type Snapshot struct {
	img image.Image
}

// Snapshot freezes the current frame.
func (b *Buffer) Snapshot() Snapshot {
	return Snapshot{img: b.CurrentFrame()}
}

func (s Snapshot) VideoWidth() int {
	if s.img == nil {
		return 0
	}
	return s.img.Bounds().Dx()
}

func (s Snapshot) VideoHeight() int {
	if s.img == nil {
		return 0
	}
	return s.img.Bounds().Dy()
}

func (s Snapshot) CurrentFrame() image.Image {
	return s.img
}
