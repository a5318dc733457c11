package frame

import (
	"image"
	"testing"
)

func TestBuffer_EmptyReportsZeroSize(t *testing.T) {
	b := NewBuffer()

	if b.VideoWidth() != 0 || b.VideoHeight() != 0 {
		t.Errorf("Expected 0x0, got %dx%d", b.VideoWidth(), b.VideoHeight())
	}
	if b.CurrentFrame() != nil {
		t.Error("Expected no frame")
	}
	if !b.UpdatedAt().IsZero() {
		t.Error("Expected zero UpdatedAt")
	}
}

func TestBuffer_UpdateAndReset(t *testing.T) {
	b := NewBuffer()
	img := image.NewRGBA(image.Rect(0, 0, 640, 480))

	b.Update(img)
	if b.VideoWidth() != 640 || b.VideoHeight() != 480 {
		t.Errorf("Expected 640x480, got %dx%d", b.VideoWidth(), b.VideoHeight())
	}
	if b.CurrentFrame() != img {
		t.Error("CurrentFrame did not return the latest frame")
	}

	b.Reset()
	if b.VideoWidth() != 0 || b.CurrentFrame() != nil {
		t.Error("Reset did not clear the frame")
	}
}

func TestSnapshot_IsStable(t *testing.T) {
	b := NewBuffer()
	first := image.NewRGBA(image.Rect(0, 0, 4, 2))
	b.Update(first)

	snap := b.Snapshot()
	b.Update(image.NewRGBA(image.Rect(0, 0, 8, 6)))

	if snap.VideoWidth() != 4 || snap.VideoHeight() != 2 {
		t.Errorf("Snapshot size changed to %dx%d", snap.VideoWidth(), snap.VideoHeight())
	}
	if snap.CurrentFrame() != first {
		t.Error("Snapshot frame changed")
	}

	if empty := NewBuffer().Snapshot(); empty.VideoWidth() != 0 || empty.VideoHeight() != 0 {
		t.Error("Snapshot of an empty buffer should report 0x0")
	}
}
