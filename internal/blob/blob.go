package blob

import (
	"bytes"
	"io"
)

// PNG is the media type of encoded frame captures.
const PNG = "image/png"

// Blob is an immutable in-memory binary object.
type Blob struct {
	Type string
	data []byte
}

// New wraps data in a Blob. The slice must not be modified afterwards.
func New(data []byte, mediaType string) *Blob {
	return &Blob{Type: mediaType, data: data}
}

func (b *Blob) Size() int {
	return len(b.data)
}

// Bytes returns the blob contents. Callers must not modify the result.
func (b *Blob) Bytes() []byte {
	return b.data
}

func (b *Blob) NewReader() io.Reader {
	return bytes.NewReader(b.data)
}
