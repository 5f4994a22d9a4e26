package raster

import "fmt"

// Channel counts for the buffer layouts used by the pipeline.
const (
	Gray = 1 // single luminance channel
	RGB  = 3
	RGBA = 4
)

// Buffer is a dense pixel grid stored as a flat byte slice in row-major
// order. The cell at (x, y) starts at Pix[(y*W+x)*Channels].
//
// A Buffer is owned by exactly one pipeline stage at a time; stages either
// return a fresh Buffer or document that they mutate their input in place.
type Buffer struct {
	W        int
	H        int
	Channels int
	Pix      []uint8
}

// New allocates a zeroed buffer of the given dimensions.
func New(w, h, channels int) *Buffer {
	return &Buffer{
		W:        w,
		H:        h,
		Channels: channels,
		Pix:      make([]uint8, w*h*channels),
	}
}

// FromPix wraps an existing pixel slice. The slice length must match the
// dimensions exactly.
func FromPix(w, h, channels int, pix []uint8) (*Buffer, error) {
	if len(pix) != w*h*channels {
		return nil, fmt.Errorf("pixel slice length %d does not match %dx%dx%d", len(pix), w, h, channels)
	}
	return &Buffer{W: w, H: h, Channels: channels, Pix: pix}, nil
}

// Index returns the offset of cell (x, y) in Pix.
// No bounds checking; callers iterate within [0,W)x[0,H).
func (b *Buffer) Index(x, y int) int {
	return (y*b.W + x) * b.Channels
}

// In reports whether (x, y) lies inside the buffer.
func (b *Buffer) In(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// SetRGB writes an RGB triple at (x, y), leaving alpha (if any) untouched.
// Writes outside the buffer are no-ops.
func (b *Buffer) SetRGB(x, y int, r, g, bl uint8) {
	if !b.In(x, y) {
		return
	}
	i := b.Index(x, y)
	b.Pix[i] = r
	b.Pix[i+1] = g
	b.Pix[i+2] = bl
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{W: b.W, H: b.H, Channels: b.Channels, Pix: pix}
}
