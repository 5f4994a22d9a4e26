package raster

import (
	"fmt"
	"math"
)

// LuminanceMode selects how RGB values collapse to a single intensity.
type LuminanceMode int

const (
	// Linear uses the ITU-R BT.601 weighted sum directly.
	Linear LuminanceMode = iota

	// LogCompressed applies a perceptual log curve after the weighted sum,
	// lifting shadow detail: lum' = ln(1+lum)/ln(256) * 255.
	LogCompressed
)

// ParseLuminanceMode maps a configuration string to a LuminanceMode.
func ParseLuminanceMode(s string) (LuminanceMode, error) {
	switch s {
	case "linear", "":
		return Linear, nil
	case "log":
		return LogCompressed, nil
	default:
		return Linear, fmt.Errorf("unknown luminance mode %q", s)
	}
}

func (m LuminanceMode) String() string {
	if m == LogCompressed {
		return "log"
	}
	return "linear"
}

var logScale = 255.0 / math.Log(256)

// Luminance converts one RGB triple to an intensity in [0, 255] using
// ITU-R BT.601 weights (0.299, 0.587, 0.114), optionally log-compressed.
// Pure function: same inputs and mode always yield the same output.
func Luminance(r, g, b uint8, mode LuminanceMode) uint8 {
	lum := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
	if mode == LogCompressed {
		lum = math.Log(1+lum) * logScale
	}
	if lum < 0 {
		lum = 0
	}
	if lum > 255 {
		lum = 255
	}
	return uint8(lum)
}

// LuminanceGrid collapses an RGB/RGBA buffer to a single-channel grid of
// the same dimensions.
func LuminanceGrid(src *Buffer, mode LuminanceMode) *Buffer {
	dst := New(src.W, src.H, Gray)
	c := src.Channels
	for i, j := 0, 0; j < len(dst.Pix); i, j = i+c, j+1 {
		dst.Pix[j] = Luminance(src.Pix[i], src.Pix[i+1], src.Pix[i+2], mode)
	}
	return dst
}
