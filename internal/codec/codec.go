// Package codec adapts encoded image bytes to and from raster.Buffer.
//
// The pipeline itself never touches container formats; it sees only these
// two narrow interfaces, so the concrete codecs are swappable without
// touching any analysis code.
package codec

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"

	"github.com/heliowatch/coronal-edge/internal/raster"
)

// Decoder turns an encoded image byte stream into a dense RGBA buffer.
type Decoder interface {
	Decode(data []byte) (*raster.Buffer, error)
}

// Encoder serializes a pixel buffer into a container format.
type Encoder interface {
	// Encode returns the encoded bytes and the MIME type of the container.
	Encode(buf *raster.Buffer) ([]byte, string, error)
}

// StdDecoder decodes PNG, JPEG and GIF via the registered stdlib codecs
// and normalizes the result to a 4-channel NRGBA buffer.
type StdDecoder struct{}

func (StdDecoder) Decode(data []byte) (*raster.Buffer, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	// Clone re-packs any source color model into a tightly-strided NRGBA
	// with bounds at the origin, so Pix maps 1:1 onto the flat buffer.
	n := imaging.Clone(img)
	return &raster.Buffer{
		W:        n.Rect.Dx(),
		H:        n.Rect.Dy(),
		Channels: raster.RGBA,
		Pix:      n.Pix,
	}, nil
}

// PNGEncoder writes the buffer as a PNG container.
type PNGEncoder struct{}

func (PNGEncoder) Encode(buf *raster.Buffer) ([]byte, string, error) {
	data, err := encodeWith(imgio.PNGEncoder(), buf)
	return data, "image/png", err
}

// JPEGEncoder writes the buffer as a JPEG container at the given quality.
type JPEGEncoder struct {
	Quality int
}

func (e JPEGEncoder) Encode(buf *raster.Buffer) ([]byte, string, error) {
	q := e.Quality
	if q <= 0 {
		q = 90
	}
	data, err := encodeWith(imgio.JPEGEncoder(q), buf)
	return data, "image/jpeg", err
}

// BMPEncoder writes the buffer as an uncompressed packed bitmap.
type BMPEncoder struct{}

func (BMPEncoder) Encode(buf *raster.Buffer) ([]byte, string, error) {
	var out bytes.Buffer
	if err := bmp.Encode(&out, ToImage(buf)); err != nil {
		return nil, "", fmt.Errorf("failed to encode bmp: %w", err)
	}
	return out.Bytes(), "image/bmp", nil
}

// ForFormat returns the encoder registered for a format name.
// Supported: "png" (default), "jpeg", "bmp".
func ForFormat(format string) (Encoder, error) {
	switch format {
	case "png", "":
		return PNGEncoder{}, nil
	case "jpeg", "jpg":
		return JPEGEncoder{}, nil
	case "bmp":
		return BMPEncoder{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// ToImage wraps a buffer as an image.Image without copying pixels.
// Gray buffers map to *image.Gray, RGBA buffers to *image.NRGBA.
func ToImage(buf *raster.Buffer) image.Image {
	rect := image.Rect(0, 0, buf.W, buf.H)
	switch buf.Channels {
	case raster.Gray:
		return &image.Gray{Pix: buf.Pix, Stride: buf.W, Rect: rect}
	default:
		return &image.NRGBA{Pix: buf.Pix, Stride: buf.W * raster.RGBA, Rect: rect}
	}
}

func encodeWith(enc imgio.Encoder, buf *raster.Buffer) ([]byte, error) {
	var out bytes.Buffer
	if err := enc(&out, ToImage(buf)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return out.Bytes(), nil
}
