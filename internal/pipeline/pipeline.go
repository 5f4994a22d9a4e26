// Package pipeline runs the full detection chain: decode, downsample,
// luminance, disk-masked edge detection, contour tracing, overlay
// rendering and preview encoding.
package pipeline

import (
	"context"
	"encoding/base64"
	"fmt"
	"image/color"
	"time"

	"github.com/disintegration/imaging"

	"github.com/heliowatch/coronal-edge/internal/codec"
	"github.com/heliowatch/coronal-edge/internal/detection"
	"github.com/heliowatch/coronal-edge/internal/fetch"
	"github.com/heliowatch/coronal-edge/internal/raster"
	"github.com/heliowatch/coronal-edge/internal/render"
)

// Overlay strategies for the rendered preview.
const (
	OverlayPoints   = "points"
	OverlayContours = "contours"
)

// DecodeError wraps a decoder failure on malformed or unsupported input.
type DecodeError struct {
	Reason error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode failed: %v", e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Reason }

// EncodeError wraps a failure to serialize the preview buffer.
type EncodeError struct {
	Reason error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode failed: %v", e.Reason)
}

func (e *EncodeError) Unwrap() error { return e.Reason }

// Params are the per-run detection settings. The zero value is not
// usable; callers fill every field (the server derives them from config
// plus request overrides).
type Params struct {
	TargetDim      int
	Threshold      uint8
	RadiusFraction float64
	MinContourLen  int
	LuminanceMode  raster.LuminanceMode
	Highlight      color.RGBA
	OverlayMode    string
	PreviewScale   int
	Encoder        codec.Encoder
}

// Result is the aggregate outcome of one pipeline run. It is constructed
// once per run and not modified afterwards.
type Result struct {
	Status         string              `json:"status"`
	SourceURL      string              `json:"source_url,omitempty"`
	Timestamp      time.Time           `json:"timestamp"`
	OriginalWidth  int                 `json:"original_width"`
	OriginalHeight int                 `json:"original_height"`
	AnalysisWidth  int                 `json:"analysis_width"`
	AnalysisHeight int                 `json:"analysis_height"`
	Step           int                 `json:"step"`
	Points         []detection.Point   `json:"points"`
	Contours       [][]detection.Point `json:"contours"`
	ImageDataURI   string              `json:"image_data_uri"`

	// Raw encoded preview, for callers that want the image itself
	// rather than the JSON document.
	PreviewBytes []byte `json:"-"`
	PreviewMime  string `json:"-"`
}

// Run fetches the source image for the given URL and analyzes it.
// Fetch failures surface as *fetch.UpstreamError without any decode
// attempt; nothing is retried or cached.
func Run(ctx context.Context, client *fetch.Client, url string, p Params) (*Result, error) {
	data, err := client.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	res, err := Analyze(data, p)
	if err != nil {
		return nil, err
	}
	res.SourceURL = url
	return res, nil
}

// Analyze runs the detection chain on already-fetched image bytes.
func Analyze(data []byte, p Params) (*Result, error) {
	full, err := codec.StdDecoder{}.Decode(data)
	if err != nil {
		return nil, &DecodeError{Reason: err}
	}

	small, step := raster.Downsample(full, p.TargetDim)
	lum := raster.LuminanceGrid(small, p.LuminanceMode)

	mask := detection.NewDiskMask(small.W, small.H, p.RadiusFraction)
	edges, points := detection.DetectEdges(lum, mask, p.Threshold, step)
	contours := detection.TraceContours(edges, p.MinContourLen, step)

	if p.OverlayMode == OverlayPoints {
		render.PointOverlay(small, points, step, p.Highlight)
	} else {
		render.LineOverlay(small, contours, step, p.Highlight)
	}

	preview := small
	if p.PreviewScale > 1 {
		preview = upscale(small, p.PreviewScale)
	}

	enc := p.Encoder
	if enc == nil {
		enc = codec.PNGEncoder{}
	}
	encoded, mime, err := enc.Encode(preview)
	if err != nil {
		return nil, &EncodeError{Reason: err}
	}

	return &Result{
		Status:         "ok",
		Timestamp:      time.Now().UTC(),
		OriginalWidth:  full.W,
		OriginalHeight: full.H,
		AnalysisWidth:  small.W,
		AnalysisHeight: small.H,
		Step:           step,
		Points:         points,
		Contours:       contours,
		ImageDataURI:   fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(encoded)),
		PreviewBytes:   encoded,
		PreviewMime:    mime,
	}, nil
}

// upscale enlarges the annotated preview by an integer factor using
// nearest-neighbor resampling, keeping the overlay pixels crisp.
func upscale(buf *raster.Buffer, factor int) *raster.Buffer {
	big := imaging.Resize(codec.ToImage(buf), buf.W*factor, buf.H*factor, imaging.NearestNeighbor)
	return &raster.Buffer{
		W:        big.Rect.Dx(),
		H:        big.Rect.Dy(),
		Channels: raster.RGBA,
		Pix:      big.Pix,
	}
}
