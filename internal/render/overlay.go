// Package render draws detection output onto an analysis-resolution
// pixel buffer.
package render

import (
	"image/color"

	"github.com/heliowatch/coronal-edge/internal/detection"
	"github.com/heliowatch/coronal-edge/internal/raster"
)

// Highlight is the default overlay color (cyan).
var Highlight = color.RGBA{R: 0, G: 255, B: 255, A: 255}

// PointOverlay sets every flagged cell's pixel to the highlight color,
// mutating buf in place. Points arrive at source-image resolution and are
// mapped down by step; no other pixels are touched.
func PointOverlay(buf *raster.Buffer, points []detection.Point, step int, col color.RGBA) {
	for _, p := range points {
		buf.SetRGB(p.X/step, p.Y/step, col.R, col.G, col.B)
	}
}

// LineOverlay rasterizes each contour as straight segments between
// consecutive points, mutating buf in place. Contour points arrive at
// source-image resolution and are mapped down by step. Writes outside the
// buffer clip silently.
func LineOverlay(buf *raster.Buffer, contours [][]detection.Point, step int, col color.RGBA) {
	for _, contour := range contours {
		for i := 1; i < len(contour); i++ {
			drawLine(buf,
				contour[i-1].X/step, contour[i-1].Y/step,
				contour[i].X/step, contour[i].Y/step,
				col)
		}
	}
}

// drawLine walks the segment with integer Bresenham stepping, writing the
// color to every touched pixel.
func drawLine(buf *raster.Buffer, x0, y0, x1, y1 int, col color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		buf.SetRGB(x0, y0, col.R, col.G, col.B)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
