package detection

import "github.com/heliowatch/coronal-edge/internal/raster"

// EdgeMask is a flat boolean grid (index = y*W+x) marking cells selected
// as hole-boundary pixels. It is derived data: the contour extractor
// consumes it and nothing retains it afterwards.
type EdgeMask struct {
	W     int
	H     int
	Cells []bool
}

// At reports whether the cell at (x, y) is flagged.
func (m *EdgeMask) At(x, y int) bool {
	return m.Cells[y*m.W+x]
}

func (m *EdgeMask) set(x, y int) {
	m.Cells[y*m.W+x] = true
}

// DetectEdges scans a single-channel luminance grid for coronal-hole
// boundary cells. A cell is flagged when it is inside the disk, darker
// than threshold, and at least one of its four axis-aligned neighbors is
// at or above threshold — a thin perimeter approximation that leaves the
// dark interior unmarked.
//
// Only interior cells (1 <= x < W-1, 1 <= y < H-1) are evaluated; the
// outermost rows and columns are silently skipped, never flagged.
//
// Returns the mask plus the flagged coordinates scaled by step back to
// source-image resolution.
func DetectEdges(lum *raster.Buffer, mask DiskMask, threshold uint8, step int) (*EdgeMask, []Point) {
	w, h := lum.W, lum.H
	edges := &EdgeMask{W: w, H: h, Cells: make([]bool, w*h)}
	points := make([]Point, 0, 256)

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			if !mask.Contains(x, y) {
				continue
			}
			if lum.Pix[y*w+x] >= threshold {
				continue
			}
			if lum.Pix[y*w+x-1] >= threshold ||
				lum.Pix[y*w+x+1] >= threshold ||
				lum.Pix[(y-1)*w+x] >= threshold ||
				lum.Pix[(y+1)*w+x] >= threshold {
				edges.set(x, y)
				points = append(points, Point{X: x * step, Y: y * step})
			}
		}
	}

	return edges, points
}
