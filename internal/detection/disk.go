// Package detection isolates dark coronal-hole regions on a solar-disk
// luminance grid and chains their boundary cells into ordered contours.
package detection

// Point is a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// DiskMask restricts detection to a circle centered on the analysis grid,
// keeping the dark sky around the solar limb from being flagged wholesale.
type DiskMask struct {
	centerX     int
	centerY     int
	maxRadiusSq int
}

// NewDiskMask builds the mask for an outW x outH grid. fraction is the
// disk radius as a fraction of the grid width; the historical data source
// frames the disk by width, so the radius scales with outW only, even on
// non-square grids.
func NewDiskMask(outW, outH int, fraction float64) DiskMask {
	r := float64(outW) * fraction
	return DiskMask{
		centerX:     outW / 2,
		centerY:     outH / 2,
		maxRadiusSq: int(r * r),
	}
}

// Contains reports whether the cell lies within the analysis disk.
func (m DiskMask) Contains(x, y int) bool {
	dx := x - m.centerX
	dy := y - m.centerY
	return dx*dx+dy*dy <= m.maxRadiusSq
}
