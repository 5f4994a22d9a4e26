package detection

// MinContourLen is the default minimum number of points a traced chain
// needs to be retained; shorter components are treated as noise.
const MinContourLen = 5

// walkOrder is the fixed neighbor priority for the greedy chain walk:
// W, NW, N, NE, E, SE, S, SW. Ties between branches of a component are
// always resolved by this order, which keeps tracing deterministic.
var walkOrder = [8][2]int{
	{-1, 0},  // W
	{-1, -1}, // NW
	{0, -1},  // N
	{1, -1},  // NE
	{1, 0},   // E
	{1, 1},   // SE
	{0, 1},   // S
	{-1, 1},  // SW
}

// TraceContours chains flagged mask cells into ordered polylines.
//
// Cells are scanned in row-major order. Each unvisited flagged cell starts
// a new chain; the walk then repeatedly takes the first unvisited flagged
// 8-neighbor in walkOrder and continues from there until none remains.
// This is a greedy single pass, not Moore boundary tracing: it never
// backtracks, so a branching component yields one arbitrary arm per
// branch point and the chain is not guaranteed to close.
//
// Every flagged cell is visited exactly once, so retained contours never
// share points. Chains shorter than minLen are dropped. Coordinates are
// scaled by step to source-image resolution before being returned.
func TraceContours(mask *EdgeMask, minLen, step int) [][]Point {
	if minLen <= 0 {
		minLen = MinContourLen
	}
	w, h := mask.W, mask.H
	visited := make([]bool, w*h)
	contours := make([][]Point, 0)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !mask.Cells[y*w+x] || visited[y*w+x] {
				continue
			}

			chain := make([]Point, 0, 32)
			cx, cy := x, y
			visited[cy*w+cx] = true
			chain = append(chain, Point{X: cx * step, Y: cy * step})

			for {
				nx, ny, ok := nextUnvisited(mask, visited, cx, cy)
				if !ok {
					break
				}
				cx, cy = nx, ny
				visited[cy*w+cx] = true
				chain = append(chain, Point{X: cx * step, Y: cy * step})
			}

			if len(chain) >= minLen {
				contours = append(contours, chain)
			}
		}
	}

	return contours
}

func nextUnvisited(mask *EdgeMask, visited []bool, x, y int) (int, int, bool) {
	for _, d := range walkOrder {
		nx, ny := x+d[0], y+d[1]
		if nx < 0 || nx >= mask.W || ny < 0 || ny >= mask.H {
			continue
		}
		i := ny*mask.W + nx
		if mask.Cells[i] && !visited[i] {
			return nx, ny, true
		}
	}
	return 0, 0, false
}
