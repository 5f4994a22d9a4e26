package detection

import "testing"

// maskFrom builds an EdgeMask with the given cells flagged.
func maskFrom(w, h int, cells []Point) *EdgeMask {
	m := &EdgeMask{W: w, H: h, Cells: make([]bool, w*h)}
	for _, p := range cells {
		m.Cells[p.Y*w+p.X] = true
	}
	return m
}

func TestTraceContours_ShortChainsDiscarded(t *testing.T) {
	// Two disjoint 3-cell diagonal chains on an 8x8 mask: both fall below
	// the 5-point minimum, so no contour is retained.
	m := maskFrom(8, 8, []Point{
		{1, 1}, {2, 2}, {3, 3},
		{5, 5}, {6, 6}, {7, 7},
	})

	contours := TraceContours(m, MinContourLen, 1)
	if len(contours) != 0 {
		t.Errorf("got %d contours, want 0 (both chains are below minimum length)", len(contours))
	}
}

func TestTraceContours_WalkPriority(t *testing.T) {
	// Plus-shaped component. The scan reaches (2,1) first; from there the
	// fixed neighbor priority (W, NW, N, NE, E, SE, S, SW) dictates the
	// exact walk order.
	m := maskFrom(5, 5, []Point{
		{2, 1},
		{1, 2}, {2, 2}, {3, 2},
		{2, 3},
	})

	contours := TraceContours(m, MinContourLen, 1)
	if len(contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(contours))
	}

	want := []Point{{2, 1}, {3, 2}, {2, 2}, {1, 2}, {2, 3}}
	got := contours[0]
	if len(got) != len(want) {
		t.Fatalf("contour length: got %d (%v), want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("step %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTraceContours_Partition(t *testing.T) {
	// A long run plus an isolated pair: every retained point is flagged
	// in the mask, appears in exactly one contour, and short components
	// disappear.
	flagged := []Point{
		{1, 1}, {2, 1}, {3, 1}, {4, 1}, {5, 1}, {6, 1}, {7, 1}, {8, 1},
		{1, 5}, {2, 5},
	}
	m := maskFrom(10, 10, flagged)

	contours := TraceContours(m, MinContourLen, 1)
	if len(contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(contours))
	}

	isFlagged := make(map[Point]bool, len(flagged))
	for _, p := range flagged {
		isFlagged[p] = true
	}

	seen := make(map[Point]bool)
	for _, c := range contours {
		if len(c) < MinContourLen {
			t.Errorf("retained contour of length %d below minimum %d", len(c), MinContourLen)
		}
		for _, p := range c {
			if !isFlagged[p] {
				t.Errorf("contour point %v not flagged in mask", p)
			}
			if seen[p] {
				t.Errorf("point %v appears twice", p)
			}
			seen[p] = true
		}
	}

	if len(seen) != 8 {
		t.Errorf("retained %d points, want the 8-cell run", len(seen))
	}
}

func TestTraceContours_ScaledOutput(t *testing.T) {
	m := maskFrom(8, 8, []Point{
		{1, 1}, {2, 1}, {3, 1}, {4, 1}, {5, 1},
	})

	const step = 4
	contours := TraceContours(m, MinContourLen, step)
	if len(contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(contours))
	}

	for _, p := range contours[0] {
		if p.X%step != 0 || p.Y%step != 0 {
			t.Errorf("point %v not a multiple of step %d", p, step)
		}
		if p.X/step >= 8 || p.Y/step >= 8 {
			t.Errorf("point %v maps outside the analysis grid", p)
		}
	}
}

func TestTraceContours_ClosedLoopNotGuaranteed(t *testing.T) {
	// A hollow 4x4 square ring: the greedy walk covers every cell once
	// but does not append the start cell again at the end.
	var ring []Point
	for i := 1; i <= 4; i++ {
		ring = append(ring, Point{i, 1}, Point{i, 4})
	}
	for j := 2; j <= 3; j++ {
		ring = append(ring, Point{1, j}, Point{4, j})
	}
	m := maskFrom(6, 6, ring)

	contours := TraceContours(m, MinContourLen, 1)
	if len(contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(contours))
	}
	c := contours[0]
	if len(c) != len(ring) {
		t.Errorf("contour covers %d cells, want all %d ring cells", len(c), len(ring))
	}
	if c[0] == c[len(c)-1] {
		t.Error("greedy walk should not close the loop by repeating the start cell")
	}
}
