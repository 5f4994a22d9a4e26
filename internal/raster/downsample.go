package raster

// Downsample reduces an RGBA buffer so that its width does not exceed
// targetMax, using nearest-neighbor subsampling at an integer stride.
//
// The stride is step = max(1, W/targetMax); output dimensions are
// W/step x H/step (integer division). Every output cell (x, y) takes the
// source pixel at (x*step, y*step) verbatim — no averaging, so thin dark
// features survive the reduction instead of being blended away.
//
// When the source is already narrower than targetMax the step is 1 and the
// output is a plain copy. Returns the reduced buffer and the step used,
// which callers need to scale analysis coordinates back to source
// resolution.
func Downsample(src *Buffer, targetMax int) (*Buffer, int) {
	step := src.W / targetMax
	if step < 1 {
		step = 1
	}

	outW := src.W / step
	outH := src.H / step
	dst := New(outW, outH, src.Channels)

	c := src.Channels
	for y := 0; y < outH; y++ {
		for x := 0; x < outW; x++ {
			si := src.Index(x*step, y*step)
			di := dst.Index(x, y)
			copy(dst.Pix[di:di+c], src.Pix[si:si+c])
		}
	}

	return dst, step
}
