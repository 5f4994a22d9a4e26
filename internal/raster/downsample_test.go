package raster

import "testing"

func TestDownsample_StepComputation(t *testing.T) {
	tests := []struct {
		name             string
		srcW, srcH       int
		target           int
		wantStep         int
		wantOutW, wantOutH int
	}{
		{"archive full frame", 2000, 2000, 512, 3, 666, 666},
		{"exact multiple", 1024, 1024, 512, 2, 512, 512},
		{"already small", 300, 200, 512, 1, 300, 200},
		{"tiny source", 4, 4, 512, 1, 4, 4},
		{"non-square", 2000, 1000, 512, 3, 666, 333},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := New(tt.srcW, tt.srcH, RGBA)
			dst, step := Downsample(src, tt.target)

			if step != tt.wantStep {
				t.Errorf("step: got %d, want %d", step, tt.wantStep)
			}
			if dst.W != tt.wantOutW || dst.H != tt.wantOutH {
				t.Errorf("dimensions: got %dx%d, want %dx%d", dst.W, dst.H, tt.wantOutW, tt.wantOutH)
			}
			if len(dst.Pix) != dst.W*dst.H*RGBA {
				t.Errorf("pixel slice length %d does not match %dx%dx4", len(dst.Pix), dst.W, dst.H)
			}
		})
	}
}

func TestDownsample_NearestNeighbor(t *testing.T) {
	// 8x8 source where each pixel's red channel encodes its own coordinates,
	// so we can verify exactly which source pixel each output cell sampled.
	src := New(8, 8, RGBA)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			i := src.Index(x, y)
			src.Pix[i] = uint8(y*8 + x)
			src.Pix[i+3] = 255
		}
	}

	dst, step := Downsample(src, 4)
	if step != 2 {
		t.Fatalf("step: got %d, want 2", step)
	}

	for y := 0; y < dst.H; y++ {
		for x := 0; x < dst.W; x++ {
			got := dst.Pix[dst.Index(x, y)]
			want := uint8(y*step*8 + x*step)
			if got != want {
				t.Errorf("cell (%d,%d): sampled %d, want source (%d,%d)=%d",
					x, y, got, x*step, y*step, want)
			}
		}
	}
}

func TestDownsample_Deterministic(t *testing.T) {
	src := New(100, 80, RGBA)
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 7)
	}

	a, stepA := Downsample(src, 30)
	b, stepB := Downsample(src, 30)

	if stepA != stepB {
		t.Fatalf("steps differ: %d vs %d", stepA, stepB)
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("pixel %d differs between identical runs", i)
		}
	}
}

func TestDownsample_NeverUpscales(t *testing.T) {
	src := New(10, 10, RGBA)
	dst, step := Downsample(src, 1000)

	if step != 1 {
		t.Errorf("step: got %d, want 1", step)
	}
	if dst.W > src.W || dst.H > src.H {
		t.Errorf("output %dx%d exceeds input %dx%d", dst.W, dst.H, src.W, src.H)
	}
}
