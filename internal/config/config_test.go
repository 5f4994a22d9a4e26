package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port: got %s, want 8080", cfg.Port)
	}
	if cfg.TargetDim != 512 {
		t.Errorf("TargetDim: got %d, want 512", cfg.TargetDim)
	}
	if cfg.Threshold != 65 {
		t.Errorf("Threshold: got %d, want 65", cfg.Threshold)
	}
	if cfg.RadiusFraction != 0.45 {
		t.Errorf("RadiusFraction: got %g, want 0.45", cfg.RadiusFraction)
	}
	if cfg.MinContourLen != 5 {
		t.Errorf("MinContourLen: got %d, want 5", cfg.MinContourLen)
	}
	if cfg.FetchTimeout != 30*time.Second {
		t.Errorf("FetchTimeout: got %v, want 30s", cfg.FetchTimeout)
	}
	// Default highlight is cyan.
	if cfg.Highlight.R != 0 || cfg.Highlight.G != 255 || cfg.Highlight.B != 255 {
		t.Errorf("Highlight: got %+v, want cyan", cfg.Highlight)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DARK_THRESHOLD", "80")
	t.Setenv("DISK_RADIUS_FRACTION", "0.43")
	t.Setenv("HIGHLIGHT_COLOR", "#FF0080")
	t.Setenv("LUMINANCE_MODE", "log")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Port: got %s, want 9000", cfg.Port)
	}
	if cfg.Threshold != 80 {
		t.Errorf("Threshold: got %d, want 80", cfg.Threshold)
	}
	if cfg.RadiusFraction != 0.43 {
		t.Errorf("RadiusFraction: got %g, want 0.43", cfg.RadiusFraction)
	}
	if cfg.Highlight.R != 255 || cfg.Highlight.G != 0 || cfg.Highlight.B != 128 {
		t.Errorf("Highlight: got %+v, want (255,0,128)", cfg.Highlight)
	}
	if cfg.LuminanceMode != "log" {
		t.Errorf("LuminanceMode: got %s, want log", cfg.LuminanceMode)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad highlight", "HIGHLIGHT_COLOR", "cyan-ish"},
		{"zero target", "TARGET_DIM", "0"},
		{"radius too large", "DISK_RADIUS_FRACTION", "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load with %s=%s should fail", tt.key, tt.value)
			}
		})
	}
}
