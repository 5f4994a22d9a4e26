// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Config carries every tunable of the detection pipeline and the HTTP
// surface. All values come from environment variables with sensible
// defaults; individual requests may override the detection knobs via
// query parameters.
type Config struct {
	Port string

	// Upstream image source.
	SourceTemplate string // URL with a {date} placeholder
	DateLayout     string // Go time layout substituted into {date}
	UserAgent      string
	FetchTimeout   time.Duration

	// Detection knobs.
	TargetDim      int     // maximum analysis-grid width
	Threshold      int     // dark threshold on the 0-255 luminance scale
	RadiusFraction float64 // disk radius as a fraction of grid width
	MinContourLen  int
	LuminanceMode  string // "linear" or "log"

	// Output.
	Highlight    color.RGBA
	OverlayMode  string // "points" or "contours"
	OutputFormat string // "png", "jpeg" or "bmp"
	PreviewScale int    // nearest-neighbor upscale factor for the preview
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		SourceTemplate: getEnv("SOURCE_URL_TEMPLATE", "https://soho.nascom.nasa.gov/data/REPROCESSING/Completed/{date}/eit195_latest.jpg"),
		DateLayout:     getEnv("SOURCE_DATE_LAYOUT", "2006/01/02"),
		UserAgent:      getEnv("FETCH_USER_AGENT", "coronal-edge/1.0 (solar coronal-hole boundary detector)"),
		FetchTimeout:   time.Duration(getEnvInt("FETCH_TIMEOUT_SECONDS", 30)) * time.Second,
		TargetDim:      getEnvInt("TARGET_DIM", 512),
		Threshold:      getEnvInt("DARK_THRESHOLD", 65),
		RadiusFraction: getEnvFloat("DISK_RADIUS_FRACTION", 0.45),
		MinContourLen:  getEnvInt("MIN_CONTOUR_LEN", 5),
		LuminanceMode:  getEnv("LUMINANCE_MODE", "linear"),
		OverlayMode:    getEnv("OVERLAY_MODE", "contours"),
		OutputFormat:   getEnv("OUTPUT_FORMAT", "png"),
		PreviewScale:   getEnvInt("PREVIEW_SCALE", 1),
	}

	hex := getEnv("HIGHLIGHT_COLOR", "#00FFFF")
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid HIGHLIGHT_COLOR %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	cfg.Highlight = color.RGBA{R: r, G: g, B: b, A: 255}

	if cfg.TargetDim < 1 {
		return nil, fmt.Errorf("TARGET_DIM must be positive, got %d", cfg.TargetDim)
	}
	if cfg.RadiusFraction <= 0 || cfg.RadiusFraction > 1 {
		return nil, fmt.Errorf("DISK_RADIUS_FRACTION must be in (0, 1], got %g", cfg.RadiusFraction)
	}
	if cfg.PreviewScale < 1 {
		cfg.PreviewScale = 1
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
