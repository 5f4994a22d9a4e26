package main

import (
	"fmt"
	"log"
	"os"

	"github.com/heliowatch/coronal-edge/internal/config"
	"github.com/heliowatch/coronal-edge/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("coronal-edge %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("coronal-edge - coronal-hole boundary detection service")
			fmt.Println()
			fmt.Println("Usage: coronal-edge [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  PORT                   HTTP port (default 8080)")
			fmt.Println("  SOURCE_URL_TEMPLATE    Upstream image URL with {date} placeholder")
			fmt.Println("  SOURCE_DATE_LAYOUT     Go time layout for {date} (default 2006/01/02)")
			fmt.Println("  FETCH_TIMEOUT_SECONDS  Upstream fetch timeout (default 30)")
			fmt.Println("  TARGET_DIM             Analysis grid width (default 512)")
			fmt.Println("  DARK_THRESHOLD         Dark threshold 0-255 (default 65)")
			fmt.Println("  DISK_RADIUS_FRACTION   Disk radius fraction (default 0.45)")
			fmt.Println("  MIN_CONTOUR_LEN        Minimum contour length (default 5)")
			fmt.Println("  LUMINANCE_MODE         \"linear\" or \"log\" (default linear)")
			fmt.Println("  HIGHLIGHT_COLOR        Overlay hex color (default #00FFFF)")
			fmt.Println("  OVERLAY_MODE           \"points\" or \"contours\" (default contours)")
			fmt.Println("  OUTPUT_FORMAT          \"png\", \"jpeg\" or \"bmp\" (default png)")
			fmt.Println("  PREVIEW_SCALE          Integer preview upscale factor (default 1)")
			fmt.Println()
			fmt.Println("Endpoints: GET /detect, GET /health")
			return
		}
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
