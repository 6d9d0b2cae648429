package config

import (
	"os"
	"strconv"
)

const (
	WindowWidth  = 1024
	WindowHeight = 512

	// Window width below which the compact (stacked) layout is used.
	CompactBreakpoint = 480

	// Analyser
	FFTSize         = 512
	SmoothingFactor = 0.8
	MinDecibels     = -100
	MaxDecibels     = -30
	TapRingSize     = 8192

	// Plane geometry
	PlaneSize     = 6.0
	PlaneSegments = 64
	PlaneOpacity  = 0.8

	// Camera
	CameraFOV  = 60.0
	CameraNear = 0.1
	CameraFar  = 1000.0

	// Periodic checks while playing, in seconds
	LivenessInterval = 1
	ClockInterval    = 1
)

// Config holds the runtime knobs, loaded from environment variables.
type Config struct {
	WindowWidth  int
	WindowHeight int

	AssetRoot  string
	LeftTrack  string
	RightTrack string
	LeftTheme  string
	RightTheme string

	ClockZone  string
	ClockLabel string
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	return Config{
		WindowWidth:  envInt("VIS_WINDOW_WIDTH", WindowWidth),
		WindowHeight: envInt("VIS_WINDOW_HEIGHT", WindowHeight),

		AssetRoot:  envStr("VIS_ASSET_ROOT", "public"),
		LeftTrack:  envStr("VIS_LEFT_TRACK", "/IORI-Neophoca.mp3"),
		RightTrack: envStr("VIS_RIGHT_TRACK", "/ganga_blues.mp3"),
		LeftTheme:  envStr("VIS_LEFT_THEME", "green"),
		RightTheme: envStr("VIS_RIGHT_THEME", "purple"),

		ClockZone:  envStr("VIS_CLOCK_ZONE", "Asia/Tokyo"),
		ClockLabel: envStr("VIS_CLOCK_LABEL", "JST"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
