package main

import (
	"errors"
	"flag"
	"log"
	_ "time/tzdata"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/audio-planes/internal/audio"
	"github.com/iburimskiy/audio-planes/internal/config"
	"github.com/iburimskiy/audio-planes/internal/game"
	"github.com/iburimskiy/audio-planes/internal/render"
	"github.com/iburimskiy/audio-planes/internal/scene"
	"github.com/iburimskiy/audio-planes/internal/visualizer"
)

func main() {
	cfg := config.Load()
	flag.StringVar(&cfg.AssetRoot, "assets", cfg.AssetRoot, "directory audio paths are resolved against")
	flag.StringVar(&cfg.LeftTrack, "left", cfg.LeftTrack, "audio file of the left plane")
	flag.StringVar(&cfg.RightTrack, "right", cfg.RightTrack, "audio file of the right plane")
	choose := flag.Bool("choose", false, "pick both tracks with a file dialog")
	flag.Parse()

	if *choose {
		cfg.LeftTrack = chooseTrack("left plane", cfg.LeftTrack)
		cfg.RightTrack = chooseTrack("right plane", cfg.RightTrack)
	}

	left := scene.NewTarget("left", cfg.LeftTrack, themeOr(cfg.LeftTheme, scene.ThemeGreen))
	right := scene.NewTarget("right", cfg.RightTrack, themeOr(cfg.RightTheme, scene.ThemePurple))
	sc := scene.New(cfg.WindowWidth, cfg.WindowHeight, left, right)

	clock, err := visualizer.NewClock(cfg.ClockZone, cfg.ClockLabel)
	if err != nil {
		log.Printf("%v, falling back to UTC", err)
		clock, _ = visualizer.NewClock("UTC", "UTC")
	}

	out := audio.NewOutput(audio.Speaker{})
	m := visualizer.New(visualizer.Options{
		Scene:    sc,
		Acquirer: audio.NewAcquirer(cfg.AssetRoot, out),
		Clock:    clock,
	})

	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle("Audio Planes - Click a plane to play, click again to pause, Esc/Q: Quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := game.New(m, render.New(ebiten.DefaultTPS))
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

func themeOr(name string, fallback scene.Theme) scene.Theme {
	t, err := scene.ParseTheme(name)
	if err != nil {
		log.Printf("%v, using %s", err, fallback)
		return fallback
	}
	return t
}

// chooseTrack asks for an audio file; cancelling keeps current.
func chooseTrack(title, current string) string {
	filename, err := zenity.SelectFile(
		zenity.Title("Audio for the "+title),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac", "*.ogg"},
		}},
	)
	if err != nil {
		if !errors.Is(err, zenity.ErrCanceled) {
			log.Printf("file dialog: %v", err)
		}
		return current
	}
	return audio.FileScheme + filename
}
