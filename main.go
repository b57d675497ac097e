package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/iburimskiy/hover-wallpaper/internal/clock"
	"github.com/iburimskiy/hover-wallpaper/internal/config"
	"github.com/iburimskiy/hover-wallpaper/internal/effects"
	"github.com/iburimskiy/hover-wallpaper/internal/game"
	"github.com/iburimskiy/hover-wallpaper/internal/media"
	"github.com/iburimskiy/hover-wallpaper/internal/scene"
)

const (
	logDir      = "logs"
	logFileName = "wallpaper.log"
)

var (
	configFlag  = flag.String("config", "wallpaper.ini", "Path to an INI file overriding the preset")
	variantFlag = flag.String("variant", "roster", "Preset: classic (8x8) or roster (4x4 with characters)")
	assetsFlag  = flag.String("assets", "", "Asset folder (overrides the config)")
	debugFlag   = flag.Bool("debug", false, "Write a debug log to logs/wallpaper.log")
	seedFlag    = flag.Int64("seed", 0, "Random seed (0 picks one from the clock)")
)

// setupLogging sends log output to a file when debug is set and discards it otherwise.
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log directory: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f
}

func main() {
	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	settings, err := config.Load(*configFlag, config.Variant(*variantFlag))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	if *assetsFlag != "" {
		settings.AssetDir = *assetsFlag
	}

	catalog, err := effects.NewCatalog(effects.CatalogConfig{
		Kinds:         settings.Shapes,
		Palette:       settings.Palette,
		PaletteAlpha:  settings.PaletteAlpha,
		Tints:         settings.Tints,
		TintAlpha:     settings.TintAlpha,
		EnterDuration: settings.EnterDuration,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid palette: %v\n", err)
		os.Exit(1)
	}

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("starting %s variant, %dx%d grid, seed %d", settings.Variant, settings.GridSize, settings.GridSize, seed)

	// Initialize audio; the wallpaper still runs silently without a device
	speaker := media.NewSpeaker()
	var audio game.Audio
	if err := speaker.Init(); err != nil {
		fmt.Printf("Audio initialization failed: %v (continuing without audio)\n", err)
		log.Printf("audio init failed: %v", err)
	} else {
		audio = speaker
		defer speaker.Close()
	}

	tp := clock.RealTime{}
	sc := scene.New(settings, catalog, speaker, tp, rand.New(rand.NewSource(seed)))
	sc.Start()

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("Hover Wallpaper - M: menu, Space: pause, Esc/Q: quit")

	g := game.New(sc, audio, tp)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		panic(err)
	}
}
