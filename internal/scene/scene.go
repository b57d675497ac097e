package scene

import (
	"log"
	"path/filepath"

	"github.com/iburimskiy/hover-wallpaper/internal/clock"
	"github.com/iburimskiy/hover-wallpaper/internal/config"
	"github.com/iburimskiy/hover-wallpaper/internal/effects"
	"github.com/iburimskiy/hover-wallpaper/internal/grid"
	"github.com/iburimskiy/hover-wallpaper/internal/media"
)

// Scene wires the state to its dispatcher, transition controller and timers.
type Scene struct {
	State      *State
	Dispatcher *Dispatcher
	Controller *Controller

	settings *config.Settings
	catalog  *effects.Catalog
	player   media.Player
	sched    *clock.Scheduler
}

func New(settings *config.Settings, catalog *effects.Catalog, player media.Player, tp clock.TimeProvider, rng effects.Rand) *Scene {
	sched := clock.NewScheduler(tp)
	state := &State{
		Grid:         grid.New(settings.GridSize),
		Character:    Character(settings.Roster[0]),
		Tint:         -1,
		PrevTint:     -1,
		MusicEnabled: true,
	}
	if catalog.NumTints() > 0 {
		state.Tint = settings.InitialTint
		state.PrevTint = settings.InitialTint
	}

	sizing := effects.Sizing{Floor: settings.SizeFloor, Range: settings.SizeRange}
	gen := effects.NewGenerator(catalog, sizing, rng)

	return &Scene{
		State:      state,
		Dispatcher: NewDispatcher(state, settings, gen, rng, player, sched),
		Controller: NewController(state, settings, rng, player, sched),
		settings:   settings,
		catalog:    catalog,
		player:     player,
		sched:      sched,
	}
}

// Catalog returns the effect catalog
func (s *Scene) Catalog() *effects.Catalog { return s.catalog }

// Settings returns the live settings
func (s *Scene) Settings() *config.Settings { return s.settings }

// Scheduler returns the timer queue driving the scene
func (s *Scene) Scheduler() *clock.Scheduler { return s.sched }

// Start binds every channel and starts the background track if music is on.
func (s *Scene) Start() {
	s.BindAssets()
	if s.State.MusicEnabled {
		s.playBackground()
	}
}

// BindAssets (re)binds cell cues and the background track from the asset folder.
func (s *Scene) BindAssets() {
	s.Controller.Rebind()
	if s.settings.BackgroundTrack != "" {
		s.player.SetSource(media.Background, filepath.Join(s.settings.AssetDir, s.settings.BackgroundTrack))
	}
}

// Tick runs due timers. Call once per update.
func (s *Scene) Tick() int {
	return s.sched.Fire()
}

// SetMusic turns the background track on or off.
func (s *Scene) SetMusic(on bool) {
	s.State.MusicEnabled = on
	if s.settings.BackgroundTrack == "" {
		return
	}
	if on {
		s.playBackground()
		return
	}
	if err := s.player.Pause(media.Background); err != nil {
		log.Printf("background pause failed: %v", err)
	}
}

func (s *Scene) playBackground() {
	if s.settings.BackgroundTrack == "" {
		return
	}
	if err := s.player.Play(media.Background); err != nil {
		log.Printf("audio playback failed for %s: %v", media.Background, err)
	}
}

// TogglePause flips the pause flag. The classic page opens its menu with it.
func (s *Scene) TogglePause() {
	s.State.Paused = !s.State.Paused
	if s.settings.Variant == config.VariantClassic {
		s.State.MenuOpen = s.State.Paused
	}
}

// ReloadAssets switches to a new asset folder and rebinds every channel.
// The background track restarts from the new folder when music is on.
func (s *Scene) ReloadAssets(dir string) {
	s.settings.AssetDir = dir
	s.BindAssets()
	if s.State.MusicEnabled {
		s.playBackground()
	}
}
