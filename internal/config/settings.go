package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/ini.v1"
)

// Variant selects one of the built-in presets.
type Variant string

const (
	VariantClassic Variant = "classic"
	VariantRoster  Variant = "roster"
)

// BatchPolicy decides what happens to a live effect batch when a new one spawns.
type BatchPolicy int

const (
	// BatchReplace drops the live batch and cancels its expiry.
	BatchReplace BatchPolicy = iota
	// BatchCoexist lets every batch run out its own expiry timer.
	BatchCoexist
)

// CueGating controls whether per-cell cues honor the music switch.
type CueGating int

const (
	CueMusicGated CueGating = iota
	CueAlways
)

// PauseMode controls how much of a hover the pause flag suppresses.
type PauseMode int

const (
	// PauseSuppressEffects still tracks hover and plays cues but spawns no shapes or tint changes.
	PauseSuppressEffects PauseMode = iota
	// PauseSuppressAll only tracks hover.
	PauseSuppressAll
)

// Settings is the runtime configuration of one wallpaper instance.
type Settings struct {
	Variant  Variant
	GridSize int

	// Roster holds the asset keys of selectable characters, Labels their display names.
	Roster []string
	Labels []string

	AssetDir        string
	CueExt          string
	BackgroundTrack string

	Shapes       []string
	Palette      []string
	PaletteAlpha float64
	SizeFloor    float64
	SizeRange    float64
	Batch        BatchPolicy

	// EnterDuration overrides every shape's entry animation when non-zero.
	EnterDuration time.Duration

	Tints       []string
	TintAlpha   float64
	TintChance  float64
	InitialTint int

	Cues  CueGating
	Pause PauseMode

	// RosterSwitch enables the character menu and transitions.
	RosterSwitch bool
}

// Both pages start shapes at an eighth of the short side.
const defaultSizeFloor = 1.0 / 8

// Preset returns the built-in settings for a variant.
func Preset(v Variant) (*Settings, error) {
	switch v {
	case VariantClassic, "":
		return &Settings{
			Variant:         VariantClassic,
			GridSize:        8,
			Roster:          []string{"示例"},
			Labels:          []string{"Sample"},
			AssetDir:        "assets",
			CueExt:          ".wav",
			BackgroundTrack: "",
			Shapes:          []string{"circle", "polygon", "fan-to-circle", "square-trace"},
			Palette:         []string{"#ffcccb", "#add8e6", "#90ee90", "#ffc0cb"},
			PaletteAlpha:    1,
			SizeFloor:       defaultSizeFloor,
			SizeRange:       1.0 / 4,
			Batch:           BatchReplace,
			Cues:            CueMusicGated,
			Pause:           PauseSuppressEffects,
		}, nil
	case VariantRoster:
		return &Settings{
			Variant:         VariantRoster,
			GridSize:        4,
			Roster:          []string{"波奇", "虹夏", "喜多", "凉"},
			Labels:          []string{"Bocchi", "Nijika", "Kita", "Ryo"},
			AssetDir:        "assets",
			CueExt:          ".wav",
			BackgroundTrack: "Mixdown.mp3",
			Shapes:          []string{"circle", "polygon"},
			Palette:         []string{"#f6d6d6", "#a1eebd", "#7bd3ea", "#ffcce1", "#ffddae", "#ff9d3d"},
			PaletteAlpha:    0.7,
			SizeFloor:       defaultSizeFloor,
			SizeRange:       1.0 / 2,
			Batch:           BatchCoexist,
			EnterDuration:   500 * time.Millisecond,
			Tints:           []string{"#00008b", "#ffcce1", "#90ee90", "#000000", "#ffffff", "#ffffe0"},
			TintAlpha:       0.7,
			TintChance:      1.0 / 6,
			InitialTint:     5,
			Cues:            CueAlways,
			Pause:           PauseSuppressAll,
			RosterSwitch:    true,
		}, nil
	default:
		return nil, fmt.Errorf("unknown variant %q", v)
	}
}

// Load builds settings from the variant preset and applies overrides from an INI file.
// A missing file is not an error.
func Load(path string, v Variant) (*Settings, error) {
	s, err := Preset(v)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return s, s.Validate()
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return s, s.Validate()
		}
		return nil, err
	}

	f, err := ini.LoadSources(ini.LoadOptions{
		InsensitiveSections:     true,
		SkipUnrecognizableLines: true,
	}, path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if err := s.apply(f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, s.Validate()
}

func (s *Settings) apply(f *ini.File) error {
	if sec := f.Section("grid"); sec.HasKey("size") {
		n, err := sec.Key("size").Int()
		if err != nil {
			return fmt.Errorf("grid.size: %w", err)
		}
		s.GridSize = n
	}

	if sec := f.Section("roster"); sec.HasKey("names") {
		s.Roster = sec.Key("names").Strings(",")
		s.Labels = nil
	}
	if sec := f.Section("roster"); sec.HasKey("labels") {
		s.Labels = sec.Key("labels").Strings(",")
	}
	if sec := f.Section("roster"); sec.HasKey("switch") {
		b, err := sec.Key("switch").Bool()
		if err != nil {
			return fmt.Errorf("roster.switch: %w", err)
		}
		s.RosterSwitch = b
	}

	assets := f.Section("assets")
	s.AssetDir = assets.Key("dir").MustString(s.AssetDir)
	s.CueExt = assets.Key("cue_ext").MustString(s.CueExt)
	s.BackgroundTrack = assets.Key("background").MustString(s.BackgroundTrack)

	fx := f.Section("effects")
	if fx.HasKey("shapes") {
		s.Shapes = fx.Key("shapes").Strings(",")
	}
	if fx.HasKey("palette") {
		s.Palette = fx.Key("palette").Strings(",")
	}
	for _, fk := range []struct {
		key string
		dst *float64
	}{
		{"palette_alpha", &s.PaletteAlpha},
		{"size_floor", &s.SizeFloor},
		{"size_range", &s.SizeRange},
	} {
		if !fx.HasKey(fk.key) {
			continue
		}
		v, err := fx.Key(fk.key).Float64()
		if err != nil {
			return fmt.Errorf("effects.%s: %w", fk.key, err)
		}
		*fk.dst = v
	}
	if fx.HasKey("enter_ms") {
		ms, err := fx.Key("enter_ms").Int()
		if err != nil {
			return fmt.Errorf("effects.enter_ms: %w", err)
		}
		s.EnterDuration = time.Duration(ms) * time.Millisecond
	}
	if fx.HasKey("batch") {
		switch strings.ToLower(fx.Key("batch").String()) {
		case "replace":
			s.Batch = BatchReplace
		case "coexist":
			s.Batch = BatchCoexist
		default:
			return fmt.Errorf("effects.batch: unknown policy %q", fx.Key("batch").String())
		}
	}

	bg := f.Section("background")
	if bg.HasKey("tints") {
		s.Tints = bg.Key("tints").Strings(",")
	}
	for _, fk := range []struct {
		key string
		dst *float64
	}{
		{"tint_alpha", &s.TintAlpha},
		{"tint_chance", &s.TintChance},
	} {
		if !bg.HasKey(fk.key) {
			continue
		}
		v, err := bg.Key(fk.key).Float64()
		if err != nil {
			return fmt.Errorf("background.%s: %w", fk.key, err)
		}
		*fk.dst = v
	}
	if bg.HasKey("initial_tint") {
		n, err := bg.Key("initial_tint").Int()
		if err != nil {
			return fmt.Errorf("background.initial_tint: %w", err)
		}
		s.InitialTint = n
	}

	if sec := f.Section("audio"); sec.HasKey("cues") {
		switch strings.ToLower(sec.Key("cues").String()) {
		case "always":
			s.Cues = CueAlways
		case "music":
			s.Cues = CueMusicGated
		default:
			return fmt.Errorf("audio.cues: unknown gating %q", sec.Key("cues").String())
		}
	}

	if sec := f.Section("pause"); sec.HasKey("mode") {
		switch strings.ToLower(sec.Key("mode").String()) {
		case "effects":
			s.Pause = PauseSuppressEffects
		case "all":
			s.Pause = PauseSuppressAll
		default:
			return fmt.Errorf("pause.mode: unknown mode %q", sec.Key("mode").String())
		}
	}
	return nil
}

// Validate reports the first inconsistent field.
func (s *Settings) Validate() error {
	switch {
	case s.GridSize < 1:
		return errors.New("grid size must be at least 1")
	case len(s.Roster) == 0:
		return errors.New("roster is empty")
	case len(s.Labels) != 0 && len(s.Labels) != len(s.Roster):
		return fmt.Errorf("roster has %d names but %d labels", len(s.Roster), len(s.Labels))
	case len(s.Shapes) == 0:
		return errors.New("no shape kinds")
	case len(s.Palette) == 0:
		return errors.New("palette is empty")
	case s.EnterDuration < 0:
		return errors.New("enter duration must be non-negative")
	case s.SizeFloor < 0 || s.SizeRange < 0:
		return errors.New("size floor and range must be non-negative")
	case s.TintChance < 0 || s.TintChance > 1:
		return fmt.Errorf("tint chance %v outside [0,1]", s.TintChance)
	case len(s.Tints) > 0 && (s.InitialTint < 0 || s.InitialTint >= len(s.Tints)):
		return fmt.Errorf("initial tint %d outside palette of %d", s.InitialTint, len(s.Tints))
	}
	return nil
}

// Label returns the display name of roster entry i.
func (s *Settings) Label(i int) string {
	if i < len(s.Labels) {
		return s.Labels[i]
	}
	return s.Roster[i]
}
