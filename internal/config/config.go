package config

import "time"

const (
	WindowWidth  = 1024
	WindowHeight = 768

	// Background level tap
	LevelRingSize   = 8192
	SmoothingFactor = 0.6

	// Menu button dimensions (top-right corner)
	MenuButtonWidth  = 40
	MenuButtonHeight = 40
	MenuButtonMargin = 16

	// Menu panel
	MenuPanelWidth  = 280
	MenuItemHeight  = 36
	MenuItemSpacing = 8

	// Timings
	BatchExpiry  = 1500 * time.Millisecond
	CommitDelay  = 250 * time.Millisecond
	WipeDuration = 1 * time.Second
	TintFade     = 300 * time.Millisecond
	HoverFade    = 200 * time.Millisecond

	// Tint overlay opacity over the portrait
	TintOpacity = 0.7

	// Wipe line thickness and glow
	WipeLineWidth = 2
	WipeGlowWidth = 10
)
