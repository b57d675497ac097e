// Package media plays per-cell cues and the looping background track.
package media

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
)

var (
	ErrNotInitialized = errors.New("audio output not initialized")
	ErrNoSource       = errors.New("channel has no source")
	ErrUnsupported    = errors.New("unsupported audio format")
)

// Channel identifies an audio channel: cells are 0..N²-1.
type Channel int

// Background is the single looping long-form track.
const Background Channel = -1

func (c Channel) String() string {
	if c == Background {
		return "background"
	}
	return "cell " + strconv.Itoa(int(c))
}

// Player is the media contract the scene drives. SetSource never fails;
// decoding problems surface from Play.
type Player interface {
	SetSource(ch Channel, path string)
	Source(ch Channel) string
	Play(ch Channel) error
	Pause(ch Channel) error
	Seek(ch Channel, sample int) error
}

// CueName returns the file name of a cell's cue: {character}{index+1}{ext}.
func CueName(character string, index int, ext string) string {
	return fmt.Sprintf("%s%d%s", character, index+1, ext)
}

// CuePath joins CueName onto dir.
func CuePath(dir, character string, index int, ext string) string {
	return filepath.Join(dir, CueName(character, index, ext))
}
