package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
)

// decodeFile decodes path by extension into a buffer at the target format.
func decodeFile(path string, target beep.Format) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupported)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != target.SampleRate {
		src = beep.Resample(4, format.SampleRate, target.SampleRate, streamer)
	}
	buf := beep.NewBuffer(target)
	buf.Append(src)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return buf, nil
}

// bufferCache keeps decoded clips keyed by path
type bufferCache struct {
	mu     sync.RWMutex
	format beep.Format
	store  map[string]*beep.Buffer
}

func newBufferCache(format beep.Format) *bufferCache {
	return &bufferCache{format: format, store: make(map[string]*beep.Buffer)}
}

// get returns the cached buffer or decodes on demand
func (c *bufferCache) get(path string) (*beep.Buffer, error) {
	c.mu.RLock()
	if buf, ok := c.store[path]; ok {
		c.mu.RUnlock()
		return buf, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if buf, ok := c.store[path]; ok {
		return buf, nil
	}
	buf, err := decodeFile(path, c.format)
	if err != nil {
		return nil, err
	}
	c.store[path] = buf
	return buf, nil
}

// forget drops every cached clip
func (c *bufferCache) forget() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]*beep.Buffer)
}
