package media

import (
	"fmt"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/iburimskiy/hover-wallpaper/internal/config"
)

const sampleRate = beep.SampleRate(44100)

type channel struct {
	path string

	// gen increments whenever the playing stream is replaced so stale
	// end-of-stream callbacks can be told apart.
	gen    int
	loaded string
	seeker beep.StreamSeeker
	ctrl   *beep.Ctrl
	active bool
}

// Speaker is the beep-backed Player. Every channel shares one mixer on the
// default output device.
type Speaker struct {
	mu          sync.Mutex
	format      beep.Format
	mixer       *beep.Mixer
	cache       *bufferCache
	channels    map[Channel]*channel
	tap         *levelTap
	initialized bool
}

func NewSpeaker() *Speaker {
	format := beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}
	return &Speaker{
		format:   format,
		mixer:    &beep.Mixer{},
		cache:    newBufferCache(format),
		channels: make(map[Channel]*channel),
	}
}

// Init opens the output device.
func (s *Speaker) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(s.format.SampleRate, s.format.SampleRate.N(time.Second/20)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Close silences every channel.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	for _, c := range s.channels {
		if c.ctrl != nil {
			c.ctrl.Streamer = nil
		}
		c.active = false
	}
	s.mixer.Clear()
	speaker.Unlock()
	s.initialized = false
}

func (s *Speaker) channel(ch Channel) *channel {
	c, ok := s.channels[ch]
	if !ok {
		c = &channel{}
		s.channels[ch] = c
	}
	return c
}

// SetSource binds ch to path. A playing stream from the old source stops.
func (s *Speaker) SetSource(ch Channel, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.channel(ch)
	if c.path == path {
		return
	}
	c.path = path
	if c.ctrl == nil {
		return
	}
	if s.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	c.ctrl.Streamer = nil
	c.ctrl = nil
	c.seeker = nil
	c.loaded = ""
	c.active = false
	c.gen++
}

func (s *Speaker) Source(ch Channel) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.channels[ch]; ok {
		return c.path
	}
	return ""
}

// Play starts or resumes ch. A finished stream restarts from the beginning.
func (s *Speaker) Play(ch Channel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return fmt.Errorf("%s: %w", ch, ErrNotInitialized)
	}
	c := s.channel(ch)
	if c.path == "" {
		return fmt.Errorf("%s: %w", ch, ErrNoSource)
	}
	buf, err := s.cache.get(c.path)
	if err != nil {
		return fmt.Errorf("%s: %w", ch, err)
	}

	speaker.Lock()
	defer speaker.Unlock()

	if c.seeker == nil || c.loaded != c.path {
		if c.ctrl != nil {
			c.ctrl.Streamer = nil
		}
		c.gen++
		c.loaded = c.path
		c.seeker = buf.Streamer(0, buf.Len())
		var stream beep.Streamer = c.seeker
		if ch == Background {
			s.tap = newLevelTap(beep.Loop(-1, c.seeker), config.LevelRingSize)
			stream = s.tap
		}
		c.ctrl = &beep.Ctrl{Streamer: stream}
		c.active = false
	}
	if c.seeker.Position() >= c.seeker.Len() {
		if err := c.seeker.Seek(0); err != nil {
			return fmt.Errorf("%s: %w", ch, err)
		}
	}
	c.ctrl.Paused = false
	if !c.active {
		c.active = true
		gen := c.gen
		s.mixer.Add(beep.Seq(c.ctrl, beep.Callback(func() {
			// Runs on the speaker goroutine with the speaker lock held
			if c.gen == gen {
				c.active = false
			}
		})))
	}
	return nil
}

func (s *Speaker) Pause(ch Channel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.channels[ch]
	if !ok || c.ctrl == nil {
		return nil
	}
	if s.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	c.ctrl.Paused = true
	return nil
}

// Seek moves ch to sample, clamped to the clip.
func (s *Speaker) Seek(ch Channel, sample int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.channels[ch]
	if !ok || c.seeker == nil {
		return nil
	}
	if sample < 0 {
		sample = 0
	}
	if n := c.seeker.Len(); sample > n {
		sample = n
	}
	if s.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	if err := c.seeker.Seek(sample); err != nil {
		return fmt.Errorf("%s: %w", ch, err)
	}
	return nil
}

// Reload drops decoded clips so the next Play rereads files, e.g. after the
// asset folder changed.
func (s *Speaker) Reload() {
	s.cache.forget()
}

// Level returns the background track's loudness over the last n samples.
func (s *Speaker) Level(n int) float64 {
	s.mu.Lock()
	tap := s.tap
	s.mu.Unlock()

	if tap == nil {
		return 0
	}
	return tap.level(n)
}
