// Package audio is the sound service used by the presentation layer.
package audio

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// One-shot effects.
const (
	EffectFlip  = "flip"
	EffectMatch = "match"
	EffectWin   = "win"
	EffectLose  = "lose"
)

// Player plays background music and one-shot effects. Tracks are the
// catalog music payloads.
type Player interface {
	PlayMusic(track string, loop bool)
	PauseMusic()
	ResumeMusic()
	StopMusic()
	SetVolume(v float64)
	PlayOneShot(effect string)
	IsPlaying() bool
}

// Silent tracks playback state without producing sound. When a bell writer
// is set, win and match effects ring the terminal bell.
type Silent struct {
	mu      sync.Mutex
	track   string
	loop    bool
	playing bool
	volume  float64
	bell    io.Writer
	logger  *log.Logger
}

// NewSilent returns a player at full volume. bell may be nil.
func NewSilent(bell io.Writer, logger *log.Logger) *Silent {
	return &Silent{volume: 1, bell: bell, logger: logger.With("component", "audio")}
}

func (s *Silent) PlayMusic(track string, loop bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.track, s.loop, s.playing = track, loop, track != ""
	s.logger.Debug("play music", "track", track, "loop", loop)
}

func (s *Silent) PauseMusic() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = false
}

// ResumeMusic restarts the last track, if any.
func (s *Silent) ResumeMusic() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = s.track != ""
}

func (s *Silent) StopMusic() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.track, s.playing = "", false
}

// SetVolume clamps v to 0..1.
func (s *Silent) SetVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = min(max(v, 0), 1)
}

func (s *Silent) PlayOneShot(effect string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Debug("play effect", "effect", effect)
	if s.bell == nil || s.volume == 0 {
		return
	}
	if effect == EffectWin || effect == EffectMatch {
		if _, err := io.WriteString(s.bell, "\a"); err != nil {
			s.logger.Warn("bell failed", "err", err)
		}
	}
}

func (s *Silent) IsPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// Track returns the current track.
func (s *Silent) Track() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.track
}

// Volume returns the current volume.
func (s *Silent) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}
