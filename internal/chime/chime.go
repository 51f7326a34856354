// Package chime plays short earcons when trust signals appear. Tones are
// synthesized, so no audio assets ship with the binary.
package chime

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/hammamikhairi/voicemode/internal/domain"
	"github.com/hammamikhairi/voicemode/internal/logger"
)

// Sink plays PCM audio. Play blocks until done.
type Sink interface {
	Play(pcm []byte) error
	Stop()
}

// Compile-time interface checks.
var (
	_ domain.Observer = (*Chime)(nil)
	_ Sink            = (*Silent)(nil)
)

// Silent is a sink that discards audio. Used when no audio device is
// available or chimes are disabled.
type Silent struct {
	log *logger.Logger
}

// NewSilent creates a silent sink.
func NewSilent(log *logger.Logger) *Silent {
	return &Silent{log: log}
}

func (s *Silent) Play(pcm []byte) error {
	s.log.Debug("chime no-op: would play %d bytes", len(pcm))
	return nil
}

func (s *Silent) Stop() {}

// Option configures the chime.
type Option func(*Chime)

// WithTone replaces the earcon played for a signal category.
func WithTone(category string, pcm []byte) Option {
	return func(c *Chime) {
		c.tones[category] = pcm
	}
}

// Chime is a session observer that plays an earcon for every trust signal.
// A newer signal interrupts the earcon of an older one.
type Chime struct {
	sink  Sink
	log   *logger.Logger
	tones map[string][]byte
}

// New creates a chime over sink with the stock earcons.
func New(sink Sink, log *logger.Logger, opts ...Option) *Chime {
	c := &Chime{
		sink: sink,
		log:  log,
		tones: map[string][]byte{
			"info":    Melody([]float64{660, 880}, 90*time.Millisecond, 0.25),
			"success": Melody([]float64{784, 1047, 1319}, 70*time.Millisecond, 0.25),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SignalShown plays the earcon for the signal's category in the
// background.
func (c *Chime) SignalShown(sig domain.TrustSignal) {
	pcm, ok := c.tones[sig.Category]
	if !ok {
		pcm, ok = c.tones["info"]
	}
	if !ok || len(pcm) == 0 {
		return
	}
	c.sink.Stop()
	go func() {
		if err := c.sink.Play(pcm); err != nil {
			c.log.Warn("chime for %s: %v", sig.ID, err)
		}
	}()
}

func (c *Chime) StateChanged(from, to domain.SessionState) {}
func (c *Chime) MessageCommitted(msg domain.Message)       {}
func (c *Chime) FeedbackSubmitted(fb domain.Feedback)      {}

// Tone synthesizes a sine wave as 16-bit little-endian mono PCM. Volume is
// in [0, 1]. A short linear fade at both ends avoids clicks.
func Tone(freq float64, d time.Duration, volume float64) []byte {
	n := int(d.Seconds() * SampleRate)
	if n <= 0 {
		return nil
	}
	volume = math.Max(0, math.Min(1, volume))
	fade := n / 10
	buf := make([]byte, n*2)
	for i := 0; i < n; i++ {
		env := 1.0
		if fade > 0 {
			switch {
			case i < fade:
				env = float64(i) / float64(fade)
			case i >= n-fade:
				env = float64(n-1-i) / float64(fade)
			}
		}
		v := math.Sin(2*math.Pi*freq*float64(i)/SampleRate) * volume * env
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(int16(v*math.MaxInt16)))
	}
	return buf
}

// Melody concatenates one tone per frequency.
func Melody(freqs []float64, note time.Duration, volume float64) []byte {
	var out []byte
	for _, f := range freqs {
		out = append(out, Tone(f, note, volume)...)
	}
	return out
}
