package termhost

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep/speaker"
	"github.com/phanxgames/folio/sound"
)

// SpeakerPlayer plays bank effects through the system speaker.
type SpeakerPlayer struct {
	bank *sound.Bank
}

// NewSpeakerPlayer initializes the speaker at the bank's rate with a 100ms
// buffer. Call Close when done.
func NewSpeakerPlayer(bank *sound.Bank) (*SpeakerPlayer, error) {
	rate := bank.SampleRate()
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return &SpeakerPlayer{bank: bank}, nil
}

// Play implements folio.SoundPlayer. Unknown names are ignored.
func (p *SpeakerPlayer) Play(name string) {
	if s, ok := p.bank.Streamer(name); ok {
		speaker.Play(s)
	}
}

// Close stops playback and releases the device.
func (p *SpeakerPlayer) Close() {
	speaker.Close()
}

// BellPlayer rings the terminal bell for every sound. It is the fallback
// when no audio device is available.
type BellPlayer struct {
	Screen tcell.Screen
}

// Play implements folio.SoundPlayer.
func (p BellPlayer) Play(string) {
	_ = p.Screen.Beep()
}
