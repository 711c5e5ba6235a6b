package ebitenhost

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/phanxgames/folio/sound"
)

// AudioPlayer plays effects from a sound.Bank through an ebiten audio
// context. It implements folio.SoundPlayer.
type AudioPlayer struct {
	ctx     *audio.Context
	bank    *sound.Bank
	players map[string]*audio.Player
	missing map[string]bool
}

// NewAudioPlayer creates the process-wide audio context at the bank's rate.
// Only one may exist per process.
func NewAudioPlayer(bank *sound.Bank) *AudioPlayer {
	return &AudioPlayer{
		ctx:     audio.NewContext(int(bank.SampleRate())),
		bank:    bank,
		players: make(map[string]*audio.Player),
		missing: make(map[string]bool),
	}
}

// Play starts the named effect from the beginning. A rapid repeat while the
// previous play is still sounding overlaps it on a fresh player. Unknown
// names are logged once.
func (a *AudioPlayer) Play(name string) {
	p, ok := a.players[name]
	if ok && !p.IsPlaying() {
		_ = p.Rewind()
		p.Play()
		return
	}
	data, found := a.bank.PCM(name)
	if !found {
		if !a.missing[name] {
			a.missing[name] = true
			log.Printf("sound %q not in bank", name)
		}
		return
	}
	p = a.ctx.NewPlayerFromBytes(data)
	if !ok {
		a.players[name] = p
	}
	p.Play()
}
