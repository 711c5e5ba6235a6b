package sound

import (
	"sort"

	"github.com/gopxl/beep"
)

// Names of the built-in effects. They match the asset names the scene
// configuration refers to.
const (
	CrunchName = "crunch.wav"
	ZoomName   = "zoom.wav"
)

// Bank holds rendered effects twice: as beep buffers for the speaker and as
// signed 16-bit little-endian stereo PCM, the format ebiten's audio players
// consume.
type Bank struct {
	rate    beep.SampleRate
	buffers map[string]*beep.Buffer
	pcm     map[string][]byte
}

// NewBank renders the built-in effects at rate.
func NewBank(rate beep.SampleRate) *Bank {
	b := &Bank{
		rate:    rate,
		buffers: make(map[string]*beep.Buffer),
		pcm:     make(map[string][]byte),
	}
	b.Add(CrunchName, Crunch(rate, 1))
	b.Add(ZoomName, Zoom(rate))
	return b
}

// Add renders s and stores it under name, replacing any previous entry.
func (b *Bank) Add(name string, s beep.Streamer) {
	buf := beep.NewBuffer(beep.Format{SampleRate: b.rate, NumChannels: 2, Precision: 2})
	buf.Append(s)
	b.buffers[name] = buf
	b.pcm[name] = Render(buf.Streamer(0, buf.Len()))
}

// Streamer returns a fresh streamer over the named effect.
func (b *Bank) Streamer(name string) (beep.StreamSeeker, bool) {
	buf, ok := b.buffers[name]
	if !ok {
		return nil, false
	}
	return buf.Streamer(0, buf.Len()), true
}

// PCM returns the rendered bytes for name.
func (b *Bank) PCM(name string) ([]byte, bool) {
	data, ok := b.pcm[name]
	return data, ok
}

// Names returns the stored effect names in sorted order.
func (b *Bank) Names() []string {
	names := make([]string, 0, len(b.pcm))
	for n := range b.pcm {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SampleRate returns the rate the bank was rendered at.
func (b *Bank) SampleRate() beep.SampleRate { return b.rate }

// Render drains s into signed 16-bit little-endian stereo PCM. Samples are
// clamped to [-1, 1].
func Render(s beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			for _, v := range frame {
				q := int16(max(-1, min(1, v)) * 32767)
				out = append(out, byte(q), byte(uint16(q)>>8))
			}
		}
		if !ok {
			return out
		}
	}
}
