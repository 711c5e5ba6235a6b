// Package sound synthesizes the scene's sound effects so that no audio
// assets need to ship with the binary.
package sound

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// SampleRate is the rate every effect is rendered at.
const SampleRate = beep.SampleRate(44100)

const (
	crunchDuration = 90 * time.Millisecond
	crunchAttack   = 2 * time.Millisecond
	crunchRelease  = 70 * time.Millisecond

	zoomDuration = 450 * time.Millisecond
	zoomAttack   = 30 * time.Millisecond
	zoomRelease  = 200 * time.Millisecond
	zoomFrom     = 180.0
	zoomTo       = 1400.0
)

// sweep is a sine oscillator whose frequency moves linearly from `from` to
// `to` over its duration.
type sweep struct {
	from, to float64
	phase    float64
	position int
	duration int
	rate     beep.SampleRate
}

func newSweep(from, to float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sweep{from: from, to: to, duration: rate.N(duration), rate: rate}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.duration {
			return i, i > 0
		}
		t := float64(s.position) / float64(s.duration)
		freq := s.from + (s.to-s.from)*t
		val := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// noise is uniform white noise from r.
func noise(r *rand.Rand) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := r.Float64()*2 - 1
			samples[i][0] = v
			samples[i][1] = v
		}
		return len(samples), true
	})
}

// envelope applies a linear attack and release to a stream of total length
// duration.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: beep.Take(rate.N(duration), s),
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	releaseStart := e.total - e.release
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if e.release > 0 && e.position >= releaseStart {
			vol = math.Max(float64(e.total-e.position)/float64(e.release), 0)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales s by the linear gain vol. Zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Crunch is the short percussive noise played for every counted tap: a
// noise burst over a low thump.
func Crunch(rate beep.SampleRate, seed int64) beep.Streamer {
	burst := newEnvelope(noise(rand.New(rand.NewSource(seed))), crunchDuration, crunchAttack, crunchRelease, rate)

	var thump beep.Streamer = beep.Silence(rate.N(crunchDuration))
	if tone, err := generators.SineTone(rate, 110); err == nil {
		thump = newEnvelope(tone, crunchDuration, crunchAttack, crunchDuration/2, rate)
	}
	return withVolume(beep.Mix(withVolume(burst, 0.5), withVolume(thump, 0.4)), 0.8)
}

// Zoom is the rising whoosh played when the portrait explodes.
func Zoom(rate beep.SampleRate) beep.Streamer {
	rise := newEnvelope(newSweep(zoomFrom, zoomTo, zoomDuration, rate), zoomDuration, zoomAttack, zoomRelease, rate)
	return withVolume(rise, 0.6)
}
