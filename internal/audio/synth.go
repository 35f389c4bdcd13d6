package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/tui-ski/internal/core"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a finite oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(freq*1000) + 1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s with an attack ramp and a release tail.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.releaseSamples > 0 && e.position >= releaseStart {
			vol = math.Max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly; math.Log2(0) is -Inf, so zero is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// note is one shaped tone of a synthesized cue.
func note(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}

// SynthCue generates the built-in sound for a cue. Unknown cues yield nil.
func SynthCue(cue core.Cue, rate beep.SampleRate) beep.Streamer {
	switch cue {
	case core.CueCrash:
		// Low saw thud over a burst of snow noise
		d := 350 * time.Millisecond
		return beep.Mix(
			newVolume(note(90, d, WaveSaw, rate), 0.6),
			newVolume(NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, 0, d, rate), 0.4),
		)
	case core.CueBonus:
		// Bell: fundamental plus octave
		d := 250 * time.Millisecond
		return beep.Mix(
			newVolume(note(880, d, WaveSine, rate), 0.7),
			newVolume(note(1760, d, WaveSine, rate), 0.3),
		)
	case core.CueJump:
		// Rising square arpeggio
		d := 70 * time.Millisecond
		return newVolume(beep.Seq(
			note(523.25, d, WaveSquare, rate),
			note(659.25, d, WaveSquare, rate),
			note(783.99, d, WaveSquare, rate),
		), 0.4)
	case core.CueGameOver:
		// Falling sine phrase
		d := 300 * time.Millisecond
		return newVolume(beep.Seq(
			note(392, d, WaveSine, rate),
			note(329.63, d, WaveSine, rate),
			note(261.63, 2*d, WaveSine, rate),
		), 0.7)
	default:
		return nil
	}
}

// slopeMusic is an endless background groove: a kick every beat over a
// walking bass line.
type slopeMusic struct {
	sr      beep.SampleRate
	pos     int
	beatLen int
}

// NewSlopeMusic creates the synthesized music loop.
func NewSlopeMusic(sr beep.SampleRate) beep.Streamer {
	return &slopeMusic{
		sr:      sr,
		beatLen: sr.N(500 * time.Millisecond), // 120 BPM
	}
}

var bassLine = [...]float64{110, 110, 130.81, 98}

func (g *slopeMusic) Stream(samples [][2]float64) (n int, ok bool) {
	kickLen := g.sr.N(100 * time.Millisecond)
	for i := range samples {
		beat := g.pos / g.beatLen
		beatPos := g.pos % g.beatLen
		t := float64(beatPos) / float64(g.sr)

		kick := 0.0
		if beatPos < kickLen {
			env := 1.0 - float64(beatPos)/float64(kickLen)
			kick = 0.35 * env * math.Sin(2*math.Pi*60*(1+2*env)*t)
		}
		bass := 0.12 * math.Sin(2*math.Pi*bassLine[(beat/4)%len(bassLine)]*t)

		samples[i][0] = kick + bass
		samples[i][1] = kick + bass
		g.pos++
	}
	return len(samples), true
}

func (g *slopeMusic) Err() error { return nil }
