package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/tui-ski/internal/core"
)

// drain reads s to the end and returns the sample count and peak amplitude.
func drain(t *testing.T, s beep.Streamer, limit int) (n int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	for n < limit {
		k, ok := s.Stream(buf)
		for i := 0; i < k; i++ {
			for _, v := range buf[i] {
				if v > peak {
					peak = v
				} else if -v > peak {
					peak = -v
				}
			}
		}
		n += k
		if !ok {
			return n, peak
		}
	}
	return n, peak
}

func TestOscillatorLengthAndRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		osc := NewOscillator(440, 100*time.Millisecond, wave, rate)
		n, peak := drain(t, osc, 1<<20)
		if n != rate.N(100*time.Millisecond) {
			t.Errorf("wave %d: streamed %d samples, want %d", wave, n, rate.N(100*time.Millisecond))
		}
		if peak > 1.0 || peak == 0 {
			t.Errorf("wave %d: peak %f outside (0, 1]", wave, peak)
		}
		if osc.Err() != nil {
			t.Errorf("wave %d: unexpected error %v", wave, osc.Err())
		}
	}
}

func TestEnvelopeFades(t *testing.T) {
	rate := beep.SampleRate(1000)
	d := 100 * time.Millisecond
	env := NewEnvelope(NewOscillator(0, d, WaveSquare, rate), d, 10*time.Millisecond, 10*time.Millisecond, rate)

	samples := make([][2]float64, 200)
	n, _ := env.Stream(samples)
	if n != 100 {
		t.Fatalf("envelope streamed %d samples, want 100", n)
	}
	if samples[0][0] != 0 {
		t.Errorf("attack should start silent, got %f", samples[0][0])
	}
	if samples[50][0] != 1 {
		t.Errorf("sustain should pass through, got %f", samples[50][0])
	}
	if samples[99][0] >= samples[90][0] {
		t.Errorf("release should fade: %f then %f", samples[90][0], samples[99][0])
	}
}

func TestSynthCues(t *testing.T) {
	rate := beep.SampleRate(22050)
	for _, cue := range core.Cues() {
		s := SynthCue(cue, rate)
		if s == nil {
			t.Fatalf("no synth for cue %q", cue)
		}
		n, peak := drain(t, s, int(rate)*5)
		if n == 0 || n >= int(rate)*5 {
			t.Errorf("cue %q streamed %d samples, want a short finite sound", cue, n)
		}
		if peak == 0 {
			t.Errorf("cue %q is silent", cue)
		}
	}

	if SynthCue("nope", rate) != nil {
		t.Error("unknown cue should have no synth")
	}
}

func TestSlopeMusicIsEndless(t *testing.T) {
	m := NewSlopeMusic(beep.SampleRate(8000))
	n, peak := drain(t, m, 8000*3)
	if n != 8000*3 {
		t.Errorf("music stopped after %d samples", n)
	}
	if peak == 0 || peak > 1 {
		t.Errorf("music peak = %f", peak)
	}
}

func writeWAV(t *testing.T, path string, rate beep.SampleRate, d time.Duration) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, NewOscillator(440, d, WaveSine, rate), format); err != nil {
		t.Fatalf("wav.Encode: %v", err)
	}
}

func TestLoadWAVResamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	writeWAV(t, path, 22050, 200*time.Millisecond)

	buf, err := LoadWAV(path, 44100)
	if err != nil {
		t.Fatalf("LoadWAV: %v", err)
	}
	want := beep.SampleRate(44100).N(200 * time.Millisecond)
	if diff := buf.Len() - want; diff < -100 || diff > 100 {
		t.Errorf("resampled length = %d, want about %d", buf.Len(), want)
	}
	if buf.Format().SampleRate != 44100 {
		t.Errorf("buffer rate = %d", buf.Format().SampleRate)
	}
}

func TestLoadWAVRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	if err := os.WriteFile(path, []byte("not a wav"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadWAV(path, 44100); err == nil {
		t.Error("expected a decode error")
	}
}

func TestPlayerSources(t *testing.T) {
	dir := t.TempDir()
	writeWAV(t, filepath.Join(dir, "sounds", "crash.wav"), 44100, 50*time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "sounds", "bonus.wav"), []byte("junk"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := New(Options{Dir: dir, SampleRate: 44100, Volume: 1, Music: true})
	src := p.Sources()

	want := map[string]Source{
		"crash":    SourceFile,
		"bonus":    SourceSynth,
		"jump":     SourceSynth,
		"gameover": SourceSynth,
		MusicFile:  SourceSynth,
	}
	for name, w := range want {
		if src[name] != w {
			t.Errorf("source of %s = %q, want %q", name, src[name], w)
		}
	}
	for _, cue := range core.Cues() {
		if p.cues[cue].Len() == 0 {
			t.Errorf("cue %q has no samples", cue)
		}
	}
}

func TestPlayerSilentBeforeInit(t *testing.T) {
	p := New(Options{SampleRate: 8000, Volume: 0.5, Music: true})

	p.Play(core.CueCrash)
	p.StartMusic()
	p.StopMusic()
	p.StopMusic()
	p.Close()

	if p.mixer.Len() != 0 {
		t.Errorf("mixer has %d streamers before Init", p.mixer.Len())
	}
	if p.musicCtrl != nil {
		t.Error("music should not start before Init")
	}
}
