// Package audio plays the game's sound cues and background music through
// the system speaker. Cue sounds come from WAV files when present and are
// synthesized otherwise.
package audio

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/tui-ski/internal/core"
)

// MusicFile is the name of the optional background track.
const MusicFile = "music.wav"

// Source tells where a sound came from.
type Source string

const (
	SourceFile  Source = "file"
	SourceSynth Source = "synth"
)

// Options configures a Player.
type Options struct {
	// Dir is the asset directory; sounds are read from Dir/sounds.
	Dir        string
	SampleRate int
	Volume     float64 // 0.0 - 1.0
	Music      bool
	Logger     *log.Logger
}

// Player implements core.AudioSink on top of a beep mixer.
// Until Init succeeds every call is a no-op.
type Player struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	volume      float64
	musicOn     bool
	logger      *log.Logger
	cues        map[core.Cue]*beep.Buffer
	sources     map[string]Source
	music       *beep.Buffer // nil = synthesized loop
	mixer       *beep.Mixer
	musicCtrl   *beep.Ctrl
	initialized bool
}

var _ core.AudioSink = (*Player)(nil)

// New creates a player and loads every cue. Missing or unreadable files fall
// back to synthesized sounds.
func New(opts Options) *Player {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rate := beep.SampleRate(opts.SampleRate)
	if rate <= 0 {
		rate = beep.SampleRate(44100)
	}

	p := &Player{
		rate:    rate,
		volume:  opts.Volume,
		musicOn: opts.Music,
		logger:  logger,
		cues:    make(map[core.Cue]*beep.Buffer),
		sources: make(map[string]Source),
		mixer:   &beep.Mixer{},
	}

	dir := ""
	if opts.Dir != "" {
		dir = filepath.Join(opts.Dir, "sounds")
	}

	for _, cue := range core.Cues() {
		buf, err := p.loadFile(dir, string(cue)+".wav")
		if err == nil {
			p.cues[cue] = buf
			p.sources[string(cue)] = SourceFile
			continue
		}
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("cannot load sound, using synth", "cue", cue, "err", err)
		}
		p.cues[cue] = p.render(SynthCue(cue, rate))
		p.sources[string(cue)] = SourceSynth
	}

	buf, err := p.loadFile(dir, MusicFile)
	switch {
	case err == nil:
		p.music = buf
		p.sources[MusicFile] = SourceFile
	case !errors.Is(err, fs.ErrNotExist):
		logger.Warn("cannot load music, using synth", "err", err)
		fallthrough
	default:
		p.sources[MusicFile] = SourceSynth
	}

	return p
}

func (p *Player) loadFile(dir, name string) (*beep.Buffer, error) {
	if dir == "" {
		return nil, fs.ErrNotExist
	}
	return LoadWAV(filepath.Join(dir, name), p.rate)
}

// render buffers a finite streamer at the player's rate.
func (p *Player) render(s beep.Streamer) *beep.Buffer {
	buf := beep.NewBuffer(beep.Format{SampleRate: p.rate, NumChannels: 2, Precision: 2})
	if s != nil {
		buf.Append(s)
	}
	return buf
}

// LoadWAV decodes a WAV file into memory, resampled to rate.
func LoadWAV(path string, rate beep.SampleRate) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	s, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer s.Close()

	var src beep.Streamer = s
	if format.SampleRate != rate {
		src = beep.Resample(4, format.SampleRate, rate, s)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: format.NumChannels, Precision: format.Precision})
	buf.Append(src)
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return buf, nil
}

// Init opens the speaker. A failure leaves the player silent; callers
// should log it and carry on.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Sources reports whether each cue and the music came from a file or the synth.
func (p *Player) Sources() map[string]Source {
	out := make(map[string]Source, len(p.sources))
	for k, v := range p.sources {
		out[k] = v
	}
	return out
}

// Play starts a cue. Overlapping cues are mixed.
func (p *Player) Play(cue core.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	buf, ok := p.cues[cue]
	if !p.initialized || !ok || buf.Len() == 0 {
		return
	}

	speaker.Lock()
	p.mixer.Add(newVolume(buf.Streamer(0, buf.Len()), p.volume))
	speaker.Unlock()
}

// StartMusic starts the background loop unless it is already playing.
func (p *Player) StartMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || !p.musicOn || p.musicCtrl != nil {
		return
	}

	var track beep.Streamer
	if p.music != nil && p.music.Len() > 0 {
		track = beep.Loop(-1, p.music.Streamer(0, p.music.Len()))
	} else {
		track = NewSlopeMusic(p.rate)
	}

	p.musicCtrl = &beep.Ctrl{Streamer: newVolume(track, p.volume*0.5)}
	speaker.Lock()
	p.mixer.Add(p.musicCtrl)
	speaker.Unlock()
}

// StopMusic silences the background loop. Calling it twice is harmless.
func (p *Player) StopMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.musicCtrl == nil {
		return
	}

	speaker.Lock()
	p.musicCtrl.Paused = true
	p.musicCtrl.Streamer = nil
	speaker.Unlock()
	p.musicCtrl = nil
}

// Close stops all sound and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Clear()
	speaker.Close()
	p.musicCtrl = nil
	p.initialized = false
}
