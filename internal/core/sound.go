package core

// Cue names a fire-and-forget sound event.
type Cue string

// Cues emitted by the game.
const (
	CueCrash    Cue = "crash"
	CueBonus    Cue = "bonus"
	CueJump     Cue = "jump"
	CueGameOver Cue = "gameover"
)

// Cues lists every cue in a stable order.
func Cues() []Cue {
	return []Cue{CueBonus, CueCrash, CueGameOver, CueJump}
}

// AudioSink receives sound events from the game. Calls must not block.
type AudioSink interface {
	Play(cue Cue)
	StartMusic()
	StopMusic()
}

// NopAudio is a silent AudioSink.
type NopAudio struct{}

func (NopAudio) Play(Cue)    {}
func (NopAudio) StartMusic() {}
func (NopAudio) StopMusic()  {}
