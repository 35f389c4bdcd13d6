package ski

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-ski/internal/core"
)

// recordingAudio captures sound events in order.
type recordingAudio struct {
	cues        []core.Cue
	musicStarts int
	musicStops  int
}

func (r *recordingAudio) Play(c core.Cue) { r.cues = append(r.cues, c) }
func (r *recordingAudio) StartMusic()     { r.musicStarts++ }
func (r *recordingAudio) StopMusic()      { r.musicStops++ }

func (r *recordingAudio) count(c core.Cue) int {
	n := 0
	for _, got := range r.cues {
		if got == c {
			n++
		}
	}
	return n
}

type resolverFixture struct {
	player   Player
	hazards  *Pool
	bonuses  *Pool
	ramps    *Pool
	audio    *recordingAudio
	resolver Resolver
}

func newResolverFixture(retrigger bool) *resolverFixture {
	rng := rand.New(rand.NewSource(1))
	audio := &recordingAudio{}
	return &resolverFixture{
		player:  NewPlayer(18, 36, 5, testBoard),
		hazards: NewPool(Template{Category: CategoryHazard, W: 18, H: 36, Speed: 4, Points: 10}, 3, testBoard, rng),
		bonuses: NewPool(Template{Category: CategoryBonus, W: 12, H: 24, Speed: 4, Points: 10}, 3, testBoard, rng),
		ramps:   NewPool(Template{Category: CategoryRamp, W: 24, H: 12, Speed: 4, Points: 10}, 3, testBoard, rng),
		audio:   audio,
		resolver: Resolver{
			CrashTime:     60,
			RampRetrigger: retrigger,
			Audio:         audio,
		},
	}
}

func (f *resolverFixture) resolve() Outcome {
	return f.resolver.Resolve(&f.player, f.hazards, f.bonuses, f.ramps)
}

func TestResolveBonusPickup(t *testing.T) {
	f := newResolverFixture(false)
	f.bonuses.put(0, f.player.X, f.player.Y)

	out := f.resolve()

	if out.Bonuses != 1 {
		t.Errorf("Bonuses = %d, want 1", out.Bonuses)
	}
	if f.player.Score != 10 {
		t.Errorf("score = %d, want 10", f.player.Score)
	}
	if f.player.Crashes != 0 {
		t.Errorf("crashes = %d, want 0", f.player.Crashes)
	}
	if f.bonuses.Len() != 0 {
		t.Error("bonus should be removed on pickup")
	}
	if f.audio.count(core.CueBonus) != 1 {
		t.Errorf("cues = %v, want one bonus", f.audio.cues)
	}
}

func TestResolveRampLaunch(t *testing.T) {
	f := newResolverFixture(false)
	f.ramps.put(1, f.player.X, f.player.Y+10)

	out := f.resolve()

	if out.Launches != 1 {
		t.Errorf("Launches = %d, want 1", out.Launches)
	}
	if f.player.Score != 10 || !f.player.Jumping {
		t.Errorf("score=%d jumping=%v, want 10 true", f.player.Score, f.player.Jumping)
	}
	if _, ok := f.ramps.Get(1); !ok {
		t.Error("ramp should stay active after contact")
	}
	if f.audio.count(core.CueJump) != 1 {
		t.Errorf("cues = %v, want one jump", f.audio.cues)
	}
}

func TestResolveEveryOverlappingHazard(t *testing.T) {
	f := newResolverFixture(false)
	f.hazards.put(0, f.player.X, f.player.Y)
	f.hazards.put(2, f.player.X+4, f.player.Y+4)
	f.hazards.put(1, 0, 0)

	out := f.resolve()

	if out.Crashes != 2 || f.player.Crashes != 2 {
		t.Errorf("crashes = %d/%d, want 2", out.Crashes, f.player.Crashes)
	}
	if f.player.Score != -20 {
		t.Errorf("score = %d, want -20", f.player.Score)
	}
	if f.player.CrashTimer != 60 {
		t.Errorf("crash timer = %d, want 60", f.player.CrashTimer)
	}
	if f.hazards.Len() != 1 {
		t.Errorf("hazards left = %d, want 1", f.hazards.Len())
	}
}

func TestResolveOrder(t *testing.T) {
	f := newResolverFixture(false)
	f.ramps.put(0, f.player.X, f.player.Y)
	f.bonuses.put(0, f.player.X, f.player.Y)
	f.hazards.put(0, f.player.X, f.player.Y)

	f.resolve()

	want := []core.Cue{core.CueCrash, core.CueBonus, core.CueJump}
	if len(f.audio.cues) != len(want) {
		t.Fatalf("cues = %v, want %v", f.audio.cues, want)
	}
	for i := range want {
		if f.audio.cues[i] != want[i] {
			t.Errorf("cue %d = %v, want %v", i, f.audio.cues[i], want[i])
		}
	}
	if f.player.Score != 10 {
		t.Errorf("score = %d, want 10", f.player.Score)
	}
}

func TestResolveSkippedWhileAirborne(t *testing.T) {
	f := newResolverFixture(false)
	f.player.JumpTimer = 1
	f.hazards.put(0, f.player.X, f.player.Y)
	f.bonuses.put(0, f.player.X, f.player.Y)

	out := f.resolve()

	if !out.Skipped {
		t.Error("airborne resolution should be skipped")
	}
	if f.player.Score != 0 || f.player.Crashes != 0 {
		t.Errorf("airborne player scored %d with %d crashes", f.player.Score, f.player.Crashes)
	}
	if f.hazards.Len() != 1 || f.bonuses.Len() != 1 {
		t.Error("nothing should be removed while airborne")
	}
	if len(f.audio.cues) != 0 {
		t.Errorf("cues = %v, want none", f.audio.cues)
	}
}

func TestResolveRampHeldContact(t *testing.T) {
	tests := []struct {
		name      string
		retrigger bool
		want      int
	}{
		{"single trigger", false, 10},
		{"retrigger", true, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newResolverFixture(tt.retrigger)
			f.ramps.put(0, f.player.X, f.player.Y)

			for i := 0; i < 3; i++ {
				f.resolve()
			}

			if f.player.Score != tt.want {
				t.Errorf("score after held contact = %d, want %d", f.player.Score, tt.want)
			}
		})
	}
}

func TestResolveRampLatchClearsAfterLeaving(t *testing.T) {
	f := newResolverFixture(false)
	f.ramps.put(0, f.player.X, f.player.Y)
	f.resolve()

	// Move the ramp away for one pass, then back.
	f.ramps.slots[0].entity.Y = 0
	f.resolve()
	f.ramps.slots[0].entity.Y = f.player.Y
	f.resolve()

	if f.player.Score != 20 {
		t.Errorf("score = %d, want 20 after a fresh approach", f.player.Score)
	}
}
