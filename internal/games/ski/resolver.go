package ski

import "github.com/vovakirdan/tui-ski/internal/core"

// Outcome counts the contacts applied by one resolution pass.
type Outcome struct {
	Crashes  int
	Bonuses  int
	Launches int
	Skipped  bool // Player was airborne
}

// Resolver applies player contacts with each pool in a fixed order:
// hazards, then bonuses, then ramps.
type Resolver struct {
	CrashTime     int
	RampRetrigger bool
	Audio         core.AudioSink
}

// Resolve runs one collision pass. Nothing happens while the player is airborne.
func (r *Resolver) Resolve(p *Player, hazards, bonuses, ramps *Pool) Outcome {
	if p.Airborne() {
		return Outcome{Skipped: true}
	}

	var out Outcome
	box := p.Bounds()

	for _, i := range hazards.Overlapping(box) {
		e, _ := hazards.Get(i)
		hazards.RemoveAndFree(i)
		r.Audio.Play(core.CueCrash)
		p.Crash(e.Points, r.CrashTime)
		out.Crashes++
	}

	for _, i := range bonuses.Overlapping(box) {
		e, _ := bonuses.Get(i)
		bonuses.RemoveAndFree(i)
		r.Audio.Play(core.CueBonus)
		p.Collect(e.Points)
		out.Bonuses++
	}

	hits := ramps.Overlapping(box)
	for _, i := range hits {
		if ramps.latch(i) && !r.RampRetrigger {
			continue
		}
		e, _ := ramps.Get(i)
		r.Audio.Play(core.CueJump)
		p.Launch(e.Points)
		out.Launches++
	}
	ramps.unlatchExcept(hits)

	return out
}
