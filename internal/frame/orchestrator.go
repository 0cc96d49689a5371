package frame

import (
	"errors"
	"log/slog"
	"time"

	"scene-viewer/internal/asset"
	"scene-viewer/internal/profiling"
)

// Animator advances a skeletal or keyframe animation by delta seconds.
type Animator interface {
	Update(delta float64)
}

// Navigator is the camera controller.
type Navigator interface {
	Update(delta float64)
}

// Phase is advanced by a constant amount once per tick, independent of delta.
type Phase interface {
	Advance()
}

// Effect is driven by total elapsed time.
type Effect interface {
	Update(elapsed float64)
}

// Target draws one frame.
type Target interface {
	Render(f Frame)
}

// Frame is what a Target receives for the tick it draws.
type Frame struct {
	Tick    uint64
	Delta   float64
	Elapsed float64
}

// SceneContext groups the collaborators driven every tick. Composer is preferred
// over Direct whenever it is set.
type SceneContext struct {
	Clock     *Clock
	Navigator Navigator
	Water     Phase
	Effects   []Effect
	Composer  Target
	Direct    Target
}

var (
	ErrNoClock  = errors.New("frame: scene context has no clock")
	ErrNoTarget = errors.New("frame: scene context has neither composer nor direct target")
)

// Orchestrator runs the per-frame update in a fixed order:
// adopt finished loads, clock, animations, navigation, time-driven effects,
// then exactly one submission.
type Orchestrator struct {
	ctx       *SceneContext
	animators []Animator
	pending   []func() bool
	log       *slog.Logger
}

func New(ctx *SceneContext, log *slog.Logger) (*Orchestrator, error) {
	if ctx.Clock == nil {
		return nil, ErrNoClock
	}
	if ctx.Composer == nil && ctx.Direct == nil {
		return nil, ErrNoTarget
	}
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{ctx: ctx, log: log}, nil
}

func (o *Orchestrator) Context() *SceneContext { return o.ctx }

// AddAnimator registers an animation to be stepped before navigation.
func (o *Orchestrator) AddAnimator(a Animator) {
	o.animators = append(o.animators, a)
}

// SetComposer swaps the post-processing chain; nil falls back to direct submission.
// It is a no-op when clearing would leave nothing to draw with.
func (o *Orchestrator) SetComposer(t Target) {
	if t == nil && o.ctx.Direct == nil {
		return
	}
	o.ctx.Composer = t
}

// Pending reports how many loads have not been adopted yet.
func (o *Orchestrator) Pending() int { return len(o.pending) }

// Await adopts f on the tick it completes. adopt runs on the thread calling Tick.
// A failed load is logged and dropped so the scene keeps running without it.
func Await[T any](o *Orchestrator, f *asset.Future[T], adopt func(T)) {
	o.pending = append(o.pending, func() bool {
		v, ok, err := f.Poll()
		if !ok {
			return false
		}
		if err != nil {
			o.log.Error("asset load failed", "asset", f.Name(), "error", err)
			return true
		}
		adopt(v)
		o.log.Debug("asset adopted", "asset", f.Name())
		return true
	})
}

// Tick runs one frame at wall-clock time now and returns what was submitted.
func (o *Orchestrator) Tick(now time.Time) Frame {
	o.adopt()

	c := o.ctx.Clock
	delta := c.Advance(now)
	f := Frame{Tick: c.Ticks(), Delta: delta, Elapsed: c.Elapsed()}

	o.animate(delta)
	o.navigate(delta)
	o.effects(f.Elapsed)
	o.submit(f)
	return f
}

func (o *Orchestrator) animate(delta float64) {
	defer profiling.Track("frame.Animate")()
	for _, a := range o.animators {
		a.Update(delta)
	}
}

func (o *Orchestrator) navigate(delta float64) {
	if o.ctx.Navigator == nil {
		return
	}
	defer profiling.Track("frame.Navigate")()
	o.ctx.Navigator.Update(delta)
}

func (o *Orchestrator) effects(elapsed float64) {
	defer profiling.Track("frame.Effects")()
	if o.ctx.Water != nil {
		o.ctx.Water.Advance()
	}
	for _, e := range o.ctx.Effects {
		e.Update(elapsed)
	}
}

// submit draws through exactly one target.
func (o *Orchestrator) submit(f Frame) {
	defer profiling.Track("frame.Submit")()
	if o.ctx.Composer != nil {
		o.ctx.Composer.Render(f)
		return
	}
	o.ctx.Direct.Render(f)
}

func (o *Orchestrator) adopt() {
	if len(o.pending) == 0 {
		return
	}
	kept := o.pending[:0]
	for _, p := range o.pending {
		if !p() {
			kept = append(kept, p)
		}
	}
	clear(o.pending[len(kept):])
	o.pending = kept
}
