package anim

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

type Interpolation uint8

const (
	Linear Interpolation = iota
	Step
	CubicSpline
)

func (i Interpolation) String() string {
	switch i {
	case Linear:
		return "linear"
	case Step:
		return "step"
	case CubicSpline:
		return "cubicspline"
	}
	return fmt.Sprintf("Interpolation(%d)", i)
}

type Path uint8

const (
	Translation Path = iota
	Rotation
	Scale
)

func (p Path) components() int {
	if p == Rotation {
		return 4
	}
	return 3
}

// Target receives sampled values. scene.Node satisfies it.
type Target interface {
	SetTranslation(mgl32.Vec3)
	SetRotation(mgl32.Quat)
	SetScale(mgl32.Vec3)
}

// Sampler holds keyframes. Values is flat with Path.components() floats per key, or
// three times that for CubicSpline (in-tangent, value, out-tangent).
type Sampler struct {
	Times         []float32
	Values        []float32
	Interpolation Interpolation
}

type Channel struct {
	Target  Target
	Path    Path
	Sampler Sampler
}

// Validate checks key counts against the path's component count.
func (c Channel) Validate() error {
	n := len(c.Sampler.Times)
	if n == 0 {
		return errors.New("channel has no keyframes")
	}
	if !sort.SliceIsSorted(c.Sampler.Times, func(i, j int) bool { return c.Sampler.Times[i] < c.Sampler.Times[j] }) {
		return errors.New("keyframe times are not ascending")
	}
	want := n * c.Path.components()
	if c.Sampler.Interpolation == CubicSpline {
		want *= 3
	}
	if len(c.Sampler.Values) != want {
		return fmt.Errorf("%d keyframes need %d values, got %d", n, want, len(c.Sampler.Values))
	}
	if c.Target == nil {
		return errors.New("channel has no target")
	}
	return nil
}

// Clip is a named set of channels played together.
type Clip struct {
	Name     string
	Duration float32
	Channels []Channel
}

// NewClip validates channels and derives the duration from the last keyframe.
func NewClip(name string, channels []Channel) (*Clip, error) {
	var duration float32
	for i, c := range channels {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("clip %q channel %d: %w", name, i, err)
		}
		if last := c.Sampler.Times[len(c.Sampler.Times)-1]; last > duration {
			duration = last
		}
	}
	return &Clip{Name: name, Duration: duration, Channels: channels}, nil
}

// Apply samples every channel at t and writes the results to the targets.
func (c *Clip) Apply(t float32) {
	var buf [4]float32
	for _, ch := range c.Channels {
		v := ch.Sampler.sample(t, ch.Path, buf[:ch.Path.components()])
		switch ch.Path {
		case Translation:
			ch.Target.SetTranslation(mgl32.Vec3{v[0], v[1], v[2]})
		case Rotation:
			ch.Target.SetRotation(mgl32.Quat{W: v[3], V: mgl32.Vec3{v[0], v[1], v[2]}}.Normalize())
		case Scale:
			ch.Target.SetScale(mgl32.Vec3{v[0], v[1], v[2]})
		}
	}
}

func (s Sampler) key(i, comps int) []float32 {
	if s.Interpolation == CubicSpline {
		base := (i*3 + 1) * comps
		return s.Values[base : base+comps]
	}
	return s.Values[i*comps : (i+1)*comps]
}

func (s Sampler) tangent(i, comps, which int) []float32 {
	base := (i*3 + which) * comps
	return s.Values[base : base+comps]
}

func (s Sampler) sample(t float32, path Path, out []float32) []float32 {
	comps := len(out)
	times := s.Times
	last := len(times) - 1

	if t <= times[0] || last == 0 {
		copy(out, s.key(0, comps))
		return out
	}
	if t >= times[last] {
		copy(out, s.key(last, comps))
		return out
	}

	i := sort.Search(len(times), func(k int) bool { return times[k] > t }) - 1
	t0, t1 := times[i], times[i+1]
	dt := t1 - t0
	u := (t - t0) / dt

	switch s.Interpolation {
	case Step:
		copy(out, s.key(i, comps))
	case CubicSpline:
		p0, p1 := s.key(i, comps), s.key(i+1, comps)
		m0, m1 := s.tangent(i, comps, 2), s.tangent(i+1, comps, 0)
		u2, u3 := u*u, u*u*u
		h00 := 2*u3 - 3*u2 + 1
		h10 := u3 - 2*u2 + u
		h01 := -2*u3 + 3*u2
		h11 := u3 - u2
		for k := range out {
			out[k] = h00*p0[k] + h10*dt*m0[k] + h01*p1[k] + h11*dt*m1[k]
		}
	default:
		a, b := s.key(i, comps), s.key(i+1, comps)
		if path == Rotation {
			q := mgl32.QuatSlerp(
				mgl32.Quat{W: a[3], V: mgl32.Vec3{a[0], a[1], a[2]}},
				mgl32.Quat{W: b[3], V: mgl32.Vec3{b[0], b[1], b[2]}},
				u,
			)
			out[0], out[1], out[2], out[3] = q.V[0], q.V[1], q.V[2], q.W
			return out
		}
		for k := range out {
			out[k] = a[k] + (b[k]-a[k])*u
		}
	}
	return out
}
