package anim

import (
	"fmt"
	"math"
)

// Action is one clip's playback state.
type Action struct {
	Clip    *Clip
	Time    float32
	Speed   float32
	Loop    bool
	Playing bool
}

// Mixer advances every playing action by wall-clock delta.
type Mixer struct {
	actions []*Action
	byName  map[string]*Action
}

func NewMixer(clips ...*Clip) *Mixer {
	m := &Mixer{byName: make(map[string]*Action, len(clips))}
	for _, c := range clips {
		a := &Action{Clip: c, Speed: 1, Loop: true}
		m.actions = append(m.actions, a)
		m.byName[c.Name] = a
	}
	return m
}

// Action returns the playback state for a clip by name.
func (m *Mixer) Action(name string) (*Action, bool) {
	a, ok := m.byName[name]
	return a, ok
}

// Play starts the named clip from the beginning.
func (m *Mixer) Play(name string) error {
	a, ok := m.byName[name]
	if !ok {
		return fmt.Errorf("anim: no clip named %q", name)
	}
	a.Time = 0
	a.Playing = true
	a.Clip.Apply(0)
	return nil
}

// PlayFirst starts the first clip, if any.
func (m *Mixer) PlayFirst() bool {
	if len(m.actions) == 0 {
		return false
	}
	a := m.actions[0]
	a.Time = 0
	a.Playing = true
	a.Clip.Apply(0)
	return true
}

// Update advances playing actions by delta seconds. Looping actions wrap, others
// clamp at the end and stop.
func (m *Mixer) Update(delta float64) {
	for _, a := range m.actions {
		if !a.Playing {
			continue
		}
		a.Time += float32(delta) * a.Speed
		d := a.Clip.Duration
		switch {
		case d <= 0:
			a.Time = 0
		case a.Loop:
			a.Time = float32(math.Mod(float64(a.Time), float64(d)))
			if a.Time < 0 {
				a.Time += d
			}
		case a.Time >= d:
			a.Time = d
			a.Playing = false
		case a.Time < 0:
			a.Time = 0
			a.Playing = false
		}
		a.Clip.Apply(a.Time)
	}
}
