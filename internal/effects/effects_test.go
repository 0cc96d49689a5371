package effects

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaterPhaseIsFixedStep(t *testing.T) {
	w, err := NewWater(DefaultWaterParams())
	require.NoError(t, err)

	const n = 1000
	for i := 0; i < n; i++ {
		w.Advance()
	}
	assert.Equal(t, uint64(n), w.Ticks())
	assert.Equal(t, float64(n)*(1.0/60.0), w.Time())
}

func TestWaterValidation(t *testing.T) {
	p := DefaultWaterParams()
	p.TimeStep = 0
	p.TextureWidth = 0
	_, err := NewWater(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "time step")
	assert.Contains(t, err.Error(), "texture size")
}

func TestWaterSunDirection(t *testing.T) {
	w, err := NewWater(DefaultWaterParams())
	require.NoError(t, err)
	w.SetSunDirection(mgl32.Vec3{0, 0, 0})
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, w.SunDirection())
	w.SetSunDirection(mgl32.Vec3{0, 0, 5})
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, w.SunDirection())
}

func TestSunPosition(t *testing.T) {
	p := DefaultSkyParams()
	p.Elevation = 90
	sun := p.SunPosition()
	assert.InDelta(t, 1, sun.Y(), 1e-6)

	p.Elevation = 0
	p.Azimuth = 180
	sun = p.SunPosition()
	assert.InDelta(t, 0, sun.Y(), 1e-6)
	assert.InDelta(t, -1, sun.Z(), 1e-6)
	assert.InDelta(t, 1, sun.Len(), 1e-6)

	p.Azimuth = 90
	sun = p.SunPosition()
	assert.InDelta(t, 1, sun.X(), 1e-6)
}

func TestSkyValidation(t *testing.T) {
	assert.NoError(t, DefaultSkyParams().Validate())
	p := DefaultSkyParams()
	p.Rayleigh = 5
	p.Azimuth = 200
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rayleigh")
	assert.Contains(t, err.Error(), "azimuth")
}

func TestBloomParams(t *testing.T) {
	p := DefaultBloomParams()
	assert.NoError(t, p.Validate())
	assert.Equal(t, float32(1), p.ToneMappingExposure())

	p.Exposure = 2
	assert.InDelta(t, 16, p.ToneMappingExposure(), 1e-6)

	p.Strength = 4
	assert.Error(t, p.Validate())
}

func TestParseColor(t *testing.T) {
	for _, s := range []string{"#3d8d96", "0x3d8d96", "0X3D8D96"} {
		c, err := ParseColor(s)
		require.NoError(t, err, s)
		assert.Equal(t, "#3d8d96", c.Hex())
	}
	_, err := ParseColor("teal")
	assert.Error(t, err)

	var c Color
	require.NoError(t, c.UnmarshalText([]byte("#ffffff")))
	assert.Equal(t, Color{1, 1, 1}, c)
	out, err := c.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "#ffffff", string(out))
}

func TestHSL(t *testing.T) {
	c := HSL(0.5, 1, 0.5)
	assert.InDelta(t, 0, c.R, 1e-6)
	assert.InDelta(t, 1, c.G, 1e-6)
	assert.InDelta(t, 1, c.B, 1e-6)

	assert.Equal(t, HSL(0.25, 1, 0.5), HSL(1.25, 1, 0.5), "hue wraps")
	assert.Equal(t, Color{1, 1, 1}, HSL(0, 0, 1))
}

func TestParticleFieldBounds(t *testing.T) {
	p := DefaultParticleParams()
	p.Count = 5000
	p.Seed = 42
	f, err := NewParticleField(p)
	require.NoError(t, err)
	require.Equal(t, 5000, f.Count())

	pos := f.Positions()
	for i := 0; i < len(pos); i += 3 {
		assert.True(t, pos[i] >= -1000 && pos[i] < 19000)
		assert.True(t, pos[i+1] >= -1000 && pos[i+1] < 19000)
		assert.True(t, pos[i+2] >= -1000 && pos[i+2] < 1000)
	}

	again, err := NewParticleField(p)
	require.NoError(t, err)
	assert.Equal(t, pos, again.Positions(), "same seed, same field")
}

func TestGroundParticlesSquashed(t *testing.T) {
	p := DefaultParticleParams()
	p.Count = 1000
	p.Seed = 7
	p.YScale = 0.025
	f, err := NewParticleField(p)
	require.NoError(t, err)
	for i := 1; i < len(f.Positions()); i += 3 {
		y := f.Positions()[i]
		assert.True(t, y >= -25 && y < 475, "y=%v", y)
	}
}

func TestParticleUpdate(t *testing.T) {
	p := DefaultParticleParams()
	p.Count = 1
	p.Seed = 1
	p.Drift = [3]float32{0, 0.5, 0}
	f, err := NewParticleField(p)
	require.NoError(t, err)

	f.Update(4)
	assert.Equal(t, mgl32.Vec3{0, 2, 0}, f.Offset())
	assert.Equal(t, HSL(0.5, 1, 0.5), f.Color(), "fixed hue without cycling")

	p.HueCycle = 1
	f, err = NewParticleField(p)
	require.NoError(t, err)
	f.Update(0.25)
	assert.Equal(t, HSL(0.75, 1, 0.5), f.Color())
}

func TestParticleValidation(t *testing.T) {
	p := DefaultParticleParams()
	p.Size = 0
	p.Opacity = 2
	_, err := NewParticleField(p)
	assert.Error(t, err)
}
