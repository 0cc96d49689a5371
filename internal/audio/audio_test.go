package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "ambience.mp3"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGainExponent(t *testing.T) {
	exp, silent := gainExponent(1)
	assert.False(t, silent)
	assert.InDelta(t, 0, exp, 1e-12)

	exp, silent = gainExponent(0.5)
	assert.False(t, silent)
	assert.InDelta(t, -1, exp, 1e-12)
	assert.InDelta(t, 0.5, math.Pow(volumeBase, exp), 1e-12)

	_, silent = gainExponent(0)
	assert.True(t, silent)
	_, silent = gainExponent(-3)
	assert.True(t, silent)
}

func TestShutdownWithoutSpeaker(t *testing.T) {
	assert.NotPanics(t, Shutdown)
}
