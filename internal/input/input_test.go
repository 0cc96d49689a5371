package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyAliases(t *testing.T) {
	tests := []struct {
		key    Key
		action Action
	}{
		{KeyW, ActionMoveForward},
		{ArrowUp, ActionMoveForward},
		{KeyS, ActionMoveBackward},
		{ArrowDown, ActionMoveBackward},
		{KeyA, ActionMoveLeft},
		{ArrowLeft, ActionMoveLeft},
		{KeyD, ActionMoveRight},
		{ArrowRight, ActionMoveRight},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			im := NewInputManager()
			im.KeyDown(tt.key)
			assert.True(t, im.IsActive(tt.action))
			assert.True(t, im.JustPressed(tt.action))
			im.KeyUp(tt.key)
			assert.False(t, im.IsActive(tt.action))
		})
	}
}

func TestUnknownKeyIgnored(t *testing.T) {
	im := NewInputManager()
	im.KeyDown("KeyQ")
	im.KeyUp("NotAKey")

	for a := range ActionCount {
		assert.False(t, im.IsActive(a), "action %d", a)
	}
	assert.False(t, im.ConsumeJump())
}

func TestJumpIsEdgeTriggered(t *testing.T) {
	im := NewInputManager()

	im.KeyDown(Space)
	im.KeyDown(Space) // auto-repeat
	assert.True(t, im.ConsumeJump())
	assert.False(t, im.ConsumeJump(), "repeat must not re-arm the request")

	im.KeyDown(Space)
	assert.False(t, im.ConsumeJump(), "still held")

	im.KeyUp(Space)
	im.KeyDown(Space)
	assert.True(t, im.ConsumeJump(), "release + press re-arms")
}

func TestPostUpdateClearsEdges(t *testing.T) {
	im := NewInputManager()
	im.KeyDown(KeyW)
	im.PostUpdate()

	assert.True(t, im.IsActive(ActionMoveForward))
	assert.False(t, im.JustPressed(ActionMoveForward))
}

func TestPointerLock(t *testing.T) {
	im := NewInputManager()
	var events []bool
	im.OnLockChange(func(locked bool) { events = append(events, locked) })

	assert.False(t, im.IsPointerLocked())

	im.MouseMove(10, 10)
	dx, dy := im.TakeLook()
	assert.Zero(t, dx)
	assert.Zero(t, dy)

	im.Lock()
	im.Lock()
	im.MouseMove(3, -2)
	im.MouseMove(1, 1)
	dx, dy = im.TakeLook()
	assert.Equal(t, 4.0, dx)
	assert.Equal(t, -1.0, dy)

	im.KeyDown(Escape)
	assert.False(t, im.IsPointerLocked())
	assert.Equal(t, []bool{true, false}, events)
}

func TestRebinding(t *testing.T) {
	im := NewInputManager()
	im.ClearBindings()
	im.BindKey("KeyZ", ActionMoveForward)
	im.BindKey("KeyX", ActionCount)

	im.KeyDown(KeyW)
	assert.False(t, im.IsActive(ActionMoveForward))
	im.KeyDown("KeyZ")
	assert.True(t, im.IsActive(ActionMoveForward))
	assert.False(t, im.IsActive(ActionCount))
}

func TestParseAction(t *testing.T) {
	for a := Action(0); a < ActionCount; a++ {
		got, err := ParseAction(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}
	_, err := ParseAction("sprint")
	assert.Error(t, err)
}

func TestClearBindings(t *testing.T) {
	im := NewInputManager()
	im.ClearBindings()
	im.KeyDown(KeyW)
	assert.False(t, im.IsActive(ActionMoveForward))
}

func TestRebindWhileHeldReleasesAction(t *testing.T) {
	im := NewInputManager()
	im.KeyDown(KeyW)
	im.KeyDown(Space)
	require.True(t, im.IsActive(ActionMoveForward))

	im.ClearBindings()
	im.BindKey("KeyI", ActionMoveForward)
	im.KeyUp(KeyW)

	assert.False(t, im.IsActive(ActionMoveForward))
	assert.False(t, im.IsActive(ActionJump))
	assert.False(t, im.JustPressed(ActionMoveForward))
	assert.False(t, im.ConsumeJump(), "pending jump dropped with its binding")
}

func TestEscapeSurvivesClearBindings(t *testing.T) {
	im := NewInputManager()
	im.ClearBindings()
	im.BindKey(Escape, ActionUnlock)

	im.Lock()
	im.KeyDown(Escape)
	assert.False(t, im.IsPointerLocked())
}

func TestResetBindings(t *testing.T) {
	im := NewInputManager()
	im.ClearBindings()
	im.BindKey("KeyI", ActionMoveForward)

	im.ResetBindings()
	im.KeyDown("KeyI")
	assert.False(t, im.IsActive(ActionMoveForward))
	im.KeyDown(KeyW)
	assert.True(t, im.IsActive(ActionMoveForward))
}

func TestToggleStatsIsEdgeTriggered(t *testing.T) {
	im := NewInputManager()
	im.KeyDown(F3)
	assert.True(t, im.JustPressed(ActionToggleStats))
	im.PostUpdate()
	im.KeyDown(F3) // auto-repeat
	assert.False(t, im.JustPressed(ActionToggleStats))
}
