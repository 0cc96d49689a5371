package asset

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuturePollBeforeAndAfter(t *testing.T) {
	release := make(chan struct{})
	f := Go("slow", func() (int, error) {
		<-release
		return 42, nil
	})

	_, ok, err := f.Poll()
	assert.False(t, ok)
	assert.NoError(t, err)

	close(release)
	v, err := f.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, ok, err = f.Poll()
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, "slow", f.Name())
}

func TestFutureError(t *testing.T) {
	boom := errors.New("boom")
	f := Go("bad", func() (string, error) { return "", boom })
	_, err := f.Wait(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestFuturePanicBecomesError(t *testing.T) {
	f := Go("panics", func() (int, error) { panic("nope") })
	_, err := f.Wait(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic")
}

func TestFutureWaitCancelled(t *testing.T) {
	f := Go("never", func() (int, error) {
		select {}
	})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := f.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
