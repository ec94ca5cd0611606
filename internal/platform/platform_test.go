package platform

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecondInstanceActivatesFirst(t *testing.T) {
	appName := fmt.Sprintf("eyeflow-test-%d", time.Now().UnixNano())
	var activations atomic.Int32

	guard, err := AcquireSingleInstance(appName, func() { activations.Add(1) })
	require.NoError(t, err)
	defer guard.Release()

	second, err := AcquireSingleInstance(appName, nil)
	assert.Nil(t, second)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	assert.Eventually(t, func() bool { return activations.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestReleaseFreesPort(t *testing.T) {
	appName := fmt.Sprintf("eyeflow-release-%d", time.Now().UnixNano())

	guard, err := AcquireSingleInstance(appName, nil)
	require.NoError(t, err)
	require.NoError(t, guard.Release())

	again, err := AcquireSingleInstance(appName, nil)
	require.NoError(t, err)
	assert.Equal(t, guard.Address(), again.Address())
	require.NoError(t, again.Release())
}

func TestNilGuard(t *testing.T) {
	var guard *InstanceGuard
	assert.NoError(t, guard.Release())
	assert.Empty(t, guard.Address())
}

func TestPortFromNameIsStable(t *testing.T) {
	port := portFromName("EyeFlow")
	assert.Equal(t, port, portFromName("EyeFlow"))
	assert.GreaterOrEqual(t, port, 20000)
	assert.LessOrEqual(t, port, 39999)
}

func TestConfigDirEndsWithAppName(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	dir, err := ConfigDir("EyeFlow")
	require.NoError(t, err)
	assert.Equal(t, "EyeFlow", filepath.Base(dir))
}

func TestActivationBeforeHandlerIsHeld(t *testing.T) {
	appName := fmt.Sprintf("eyeflow-pending-%d", time.Now().UnixNano())

	guard, err := AcquireSingleInstance(appName, nil)
	require.NoError(t, err)
	defer guard.Release()

	_, err = AcquireSingleInstance(appName, nil)
	require.ErrorIs(t, err, ErrAlreadyRunning)

	assert.Eventually(t, func() bool {
		guard.mu.Lock()
		defer guard.mu.Unlock()
		return guard.pending
	}, 2*time.Second, 10*time.Millisecond)

	var activations atomic.Int32
	guard.SetOnActivate(func() { activations.Add(1) })
	assert.Equal(t, int32(1), activations.Load())

	_, err = AcquireSingleInstance(appName, nil)
	require.ErrorIs(t, err, ErrAlreadyRunning)
	assert.Eventually(t, func() bool { return activations.Load() == 2 }, 2*time.Second, 10*time.Millisecond)
}
