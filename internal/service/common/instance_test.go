package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestAnotherInstanceRunning verifies the process scan completes and does
// not count the current process as a duplicate.
func TestAnotherInstanceRunning(t *testing.T) {
	t.Parallel()

	running, err := AnotherInstanceRunning()
	require.NoError(t, err)
	require.False(t, running)
}
