//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-ps"
)

// AnotherInstanceRunning reports whether a different process with this
// binary's executable name is already running. Two controllers fighting
// over the same GPIO lines corrupt the display, so the caller refuses to
// start when this returns true.
func AnotherInstanceRunning() (bool, error) {
	executable, err := os.Executable()
	if err != nil {
		return false, fmt.Errorf("resolve own executable: %w", err)
	}

	name := filepath.Base(executable)

	processList, err := ps.Processes()
	if err != nil {
		return false, fmt.Errorf("list processes: %w", err)
	}

	thisProcessID := os.Getpid()

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if process.Executable() == name {
			return true, nil
		}
	}

	return false, nil
}
