// Package workdir scopes changes of the process working directory.
package workdir

import (
	"fmt"
	"log/slog"
	"os"
)

// Within changes into dir, runs fn and changes back to the original
// directory on every exit path, including a panic in fn. A failure to
// restore is returned when fn itself succeeded.
func Within(dir string, fn func() error) (err error) {
	orig, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("entering %s: %w", dir, err)
	}
	slog.Debug("entered directory", "dir", dir)

	defer func() {
		if rErr := os.Chdir(orig); rErr != nil {
			slog.Error("failed to restore working directory", "dir", orig, "error", rErr)
			if err == nil {
				err = fmt.Errorf("restoring %s: %w", orig, rErr)
			}
			return
		}
		slog.Debug("restored directory", "dir", orig)
	}()

	return fn()
}
