package cli

import (
	"path/filepath"
)

// utility
func absPath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	abs, _ := filepath.Abs(p)
	return abs
}
