// Package dotdir manages the .embedviz/ and ~/.embedviz directories
// holding user configuration and credentials.
package dotdir

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// dirName is the name of the embedviz directory.
	dirName = ".embedviz"
)

type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// Target returns the target absolute path to a .embedviz/ directory.
// Order of precedence is as follows:
//  1. Provided override (created if missing)
//  2. Local ./.embedviz/ dir
//  3. Home ~/.embedviz/ dir
//
// When no override is given and neither directory exists, Target returns
// an empty path so callers can fall back to defaults or create the home
// directory themselves.
func (m *Manager) Target(overrideDir string) (string, error) {
	if overrideDir != "" {
		if err := os.MkdirAll(overrideDir, 0o755); err != nil {
			return "", fmt.Errorf("creating embedviz directory %s: %w", overrideDir, err)
		}
		return filepath.Abs(overrideDir)
	}

	if cwd, err := os.Getwd(); err == nil {
		local := filepath.Join(cwd, dirName)
		if info, err := os.Stat(local); err == nil && info.IsDir() {
			return local, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	dir := filepath.Join(home, dirName)
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return dir, nil
	}

	return "", nil
}
