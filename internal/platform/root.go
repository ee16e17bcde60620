package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// SeedFileNames are the file names FindSeed looks for, in order.
var SeedFileNames = []string{"diary.yaml", "diary.yml", "diary.json"}

// FindSeed recursively looks upwards from startDir for a seed file.
// If found, returns its absolute path.
func FindSeed(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		for _, name := range SeedFileNames {
			if hasFile(dir, name) {
				return filepath.Join(dir, name), nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("seed file not found")
}

func hasFile(dir, name string) bool {
	info, err := os.Stat(filepath.Join(dir, name))
	return err == nil && !info.IsDir()
}
