package vault

import (
	"os"
	"path/filepath"
)

// ConfigDir is the directory marking the root of a vault.
const ConfigDir = ".obsidian"

// FindRoot walks up from dir and returns the nearest ancestor containing
// ConfigDir.
func FindRoot(dir string) (string, bool) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		info, err := os.Stat(filepath.Join(current, ConfigDir))
		if err == nil && info.IsDir() {
			return current, true
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}

// PluginSettingsPath returns where the folder notes plugin keeps its settings.
func PluginSettingsPath(root string) string {
	return filepath.Join(root, ConfigDir, "plugins", "folder-notes", "data.json")
}
