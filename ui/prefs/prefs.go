// Package prefs provides JSON-based application preferences.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const prefsFile = "preferences.json"

// Prefs stores the window preferences persisted between sessions. View
// state (pan, zoom, cursor) is deliberately not persisted.
type Prefs struct {
	WindowWidth   float32 `json:"window_width,omitempty"`
	WindowHeight  float32 `json:"window_height,omitempty"`
	SplitOffset   float64 `json:"split_offset,omitempty"`
	LastDirectory string  `json:"last_directory,omitempty"`

	path string
}

// Load reads preferences from ~/.config/mpr-viewer/preferences.json,
// returning defaults if the file doesn't exist.
func Load() *Prefs {
	p := &Prefs{
		WindowWidth:  1200,
		WindowHeight: 800,
		SplitOffset:  0.25,
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	p.path = filepath.Join(configDir, "mpr-viewer", prefsFile)

	data, err := os.ReadFile(p.path)
	if err != nil {
		return p
	}
	_ = json.Unmarshal(data, p)
	return p
}

// Save writes preferences to disk.
func (p *Prefs) Save() error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o644)
}
