package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SoundConfig records the last-used custom-sound folder and file. It is a
// small side file next to the reminder file, read at UI start and written
// whenever the selection changes.
type SoundConfig struct {
	SoundFolder   string `json:"sound_folder"`
	SelectedSound string `json:"selected_sound"`
}

// LoadSoundConfig reads the side file at path. A missing or unreadable
// file yields an empty config.
func LoadSoundConfig(path string) SoundConfig {
	raw, err := os.ReadFile(path)
	if err != nil {
		return SoundConfig{}
	}
	var cfg SoundConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return SoundConfig{}
	}
	return cfg
}

// SaveSoundConfig overwrites the side file at path.
func SaveSoundConfig(path string, cfg SoundConfig) error {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, payload, 0o644)
}

// ListWaveFiles returns the .wav file names in folder, sorted. Errors
// surface as an empty list; the caller falls back to the default tone.
func ListWaveFiles(folder string) []string {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".wav") {
			out = append(out, entry.Name())
		}
	}
	sort.Strings(out)
	return out
}
