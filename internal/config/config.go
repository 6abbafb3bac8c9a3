package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

const (
	configDirName  = "hubbub"
	configFileName = "config.json"
)

// Preset is a reusable close message offered by the close picker.
type Preset struct {
	Name string `json:"name"`
	Body string `json:"body"`
}

type Config struct {
	Keybinds  map[string]string `json:"keybinds"`
	Presets   []Preset          `json:"presets"`
	Theme     string            `json:"theme"`
	ScanRoots []string          `json:"scan_roots"`
}

func Load() (Config, string, error) {
	path, err := DefaultPath()
	if err != nil {
		return Config{}, "", err
	}
	cfg, err := LoadFromPath(path)
	return cfg, path, err
}

func LoadFromPath(path string) (Config, error) {
	cfg := Config{
		Keybinds: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, err
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Keybinds == nil {
		cfg.Keybinds = make(map[string]string)
	}

	normalized := make(map[string]string, len(cfg.Keybinds))
	for k, v := range cfg.Keybinds {
		action := strings.TrimSpace(k)
		chord := strings.TrimSpace(v)
		if action == "" {
			return Config{}, fmt.Errorf("keybind with empty action name")
		}
		if chord == "" {
			return Config{}, fmt.Errorf("keybind for %q is empty", action)
		}
		normalized[action] = chord
	}
	cfg.Keybinds = normalized

	for i, p := range cfg.Presets {
		if strings.TrimSpace(p.Name) == "" {
			return Config{}, fmt.Errorf("preset %d has no name", i)
		}
		if strings.TrimSpace(p.Body) == "" {
			return Config{}, fmt.Errorf("preset %q has no body", p.Name)
		}
	}

	roots := cfg.ScanRoots[:0]
	for _, r := range cfg.ScanRoots {
		if r = strings.TrimSpace(r); r != "" {
			roots = append(roots, r)
		}
	}
	cfg.ScanRoots = roots

	return cfg, nil
}

// Save writes the config back out, creating the directory on first use.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Watch invokes onChange whenever the config file is written. Editors tend
// to replace the file rather than write in place, so the parent directory is
// watched and events are filtered by name. Close the returned watcher to
// stop.
func Watch(path string, onChange func()) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}
	name := filepath.Base(path)
	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != name {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					onChange()
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return w, nil
}

func DefaultPath() (string, error) {
	home, err := configHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

func configHome() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return xdg, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config"), nil
}
