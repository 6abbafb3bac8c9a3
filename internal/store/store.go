package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	dataDirName  = "hubbub"
	dataFileName = "repos.json"
)

// Remote is a GitHub remote parsed from a local clone.
type Remote struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
}

// Repo is a local repository discovered by the scanner, with the GitHub
// remotes it points at.
type Repo struct {
	Path    string   `json:"path"`
	Remotes []Remote `json:"remotes"`
}

// Store persists the scanned repo registry so startup can show the last
// known list before a rescan finishes.
type Store struct {
	path string
}

func NewStore() (Store, error) {
	home, err := dataHome()
	if err != nil {
		return Store{}, err
	}
	return Store{path: filepath.Join(home, dataDirName, dataFileName)}, nil
}

func NewStoreAt(path string) Store {
	return Store{path: path}
}

func (s Store) Path() string {
	return s.path
}

func (s Store) Load() ([]Repo, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Repo{}, nil
		}
		return nil, err
	}

	var out []Repo
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s Store) Save(repos []Repo) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(repos, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o644)
}

func dataHome() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); xdg != "" {
		return xdg, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share"), nil
}
