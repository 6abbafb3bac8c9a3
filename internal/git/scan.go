package git

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"

	"hubbub/internal/store"
)

// ScanService discovers local clones under the configured roots.
type ScanService interface {
	Scan(ctx context.Context, roots []string) ([]store.Repo, error)
}

type scanService struct{}

func NewScanService() ScanService {
	return scanService{}
}

func (scanService) Scan(ctx context.Context, roots []string) ([]store.Repo, error) {
	if len(roots) == 0 {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		roots = []string{home}
	}

	seen := make(map[string]bool)
	var repos []store.Repo
	for _, root := range roots {
		root = expandHome(root)
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				// Unreadable entries are skipped, not fatal.
				return nil
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			name := d.Name()
			if path != root && (name == "node_modules" || strings.HasPrefix(name, ".")) {
				return fs.SkipDir
			}
			if _, statErr := os.Stat(filepath.Join(path, ".git")); statErr != nil {
				return nil
			}
			if !seen[path] {
				seen[path] = true
				repos = append(repos, scanRepo(path))
			}
			// Nested repos are almost always vendored or submodules.
			return fs.SkipDir
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(repos, func(i, j int) bool { return repos[i].Path < repos[j].Path })
	return repos, nil
}

// scanRepo reads the remotes of one clone. Repos that cannot be opened are
// still registered so the picker can show them.
func scanRepo(path string) store.Repo {
	entry := store.Repo{Path: path}
	repo, err := gogit.PlainOpen(path)
	if err != nil {
		return entry
	}
	remotes, err := repo.Remotes()
	if err != nil {
		return entry
	}
	for _, r := range remotes {
		cfg := r.Config()
		if cfg == nil || len(cfg.URLs) == 0 {
			continue
		}
		owner, name, ok := ParseGitHubURL(cfg.URLs[0])
		if !ok {
			continue
		}
		entry.Remotes = append(entry.Remotes, store.Remote{
			Name:  cfg.Name,
			URL:   cfg.URLs[0],
			Owner: owner,
			Repo:  name,
		})
	}
	sortRemotes(entry.Remotes)
	return entry
}

// sortRemotes pins origin first so single-remote auto-selection and the
// chooser default both land on it.
func sortRemotes(remotes []store.Remote) {
	sort.SliceStable(remotes, func(i, j int) bool {
		if (remotes[i].Name == "origin") != (remotes[j].Name == "origin") {
			return remotes[i].Name == "origin"
		}
		return remotes[i].Name < remotes[j].Name
	})
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
