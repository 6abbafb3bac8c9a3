package store

import (
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	s := NewStoreAt(filepath.Join(t.TempDir(), "repos.json"))
	repos, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(repos) != 0 {
		t.Fatalf("expected empty registry, got %d entries", len(repos))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := NewStoreAt(filepath.Join(t.TempDir(), "nested", "repos.json"))
	in := []Repo{
		{
			Path: "/home/u/src/hubbub",
			Remotes: []Remote{
				{Name: "origin", URL: "git@github.com:acme/hubbub.git", Owner: "acme", Repo: "hubbub"},
				{Name: "fork", URL: "https://github.com/u/hubbub.git", Owner: "u", Repo: "hubbub"},
			},
		},
		{Path: "/home/u/src/tools"},
	}
	if err := s.Save(in); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	out, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 repos, got %d", len(out))
	}
	if out[0].Path != in[0].Path || len(out[0].Remotes) != 2 {
		t.Fatalf("repo[0] = %+v", out[0])
	}
	if out[0].Remotes[1].Owner != "u" {
		t.Fatalf("remote owner = %q want u", out[0].Remotes[1].Owner)
	}
}

func TestNewStoreUsesXDGDataHome(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_DATA_HOME", xdg)

	s, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	want := filepath.Join(xdg, "hubbub", "repos.json")
	if s.Path() != want {
		t.Fatalf("Path()=%q want %q", s.Path(), want)
	}
}
