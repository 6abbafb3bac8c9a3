package app

import (
	"time"

	"hubbub/internal/patch"
)

type Label struct {
	Name  string
	Color string
}

// Issue is one work item of the current repository. Pull requests share the
// issue number space and carry IsPull.
type Issue struct {
	ID        int64
	Number    int
	Title     string
	Body      string
	State     string
	Author    string
	Labels    []Label
	Assignees []string
	Comments  int
	IsPull    bool
	URL       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Comment struct {
	ID        int64
	Author    string
	Body      string
	CreatedAt time.Time
}

// ReviewComment is a pull-request review comment. Anchored reports whether
// its line still maps onto the current diff; unanchored comments are kept
// but never matched to a row.
type ReviewComment struct {
	ID        int64
	ThreadID  string
	Resolved  bool
	Anchored  bool
	Path      string
	Line      int
	Side      patch.Side
	Body      string
	Author    string
	CreatedAt time.Time
}

type PullRequestFile struct {
	Path         string
	PreviousPath string
	Status       string
	Additions    int
	Deletions    int
	Patch        string
}

// ReviewTarget is where a new or edited review comment attaches. StartLine
// and StartSide are set only for multi-line targets and always match Side.
type ReviewTarget struct {
	Path      string
	Line      int
	Side      patch.Side
	StartLine *int
	StartSide *patch.Side
}
