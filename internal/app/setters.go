package app

import (
	"fmt"
	"strings"

	"hubbub/internal/config"
	"hubbub/internal/store"
)

// SetRepos replaces the scanned repository list.
func (a *App) SetRepos(repos []store.Repo) {
	a.repos = repos
	a.rebuildRepoFilter()
}

// SelectRepoByPath moves the picker selection to the repo at path. It
// reports false when the path is not in the (filtered) list.
func (a *App) SelectRepoByPath(path string) bool {
	for pos, idx := range a.filteredRepos {
		if idx >= 0 && idx < len(a.repos) && a.repos[idx].Path == path {
			a.repoCursor = pos
			return true
		}
	}
	return false
}

func repoHaystack(repo store.Repo) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(repo.Path))
	for _, r := range repo.Remotes {
		fmt.Fprintf(&b, " %s %s/%s %s",
			strings.ToLower(r.Name), strings.ToLower(r.Owner), strings.ToLower(r.Repo), strings.ToLower(r.URL))
	}
	return b.String()
}

// SetIssues replaces the issue collection; the list selection stays on the
// same issue number when it is still visible.
func (a *App) SetIssues(issues []Issue) {
	a.issues = issues
	a.rebuildIssueFilter()
}

// SetComments replaces the comment list for the current issue, keeping the
// selection on the same comment id where possible.
func (a *App) SetComments(comments []Comment) {
	var selected int64
	if c, ok := a.selectedComment(); ok {
		selected = c.ID
	}
	a.comments = comments
	a.commentCursor = clampCursor(a.commentCursor, len(comments))
	if selected != 0 {
		for i, c := range comments {
			if c.ID == selected {
				a.commentCursor = i
				break
			}
		}
	}
	a.recentComment = clampCursor(a.recentComment, len(comments))
}

// UpsertIssue folds a freshly mutated issue back into the collection without
// waiting for the next full sync.
func (a *App) UpsertIssue(is Issue) {
	for i := range a.issues {
		if a.issues[i].Number == is.Number {
			a.issues[i] = is
			a.rebuildIssueFilter()
			return
		}
	}
	a.issues = append(a.issues, is)
	a.rebuildIssueFilter()
}

// AdjustCommentCount keeps the list row's comment counter plausible between
// full reloads.
func (a *App) AdjustCommentCount(number, delta int) {
	if issue := a.issueAt(number); issue != nil {
		issue.Comments += delta
		if issue.Comments < 0 {
			issue.Comments = 0
		}
	}
}

func (a *App) issueAt(number int) *Issue {
	for i := range a.issues {
		if a.issues[i].Number == number {
			return &a.issues[i]
		}
	}
	return nil
}

// SetPresets replaces the comment presets, normally from a config (re)load.
func (a *App) SetPresets(presets []config.Preset) {
	a.presets = presets
	a.presetCursor = clampCursor(a.presetCursor, a.presetOptionCount())
}

func (a *App) Presets() []config.Preset { return a.presets }

// TakePresetsDirty reports once that presets changed in memory and need to
// be written back to the config file.
func (a *App) TakePresetsDirty() bool { return takeFlag(&a.presetsDirty) }
