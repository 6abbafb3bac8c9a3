package app

import (
	"strings"

	"hubbub/internal/store"
)

// selectedRepo returns the repository under the picker cursor.
func (a *App) selectedRepo() (store.Repo, bool) {
	if a.repoCursor < 0 || a.repoCursor >= len(a.filteredRepos) {
		return store.Repo{}, false
	}
	idx := a.filteredRepos[a.repoCursor]
	if idx < 0 || idx >= len(a.repos) {
		return store.Repo{}, false
	}
	return a.repos[idx], true
}

// selectedIssue returns the work item under the list cursor.
func (a *App) selectedIssue() (Issue, bool) {
	if a.issueCursor < 0 || a.issueCursor >= len(a.filteredIssues) {
		return Issue{}, false
	}
	idx := a.filteredIssues[a.issueCursor]
	if idx < 0 || idx >= len(a.issues) {
		return Issue{}, false
	}
	return a.issues[idx], true
}

func (a *App) selectedComment() (Comment, bool) {
	if a.commentCursor < 0 || a.commentCursor >= len(a.comments) {
		return Comment{}, false
	}
	return a.comments[a.commentCursor], true
}

func (a *App) issueByNumber(number int) (Issue, bool) {
	for _, is := range a.issues {
		if is.Number == number {
			return is, true
		}
	}
	return Issue{}, false
}

// currentIssueRow resolves the item the detail views are showing.
func (a *App) currentIssueRow() (Issue, bool) {
	if a.currentIssue == 0 {
		return Issue{}, false
	}
	return a.issueByNumber(a.currentIssue)
}

// issueCounts tallies open and closed items of the current kind, ignoring
// the status filter so the header can show both totals.
func (a *App) issueCounts() (open, closed int) {
	wantPulls := a.workItems == WorkItemPulls
	for _, is := range a.issues {
		if is.IsPull != wantPulls {
			continue
		}
		if strings.EqualFold(is.State, "open") {
			open++
		} else {
			closed++
		}
	}
	return open, closed
}

// currentRepoLabel is the owner/name shown in headers once a remote is
// chosen.
func (a *App) currentRepoLabel() string {
	if a.owner != "" && a.repoName != "" {
		return a.owner + "/" + a.repoName
	}
	return a.repoPath
}
