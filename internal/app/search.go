package app

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// issueQuery is a parsed search string. Qualifier tokens narrow specific
// fields; everything else is a free-text term that must match somewhere.
type issueQuery struct {
	status    string // "open", "closed", or "" when the query does not pin one
	labels    []string
	assignees []string
	number    int
	terms     []string
}

func parseIssueQuery(q string) issueQuery {
	var out issueQuery
	for _, tok := range strings.Fields(q) {
		lower := strings.ToLower(tok)
		switch {
		case strings.HasPrefix(lower, "is:"):
			v := strings.TrimPrefix(lower, "is:")
			if v == "open" || v == "closed" {
				out.status = v
			}
		case strings.HasPrefix(lower, "label:"):
			if v := lower[len("label:"):]; v != "" {
				out.labels = append(out.labels, v)
			}
		case strings.HasPrefix(lower, "assignee:"):
			if v := lower[len("assignee:"):]; v != "" {
				out.assignees = append(out.assignees, v)
			}
		case strings.HasPrefix(tok, "#"):
			if n, err := strconv.Atoi(tok[1:]); err == nil && n > 0 {
				out.number = n
			} else {
				out.terms = append(out.terms, lower)
			}
		default:
			out.terms = append(out.terms, lower)
		}
	}
	return out
}

// effectiveStatus is the status the list actually shows: an is: qualifier in
// the search query overrides the 1/2/tab filter.
func (a *App) effectiveStatus() StatusFilter {
	switch parseIssueQuery(a.searchQuery).status {
	case "open":
		return StatusFilterOpen
	case "closed":
		return StatusFilterClosed
	}
	return a.statusFilter
}

func (a *App) issueMatches(issue Issue, q issueQuery, status StatusFilter) bool {
	if issue.IsPull != (a.workItems == WorkItemPulls) {
		return false
	}
	if !strings.EqualFold(issue.State, status.String()) {
		return false
	}
	if !a.assigneeFilter.isAll() {
		if a.assigneeFilter.Unassigned {
			if len(issue.Assignees) > 0 {
				return false
			}
		} else if !containsFold(issue.Assignees, a.assigneeFilter.User) {
			return false
		}
	}
	if q.number != 0 && issue.Number != q.number {
		return false
	}
	for _, want := range q.labels {
		if !hasLabelFold(issue.Labels, want) {
			return false
		}
	}
	for _, want := range q.assignees {
		if !containsFold(issue.Assignees, want) {
			return false
		}
	}
	if len(q.terms) > 0 {
		hay := issueHaystack(issue)
		for _, term := range q.terms {
			if !strings.Contains(hay, term) {
				return false
			}
		}
	}
	return true
}

func issueHaystack(issue Issue) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(issue.Title))
	b.WriteByte(' ')
	b.WriteString(strings.ToLower(issue.Body))
	for _, l := range issue.Labels {
		b.WriteByte(' ')
		b.WriteString(strings.ToLower(l.Name))
	}
	for _, u := range issue.Assignees {
		b.WriteByte(' ')
		b.WriteString(strings.ToLower(u))
	}
	fmt.Fprintf(&b, " #%d %d", issue.Number, issue.Number)
	return b.String()
}

// rebuildIssueFilter recomputes the filtered index list and keeps the
// selection on the same issue number when it survives the new filter.
func (a *App) rebuildIssueFilter() {
	selected := 0
	if issue, ok := a.selectedIssue(); ok {
		selected = issue.Number
	}

	q := parseIssueQuery(a.searchQuery)
	status := a.effectiveStatus()
	idx := make([]int, 0, len(a.issues))
	for i, issue := range a.issues {
		if a.issueMatches(issue, q, status) {
			idx = append(idx, i)
		}
	}

	if status == StatusFilterClosed {
		sort.SliceStable(idx, func(x, y int) bool {
			ix, iy := a.issues[idx[x]], a.issues[idx[y]]
			if !ix.UpdatedAt.Equal(iy.UpdatedAt) {
				return ix.UpdatedAt.After(iy.UpdatedAt)
			}
			return ix.Number > iy.Number
		})
	} else {
		sort.SliceStable(idx, func(x, y int) bool {
			return a.issues[idx[x]].Number > a.issues[idx[y]].Number
		})
	}

	a.filteredIssues = idx
	a.issueCursor = clampCursor(a.issueCursor, len(idx))
	if selected != 0 {
		for pos, i := range idx {
			if a.issues[i].Number == selected {
				a.issueCursor = pos
				break
			}
		}
	}
}

// setSearchQuery rebuilds the list on every keystroke of the search prompt.
func (a *App) setSearchQuery(q string) {
	a.searchQuery = q
	a.rebuildIssueFilter()
}

func (a *App) setStatusFilter(f StatusFilter) {
	a.statusFilter = f
	a.rebuildIssueFilter()
	a.setTransient("Filter: " + strings.ToLower(f.String()))
}

func (a *App) toggleStatusFilter() {
	if a.statusFilter == StatusFilterOpen {
		a.setStatusFilter(StatusFilterClosed)
	} else {
		a.setStatusFilter(StatusFilterOpen)
	}
}

func (a *App) toggleWorkItems() {
	if a.workItems == WorkItemIssues {
		a.workItems = WorkItemPulls
		a.setTransient("Showing pull requests")
	} else {
		a.workItems = WorkItemIssues
		a.setTransient("Showing issues")
	}
	a.rebuildIssueFilter()
}

// assigneeCycleUsers is every assignee seen on issues of the current work
// item kind, case-insensitively deduplicated keeping first-seen casing,
// sorted for a stable cycle order.
func (a *App) assigneeCycleUsers() []string {
	seen := make(map[string]bool)
	var users []string
	for _, issue := range a.issues {
		if issue.IsPull != (a.workItems == WorkItemPulls) {
			continue
		}
		for _, u := range issue.Assignees {
			lower := strings.ToLower(u)
			if !seen[lower] {
				seen[lower] = true
				users = append(users, u)
			}
		}
	}
	sort.Slice(users, func(i, j int) bool {
		return strings.ToLower(users[i]) < strings.ToLower(users[j])
	})
	return users
}

// cycleAssigneeFilter steps All → Unassigned → each user → All.
func (a *App) cycleAssigneeFilter() {
	users := a.assigneeCycleUsers()
	switch {
	case a.assigneeFilter.isAll():
		a.assigneeFilter = AssigneeFilter{Unassigned: true}
	case a.assigneeFilter.Unassigned:
		if len(users) > 0 {
			a.assigneeFilter = AssigneeFilter{User: users[0]}
		} else {
			a.assigneeFilter = AssigneeFilter{}
		}
	default:
		next := -1
		for i, u := range users {
			if strings.EqualFold(u, a.assigneeFilter.User) {
				next = i + 1
				break
			}
		}
		if next >= 0 && next < len(users) {
			a.assigneeFilter = AssigneeFilter{User: users[next]}
		} else {
			a.assigneeFilter = AssigneeFilter{}
		}
	}
	a.rebuildIssueFilter()
	a.setTransient("Assignee: " + a.assigneeFilter.String())
}

func (a *App) resetAssigneeFilter() {
	a.assigneeFilter = AssigneeFilter{}
	a.rebuildIssueFilter()
	a.setTransient("Assignee: all")
}

// rebuildRepoFilter matches the repo search query against everything a row
// shows: path, remote names, owner/repo, and URL.
func (a *App) rebuildRepoFilter() {
	selected := ""
	if repo, ok := a.selectedRepo(); ok {
		selected = repo.Path
	}

	q := strings.ToLower(strings.TrimSpace(a.repoQuery))
	idx := make([]int, 0, len(a.repos))
	for i, repo := range a.repos {
		if q == "" || strings.Contains(repoHaystack(repo), q) {
			idx = append(idx, i)
		}
	}

	a.filteredRepos = idx
	a.repoCursor = clampCursor(a.repoCursor, len(idx))
	if selected != "" {
		for pos, i := range idx {
			if a.repos[i].Path == selected {
				a.repoCursor = pos
				break
			}
		}
	}
}

func (a *App) setRepoQuery(q string) {
	a.repoQuery = q
	a.rebuildRepoFilter()
}

func containsFold(list []string, want string) bool {
	for _, s := range list {
		if strings.EqualFold(s, want) {
			return true
		}
	}
	return false
}

func hasLabelFold(labels []Label, want string) bool {
	for _, l := range labels {
		if strings.EqualFold(l.Name, want) {
			return true
		}
	}
	return false
}
