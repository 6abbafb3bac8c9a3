package app

import "fmt"

// SetLinkedPullRequests caches the pull requests cross-referenced from an
// issue, deduplicated in first-seen order. An empty result never erases
// earlier candidates; only a new non-empty result replaces them. The reverse
// mapping picks up the issue as a candidate of each pull request.
func (a *App) SetLinkedPullRequests(issueNumber int, pulls []int) {
	pulls = dedupeInts(pulls)
	if len(pulls) == 0 {
		return
	}
	a.linkedPulls[issueNumber] = pulls
	for _, pr := range pulls {
		a.linkedIssues[pr] = appendUniqueInt(a.linkedIssues[pr], issueNumber)
	}
}

// SetLinkedIssues is the pull-request-side counterpart of
// SetLinkedPullRequests.
func (a *App) SetLinkedIssues(pullNumber int, issues []int) {
	issues = dedupeInts(issues)
	if len(issues) == 0 {
		return
	}
	a.linkedIssues[pullNumber] = issues
	for _, n := range issues {
		a.linkedPulls[n] = appendUniqueInt(a.linkedPulls[n], pullNumber)
	}
}

func (a *App) LinkedPullRequestsForIssue(n int) []int { return a.linkedPulls[n] }
func (a *App) LinkedIssuesForPull(n int) []int        { return a.linkedIssues[n] }

// LinkedPullRequestForIssue returns the first cached candidate.
func (a *App) LinkedPullRequestForIssue(n int) (int, bool) {
	if c := a.linkedPulls[n]; len(c) > 0 {
		return c[0], true
	}
	return 0, false
}

func (a *App) LinkedIssueForPull(n int) (int, bool) {
	if c := a.linkedIssues[n]; len(c) > 0 {
		return c[0], true
	}
	return 0, false
}

// openLinked jumps to the work item linked to the current one: directly when
// one candidate is cached, through the picker when several. With none cached
// it asks the sync layer to look again.
func (a *App) openLinked(inBrowser bool) {
	issue, ok := a.currentIssueRow()
	if !ok {
		return
	}
	var candidates []int
	if issue.IsPull {
		candidates = a.linkedIssues[issue.Number]
	} else {
		candidates = a.linkedPulls[issue.Number]
	}
	switch len(candidates) {
	case 0:
		a.requestLinkedSync()
		if issue.IsPull {
			a.setTransient("No linked issue")
		} else {
			a.setTransient("No linked pull request")
		}
	case 1:
		a.openLinkedNumber(candidates[0], inBrowser)
	default:
		a.linkedChoices = append([]int(nil), candidates...)
		a.linkedCursor = 0
		a.linkedOpenBrowser = inBrowser
		a.linkedReturn = a.view
		a.setView(ViewLinkedPicker)
	}
}

// openLinkedNumber opens one linked work item, remembering where the jump
// came from so back can return there.
func (a *App) openLinkedNumber(number int, inBrowser bool) {
	if inBrowser {
		a.emit(Action{Kind: ActionOpenURL, URL: a.issueURL(number)})
		return
	}
	if _, cached := a.issueByNumber(number); !cached {
		a.setTransient(fmt.Sprintf("#%d is not loaded", number))
		return
	}
	if current, ok := a.currentIssueRow(); ok {
		a.linkedOrigin = &navOrigin{Number: current.Number}
	}
	a.showIssue(number)
}

func (a *App) activateLinkedChoice() {
	if a.linkedCursor < 0 || a.linkedCursor >= len(a.linkedChoices) {
		return
	}
	number := a.linkedChoices[a.linkedCursor]
	inBrowser := a.linkedOpenBrowser
	a.setView(a.linkedReturn)
	a.openLinkedNumber(number, inBrowser)
}

// LinkedChoiceLabels renders picker rows as "#N  Title", falling back to the
// bare number for items not in the cached issue list.
func (a *App) LinkedChoiceLabels() []string {
	out := make([]string, len(a.linkedChoices))
	for i, n := range a.linkedChoices {
		if issue, ok := a.issueByNumber(n); ok {
			out[i] = fmt.Sprintf("#%d  %s", n, issue.Title)
		} else {
			out[i] = fmt.Sprintf("#%d", n)
		}
	}
	return out
}

// browseTarget is the issue 'o' acts on: the list selection in the issue
// list, the open issue everywhere else.
func (a *App) browseTarget() (Issue, bool) {
	if a.view == ViewIssues {
		return a.selectedIssue()
	}
	return a.currentIssueRow()
}

func (a *App) openCurrentInBrowser() {
	issue, ok := a.browseTarget()
	if !ok {
		return
	}
	a.emit(Action{Kind: ActionOpenURL, URL: a.issueURLFor(issue)})
}

func (a *App) issueURL(number int) string {
	if issue, ok := a.issueByNumber(number); ok {
		return a.issueURLFor(issue)
	}
	return fmt.Sprintf("https://github.com/%s/%s/issues/%d", a.owner, a.repoName, number)
}

func (a *App) issueURLFor(issue Issue) string {
	if issue.URL != "" {
		return issue.URL
	}
	kind := "issues"
	if issue.IsPull {
		kind = "pull"
	}
	return fmt.Sprintf("https://github.com/%s/%s/%s/%d", a.owner, a.repoName, kind, issue.Number)
}

func dedupeInts(in []int) []int {
	seen := make(map[int]bool, len(in))
	out := in[:0:0]
	for _, n := range in {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

func appendUniqueInt(list []int, n int) []int {
	for _, have := range list {
		if have == n {
			return list
		}
	}
	return append(list, n)
}
