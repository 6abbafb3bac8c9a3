package app

import "fmt"

// setView switches screens and applies the transition side effects every
// entry point must agree on: the help overlay closes, per-view focus resets,
// and stale input modes are dropped.
func (a *App) setView(v View) {
	a.helpVisible = false
	if a.view == ViewPullRequestFiles && v != ViewPullRequestFiles {
		a.prExpanded = false
	}
	switch v {
	case ViewIssues:
		a.focus = FocusList
	case ViewIssueDetail:
		a.focus = FocusBody
	case ViewPullRequestFiles:
		a.reviewFocus = ReviewFocusFiles
	case ViewRepoPicker:
		// An already-active repo search survives bouncing back here.
		a.searchActive = false
		a.popupFilterActive = false
	default:
		a.searchActive = false
		a.repoSearch = false
		a.popupFilterActive = false
	}
	a.view = v
}

// back steps one level out of the current view. Inside the review screen it
// first un-expands the diff, then drops diff focus, and only then leaves.
func (a *App) back() {
	switch a.view {
	case ViewRemoteChooser:
		a.setView(ViewRepoPicker)
	case ViewIssues:
		a.openRepoPicker()
	case ViewIssueDetail:
		a.leaveIssueDetail()
	case ViewIssueComments:
		a.setView(ViewIssueDetail)
	case ViewPullRequestFiles:
		if a.prExpanded {
			a.prExpanded = false
			return
		}
		if a.reviewFocus == ReviewFocusDiff {
			a.leaveDiffFocus()
			return
		}
		a.setView(ViewIssueDetail)
	case ViewLinkedPicker:
		a.setView(a.linkedReturn)
	case ViewLabelPicker, ViewAssigneePicker:
		a.setView(a.pickerReturn)
	case ViewCommentPresetPicker:
		a.setView(a.presetReturn)
	case ViewCommentPresetName:
		a.setView(ViewCommentPresetPicker)
	case ViewCommentEditor:
		a.cancelEditor()
	}
}

// leaveIssueDetail returns to the issue list, or to the work item the user
// followed a link from.
func (a *App) leaveIssueDetail() {
	if a.linkedOrigin != nil {
		origin := a.linkedOrigin.Number
		a.linkedOrigin = nil
		if _, ok := a.issueByNumber(origin); ok {
			a.showIssue(origin)
			a.setTransient(fmt.Sprintf("Returned to #%d", origin))
			return
		}
		a.setTransient(fmt.Sprintf("Could not return to #%d", origin))
	}
	a.setView(ViewIssues)
}

// openRepoPicker resets the picker to a clean slate; ctrl+g always lands on
// an unfiltered list.
func (a *App) openRepoPicker() {
	a.repoSearch = false
	a.repoQuery = ""
	a.rebuildRepoFilter()
	a.setView(ViewRepoPicker)
}

// chooseRepo activates the highlighted repository row: straight to issues
// when it has one usable remote, through the remote chooser when several.
func (a *App) chooseRepo() {
	repo, ok := a.selectedRepo()
	if !ok {
		return
	}
	switch len(repo.Remotes) {
	case 0:
		a.setTransient(fmt.Sprintf("No GitHub remotes in %s", repo.Path))
	case 1:
		a.remotes = repo.Remotes
		a.selectRemote(0)
	default:
		a.remotes = repo.Remotes
		a.remoteCursor = 0
		a.setView(ViewRemoteChooser)
	}
}

// selectRemote fixes the owner/repo context and clears every collection that
// belonged to the previous repository.
func (a *App) selectRemote(i int) {
	if i < 0 || i >= len(a.remotes) {
		return
	}
	repo, _ := a.selectedRepo()
	remote := a.remotes[i]

	a.repoPath = repo.Path
	a.owner = remote.Owner
	a.repoName = remote.Repo

	a.issues = nil
	a.filteredIssues = nil
	a.issueCursor = 0
	a.currentIssue = 0
	a.comments = nil
	a.commentCursor = 0
	a.prFiles = nil
	a.prFilesIssue = 0
	a.reviewComments = nil
	a.prCollapsed = make(map[string]map[int]bool)
	a.prViewed = make(map[string]bool)
	a.linkedPulls = make(map[int][]int)
	a.linkedIssues = make(map[int][]int)
	a.linkedOrigin = nil
	a.labelOptions = nil
	a.labelChecked = make(map[string]bool)
	a.assigneeOptions = nil
	a.assigneeChecked = make(map[string]bool)
	a.assigneeFilter = AssigneeFilter{}
	a.searchQuery = ""
	a.searchActive = false

	a.SetStatus(fmt.Sprintf("%s/%s", a.owner, a.repoName))
	a.requestIssueSync()
	a.requestMetadataSync()
	a.setView(ViewIssues)
}

// showIssue makes an issue current and resets the per-issue panes. It does
// not touch the linked-navigation origin; callers decide that.
func (a *App) showIssue(number int) {
	a.currentIssue = number
	a.detailScroll = 0
	a.sideScroll = 0
	a.recentComment = 0
	a.commentCursor = 0
	a.requestCommentsSync()
	a.requestLinkedSync()
	a.setView(ViewIssueDetail)
}

// openSelectedIssue opens the highlighted list row, forgetting any pending
// link-back origin.
func (a *App) openSelectedIssue() {
	issue, ok := a.selectedIssue()
	if !ok {
		return
	}
	a.linkedOrigin = nil
	a.showIssue(issue.Number)
}

func (a *App) moveUp()   { a.moveSelection(-1) }
func (a *App) moveDown() { a.moveSelection(1) }

// moveSelection is the one place cursor movement branches on (view, focus);
// every input source funnels through it.
func (a *App) moveSelection(delta int) {
	switch a.view {
	case ViewRepoPicker:
		a.repoCursor = clampCursor(a.repoCursor+delta, len(a.filteredRepos))
	case ViewRemoteChooser:
		a.remoteCursor = clampCursor(a.remoteCursor+delta, len(a.remotes))
	case ViewIssues:
		a.issueCursor = clampCursor(a.issueCursor+delta, len(a.filteredIssues))
	case ViewIssueDetail:
		if a.focus == FocusSidePanel {
			a.sideScroll = clampInt(a.sideScroll+delta, 0, a.sideMaxScroll)
		} else {
			a.detailScroll = clampInt(a.detailScroll+delta, 0, a.detailMaxScroll)
		}
	case ViewIssueComments:
		a.commentCursor = clampCursor(a.commentCursor+delta, len(a.comments))
	case ViewPullRequestFiles:
		if a.reviewFocus == ReviewFocusDiff {
			a.moveDiffCursor(delta)
		} else {
			a.selectFile(a.prFileCursor + delta)
		}
	case ViewLinkedPicker:
		a.linkedCursor = clampCursor(a.linkedCursor+delta, len(a.linkedChoices))
	case ViewLabelPicker, ViewAssigneePicker:
		a.pickerCursor = clampCursor(a.pickerCursor+delta, len(a.filteredOptions))
	case ViewCommentPresetPicker:
		a.presetCursor = clampCursor(a.presetCursor+delta, a.presetOptionCount())
	}
}

func (a *App) jumpTop() {
	switch a.view {
	case ViewRepoPicker:
		a.repoCursor = 0
	case ViewRemoteChooser:
		a.remoteCursor = 0
	case ViewIssues:
		a.issueCursor = 0
	case ViewIssueDetail:
		if a.focus == FocusSidePanel {
			a.sideScroll = 0
		} else {
			a.detailScroll = 0
		}
	case ViewIssueComments:
		a.commentCursor = 0
	case ViewPullRequestFiles:
		if a.reviewFocus == ReviewFocusDiff {
			a.diffJumpTop()
		} else {
			a.selectFile(0)
		}
	case ViewLinkedPicker:
		a.linkedCursor = 0
	case ViewLabelPicker, ViewAssigneePicker:
		a.pickerCursor = 0
	case ViewCommentPresetPicker:
		a.presetCursor = 0
	}
}

func (a *App) jumpBottom() {
	switch a.view {
	case ViewRepoPicker:
		a.repoCursor = clampCursor(len(a.filteredRepos)-1, len(a.filteredRepos))
	case ViewRemoteChooser:
		a.remoteCursor = clampCursor(len(a.remotes)-1, len(a.remotes))
	case ViewIssues:
		a.issueCursor = clampCursor(len(a.filteredIssues)-1, len(a.filteredIssues))
	case ViewIssueDetail:
		if a.focus == FocusSidePanel {
			a.sideScroll = a.sideMaxScroll
		} else {
			a.detailScroll = a.detailMaxScroll
		}
	case ViewIssueComments:
		a.commentCursor = clampCursor(len(a.comments)-1, len(a.comments))
	case ViewPullRequestFiles:
		if a.reviewFocus == ReviewFocusDiff {
			a.diffJumpBottom()
		} else {
			a.selectFile(len(a.prFiles) - 1)
		}
	case ViewLinkedPicker:
		a.linkedCursor = clampCursor(len(a.linkedChoices)-1, len(a.linkedChoices))
	case ViewLabelPicker, ViewAssigneePicker:
		a.pickerCursor = clampCursor(len(a.filteredOptions)-1, len(a.filteredOptions))
	case ViewCommentPresetPicker:
		a.presetCursor = clampCursor(a.presetOptionCount()-1, a.presetOptionCount())
	}
}

// activateSelection is "what enter means" per (view, focus).
func (a *App) activateSelection() {
	switch a.view {
	case ViewRepoPicker:
		a.chooseRepo()
	case ViewRemoteChooser:
		a.selectRemote(a.remoteCursor)
	case ViewIssues:
		a.openSelectedIssue()
	case ViewIssueDetail:
		a.openWorkItemBody()
	case ViewPullRequestFiles:
		if a.reviewFocus == ReviewFocusDiff {
			a.toggleExpanded()
		} else {
			a.enterDiffFocus()
		}
	case ViewLinkedPicker:
		a.activateLinkedChoice()
	case ViewLabelPicker, ViewAssigneePicker:
		a.togglePickerOption()
		a.submitPicker()
	case ViewCommentPresetPicker:
		a.activatePresetOption()
	}
}

// openWorkItemBody drills into the current issue: review screen for pull
// requests, the comment list for plain issues.
func (a *App) openWorkItemBody() {
	issue, ok := a.currentIssueRow()
	if !ok {
		return
	}
	if issue.IsPull {
		if a.prFilesIssue != issue.Number {
			a.requestPullFilesSync()
			a.requestReviewSync()
		}
		a.setView(ViewPullRequestFiles)
		return
	}
	a.requestCommentsSync()
	a.setView(ViewIssueComments)
}
