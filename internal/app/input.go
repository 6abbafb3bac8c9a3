package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"hubbub/internal/patch"
)

// HandleKey is the keyboard dispatcher. Order: text-entry views consume
// everything, then active search/filter modes, then pending chords, then
// global bindings, then per-(view, focus) keys. Unmatched events are no-ops.
func (a *App) HandleKey(msg tea.KeyMsg) {
	// Ctrl+C interrupts regardless of mode or remapping.
	if msg.String() == "ctrl+c" {
		a.emit(Action{Kind: ActionQuit})
		return
	}

	switch a.view {
	case ViewCommentEditor:
		a.handleEditorKey(msg)
		return
	case ViewCommentPresetName:
		a.handlePresetNameKey(msg)
		return
	}

	if a.repoSearch && a.view == ViewRepoPicker && a.handleRepoSearchKey(msg) {
		return
	}
	if a.searchActive && a.view == ViewIssues && a.handleIssueSearchKey(msg) {
		return
	}
	if a.popupFilterActive && (a.view == ViewLabelPicker || a.view == ViewAssigneePicker) &&
		a.handlePopupFilterKey(msg) {
		return
	}

	// A pending chord either completes on its second key or is dropped, in
	// which case the interrupting key dispatches normally below.
	if a.chord != chordNone {
		prev := a.chord
		a.chord = chordNone
		switch {
		case prev == chordG && key.Matches(msg, a.keys.JumpPrefix):
			a.jumpTop()
			return
		case prev == chordD && key.Matches(msg, a.keys.ClosePrefix) && a.closeChordAllowed():
			a.openClosePresetPicker()
			return
		}
	}

	if a.helpVisible && msg.String() == "esc" {
		a.helpVisible = false
		return
	}

	switch {
	case key.Matches(msg, a.keys.Help):
		a.helpVisible = !a.helpVisible
		return
	case key.Matches(msg, a.keys.Quit):
		a.emit(Action{Kind: ActionQuit})
		return
	case key.Matches(msg, a.keys.CopyStatus):
		a.emit(Action{Kind: ActionCopyText, Text: a.StatusLine()})
		return
	case key.Matches(msg, a.keys.RepoPicker):
		a.openRepoPicker()
		return
	case key.Matches(msg, a.keys.Rescan):
		a.RequestRescan()
		a.setTransient("Scanning repositories")
		return
	case key.Matches(msg, a.keys.Refresh):
		a.refreshCurrentView()
		return
	}

	if key.Matches(msg, a.keys.JumpPrefix) {
		a.chord = chordG
		return
	}
	if key.Matches(msg, a.keys.ClosePrefix) && a.closeChordAllowed() {
		a.chord = chordD
		return
	}

	if a.viewSpecificKey(msg) {
		return
	}

	switch {
	case key.Matches(msg, a.keys.Up):
		a.moveUp()
	case key.Matches(msg, a.keys.Down):
		a.moveDown()
	case key.Matches(msg, a.keys.JumpBottom):
		a.jumpBottom()
	case key.Matches(msg, a.keys.Select):
		a.activateSelection()
	case key.Matches(msg, a.keys.Back), key.Matches(msg, a.keys.Escape):
		a.back()
	}
}

func (a *App) closeChordAllowed() bool {
	switch a.view {
	case ViewIssues:
		_, ok := a.selectedIssue()
		return ok
	case ViewIssueDetail:
		_, ok := a.currentIssueRow()
		return ok
	}
	return false
}

func (a *App) viewSpecificKey(msg tea.KeyMsg) bool {
	switch a.view {
	case ViewRepoPicker:
		if key.Matches(msg, a.keys.Search) {
			a.repoSearch = true
			return true
		}
	case ViewIssues:
		return a.issuesKey(msg)
	case ViewIssueDetail:
		return a.issueDetailKey(msg)
	case ViewIssueComments:
		return a.issueCommentsKey(msg)
	case ViewPullRequestFiles:
		return a.reviewKey(msg)
	case ViewLabelPicker, ViewAssigneePicker:
		return a.pickerKey(msg)
	}
	return false
}

func (a *App) issuesKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, a.keys.Search):
		a.searchActive = true
	case key.Matches(msg, a.keys.StatusOpen):
		a.setStatusFilter(StatusFilterOpen)
	case key.Matches(msg, a.keys.StatusClosed):
		a.setStatusFilter(StatusFilterClosed)
	case key.Matches(msg, a.keys.StatusToggle):
		a.toggleStatusFilter()
	case key.Matches(msg, a.keys.AssigneeCycle):
		a.cycleAssigneeFilter()
	case key.Matches(msg, a.keys.AssigneeReset):
		a.resetAssigneeFilter()
	case key.Matches(msg, a.keys.WorkItemsToggle):
		a.toggleWorkItems()
	case key.Matches(msg, a.keys.CreateIssue):
		a.openCreateIssueEditor()
	case key.Matches(msg, a.keys.OpenBrowser):
		a.openCurrentInBrowser()
	case key.Matches(msg, a.keys.OpenLabels):
		a.openLabelPicker()
	case key.Matches(msg, a.keys.OpenAssignees):
		a.openAssigneePicker()
	case key.Matches(msg, a.keys.Escape):
		// esc clears an applied search filter before it navigates back.
		if a.searchQuery == "" {
			return false
		}
		a.setSearchQuery("")
	default:
		return false
	}
	return true
}

func (a *App) issueDetailKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, a.keys.FocusLeft), key.Matches(msg, a.keys.FocusUp):
		a.focus = FocusBody
	case key.Matches(msg, a.keys.FocusRight), key.Matches(msg, a.keys.FocusDown):
		a.focus = FocusSidePanel
	case key.Matches(msg, a.keys.AddComment):
		a.openAddCommentEditor()
	case key.Matches(msg, a.keys.Edit):
		a.openEditIssueEditor()
	case key.Matches(msg, a.keys.CommentNext):
		a.jumpRecentComment(1)
	case key.Matches(msg, a.keys.CommentPrev):
		a.jumpRecentComment(-1)
	case key.Matches(msg, a.keys.OpenBrowser):
		a.openCurrentInBrowser()
	case key.Matches(msg, a.keys.OpenLinkedBrowser):
		a.openLinked(true)
	case key.Matches(msg, a.keys.OpenLinkedTUI):
		a.openLinked(false)
	case key.Matches(msg, a.keys.OpenLabels):
		a.openLabelPicker()
	case key.Matches(msg, a.keys.OpenAssignees):
		a.openAssigneePicker()
	case key.Matches(msg, a.keys.CheckoutPull):
		a.checkoutCurrentPull()
	default:
		return false
	}
	return true
}

func (a *App) issueCommentsKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, a.keys.AddComment):
		a.openAddCommentEditor()
	case key.Matches(msg, a.keys.Edit):
		a.openEditCommentEditor()
	case key.Matches(msg, a.keys.DeleteComment):
		a.deleteSelectedComment()
	default:
		return false
	}
	return true
}

func (a *App) reviewKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, a.keys.FocusLeft):
		a.leaveDiffFocus()
		return true
	case key.Matches(msg, a.keys.FocusRight):
		a.enterDiffFocus()
		return true
	case key.Matches(msg, a.keys.CheckoutPull):
		a.checkoutCurrentPull()
		return true
	case key.Matches(msg, a.keys.OpenBrowser):
		a.openCurrentInBrowser()
		return true
	case key.Matches(msg, a.keys.OpenLinkedBrowser):
		a.openLinked(true)
		return true
	case key.Matches(msg, a.keys.OpenLinkedTUI):
		a.openLinked(false)
		return true
	}

	if a.reviewFocus == ReviewFocusDiff {
		switch {
		case key.Matches(msg, a.keys.CollapseHunk):
			a.toggleCollapse()
		case key.Matches(msg, a.keys.VisualMode):
			a.toggleVisual()
		case key.Matches(msg, a.keys.SideLeft):
			a.setReviewSide(patch.SideLeft)
		case key.Matches(msg, a.keys.SideRight):
			a.setReviewSide(patch.SideRight)
		case key.Matches(msg, a.keys.ScrollLeft):
			a.panDiff(-diffPanStep)
		case key.Matches(msg, a.keys.ScrollRight):
			a.panDiff(diffPanStep)
		case key.Matches(msg, a.keys.ScrollReset):
			a.resetDiffPan()
		case key.Matches(msg, a.keys.AddComment):
			a.openAddReviewCommentEditor()
		case key.Matches(msg, a.keys.Edit):
			a.openEditReviewCommentEditor()
		case key.Matches(msg, a.keys.DeleteComment):
			a.deleteSelectedReviewComment()
		case key.Matches(msg, a.keys.ResolveThread):
			a.resolveSelectedThread()
		case key.Matches(msg, a.keys.CommentNext):
			a.cycleReviewComment(true)
		case key.Matches(msg, a.keys.CommentPrev):
			a.cycleReviewComment(false)
		default:
			return false
		}
		return true
	}

	if key.Matches(msg, a.keys.ToggleViewed) {
		a.toggleViewed()
		return true
	}
	return false
}

func (a *App) pickerKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, a.keys.Search):
		a.popupFilterActive = true
	case key.Matches(msg, a.keys.PopupToggle):
		a.togglePickerOption()
	case key.Matches(msg, a.keys.ClearFilter):
		a.setPopupQuery("")
	default:
		return false
	}
	return true
}

// handleRepoSearchKey consumes typing for the repo search prompt; keys it
// does not understand fall through to normal dispatch.
func (a *App) handleRepoSearchKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "esc":
		a.repoSearch = false
		a.setRepoQuery("")
	case "enter":
		a.repoSearch = false
	case "backspace":
		a.setRepoQuery(trimLastRune(a.repoQuery))
	case "ctrl+u":
		a.setRepoQuery("")
	default:
		switch msg.Type {
		case tea.KeyRunes:
			a.setRepoQuery(a.repoQuery + string(msg.Runes))
		case tea.KeySpace:
			a.setRepoQuery(a.repoQuery + " ")
		default:
			return false
		}
	}
	return true
}

func (a *App) handleIssueSearchKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "esc":
		a.searchActive = false
		a.setSearchQuery("")
	case "enter":
		a.searchActive = false
	case "backspace":
		a.setSearchQuery(trimLastRune(a.searchQuery))
	case "ctrl+u":
		a.setSearchQuery("")
	default:
		switch msg.Type {
		case tea.KeyRunes:
			a.setSearchQuery(a.searchQuery + string(msg.Runes))
		case tea.KeySpace:
			a.setSearchQuery(a.searchQuery + " ")
		default:
			return false
		}
	}
	return true
}

// handlePopupFilterKey types into the popup filter. With an empty query the
// j/k/g/G navigation keys still move the list; any other printable character
// starts the query.
func (a *App) handlePopupFilterKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "esc":
		a.popupFilterActive = false
		a.setPopupQuery("")
	case "enter":
		a.popupFilterActive = false
	case "backspace":
		if a.popupQuery == "" {
			a.popupFilterActive = false
			return true
		}
		a.setPopupQuery(trimLastRune(a.popupQuery))
	case "ctrl+u":
		a.setPopupQuery("")
	default:
		switch msg.Type {
		case tea.KeySpace:
			a.setPopupQuery(a.popupQuery + " ")
		case tea.KeyRunes:
			s := string(msg.Runes)
			if a.popupQuery == "" {
				switch s {
				case "j":
					a.moveDown()
					return true
				case "k":
					a.moveUp()
					return true
				case "g":
					a.jumpTop()
					return true
				case "G":
					a.jumpBottom()
					return true
				}
			}
			a.setPopupQuery(a.popupQuery + s)
		default:
			return false
		}
	}
	return true
}

func (a *App) refreshCurrentView() {
	switch a.view {
	case ViewRepoPicker, ViewRemoteChooser:
		a.RequestRescan()
		a.setTransient("Scanning repositories")
	case ViewIssues:
		a.requestIssueSync()
		a.setTransient("Refreshing issues")
	case ViewIssueDetail, ViewIssueComments:
		a.requestIssueSync()
		a.requestCommentsSync()
		a.requestLinkedSync()
		a.setTransient("Refreshing")
	case ViewPullRequestFiles:
		a.requestPullFilesSync()
		a.requestReviewSync()
		a.setTransient("Refreshing review")
	default:
		a.requestIssueSync()
		a.setTransient("Refreshing")
	}
}

// jumpRecentComment steps the recent-comments selection in the detail side
// panel.
func (a *App) jumpRecentComment(delta int) {
	if len(a.comments) == 0 {
		a.setTransient("No comments")
		return
	}
	a.recentComment = clampCursor(a.recentComment+delta, len(a.comments))
	a.setTransient(fmt.Sprintf("Comment %d/%d", a.recentComment+1, len(a.comments)))
}

func (a *App) deleteSelectedComment() {
	c, ok := a.selectedComment()
	if !ok {
		a.setTransient("No comment selected")
		return
	}
	a.emit(Action{Kind: ActionDeleteComment, IssueNumber: a.currentIssue, CommentID: c.ID})
}
