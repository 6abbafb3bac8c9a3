package app

import (
	"fmt"
	"sort"

	"hubbub/internal/patch"
)

const diffPanStep = 4

// SetPullRequestFiles replaces the review file set. Refreshing the same pull
// request keeps the file selection (clamped) and the viewed flags of files
// that survived; a different pull request starts from scratch. Collapsed
// hunks are retained only for paths present in the new list either way.
func (a *App) SetPullRequestFiles(issueNumber int, files []PullRequestFile) {
	samePull := issueNumber == a.prFilesIssue
	a.prFiles = files
	a.prFilesIssue = issueNumber

	present := make(map[string]bool, len(files))
	for _, f := range files {
		present[f.Path] = true
	}
	for path := range a.prCollapsed {
		if !present[path] {
			delete(a.prCollapsed, path)
		}
	}
	if samePull {
		for path := range a.prViewed {
			if !present[path] {
				delete(a.prViewed, path)
			}
		}
		a.prFileCursor = clampCursor(a.prFileCursor, len(files))
	} else {
		a.prViewed = make(map[string]bool)
		a.prFileCursor = 0
	}

	a.prRowCursor = 0
	a.prScroll = 0
	a.prXScroll = 0
	a.prVisual = false
	a.prExpanded = false
	a.reviewFocus = ReviewFocusFiles
	a.prSelectedComment = 0
}

// SetReviewComments replaces the cached review comments, stored sorted by
// path, then line, then id so thread cycling order is stable.
func (a *App) SetReviewComments(comments []ReviewComment) {
	sort.Slice(comments, func(i, j int) bool {
		if comments[i].Path != comments[j].Path {
			return comments[i].Path < comments[j].Path
		}
		if comments[i].Line != comments[j].Line {
			return comments[i].Line < comments[j].Line
		}
		return comments[i].ID < comments[j].ID
	})
	a.reviewComments = comments
	a.syncSelectedComment()
}

func (a *App) currentPullFile() (PullRequestFile, bool) {
	if a.prFileCursor < 0 || a.prFileCursor >= len(a.prFiles) {
		return PullRequestFile{}, false
	}
	return a.prFiles[a.prFileCursor], true
}

// currentDiffRows re-parses the selected file's patch. Parse is pure, so
// there is no cache to invalidate when the file list is replaced.
func (a *App) currentDiffRows() []patch.DiffRow {
	file, ok := a.currentPullFile()
	if !ok {
		return nil
	}
	return patch.Parse(file.Patch)
}

func (a *App) currentCollapsed() map[int]bool {
	file, ok := a.currentPullFile()
	if !ok {
		return nil
	}
	return a.prCollapsed[file.Path]
}

// selectFile moves the file selection; switching files resets the diff
// cursor, both scroll axes, visual mode and the expanded pane.
func (a *App) selectFile(i int) {
	i = clampCursor(i, len(a.prFiles))
	if i == a.prFileCursor {
		return
	}
	a.prFileCursor = i
	a.prRowCursor = 0
	a.prScroll = 0
	a.prXScroll = 0
	a.prVisual = false
	a.prExpanded = false
	a.syncSelectedComment()
}

// enterDiffFocus moves review focus into the diff pane, re-snapping the
// cursor so it never lands on a row hidden by a collapsed hunk.
func (a *App) enterDiffFocus() {
	if len(a.prFiles) == 0 {
		return
	}
	a.reviewFocus = ReviewFocusDiff
	rows := a.currentDiffRows()
	if len(rows) == 0 {
		a.prRowCursor = 0
		return
	}
	a.prRowCursor = patch.NearestVisible(rows, a.currentCollapsed(), a.prRowCursor)
	a.syncSelectedComment()
}

func (a *App) leaveDiffFocus() {
	a.reviewFocus = ReviewFocusFiles
	a.prVisual = false
	a.prExpanded = false
}

// toggleVisual starts or ends a range selection anchored at the current row.
func (a *App) toggleVisual() {
	if a.reviewFocus != ReviewFocusDiff {
		return
	}
	if a.prVisual {
		a.prVisual = false
		a.syncSelectedComment()
		return
	}
	if len(a.currentDiffRows()) == 0 {
		return
	}
	a.prVisual = true
	a.prVisualAnchor = a.prRowCursor
	a.syncSelectedComment()
}

// visualRange returns the active selection bounds, anchor and cursor in
// either order.
func (a *App) visualRange() (int, int, bool) {
	if !a.prVisual {
		return 0, 0, false
	}
	lo, hi := orderRange(a.prVisualAnchor, a.prRowCursor)
	return lo, hi, true
}

// toggleCollapse folds or unfolds the hunk under the cursor. Folding snaps
// the cursor onto the hunk header, the only row of the hunk left visible.
func (a *App) toggleCollapse() {
	file, ok := a.currentPullFile()
	if !ok {
		return
	}
	rows := a.currentDiffRows()
	r, ok := patch.HunkForRow(rows, a.prRowCursor)
	if !ok {
		a.setTransient("No hunk here")
		return
	}
	set := a.prCollapsed[file.Path]
	if set != nil && set[r.Start] {
		delete(set, r.Start)
		if len(set) == 0 {
			delete(a.prCollapsed, file.Path)
		}
	} else {
		if set == nil {
			set = make(map[int]bool)
			a.prCollapsed[file.Path] = set
		}
		set[r.Start] = true
		a.prRowCursor = patch.NearestVisible(rows, set, a.prRowCursor)
	}
	a.syncSelectedComment()
}

// toggleViewed flips the reviewed flag for the selected file and tells the
// action layer so the flag can be persisted.
func (a *App) toggleViewed() {
	file, ok := a.currentPullFile()
	if !ok {
		return
	}
	viewed := !a.prViewed[file.Path]
	if viewed {
		a.prViewed[file.Path] = true
	} else {
		delete(a.prViewed, file.Path)
	}
	a.emit(Action{Kind: ActionToggleViewed, IssueNumber: a.prFilesIssue, Path: file.Path, Viewed: viewed})
}

// moveDiffCursor steps the diff cursor over visible rows only.
func (a *App) moveDiffCursor(delta int) {
	rows := a.currentDiffRows()
	if len(rows) == 0 {
		return
	}
	collapsed := a.currentCollapsed()
	cur := patch.NearestVisible(rows, collapsed, a.prRowCursor)
	steps, dir := delta, 1
	if steps < 0 {
		steps, dir = -steps, -1
	}
	for ; steps > 0; steps-- {
		var next int
		var ok bool
		if dir > 0 {
			next, ok = patch.NextVisible(rows, collapsed, cur)
		} else {
			next, ok = patch.PreviousVisible(rows, collapsed, cur)
		}
		if !ok {
			break
		}
		cur = next
	}
	a.prRowCursor = cur
	a.syncSelectedComment()
}

func (a *App) diffJumpTop() {
	rows := a.currentDiffRows()
	if len(rows) == 0 {
		return
	}
	a.prRowCursor = patch.NearestVisible(rows, a.currentCollapsed(), 0)
	a.prScroll = 0
	a.syncSelectedComment()
}

func (a *App) diffJumpBottom() {
	rows := a.currentDiffRows()
	last, ok := patch.LastVisible(rows, a.currentCollapsed())
	if !ok {
		return
	}
	a.prRowCursor = last
	a.syncSelectedComment()
}

func (a *App) setReviewSide(s patch.Side) {
	if a.prSide == s {
		return
	}
	a.prSide = s
	a.syncSelectedComment()
}

// panDiff shifts the diff panes horizontally, clamped to the widest line the
// renderer reported.
func (a *App) panDiff(delta int) {
	a.prXScroll = clampInt(a.prXScroll+delta, 0, a.prMaxXScroll)
}

func (a *App) resetDiffPan() { a.prXScroll = 0 }

// SetDiffMaxPan records the widest rendered line; the renderer calls this
// every frame so pan clamping tracks content width.
func (a *App) SetDiffMaxPan(max int) {
	if max < 0 {
		max = 0
	}
	a.prMaxXScroll = max
	a.prXScroll = clampInt(a.prXScroll, 0, max)
}

func (a *App) SetDiffMaxScroll(max int) {
	if max < 0 {
		max = 0
	}
	a.prMaxScroll = max
	a.prScroll = clampInt(a.prScroll, 0, max)
}

func (a *App) SetDetailMaxScroll(max int) {
	if max < 0 {
		max = 0
	}
	a.detailMaxScroll = max
	a.detailScroll = clampInt(a.detailScroll, 0, max)
}

func (a *App) SetSideMaxScroll(max int) {
	if max < 0 {
		max = 0
	}
	a.sideMaxScroll = max
	a.sideScroll = clampInt(a.sideScroll, 0, max)
}

// toggleExpanded switches the diff pane to full width. Only reachable from
// diff focus; leaving the review screen or the focus clears it.
func (a *App) toggleExpanded() {
	if a.view != ViewPullRequestFiles || a.reviewFocus != ReviewFocusDiff {
		return
	}
	a.prExpanded = !a.prExpanded
}

// reviewTarget resolves where a new comment anchors for the current
// selection: the preferred-side lines of the visual range when any exist
// (last line is the anchor, first becomes StartLine for multi-line ranges),
// else the cursor row's own side.
func (a *App) reviewTarget() (ReviewTarget, bool) {
	file, ok := a.currentPullFile()
	if !ok {
		return ReviewTarget{}, false
	}
	rows := a.currentDiffRows()
	if len(rows) == 0 {
		return ReviewTarget{}, false
	}

	cursor := clampInt(a.prRowCursor, 0, len(rows)-1)
	lo, hi := cursor, cursor
	if a.prVisual {
		lo, hi = orderRange(a.prVisualAnchor, cursor)
		lo = clampInt(lo, 0, len(rows)-1)
		hi = clampInt(hi, 0, len(rows)-1)
	}

	var lines []int
	for i := lo; i <= hi; i++ {
		if n := rows[i].LineFor(a.prSide); n != nil {
			lines = append(lines, *n)
		}
	}
	if len(lines) > 0 {
		t := ReviewTarget{Path: file.Path, Line: lines[len(lines)-1], Side: a.prSide}
		if len(lines) > 1 {
			start, side := lines[0], a.prSide
			t.StartLine = &start
			t.StartSide = &side
		}
		return t, true
	}

	row := rows[cursor]
	switch row.Kind {
	case patch.RowAdded, patch.RowContext:
		if row.NewLine != nil {
			return ReviewTarget{Path: file.Path, Line: *row.NewLine, Side: patch.SideRight}, true
		}
	case patch.RowRemoved:
		if row.OldLine != nil {
			return ReviewTarget{Path: file.Path, Line: *row.OldLine, Side: patch.SideLeft}, true
		}
	}
	return ReviewTarget{}, false
}

// CurrentReviewTarget exposes the resolved anchor for the renderer and the
// action layer.
func (a *App) CurrentReviewTarget() (ReviewTarget, bool) {
	return a.reviewTarget()
}

// reviewCommentsAt returns the anchored comments at an exact (path, side,
// line) triple in ascending id order.
func (a *App) reviewCommentsAt(path string, side patch.Side, line int) []ReviewComment {
	var out []ReviewComment
	for _, c := range a.reviewComments {
		if c.Anchored && c.Path == path && c.Side == side && c.Line == line {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (a *App) reviewCommentOnLine(path string, side patch.Side, line int) bool {
	for _, c := range a.reviewComments {
		if c.Anchored && c.Path == path && c.Side == side && c.Line == line {
			return true
		}
	}
	return false
}

// currentReviewThread is the thread under the resolved target, empty when
// the selection anchors nowhere or no comment matches.
func (a *App) currentReviewThread() []ReviewComment {
	t, ok := a.reviewTarget()
	if !ok {
		return nil
	}
	return a.reviewCommentsAt(t.Path, t.Side, t.Line)
}

// syncSelectedComment drops the remembered thread comment when it no longer
// matches the selection. It runs after every cursor, side, or range change,
// so stale ids self-heal on the next navigation event.
func (a *App) syncSelectedComment() {
	if a.prSelectedComment == 0 {
		return
	}
	for _, c := range a.currentReviewThread() {
		if c.ID == a.prSelectedComment {
			return
		}
	}
	a.prSelectedComment = 0
}

// SelectedReviewComment is the thread comment the cursor points at: the
// remembered one when still present, else the lowest id at the triple.
func (a *App) SelectedReviewComment() (ReviewComment, bool) {
	thread := a.currentReviewThread()
	if len(thread) == 0 {
		return ReviewComment{}, false
	}
	if a.prSelectedComment != 0 {
		for _, c := range thread {
			if c.ID == a.prSelectedComment {
				return c, true
			}
		}
	}
	return thread[0], true
}

// cycleReviewComment steps circularly through the thread's ids. With nothing
// remembered, forward starts at the lowest id and backward at the highest.
func (a *App) cycleReviewComment(forward bool) {
	thread := a.currentReviewThread()
	if len(thread) == 0 {
		a.setTransient("No comments here")
		return
	}
	cur := -1
	for i, c := range thread {
		if c.ID == a.prSelectedComment {
			cur = i
			break
		}
	}
	var next int
	switch {
	case cur < 0 && forward:
		next = 0
	case cur < 0:
		next = len(thread) - 1
	case forward:
		next = (cur + 1) % len(thread)
	default:
		next = (cur - 1 + len(thread)) % len(thread)
	}
	a.prSelectedComment = thread[next].ID
	a.setTransient(fmt.Sprintf("Comment %d/%d", next+1, len(thread)))
}

func (a *App) deleteSelectedReviewComment() {
	if !a.canComment {
		a.setTransient("No comment permission")
		return
	}
	c, ok := a.SelectedReviewComment()
	if !ok {
		a.setTransient("No comment selected")
		return
	}
	a.emit(Action{Kind: ActionDeleteReviewComment, IssueNumber: a.prFilesIssue, CommentID: c.ID})
}

func (a *App) resolveSelectedThread() {
	if !a.canComment {
		a.setTransient("No comment permission")
		return
	}
	c, ok := a.SelectedReviewComment()
	if !ok {
		a.setTransient("No comment selected")
		return
	}
	if c.ThreadID == "" {
		a.setTransient("No thread to resolve")
		return
	}
	a.emit(Action{Kind: ActionResolveThread, IssueNumber: a.prFilesIssue, ThreadID: c.ThreadID})
}

func (a *App) checkoutCurrentPull() {
	issue, ok := a.currentIssueRow()
	if !ok || !issue.IsPull {
		a.setTransient("Not a pull request")
		return
	}
	a.emit(Action{Kind: ActionCheckoutPull, IssueNumber: issue.Number})
	a.setTransient(fmt.Sprintf("Checking out #%d", issue.Number))
}

func orderRange(x, y int) (int, int) {
	if x <= y {
		return x, y
	}
	return y, x
}
