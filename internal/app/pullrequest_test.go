package app

import (
	"testing"

	"hubbub/internal/patch"
)

// reviewPatch parses to: 0 header, 1 context (1,1), 2 changed (2,2),
// 3 added (-,3), 4 context (3,4).
const reviewPatch = "@@ -1,3 +1,4 @@\n line one\n-line two\n+line 2\n+line extra\n line three\n"

const addOnlyPatch = "@@ -0,0 +1,3 @@\n+alpha\n+beta\n+gamma\n"

// reviewTestApp is an App on the review screen of pull request #14, files
// pane focused, first file selected.
func reviewTestApp() *App {
	a := newTestApp()
	a.currentIssue = 14
	a.SetPullRequestFiles(14, []PullRequestFile{
		{Path: "parser.go", Status: "modified", Additions: 2, Deletions: 1, Patch: reviewPatch},
		{Path: "scanner.go", Status: "added", Additions: 3, Patch: addOnlyPatch},
	})
	a.view = ViewPullRequestFiles
	return a
}

func TestDiffFocusAndCursor(t *testing.T) {
	a := reviewTestApp()
	press(a, "ctrl+l")
	if a.reviewFocus != ReviewFocusDiff {
		t.Fatalf("ctrl+l did not focus the diff")
	}
	if a.prRowCursor != 0 {
		t.Fatalf("cursor = %d, want 0", a.prRowCursor)
	}

	press(a, "j", "j")
	if got, want := a.prRowCursor, 2; got != want {
		t.Fatalf("cursor after jj = %d, want %d", got, want)
	}
	press(a, "G")
	if got, want := a.prRowCursor, 4; got != want {
		t.Fatalf("cursor after G = %d, want %d", got, want)
	}
	press(a, "j") // already on the last row
	if got, want := a.prRowCursor, 4; got != want {
		t.Fatalf("cursor ran past the end: %d, want %d", got, want)
	}
	press(a, "g", "g")
	if a.prRowCursor != 0 {
		t.Fatalf("gg did not jump to the first row")
	}

	press(a, "ctrl+h")
	if a.reviewFocus != ReviewFocusFiles {
		t.Fatalf("ctrl+h did not focus the file list")
	}
}

func TestCollapseSnapsAndSkips(t *testing.T) {
	two := "@@ -1,2 +1,2 @@\n line a\n-old b\n+new b\n@@ -10,2 +10,2 @@\n line j\n-old k\n+new k\n"
	a := newTestApp()
	a.currentIssue = 14
	a.SetPullRequestFiles(14, []PullRequestFile{{Path: "twohunk.go", Patch: two}})
	a.view = ViewPullRequestFiles

	press(a, "ctrl+l", "j") // row 1, inside the first hunk
	press(a, "c")
	if !a.prCollapsed["twohunk.go"][0] {
		t.Fatalf("c did not collapse the hunk")
	}
	if got, want := a.prRowCursor, 0; got != want {
		t.Fatalf("cursor after collapsing = %d, want the header row %d", got, want)
	}

	press(a, "j")
	if got, want := a.prRowCursor, 3; got != want {
		t.Fatalf("j over a collapsed hunk = %d, want the next header %d", got, want)
	}
	press(a, "j", "k", "k")
	if got, want := a.prRowCursor, 0; got != want {
		t.Fatalf("k back over the fold = %d, want %d", got, want)
	}

	press(a, "c") // unfold from the header row
	if len(a.prCollapsed["twohunk.go"]) != 0 {
		t.Fatalf("c on the header did not unfold")
	}
	press(a, "j")
	if got, want := a.prRowCursor, 1; got != want {
		t.Fatalf("row 1 still hidden after unfolding: cursor %d", got)
	}
}

func TestVisualRangeTarget(t *testing.T) {
	a := reviewTestApp()
	press(a, "ctrl+l", "j", "V")
	if !a.prVisual || a.prVisualAnchor != 1 {
		t.Fatalf("V did not anchor visual mode at row 1")
	}
	press(a, "j")

	target, ok := a.CurrentReviewTarget()
	if !ok {
		t.Fatalf("no target for a two-row selection")
	}
	if target.Path != "parser.go" || target.Side != patch.SideRight || target.Line != 2 {
		t.Fatalf("target = %+v, want parser.go RIGHT line 2", target)
	}
	if target.StartLine == nil || *target.StartLine != 1 {
		t.Fatalf("start line = %v, want 1", target.StartLine)
	}
	if target.StartSide == nil || *target.StartSide != patch.SideRight {
		t.Fatalf("start side = %v, want RIGHT", target.StartSide)
	}

	press(a, "V") // leaving visual mode shrinks the target to the cursor row
	target, ok = a.CurrentReviewTarget()
	if !ok || target.Line != 2 || target.StartLine != nil {
		t.Fatalf("single-row target = %+v, %v", target, ok)
	}
}

func TestReviewTargetFallsBackToRowSide(t *testing.T) {
	a := reviewTestApp()
	press(a, "ctrl+l", "j", "j", "j", "h") // row 3 is added-only; prefer the left side
	target, ok := a.CurrentReviewTarget()
	if !ok {
		t.Fatalf("no target on an added row")
	}
	if target.Side != patch.SideRight || target.Line != 3 || target.StartLine != nil {
		t.Fatalf("added-row fallback = %+v, want RIGHT line 3", target)
	}

	b := newTestApp()
	b.currentIssue = 14
	b.SetPullRequestFiles(14, []PullRequestFile{
		{Path: "del.go", Status: "modified", Deletions: 1, Patch: "@@ -1,2 +1,1 @@\n line a\n-gone\n"},
	})
	b.view = ViewPullRequestFiles
	press(b, "ctrl+l", "j", "j", "l") // row 2 is removed-only; prefer the right side
	target, ok = b.CurrentReviewTarget()
	if !ok {
		t.Fatalf("no target on a removed row")
	}
	if target.Side != patch.SideLeft || target.Line != 2 {
		t.Fatalf("removed-row fallback = %+v, want LEFT line 2", target)
	}
}

func TestAddReviewCommentCarriesTarget(t *testing.T) {
	a := reviewTestApp()
	press(a, "ctrl+l", "j", "V", "j", "m")
	if a.view != ViewCommentEditor || a.editorMode != EditorAddReviewComment {
		t.Fatalf("m did not open the review comment editor")
	}
	press(a, "tighten this loop", "enter")
	act := mustAction(t, a)
	if act.Kind != ActionAddReviewComment || act.IssueNumber != 14 {
		t.Fatalf("action = kind %d #%d", act.Kind, act.IssueNumber)
	}
	if act.Target == nil || act.Target.Line != 2 || act.Target.Side != patch.SideRight {
		t.Fatalf("target = %+v, want RIGHT line 2", act.Target)
	}
	if act.Target.StartLine == nil || *act.Target.StartLine != 1 {
		t.Fatalf("start line = %v, want 1", act.Target.StartLine)
	}
	if a.view != ViewPullRequestFiles {
		t.Fatalf("submit returned to view %d, want the review screen", a.view)
	}
}

func testReviewComments() []ReviewComment {
	return []ReviewComment{
		{ID: 305, ThreadID: "T5", Anchored: true, Path: "parser.go", Line: 2,
			Side: patch.SideRight, Author: "bob", Body: "second"},
		{ID: 301, Anchored: true, Path: "parser.go", Line: 2,
			Side: patch.SideRight, Author: "ann", Body: "first"},
		{ID: 290, Anchored: true, Path: "scanner.go", Line: 1,
			Side: patch.SideRight, Author: "ann", Body: "elsewhere"},
	}
}

func TestSetReviewCommentsSorts(t *testing.T) {
	a := New()
	a.SetReviewComments(testReviewComments())
	want := []int64{301, 305, 290}
	for i, id := range want {
		if got := a.reviewComments[i].ID; got != id {
			t.Fatalf("reviewComments[%d].ID = %d, want %d", i, got, id)
		}
	}
}

func TestReviewCommentCycling(t *testing.T) {
	a := reviewTestApp()
	a.SetReviewComments(testReviewComments())
	press(a, "ctrl+l", "j", "j") // row 2, RIGHT line 2

	c, ok := a.SelectedReviewComment()
	if !ok || c.ID != 301 {
		t.Fatalf("default selection = %+v, %v, want id 301", c, ok)
	}

	press(a, "n")
	if got, want := a.StatusLine(), "Comment 1/2"; got != want {
		t.Fatalf("status = %q, want %q", got, want)
	}
	press(a, "n")
	if a.prSelectedComment != 305 {
		t.Fatalf("second n selected %d, want 305", a.prSelectedComment)
	}
	press(a, "n") // wraps around
	if a.prSelectedComment != 301 {
		t.Fatalf("cycle did not wrap, selected %d", a.prSelectedComment)
	}
	press(a, "p")
	if a.prSelectedComment != 305 {
		t.Fatalf("p selected %d, want 305", a.prSelectedComment)
	}

	press(a, "j") // row 3 anchors no thread; the selection self-heals
	if a.prSelectedComment != 0 {
		t.Fatalf("stale selection survived a cursor move: %d", a.prSelectedComment)
	}
	press(a, "n")
	if got, want := a.StatusLine(), "No comments here"; got != want {
		t.Fatalf("status = %q, want %q", got, want)
	}
}

func TestReviewCommentMarks(t *testing.T) {
	a := reviewTestApp()
	a.SetReviewComments(testReviewComments())
	if !a.reviewCommentOnLine("parser.go", patch.SideRight, 2) {
		t.Fatalf("no mark on parser.go RIGHT 2")
	}
	if a.reviewCommentOnLine("parser.go", patch.SideLeft, 2) {
		t.Fatalf("mark leaked onto the LEFT side")
	}
	a.SetReviewComments([]ReviewComment{
		{ID: 310, Anchored: false, Path: "parser.go", Line: 2, Side: patch.SideRight},
	})
	if a.reviewCommentOnLine("parser.go", patch.SideRight, 2) {
		t.Fatalf("unanchored comment produced a mark")
	}
}

func TestResolveThread(t *testing.T) {
	a := reviewTestApp()
	a.SetReviewComments(testReviewComments())
	press(a, "ctrl+l", "j", "j")

	press(a, "R") // selected comment 301 has no thread id
	noAction(t, a)
	if got, want := a.StatusLine(), "No thread to resolve"; got != want {
		t.Fatalf("status = %q, want %q", got, want)
	}

	press(a, "n", "n", "R") // move onto 305, which carries one
	act := mustAction(t, a)
	if act.Kind != ActionResolveThread || act.ThreadID != "T5" {
		t.Fatalf("resolve action = kind %d thread %q", act.Kind, act.ThreadID)
	}
}

func TestDiffPanClamping(t *testing.T) {
	a := reviewTestApp()
	press(a, "ctrl+l", "]")
	if a.prXScroll != 0 {
		t.Fatalf("pan moved without a reported width: %d", a.prXScroll)
	}

	a.SetDiffMaxPan(10)
	press(a, "]", "]", "]")
	if got, want := a.prXScroll, 10; got != want {
		t.Fatalf("pan = %d, want clamp at %d", got, want)
	}
	press(a, "[")
	if got, want := a.prXScroll, 6; got != want {
		t.Fatalf("pan after [ = %d, want %d", got, want)
	}
	press(a, "0")
	if a.prXScroll != 0 {
		t.Fatalf("0 did not reset the pan")
	}

	a.prXScroll = 8
	a.SetDiffMaxPan(5) // narrower content pulls the offset back in
	if got, want := a.prXScroll, 5; got != want {
		t.Fatalf("pan after shrink = %d, want %d", got, want)
	}
}

func TestToggleViewed(t *testing.T) {
	a := reviewTestApp()
	press(a, "w")
	if !a.prViewed["parser.go"] {
		t.Fatalf("w did not mark the file viewed")
	}
	act := mustAction(t, a)
	if act.Kind != ActionToggleViewed || act.IssueNumber != 14 ||
		act.Path != "parser.go" || !act.Viewed {
		t.Fatalf("viewed action = %+v", act)
	}

	press(a, "w")
	act = mustAction(t, a)
	if act.Viewed || a.prViewed["parser.go"] {
		t.Fatalf("second w did not clear the mark")
	}
}

func TestSetPullRequestFilesRefresh(t *testing.T) {
	a := reviewTestApp()
	a.prViewed["parser.go"] = true
	a.prViewed["legacy.go"] = true
	a.selectFile(1)

	// Refreshing the same pull keeps surviving marks and clamps the cursor.
	a.SetPullRequestFiles(14, []PullRequestFile{{Path: "parser.go", Patch: reviewPatch}})
	if !a.prViewed["parser.go"] || a.prViewed["legacy.go"] {
		t.Fatalf("viewed marks after refresh = %v", a.prViewed)
	}
	if a.prFileCursor != 0 {
		t.Fatalf("cursor = %d, want clamped to 0", a.prFileCursor)
	}

	// A different pull starts from scratch.
	a.SetPullRequestFiles(21, []PullRequestFile{
		{Path: "parser.go", Patch: reviewPatch},
		{Path: "scanner.go", Patch: addOnlyPatch},
	})
	if len(a.prViewed) != 0 || a.prFileCursor != 0 || a.prFilesIssue != 21 {
		t.Fatalf("new pull kept stale state: viewed %v cursor %d issue %d",
			a.prViewed, a.prFileCursor, a.prFilesIssue)
	}
}

func TestSetPullRequestFilesPrunesCollapse(t *testing.T) {
	a := reviewTestApp()
	a.prCollapsed["parser.go"] = map[int]bool{0: true}
	a.prCollapsed["legacy.go"] = map[int]bool{0: true}
	a.SetPullRequestFiles(14, []PullRequestFile{
		{Path: "parser.go", Patch: reviewPatch},
		{Path: "scanner.go", Patch: addOnlyPatch},
	})
	if !a.prCollapsed["parser.go"][0] {
		t.Fatalf("collapse state for a surviving path was dropped")
	}
	if _, ok := a.prCollapsed["legacy.go"]; ok {
		t.Fatalf("collapse state for a removed path was kept")
	}
}

func TestSelectFileResetsDiffState(t *testing.T) {
	a := reviewTestApp()
	a.prRowCursor, a.prScroll, a.prXScroll = 3, 2, 5
	a.prVisual, a.prExpanded = true, true

	a.selectFile(1)
	if a.prFileCursor != 1 {
		t.Fatalf("selectFile did not move the cursor")
	}
	if a.prRowCursor != 0 || a.prScroll != 0 || a.prXScroll != 0 || a.prVisual || a.prExpanded {
		t.Fatalf("diff state survived a file switch: row %d scroll %d pan %d visual %v expanded %v",
			a.prRowCursor, a.prScroll, a.prXScroll, a.prVisual, a.prExpanded)
	}

	a.prRowCursor = 2
	a.selectFile(1) // same file is a no-op
	if a.prRowCursor != 2 {
		t.Fatalf("reselecting the same file reset the cursor")
	}
}

func TestCheckoutPull(t *testing.T) {
	a := reviewTestApp()
	press(a, "v")
	act := mustAction(t, a)
	if act.Kind != ActionCheckoutPull || act.IssueNumber != 14 {
		t.Fatalf("checkout action = kind %d #%d", act.Kind, act.IssueNumber)
	}
	if got, want := a.StatusLine(), "Checking out #14"; got != want {
		t.Fatalf("status = %q, want %q", got, want)
	}

	b := newTestApp()
	b.currentIssue = 12 // a plain issue
	b.view = ViewIssueDetail
	press(b, "v")
	noAction(t, b)
	if got, want := b.StatusLine(), "Not a pull request"; got != want {
		t.Fatalf("status = %q, want %q", got, want)
	}
}
