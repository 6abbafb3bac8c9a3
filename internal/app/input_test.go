package app

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// keyMsg builds the KeyMsg a terminal would produce for a chord string, so
// tests drive HandleKey the same way the program loop does.
func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "alt+enter":
		return tea.KeyMsg{Type: tea.KeyEnter, Alt: true}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+a":
		return tea.KeyMsg{Type: tea.KeyCtrlA}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+g":
		return tea.KeyMsg{Type: tea.KeyCtrlG}
	case "ctrl+h":
		return tea.KeyMsg{Type: tea.KeyCtrlH}
	case "ctrl+j":
		return tea.KeyMsg{Type: tea.KeyCtrlJ}
	case "ctrl+k":
		return tea.KeyMsg{Type: tea.KeyCtrlK}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	case "ctrl+q":
		return tea.KeyMsg{Type: tea.KeyCtrlQ}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case "ctrl+y":
		return tea.KeyMsg{Type: tea.KeyCtrlY}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(a *App, keys ...string) {
	for _, k := range keys {
		a.HandleKey(keyMsg(k))
	}
}

func testIssues() []Issue {
	t0 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return []Issue{
		{Number: 11, Title: "Docs improvements", State: "open", Author: "carol",
			Labels: []Label{{Name: "docs"}}, Comments: 1,
			CreatedAt: t0, UpdatedAt: t0.Add(1 * time.Hour)},
		{Number: 12, Title: "Crash on empty input", Body: "stack trace attached", State: "open",
			Author: "alice", Labels: []Label{{Name: "bug"}}, Assignees: []string{"alice"},
			Comments: 2, CreatedAt: t0, UpdatedAt: t0.Add(2 * time.Hour)},
		{Number: 9, Title: "Stale cache", State: "closed", Author: "bob",
			Assignees: []string{"bob"}, UpdatedAt: t0.Add(3 * time.Hour)},
		{Number: 7, Title: "Old regression", State: "closed", Author: "alice",
			UpdatedAt: t0.Add(5 * time.Hour)},
		{Number: 14, Title: "Add retry logic", State: "open", IsPull: true, Author: "alice",
			Assignees: []string{"alice"}, UpdatedAt: t0.Add(4 * time.Hour)},
		{Number: 13, Title: "Refactor scanner", State: "closed", IsPull: true, Author: "bob",
			UpdatedAt: t0.Add(30 * time.Minute)},
	}
}

func testComments() []Comment {
	t0 := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
	return []Comment{
		{ID: 101, Author: "alice", Body: "First pass done.", CreatedAt: t0},
		{ID: 102, Author: "bob", Body: "Needs a test.", CreatedAt: t0.Add(time.Hour)},
	}
}

// newTestApp is an App parked on the issue list of acme/widgets with the
// fixture issues loaded.
func newTestApp() *App {
	a := New()
	a.owner, a.repoName, a.repoPath = "acme", "widgets", "/home/dev/widgets"
	a.view = ViewIssues
	a.SetIssues(testIssues())
	return a
}

func filteredNumbers(a *App) []int {
	out := make([]int, 0, len(a.filteredIssues))
	for _, i := range a.filteredIssues {
		out = append(out, a.issues[i].Number)
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func mustAction(t *testing.T, a *App) Action {
	t.Helper()
	act, ok := a.TakeAction()
	if !ok {
		t.Fatalf("expected a pending action")
	}
	return act
}

func noAction(t *testing.T, a *App) {
	t.Helper()
	if act, ok := a.TakeAction(); ok {
		t.Fatalf("unexpected pending action (kind %d)", act.Kind)
	}
}

func TestStatusFilterKeys(t *testing.T) {
	a := newTestApp()
	if got, want := filteredNumbers(a), []int{12, 11}; !equalInts(got, want) {
		t.Fatalf("initial open list = %v, want %v", got, want)
	}

	press(a, "2")
	if got, want := filteredNumbers(a), []int{7, 9}; !equalInts(got, want) {
		t.Fatalf("closed list = %v, want %v", got, want)
	}
	if got, want := a.StatusLine(), "Filter: closed"; got != want {
		t.Fatalf("status = %q, want %q", got, want)
	}

	press(a, "1")
	if got, want := filteredNumbers(a), []int{12, 11}; !equalInts(got, want) {
		t.Fatalf("open list after 1 = %v, want %v", got, want)
	}

	press(a, "tab")
	if a.statusFilter != StatusFilterClosed {
		t.Fatalf("tab did not toggle to closed")
	}
	press(a, "tab")
	if a.statusFilter != StatusFilterOpen {
		t.Fatalf("tab did not toggle back to open")
	}
}

func TestWorkItemToggleKey(t *testing.T) {
	a := newTestApp()
	press(a, "t")
	if a.workItems != WorkItemPulls {
		t.Fatalf("t did not switch to pull requests")
	}
	if got, want := filteredNumbers(a), []int{14}; !equalInts(got, want) {
		t.Fatalf("open pulls = %v, want %v", got, want)
	}
	if got, want := a.StatusLine(), "Showing pull requests"; got != want {
		t.Fatalf("status = %q, want %q", got, want)
	}
	press(a, "t")
	if got, want := filteredNumbers(a), []int{12, 11}; !equalInts(got, want) {
		t.Fatalf("open issues after toggle back = %v, want %v", got, want)
	}
}

func TestAssigneeCycleKey(t *testing.T) {
	a := newTestApp()

	press(a, "a") // all -> unassigned
	if got, want := filteredNumbers(a), []int{11}; !equalInts(got, want) {
		t.Fatalf("unassigned list = %v, want %v", got, want)
	}
	if got, want := a.StatusLine(), "Assignee: unassigned"; got != want {
		t.Fatalf("status = %q, want %q", got, want)
	}

	press(a, "a") // -> alice
	if got, want := filteredNumbers(a), []int{12}; !equalInts(got, want) {
		t.Fatalf("alice list = %v, want %v", got, want)
	}

	press(a, "a") // -> bob (only assigned on a closed issue)
	if got := filteredNumbers(a); len(got) != 0 {
		t.Fatalf("bob open list = %v, want empty", got)
	}

	press(a, "a") // -> all again
	if got, want := filteredNumbers(a), []int{12, 11}; !equalInts(got, want) {
		t.Fatalf("list after full cycle = %v, want %v", got, want)
	}

	press(a, "a", "ctrl+a") // reset from the middle of the cycle
	if !a.assigneeFilter.isAll() {
		t.Fatalf("ctrl+a did not reset the assignee filter")
	}
}

func TestIssueSearchTyping(t *testing.T) {
	a := newTestApp()

	press(a, "/")
	if !a.searchActive {
		t.Fatalf("/ did not activate search")
	}
	press(a, "crash")
	if got, want := filteredNumbers(a), []int{12}; !equalInts(got, want) {
		t.Fatalf("live filter = %v, want %v", got, want)
	}

	press(a, "enter")
	if a.searchActive {
		t.Fatalf("enter did not leave the search prompt")
	}
	if got, want := a.searchQuery, "crash"; got != want {
		t.Fatalf("applied query = %q, want %q", got, want)
	}

	press(a, "esc") // first esc clears the applied filter
	if a.searchQuery != "" {
		t.Fatalf("esc did not clear the query, still %q", a.searchQuery)
	}
	if got, want := filteredNumbers(a), []int{12, 11}; !equalInts(got, want) {
		t.Fatalf("list after clearing = %v, want %v", got, want)
	}

	press(a, "esc") // second esc navigates back
	if a.view != ViewRepoPicker {
		t.Fatalf("second esc left view = %d, want repo picker", a.view)
	}
}

func TestSearchPromptEditing(t *testing.T) {
	a := newTestApp()
	press(a, "/", "bug")
	if got, want := a.searchQuery, "bug"; got != want {
		t.Fatalf("query = %q, want %q", got, want)
	}
	press(a, "backspace")
	if got, want := a.searchQuery, "bu"; got != want {
		t.Fatalf("query after backspace = %q, want %q", got, want)
	}
	press(a, "ctrl+u")
	if a.searchQuery != "" {
		t.Fatalf("ctrl+u left query %q", a.searchQuery)
	}
	press(a, "esc")
	if a.searchActive {
		t.Fatalf("esc did not deactivate the prompt")
	}
}

func TestSearchByNumberToken(t *testing.T) {
	a := newTestApp()
	press(a, "/", "#12", "enter")
	if got, want := filteredNumbers(a), []int{12}; !equalInts(got, want) {
		t.Fatalf("#12 search = %v, want %v", got, want)
	}

	press(a, "esc")
	press(a, "/", "#999", "enter")
	if got := filteredNumbers(a); len(got) != 0 {
		t.Fatalf("#999 search = %v, want empty", got)
	}
}

func TestCloseChord(t *testing.T) {
	a := newTestApp() // cursor on #12
	press(a, "d", "d")
	if a.view != ViewCommentPresetPicker {
		t.Fatalf("dd left view = %d, want preset picker", a.view)
	}
	if got, want := a.closeIssueNumber, 12; got != want {
		t.Fatalf("close target = #%d, want #%d", got, want)
	}
	if a.presetReturn != ViewIssues {
		t.Fatalf("preset picker does not return to the issue list")
	}

	press(a, "enter") // "Close without comment"
	act := mustAction(t, a)
	if act.Kind != ActionCloseIssue || act.IssueNumber != 12 || act.Body != "" {
		t.Fatalf("close action = kind %d #%d body %q, want close #12 with empty body",
			act.Kind, act.IssueNumber, act.Body)
	}
	if a.view != ViewIssues {
		t.Fatalf("closing did not return to the issue list")
	}
	if got, want := a.StatusLine(), "Closing #12"; got != want {
		t.Fatalf("status = %q, want %q", got, want)
	}
}

func TestCloseChordInterrupted(t *testing.T) {
	a := newTestApp()
	press(a, "d", "j")
	if a.view != ViewIssues {
		t.Fatalf("interrupted chord changed views")
	}
	if got, want := a.issueCursor, 1; got != want {
		t.Fatalf("interrupting key was swallowed, cursor = %d, want %d", got, want)
	}
	noAction(t, a)
}

func TestJumpChord(t *testing.T) {
	a := newTestApp()
	press(a, "j")
	if a.issueCursor != 1 {
		t.Fatalf("j did not move the cursor")
	}
	press(a, "g", "g")
	if a.issueCursor != 0 {
		t.Fatalf("gg did not jump to the top")
	}
	press(a, "G")
	if got, want := a.issueCursor, 1; got != want {
		t.Fatalf("G jumped to %d, want %d", got, want)
	}
}

func TestQuitKeys(t *testing.T) {
	a := newTestApp()
	press(a, "q")
	if act := mustAction(t, a); act.Kind != ActionQuit {
		t.Fatalf("q emitted kind %d, want quit", act.Kind)
	}
	press(a, "ctrl+c")
	if act := mustAction(t, a); act.Kind != ActionQuit {
		t.Fatalf("ctrl+c emitted kind %d, want quit", act.Kind)
	}
}

func TestQuitRemapDisablesOldChord(t *testing.T) {
	a := newTestApp()
	if err := a.ApplyKeybinds(map[string]string{"quit": "ctrl+q"}); err != nil {
		t.Fatalf("ApplyKeybinds: %v", err)
	}
	press(a, "q")
	noAction(t, a)
	press(a, "ctrl+q")
	if act := mustAction(t, a); act.Kind != ActionQuit {
		t.Fatalf("remapped quit emitted kind %d, want quit", act.Kind)
	}
	// Ctrl+C stays wired no matter what the config does.
	press(a, "ctrl+c")
	if act := mustAction(t, a); act.Kind != ActionQuit {
		t.Fatalf("ctrl+c lost its interrupt role after remapping")
	}
}

func TestHelpOverlayToggle(t *testing.T) {
	a := newTestApp()
	press(a, "?")
	if !a.helpVisible {
		t.Fatalf("? did not open help")
	}
	press(a, "?")
	if a.helpVisible {
		t.Fatalf("? did not close help")
	}
	press(a, "?", "esc")
	if a.helpVisible {
		t.Fatalf("esc did not close help")
	}
	if a.view != ViewIssues {
		t.Fatalf("closing help changed views")
	}
}

func TestRefreshKeyPerView(t *testing.T) {
	a := newTestApp()
	press(a, "r")
	if !a.TakeSyncRequest() {
		t.Fatalf("r did not request an issue sync")
	}
	if got, want := a.StatusLine(), "Refreshing issues"; got != want {
		t.Fatalf("status = %q, want %q", got, want)
	}

	a.view = ViewPullRequestFiles
	press(a, "r")
	if !a.TakePullFilesSyncRequest() || !a.TakeReviewSyncRequest() {
		t.Fatalf("r on the review screen did not request file and review syncs")
	}
	if got, want := a.StatusLine(), "Refreshing review"; got != want {
		t.Fatalf("status = %q, want %q", got, want)
	}
}

func TestRescanAndRepoPickerKeys(t *testing.T) {
	a := newTestApp()
	press(a, "ctrl+r")
	if !a.TakeRescanRequest() {
		t.Fatalf("ctrl+r did not request a rescan")
	}
	if !a.Scanning() {
		t.Fatalf("rescan did not mark scanning")
	}
	press(a, "ctrl+g")
	if a.view != ViewRepoPicker {
		t.Fatalf("ctrl+g left view = %d, want repo picker", a.view)
	}
}

func TestCopyStatusKey(t *testing.T) {
	a := newTestApp()
	a.SetStatus("acme/widgets")
	press(a, "ctrl+y")
	act := mustAction(t, a)
	if act.Kind != ActionCopyText || act.Text != "acme/widgets" {
		t.Fatalf("copy action = kind %d text %q, want the status line", act.Kind, act.Text)
	}
}
