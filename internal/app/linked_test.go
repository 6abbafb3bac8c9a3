package app

import "testing"

func TestSetLinkedPullRequests(t *testing.T) {
	a := newTestApp()
	a.SetLinkedPullRequests(12, []int{14, 14, 15})

	if got, want := a.LinkedPullRequestsForIssue(12), []int{14, 15}; !equalInts(got, want) {
		t.Fatalf("linked pulls = %v, want %v", got, want)
	}
	// The reverse direction is filled in as well.
	if got, want := a.LinkedIssuesForPull(14), []int{12}; !equalInts(got, want) {
		t.Fatalf("reverse mapping = %v, want %v", got, want)
	}

	// An empty refresh keeps what an earlier sync found.
	a.SetLinkedPullRequests(12, nil)
	if got := a.LinkedPullRequestsForIssue(12); len(got) != 2 {
		t.Fatalf("empty result erased candidates: %v", got)
	}

	a.SetLinkedIssues(14, []int{12, 11})
	if got, want := a.LinkedPullRequestsForIssue(11), []int{14}; !equalInts(got, want) {
		t.Fatalf("issue-side mapping = %v, want %v", got, want)
	}
	pr, ok := a.LinkedPullRequestForIssue(12)
	if !ok || pr != 14 {
		t.Fatalf("first candidate = %d, %v, want 14", pr, ok)
	}
}

func TestOpenLinkedSingleCandidate(t *testing.T) {
	a := newTestApp()
	a.SetLinkedPullRequests(12, []int{14})
	press(a, "enter") // open #12
	if a.currentIssue != 12 {
		t.Fatalf("setup opened #%d, want #12", a.currentIssue)
	}

	press(a, "P")
	if a.view != ViewIssueDetail || a.currentIssue != 14 {
		t.Fatalf("after P: view %d issue #%d, want detail of #14", a.view, a.currentIssue)
	}

	press(a, "b")
	if a.currentIssue != 12 {
		t.Fatalf("back landed on #%d, want the origin #12", a.currentIssue)
	}
	if got, want := a.StatusLine(), "Returned to #12"; got != want {
		t.Fatalf("status = %q, want %q", got, want)
	}
}

func TestOpenLinkedNoneCached(t *testing.T) {
	a := newTestApp()
	press(a, "j", "enter") // open #11, which links to nothing
	a.TakeLinkedSyncRequest()

	press(a, "P")
	if got, want := a.StatusLine(), "No linked pull request"; got != want {
		t.Fatalf("status = %q, want %q", got, want)
	}
	if !a.TakeLinkedSyncRequest() {
		t.Fatalf("no re-sync requested for an empty link cache")
	}
	if a.view != ViewIssueDetail {
		t.Fatalf("view = %d, want to stay on the detail screen", a.view)
	}

	b := newTestApp()
	b.currentIssue = 14 // a pull request wants the opposite wording
	b.view = ViewIssueDetail
	press(b, "P")
	if got, want := b.StatusLine(), "No linked issue"; got != want {
		t.Fatalf("status = %q, want %q", got, want)
	}
}

func TestOpenLinkedPicker(t *testing.T) {
	a := newTestApp()
	a.SetLinkedPullRequests(12, []int{14, 99})
	a.currentIssue = 12
	a.view = ViewIssueDetail

	press(a, "P")
	if a.view != ViewLinkedPicker {
		t.Fatalf("two candidates did not open the picker, view = %d", a.view)
	}
	want := []string{"#14  Add retry logic", "#99"}
	if got := a.LinkedChoiceLabels(); !equalStrings(got, want) {
		t.Fatalf("labels = %v, want %v", got, want)
	}

	press(a, "j", "enter") // #99 was linked but never fetched
	if got, want := a.StatusLine(), "#99 is not loaded"; got != want {
		t.Fatalf("status = %q, want %q", got, want)
	}
	if a.view != ViewIssueDetail || a.currentIssue != 12 {
		t.Fatalf("failed jump left view %d issue #%d", a.view, a.currentIssue)
	}
}

func TestOpenLinkedInBrowser(t *testing.T) {
	a := newTestApp()
	a.SetLinkedPullRequests(12, []int{14})
	a.currentIssue = 12
	a.view = ViewIssueDetail

	press(a, "O")
	act := mustAction(t, a)
	if act.Kind != ActionOpenURL {
		t.Fatalf("action kind = %d, want ActionOpenURL", act.Kind)
	}
	if got, want := act.URL, "https://github.com/acme/widgets/pull/14"; got != want {
		t.Fatalf("url = %q, want %q", got, want)
	}
	if a.currentIssue != 12 {
		t.Fatalf("browser jump moved the current issue to #%d", a.currentIssue)
	}
}

func TestOpenCurrentInBrowser(t *testing.T) {
	a := newTestApp()
	press(a, "j", "o") // list row 1 is #11
	act := mustAction(t, a)
	if got, want := act.URL, "https://github.com/acme/widgets/issues/11"; got != want {
		t.Fatalf("url = %q, want %q", got, want)
	}

	issue, ok := a.issueByNumber(12)
	if !ok {
		t.Fatalf("#12 missing from the fixture")
	}
	issue.URL = "https://example.test/override"
	a.UpsertIssue(issue)
	press(a, "k", "o") // back on #12, which now carries its own URL
	act = mustAction(t, a)
	if got, want := act.URL, "https://example.test/override"; got != want {
		t.Fatalf("url = %q, want %q", got, want)
	}
}
