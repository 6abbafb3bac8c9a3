package app

type ActionKind int

const (
	ActionQuit ActionKind = iota
	ActionOpenURL
	ActionCopyText
	ActionCheckoutPull
	ActionCreateIssue
	ActionCloseIssue
	ActionEditIssueBody
	ActionAddComment
	ActionEditComment
	ActionDeleteComment
	ActionAddReviewComment
	ActionEditReviewComment
	ActionDeleteReviewComment
	ActionResolveThread
	ActionToggleViewed
	ActionSetLabels
	ActionSetAssignees
)

// Action is one side effect for the orchestration layer to execute. The
// fields used depend on Kind; unused ones stay zero.
type Action struct {
	Kind        ActionKind
	IssueNumber int
	CommentID   int64
	ThreadID    string
	URL         string
	Text        string
	Title       string
	Body        string
	Path        string
	Viewed      bool
	Names       []string
	Target      *ReviewTarget
}

// emit queues an action for the program loop. At most one action is pending
// at a time; a later emit before the loop consumed the earlier one wins.
func (a *App) emit(act Action) {
	a.pending = &act
}

// TakeAction returns the pending action, if any, and clears it. The program
// loop polls this once per processed event.
func (a *App) TakeAction() (Action, bool) {
	if a.pending == nil {
		return Action{}, false
	}
	act := *a.pending
	a.pending = nil
	return act, true
}
