package app

import (
	"time"

	"hubbub/internal/config"
	"hubbub/internal/patch"
	"hubbub/internal/store"
)

type View int

const (
	ViewRepoPicker View = iota
	ViewRemoteChooser
	ViewIssues
	ViewIssueDetail
	ViewIssueComments
	ViewPullRequestFiles
	ViewLinkedPicker
	ViewLabelPicker
	ViewAssigneePicker
	ViewCommentPresetPicker
	ViewCommentPresetName
	ViewCommentEditor
)

type Focus int

const (
	FocusList Focus = iota
	FocusBody
	FocusSidePanel
)

type ReviewFocus int

const (
	ReviewFocusFiles ReviewFocus = iota
	ReviewFocusDiff
)

type WorkItemMode int

const (
	WorkItemIssues WorkItemMode = iota
	WorkItemPulls
)

type StatusFilter int

const (
	StatusFilterOpen StatusFilter = iota
	StatusFilterClosed
)

func (f StatusFilter) String() string {
	if f == StatusFilterClosed {
		return "Closed"
	}
	return "Open"
}

// AssigneeFilter narrows the issue list. The zero value matches everything.
type AssigneeFilter struct {
	Unassigned bool
	User       string
}

func (f AssigneeFilter) String() string {
	switch {
	case f.Unassigned:
		return "unassigned"
	case f.User != "":
		return f.User
	default:
		return "all"
	}
}

func (f AssigneeFilter) isAll() bool {
	return !f.Unassigned && f.User == ""
}

type chordState int

const (
	chordNone chordState = iota
	chordG
	chordD
)

const transientStatusTTL = 3 * time.Second

// App holds every piece of interactive state. It is owned by the program
// loop and mutated synchronously: input handlers and setters run one at a
// time, and background results enter only through the Set* methods.
type App struct {
	keys KeyMap

	view        View
	focus       Focus
	helpVisible bool
	chord       chordState

	status          string
	transientStatus string
	transientUntil  time.Time

	// repositories
	repos         []store.Repo
	filteredRepos []int
	repoCursor    int
	repoSearch    bool
	repoQuery     string
	remotes       []store.Remote
	remoteCursor  int
	repoPath      string
	owner         string
	repoName      string

	// issues
	issues         []Issue
	filteredIssues []int
	issueCursor    int
	currentIssue   int
	workItems      WorkItemMode
	statusFilter   StatusFilter
	assigneeFilter AssigneeFilter
	searchActive   bool
	searchQuery    string

	// issue detail
	detailScroll    int
	detailMaxScroll int
	sideScroll      int
	sideMaxScroll   int
	recentComment   int

	// issue comments
	comments      []Comment
	commentCursor int

	// linked work items
	linkedPulls       map[int][]int
	linkedIssues      map[int][]int
	linkedChoices     []int
	linkedCursor      int
	linkedOrigin      *navOrigin
	linkedOpenBrowser bool
	linkedReturn      View

	// label / assignee pickers
	labelOptions      []string
	labelChecked      map[string]bool
	assigneeOptions   []string
	assigneeChecked   map[string]bool
	pickerCursor      int
	filteredOptions   []int
	popupFilterActive bool
	popupQuery        string
	pickerIssue       int
	pickerReturn      View

	// comment presets
	presets          []config.Preset
	presetCursor     int
	presetName       string
	presetReturn     View
	presetsDirty     bool
	closeIssueNumber int

	// editor
	editorMode         EditorMode
	editorText         string
	editorTitle        string
	editorTitleFocused bool
	editorCancelView   View
	editorCommentID    int64
	editorTarget       *ReviewTarget
	confirmActive      bool

	// pull-request review
	prFiles           []PullRequestFile
	prFilesIssue      int
	prFileCursor      int
	prRowCursor       int
	prCollapsed       map[string]map[int]bool
	prViewed          map[string]bool
	prScroll          int
	prMaxScroll       int
	prXScroll         int
	prMaxXScroll      int
	prVisual          bool
	prVisualAnchor    int
	reviewFocus       ReviewFocus
	prSide            patch.Side
	prSelectedComment int64
	prExpanded        bool
	reviewComments    []ReviewComment

	// repository permissions
	canPush    bool
	canComment bool

	// background sync state
	scanning              bool
	rescanRequested       bool
	syncing               bool
	syncRequested         bool
	commentsSyncing       bool
	commentsSyncRequested bool
	prFilesSyncing        bool
	prFilesSyncRequested  bool
	reviewSyncing         bool
	reviewSyncRequested   bool
	metadataSyncing       bool
	metadataSyncRequested bool
	linkedSyncRequested   bool

	regions []mouseRegion

	pending *Action
}

type navOrigin struct {
	Number int
}

// New returns an App showing the repository picker with default bindings.
func New() *App {
	a := &App{
		keys:            defaultKeyMap(),
		view:            ViewRepoPicker,
		prSide:          patch.SideRight,
		prCollapsed:     make(map[string]map[int]bool),
		prViewed:        make(map[string]bool),
		linkedPulls:     make(map[int][]int),
		linkedIssues:    make(map[int][]int),
		labelChecked:    make(map[string]bool),
		assigneeChecked: make(map[string]bool),
		canComment:      true,
	}
	return a
}

// ApplyKeybinds rewrites default bindings with the configured chords.
func (a *App) ApplyKeybinds(overrides map[string]string) error {
	return a.keys.ApplyOverrides(overrides)
}

func (a *App) View() View               { return a.view }
func (a *App) Focus() Focus             { return a.focus }
func (a *App) ReviewFocus() ReviewFocus { return a.reviewFocus }
func (a *App) HelpVisible() bool        { return a.helpVisible }

// SetStatus replaces the persistent status line.
func (a *App) SetStatus(s string) { a.status = s }

// Status returns the persistent status line.
func (a *App) Status() string { return a.status }

// setTransient shows a message that expires after a few seconds, leaving the
// persistent status untouched.
func (a *App) setTransient(s string) {
	a.transientStatus = s
	a.transientUntil = time.Now().Add(transientStatusTTL)
}

// StatusLine is what the footer shows: the transient message while it lasts,
// the persistent status otherwise.
func (a *App) StatusLine() string {
	if a.transientStatus != "" {
		return a.transientStatus
	}
	return a.status
}

// ExpireTransient drops the transient message once its deadline passes and
// reports whether anything changed.
func (a *App) ExpireTransient(now time.Time) bool {
	if a.transientStatus == "" || now.Before(a.transientUntil) {
		return false
	}
	a.transientStatus = ""
	a.transientUntil = time.Time{}
	return true
}

// RequestRescan marks the repository scan as wanted and in flight.
func (a *App) RequestRescan() {
	a.rescanRequested = true
	a.scanning = true
}

func (a *App) TakeRescanRequest() bool { return takeFlag(&a.rescanRequested) }
func (a *App) SetScanning(v bool)      { a.scanning = v }
func (a *App) Scanning() bool          { return a.scanning }

func (a *App) requestIssueSync() {
	a.syncRequested = true
	a.syncing = true
}

func (a *App) TakeSyncRequest() bool { return takeFlag(&a.syncRequested) }
func (a *App) SetSyncing(v bool)     { a.syncing = v }
func (a *App) Syncing() bool         { return a.syncing }

func (a *App) requestCommentsSync() {
	a.commentsSyncRequested = true
	a.commentsSyncing = true
}

func (a *App) TakeCommentsSyncRequest() bool { return takeFlag(&a.commentsSyncRequested) }
func (a *App) SetCommentsSyncing(v bool)     { a.commentsSyncing = v }

func (a *App) requestPullFilesSync() {
	a.prFilesSyncRequested = true
	a.prFilesSyncing = true
}

func (a *App) TakePullFilesSyncRequest() bool { return takeFlag(&a.prFilesSyncRequested) }
func (a *App) SetPullFilesSyncing(v bool)     { a.prFilesSyncing = v }

func (a *App) requestReviewSync() {
	a.reviewSyncRequested = true
	a.reviewSyncing = true
}

func (a *App) TakeReviewSyncRequest() bool { return takeFlag(&a.reviewSyncRequested) }
func (a *App) SetReviewSyncing(v bool)     { a.reviewSyncing = v }

func (a *App) requestMetadataSync() {
	a.metadataSyncRequested = true
	a.metadataSyncing = true
}

func (a *App) TakeMetadataSyncRequest() bool { return takeFlag(&a.metadataSyncRequested) }
func (a *App) SetMetadataSyncing(v bool)     { a.metadataSyncing = v }

func (a *App) requestLinkedSync() { a.linkedSyncRequested = true }

func (a *App) TakeLinkedSyncRequest() bool { return takeFlag(&a.linkedSyncRequested) }

// AnySyncing reports whether any background fetch is in flight, for the
// spinner in the header.
func (a *App) AnySyncing() bool {
	return a.scanning || a.syncing || a.commentsSyncing || a.prFilesSyncing ||
		a.reviewSyncing || a.metadataSyncing
}

// SetPermissions records what the authenticated viewer may do in the
// current repository.
func (a *App) SetPermissions(canPush, canComment bool) {
	a.canPush = canPush
	a.canComment = canComment
}

func takeFlag(f *bool) bool {
	if !*f {
		return false
	}
	*f = false
	return true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampCursor keeps a cursor inside a list of n entries, resting at 0 when
// the list is empty.
func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	return clampInt(cur, 0, n-1)
}
