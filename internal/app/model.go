package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hubbub/internal/browser"
	"hubbub/internal/clipboard"
	"hubbub/internal/config"
	"hubbub/internal/git"
	"hubbub/internal/github"
	"hubbub/internal/patch"
	"hubbub/internal/store"
)

const (
	fetchTimeout  = 60 * time.Second
	actionTimeout = 30 * time.Second
	scanTimeout   = 2 * time.Minute
)

type reposLoadedMsg struct {
	repos    []store.Repo
	fromScan bool
	err      error
}

type issuesLoadedMsg struct {
	owner, repo string
	issues      []github.Issue
	err         error
}

type commentsLoadedMsg struct {
	owner, repo string
	number      int
	comments    []github.Comment
	err         error
}

type pullFilesLoadedMsg struct {
	owner, repo string
	number      int
	files       []github.PullFile
	err         error
}

type reviewLoadedMsg struct {
	owner, repo string
	number      int
	comments    []github.ReviewComment
	err         error
}

type metadataLoadedMsg struct {
	owner, repo string
	info        github.Repository
	labels      []github.Label
	users       []github.User
	err         error
}

type linkedLoadedMsg struct {
	owner, repo string
	number      int
	isPull      bool
	numbers     []int
	err         error
}

// actionDoneMsg reports a finished mutation. The refresh flags requeue the
// syncs whose data the mutation invalidated.
type actionDoneMsg struct {
	status          string
	err             error
	issue           *Issue
	number          int
	adjustComments  int
	refreshIssues   bool
	refreshComments bool
	refreshReview   bool
}

type checkoutDoneMsg struct {
	number int
	err    error
}

type clipboardResultMsg struct{ err error }

type urlOpenedMsg struct{ err error }

type registrySavedMsg struct{ err error }

// ConfigChangedMsg is sent from outside when the config file watcher fires.
type ConfigChangedMsg struct{}

type configReloadedMsg struct {
	cfg config.Config
	err error
}

type statusTickMsg time.Time

func statusTickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return statusTickMsg(t)
	})
}

// Model is the Bubble Tea shell: it feeds input to the App core, launches
// whatever background work the core requested, and renders the result.
type Model struct {
	app *App

	client   *github.Client
	scanner  git.ScanService
	checkout git.CheckoutService
	registry store.Store

	cfgPath     string
	scanRoots   []string
	initialRepo string

	spinner spinner.Model
	width   int
	height  int
	ready   bool
}

// ModelDeps wires the services a Model drives.
type ModelDeps struct {
	Config      config.Config
	ConfigPath  string
	Client      *github.Client
	Scanner     git.ScanService
	Checkout    git.CheckoutService
	Registry    store.Store
	InitialRepo string
	AuthLabel   string
}

func NewModel(deps ModelDeps) (Model, error) {
	a := New()
	if err := a.ApplyKeybinds(deps.Config.Keybinds); err != nil {
		return Model{}, fmt.Errorf("apply keybinds: %w", err)
	}
	a.SetPresets(deps.Config.Presets)
	if deps.AuthLabel != "" {
		a.SetStatus("auth: " + deps.AuthLabel)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	return Model{
		app:         a,
		client:      deps.Client,
		scanner:     deps.Scanner,
		checkout:    deps.Checkout,
		registry:    deps.Registry,
		cfgPath:     deps.ConfigPath,
		scanRoots:   deps.Config.ScanRoots,
		initialRepo: deps.InitialRepo,
		spinner:     sp,
	}, nil
}

func (m Model) Init() tea.Cmd {
	m.app.RequestRescan()
	return tea.Batch(m.loadRegistryCmd(), m.spinner.Tick, statusTickCmd(), m.dispatch())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		m.app.HandleKey(msg)
		return m, m.dispatch()

	case tea.MouseMsg:
		m.app.HandleMouse(msg)
		return m, m.dispatch()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case statusTickMsg:
		m.app.ExpireTransient(time.Time(msg))
		return m, statusTickCmd()

	case reposLoadedMsg:
		return m.onReposLoaded(msg)

	case issuesLoadedMsg:
		m.app.SetSyncing(false)
		if !m.currentRepoIs(msg.owner, msg.repo) {
			log.Printf("dropping stale issue sync for %s/%s", msg.owner, msg.repo)
			return m, nil
		}
		if msg.err != nil {
			m.app.setTransient(fmt.Sprintf("Sync failed: %v", msg.err))
			return m, nil
		}
		m.app.SetIssues(convertIssues(msg.issues))
		return m, nil

	case commentsLoadedMsg:
		m.app.SetCommentsSyncing(false)
		if !m.currentRepoIs(msg.owner, msg.repo) || msg.number != m.app.currentIssue {
			return m, nil
		}
		if msg.err != nil {
			m.app.setTransient(fmt.Sprintf("Comments sync failed: %v", msg.err))
			return m, nil
		}
		m.app.SetComments(convertComments(msg.comments))
		return m, nil

	case pullFilesLoadedMsg:
		m.app.SetPullFilesSyncing(false)
		if !m.currentRepoIs(msg.owner, msg.repo) || msg.number != m.app.currentIssue {
			return m, nil
		}
		if msg.err != nil {
			m.app.setTransient(fmt.Sprintf("Files sync failed: %v", msg.err))
			return m, nil
		}
		m.app.SetPullRequestFiles(msg.number, convertPullFiles(msg.files))
		return m, nil

	case reviewLoadedMsg:
		m.app.SetReviewSyncing(false)
		if !m.currentRepoIs(msg.owner, msg.repo) || msg.number != m.app.currentIssue {
			return m, nil
		}
		if msg.err != nil {
			m.app.setTransient(fmt.Sprintf("Review sync failed: %v", msg.err))
			return m, nil
		}
		m.app.SetReviewComments(convertReviewComments(msg.comments))
		return m, nil

	case metadataLoadedMsg:
		m.app.SetMetadataSyncing(false)
		if !m.currentRepoIs(msg.owner, msg.repo) {
			return m, nil
		}
		if msg.err != nil {
			m.app.setTransient(fmt.Sprintf("Metadata sync failed: %v", msg.err))
			return m, nil
		}
		canPush := msg.info.Permissions.Push || msg.info.Permissions.Admin
		canComment := canPush || msg.info.Permissions.Pull
		m.app.SetPermissions(canPush, canComment)
		m.app.MergeLabelOptions(labelNames(msg.labels))
		m.app.MergeAssigneeOptions(userLogins(msg.users))
		return m, nil

	case linkedLoadedMsg:
		if !m.currentRepoIs(msg.owner, msg.repo) || msg.err != nil {
			return m, nil
		}
		if msg.isPull {
			m.app.SetLinkedIssues(msg.number, msg.numbers)
		} else {
			m.app.SetLinkedPullRequests(msg.number, msg.numbers)
		}
		return m, nil

	case actionDoneMsg:
		return m.onActionDone(msg)

	case checkoutDoneMsg:
		if msg.err != nil {
			m.app.setTransient(fmt.Sprintf("Checkout failed: %v", msg.err))
		} else {
			m.app.setTransient(fmt.Sprintf("Checked out #%d", msg.number))
		}
		return m, nil

	case clipboardResultMsg:
		if msg.err != nil {
			m.app.setTransient(fmt.Sprintf("Copy failed: %v", msg.err))
		} else {
			m.app.setTransient("Copied to clipboard")
		}
		return m, nil

	case urlOpenedMsg:
		if msg.err != nil {
			m.app.setTransient(fmt.Sprintf("Browser failed: %v", msg.err))
		}
		return m, nil

	case registrySavedMsg:
		if msg.err != nil {
			m.app.setTransient(fmt.Sprintf("Registry save failed: %v", msg.err))
		}
		return m, nil

	case ConfigChangedMsg:
		return m, m.reloadConfigCmd()

	case configReloadedMsg:
		if msg.err != nil {
			m.app.setTransient(fmt.Sprintf("Config reload failed: %v", msg.err))
			return m, nil
		}
		if err := m.app.ApplyKeybinds(msg.cfg.Keybinds); err != nil {
			m.app.setTransient(fmt.Sprintf("Config reload failed: %v", err))
			return m, nil
		}
		m.app.SetPresets(msg.cfg.Presets)
		m.scanRoots = msg.cfg.ScanRoots
		m.app.setTransient("Config reloaded")
		return m, nil
	}

	return m, nil
}

func (m Model) onReposLoaded(msg reposLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.fromScan {
		m.app.SetScanning(false)
	}
	if msg.err != nil {
		if msg.fromScan {
			m.app.setTransient(fmt.Sprintf("Scan failed: %v", msg.err))
		} else {
			m.app.setTransient(fmt.Sprintf("Repo registry: %v", msg.err))
		}
		return m, nil
	}
	// The saved registry only seeds the picker; a finished scan wins.
	if msg.fromScan || len(m.app.repos) == 0 {
		m.app.SetRepos(msg.repos)
	}

	var cmds []tea.Cmd
	if msg.fromScan {
		cmds = append(cmds, m.saveRegistryCmd(msg.repos))
		if m.initialRepo != "" && m.app.view == ViewRepoPicker {
			if m.app.SelectRepoByPath(m.initialRepo) {
				m.app.chooseRepo()
			}
			m.initialRepo = ""
		}
	}
	if cmd := m.dispatch(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) onActionDone(msg actionDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.app.setTransient(fmt.Sprintf("Error: %v", msg.err))
		return m, nil
	}
	if msg.status != "" {
		m.app.setTransient(msg.status)
	}
	if msg.issue != nil {
		m.app.UpsertIssue(*msg.issue)
	}
	if msg.adjustComments != 0 {
		m.app.AdjustCommentCount(msg.number, msg.adjustComments)
	}
	if msg.refreshIssues {
		m.app.requestIssueSync()
	}
	if msg.refreshComments && msg.number == m.app.currentIssue {
		m.app.requestCommentsSync()
	}
	if msg.refreshReview {
		m.app.requestReviewSync()
	}
	return m, m.dispatch()
}

func (m Model) currentRepoIs(owner, repo string) bool {
	return owner == m.app.owner && repo == m.app.repoName
}

// dispatch drains the work the core queued during the last event: background
// fetches, registry writes, and the pending action.
func (m Model) dispatch() tea.Cmd {
	var cmds []tea.Cmd
	if m.app.TakeRescanRequest() {
		cmds = append(cmds, m.scanCmd())
	}
	if m.app.TakeSyncRequest() {
		cmds = append(cmds, m.issuesCmd())
	}
	if m.app.TakeCommentsSyncRequest() {
		cmds = append(cmds, m.commentsCmd(m.app.currentIssue))
	}
	if m.app.TakePullFilesSyncRequest() {
		cmds = append(cmds, m.pullFilesCmd(m.app.currentIssue))
	}
	if m.app.TakeReviewSyncRequest() {
		cmds = append(cmds, m.reviewCmd(m.app.currentIssue))
	}
	if m.app.TakeMetadataSyncRequest() {
		cmds = append(cmds, m.metadataCmd())
	}
	if m.app.TakeLinkedSyncRequest() {
		if cmd := m.linkedCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if m.app.TakePresetsDirty() {
		cmds = append(cmds, m.savePresetsCmd())
	}
	if act, ok := m.app.TakeAction(); ok {
		if act.Kind == ActionQuit {
			cmds = append(cmds, tea.Quit)
		} else {
			cmds = append(cmds, m.actionCmd(act))
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m Model) loadRegistryCmd() tea.Cmd {
	reg := m.registry
	return func() tea.Msg {
		repos, err := reg.Load()
		return reposLoadedMsg{repos: repos, err: err}
	}
}

func (m Model) saveRegistryCmd(repos []store.Repo) tea.Cmd {
	reg := m.registry
	snapshot := append([]store.Repo(nil), repos...)
	return func() tea.Msg {
		return registrySavedMsg{err: reg.Save(snapshot)}
	}
}

func (m Model) scanCmd() tea.Cmd {
	scanner := m.scanner
	roots := append([]string(nil), m.scanRoots...)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
		defer cancel()
		repos, err := scanner.Scan(ctx, roots)
		return reposLoadedMsg{repos: repos, fromScan: true, err: err}
	}
}

func (m Model) issuesCmd() tea.Cmd {
	client, owner, repo := m.client, m.app.owner, m.app.repoName
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		issues, err := client.ListIssues(ctx, owner, repo)
		return issuesLoadedMsg{owner: owner, repo: repo, issues: issues, err: err}
	}
}

func (m Model) commentsCmd(number int) tea.Cmd {
	client, owner, repo := m.client, m.app.owner, m.app.repoName
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		comments, err := client.ListIssueComments(ctx, owner, repo, number)
		return commentsLoadedMsg{owner: owner, repo: repo, number: number, comments: comments, err: err}
	}
}

func (m Model) pullFilesCmd(number int) tea.Cmd {
	client, owner, repo := m.client, m.app.owner, m.app.repoName
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		files, err := client.ListPullFiles(ctx, owner, repo, number)
		return pullFilesLoadedMsg{owner: owner, repo: repo, number: number, files: files, err: err}
	}
}

func (m Model) reviewCmd(number int) tea.Cmd {
	client, owner, repo := m.client, m.app.owner, m.app.repoName
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		comments, err := client.ListReviewThreads(ctx, owner, repo, number)
		return reviewLoadedMsg{owner: owner, repo: repo, number: number, comments: comments, err: err}
	}
}

func (m Model) metadataCmd() tea.Cmd {
	client, owner, repo := m.client, m.app.owner, m.app.repoName
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		info, err := client.GetRepo(ctx, owner, repo)
		if err != nil {
			return metadataLoadedMsg{owner: owner, repo: repo, err: err}
		}
		// Option lists are best effort; the pickers merge whatever arrives.
		labels, _ := client.ListLabels(ctx, owner, repo)
		users, _ := client.ListAssignableUsers(ctx, owner, repo)
		return metadataLoadedMsg{owner: owner, repo: repo, info: info, labels: labels, users: users}
	}
}

func (m Model) linkedCmd() tea.Cmd {
	issue, ok := m.app.currentIssueRow()
	if !ok {
		return nil
	}
	client, owner, repo := m.client, m.app.owner, m.app.repoName
	number, isPull := issue.Number, issue.IsPull
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		var numbers []int
		var err error
		if isPull {
			numbers, err = client.LinkedIssues(ctx, owner, repo, number)
		} else {
			numbers, err = client.LinkedPulls(ctx, owner, repo, number)
		}
		return linkedLoadedMsg{owner: owner, repo: repo, number: number, isPull: isPull, numbers: numbers, err: err}
	}
}

func (m Model) savePresetsCmd() tea.Cmd {
	path := m.cfgPath
	presets := append([]config.Preset(nil), m.app.Presets()...)
	return func() tea.Msg {
		cfg, err := config.LoadFromPath(path)
		if err != nil {
			return actionDoneMsg{err: fmt.Errorf("save presets: %w", err)}
		}
		cfg.Presets = presets
		if err := config.Save(path, cfg); err != nil {
			return actionDoneMsg{err: fmt.Errorf("save presets: %w", err)}
		}
		return actionDoneMsg{status: "Preset saved"}
	}
}

func (m Model) reloadConfigCmd() tea.Cmd {
	path := m.cfgPath
	return func() tea.Msg {
		cfg, err := config.LoadFromPath(path)
		return configReloadedMsg{cfg: cfg, err: err}
	}
}

func (m Model) actionCmd(act Action) tea.Cmd {
	client, owner, repo := m.client, m.app.owner, m.app.repoName
	repoPath := m.app.repoPath
	checkout := m.checkout

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		switch act.Kind {
		case ActionOpenURL:
			return urlOpenedMsg{err: browser.OpenURL(ctx, act.URL)}

		case ActionCopyText:
			return clipboardResultMsg{err: clipboard.CopyText(ctx, act.Text)}

		case ActionCheckoutPull:
			err := checkout.CheckoutPull(ctx, repoPath, act.IssueNumber)
			return checkoutDoneMsg{number: act.IssueNumber, err: err}

		case ActionCreateIssue:
			issue, err := client.CreateIssue(ctx, owner, repo, github.IssueRequest{
				Title: &act.Title,
				Body:  &act.Body,
			})
			if err != nil {
				return actionDoneMsg{err: err}
			}
			converted := convertIssue(issue)
			return actionDoneMsg{
				status:        fmt.Sprintf("Created #%d", issue.Number),
				issue:         &converted,
				refreshIssues: true,
			}

		case ActionCloseIssue:
			adjust := 0
			if act.Body != "" {
				if _, err := client.AddIssueComment(ctx, owner, repo, act.IssueNumber, act.Body); err != nil {
					return actionDoneMsg{err: err}
				}
				adjust = 1
			}
			state := "closed"
			issue, err := client.UpdateIssue(ctx, owner, repo, act.IssueNumber, github.IssueRequest{State: &state})
			if err != nil {
				return actionDoneMsg{err: err}
			}
			converted := convertIssue(issue)
			return actionDoneMsg{
				status:          fmt.Sprintf("Closed #%d", act.IssueNumber),
				issue:           &converted,
				number:          act.IssueNumber,
				adjustComments:  adjust,
				refreshComments: adjust != 0,
			}

		case ActionEditIssueBody:
			issue, err := client.UpdateIssue(ctx, owner, repo, act.IssueNumber, github.IssueRequest{Body: &act.Body})
			if err != nil {
				return actionDoneMsg{err: err}
			}
			converted := convertIssue(issue)
			return actionDoneMsg{status: "Description updated", issue: &converted}

		case ActionSetLabels:
			issue, err := client.UpdateIssue(ctx, owner, repo, act.IssueNumber, github.IssueRequest{Labels: &act.Names})
			if err != nil {
				return actionDoneMsg{err: err}
			}
			converted := convertIssue(issue)
			return actionDoneMsg{status: "Labels updated", issue: &converted}

		case ActionSetAssignees:
			issue, err := client.UpdateIssue(ctx, owner, repo, act.IssueNumber, github.IssueRequest{Assignees: &act.Names})
			if err != nil {
				return actionDoneMsg{err: err}
			}
			converted := convertIssue(issue)
			return actionDoneMsg{status: "Assignees updated", issue: &converted}

		case ActionAddComment:
			if _, err := client.AddIssueComment(ctx, owner, repo, act.IssueNumber, act.Body); err != nil {
				return actionDoneMsg{err: err}
			}
			return actionDoneMsg{
				status:          "Comment added",
				number:          act.IssueNumber,
				adjustComments:  1,
				refreshComments: true,
			}

		case ActionEditComment:
			if _, err := client.EditIssueComment(ctx, owner, repo, act.CommentID, act.Body); err != nil {
				return actionDoneMsg{err: err}
			}
			return actionDoneMsg{status: "Comment updated", number: act.IssueNumber, refreshComments: true}

		case ActionDeleteComment:
			if err := client.DeleteIssueComment(ctx, owner, repo, act.CommentID); err != nil {
				return actionDoneMsg{err: err}
			}
			return actionDoneMsg{
				status:          "Comment deleted",
				number:          act.IssueNumber,
				adjustComments:  -1,
				refreshComments: true,
			}

		case ActionAddReviewComment:
			req := github.ReviewCommentRequest{
				Body: act.Body,
				Path: act.Target.Path,
				Line: act.Target.Line,
				Side: act.Target.Side.String(),
			}
			if act.Target.StartLine != nil {
				req.StartLine = act.Target.StartLine
				side := act.Target.Side.String()
				if act.Target.StartSide != nil {
					side = act.Target.StartSide.String()
				}
				req.StartSide = &side
			}
			if err := client.AddReviewComment(ctx, owner, repo, act.IssueNumber, req); err != nil {
				return actionDoneMsg{err: err}
			}
			return actionDoneMsg{status: "Review comment added", refreshReview: true}

		case ActionEditReviewComment:
			if err := client.EditReviewComment(ctx, owner, repo, act.CommentID, act.Body); err != nil {
				return actionDoneMsg{err: err}
			}
			return actionDoneMsg{status: "Review comment updated", refreshReview: true}

		case ActionDeleteReviewComment:
			if err := client.DeleteReviewComment(ctx, owner, repo, act.CommentID); err != nil {
				return actionDoneMsg{err: err}
			}
			return actionDoneMsg{status: "Review comment deleted", refreshReview: true}

		case ActionResolveThread:
			if err := client.ResolveReviewThread(ctx, act.ThreadID); err != nil {
				return actionDoneMsg{err: err}
			}
			return actionDoneMsg{status: "Thread resolved", refreshReview: true}

		case ActionToggleViewed:
			if err := client.SetFileViewed(ctx, owner, repo, act.IssueNumber, act.Path, act.Viewed); err != nil {
				return actionDoneMsg{err: err}
			}
			return actionDoneMsg{}
		}

		return actionDoneMsg{}
	}
}

func convertIssues(in []github.Issue) []Issue {
	out := make([]Issue, 0, len(in))
	for _, is := range in {
		out = append(out, convertIssue(is))
	}
	return out
}

func convertIssue(in github.Issue) Issue {
	out := Issue{
		ID:        in.ID,
		Number:    in.Number,
		Title:     in.Title,
		Body:      in.Body,
		State:     strings.ToLower(in.State),
		Author:    in.User.Login,
		Comments:  in.Comments,
		IsPull:    in.IsPull(),
		URL:       in.HTMLURL,
		CreatedAt: in.CreatedAt,
		UpdatedAt: in.UpdatedAt,
	}
	for _, l := range in.Labels {
		out.Labels = append(out.Labels, Label{Name: l.Name, Color: l.Color})
	}
	for _, u := range in.Assignees {
		out.Assignees = append(out.Assignees, u.Login)
	}
	return out
}

func convertComments(in []github.Comment) []Comment {
	out := make([]Comment, 0, len(in))
	for _, c := range in {
		out = append(out, Comment{
			ID:        c.ID,
			Author:    c.User.Login,
			Body:      c.Body,
			CreatedAt: c.CreatedAt,
		})
	}
	return out
}

func convertPullFiles(in []github.PullFile) []PullRequestFile {
	out := make([]PullRequestFile, 0, len(in))
	for _, f := range in {
		out = append(out, PullRequestFile{
			Path:         f.Filename,
			PreviousPath: f.PreviousFilename,
			Status:       f.Status,
			Additions:    f.Additions,
			Deletions:    f.Deletions,
			Patch:        f.Patch,
		})
	}
	return out
}

func convertReviewComments(in []github.ReviewComment) []ReviewComment {
	out := make([]ReviewComment, 0, len(in))
	for _, c := range in {
		side := patch.SideRight
		if c.Side == "LEFT" {
			side = patch.SideLeft
		}
		out = append(out, ReviewComment{
			ID:        c.ID,
			ThreadID:  c.ThreadID,
			Resolved:  c.Resolved,
			Anchored:  c.Anchored,
			Path:      c.Path,
			Line:      c.Line,
			Side:      side,
			Body:      c.Body,
			Author:    c.Author,
			CreatedAt: c.CreatedAt,
		})
	}
	return out
}

func labelNames(in []github.Label) []string {
	out := make([]string, 0, len(in))
	for _, l := range in {
		out = append(out, l.Name)
	}
	return out
}

func userLogins(in []github.User) []string {
	out := make([]string, 0, len(in))
	for _, u := range in {
		out = append(out, u.Login)
	}
	return out
}
