package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"hubbub/internal/patch"
)

const (
	headerHeight = 1
	footerHeight = 2
)

var (
	styleHeader     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("39"))
	styleHeaderInfo = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleHints      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	styleCursor     = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	styleDim        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	styleOpen       = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	styleClosed     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	styleChecked    = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
)

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	a := m.app
	a.ResetRegions()

	header := m.renderHeader()
	footer := m.renderFooter()
	bodyH := max(3, m.height-headerHeight-footerHeight)

	var body string
	switch a.view {
	case ViewRepoPicker:
		body = m.renderRepoPicker(bodyH)
	case ViewRemoteChooser:
		body = m.renderRemoteChooser(bodyH)
	case ViewIssues:
		body = m.renderIssues(bodyH)
	case ViewIssueDetail:
		body = m.renderIssueDetail(bodyH)
	case ViewIssueComments:
		body = m.renderIssueComments(bodyH)
	case ViewPullRequestFiles:
		body = m.renderReview(bodyH)
	case ViewLinkedPicker:
		body = m.renderLinkedPicker(bodyH)
	case ViewLabelPicker, ViewAssigneePicker:
		body = m.renderOptionPicker(bodyH)
	case ViewCommentPresetPicker:
		body = m.renderPresetPicker(bodyH)
	case ViewCommentPresetName:
		body = m.renderPresetName(bodyH)
	case ViewCommentEditor:
		body = m.renderEditor(bodyH)
	}

	if a.helpVisible {
		body = overlayCentered(body, m.renderHelp(), m.width, bodyH)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) renderHeader() string {
	a := m.app
	left := styleHeader.Render(" hubbub ")
	info := "  " + a.currentRepoLabel()
	right := ""
	if a.AnySyncing() {
		right = m.spinner.View() + "syncing "
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(info) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	line := left + styleHeaderInfo.Render(info) + strings.Repeat(" ", gap) + styleDim.Render(right)
	return ansi.Truncate(line, m.width, "")
}

func (m Model) renderFooter() string {
	status := ansi.Truncate(m.app.StatusLine(), m.width, "")
	hints := styleHints.Render(ansi.Truncate(m.contextHints(), m.width, ""))
	return status + "\n" + hints
}

// contextHints is the footer key line for the active view, built from the
// live bindings so config overrides show up.
func (m Model) contextHints() string {
	k := m.app.keys
	join := func(bs ...key.Binding) string {
		parts := make([]string, 0, len(bs))
		for _, b := range bs {
			h := b.Help()
			parts = append(parts, h.Key+" "+h.Desc)
		}
		return strings.Join(parts, " | ")
	}

	switch m.app.view {
	case ViewRepoPicker:
		return join(k.Select, k.Search, k.Rescan, k.Help, k.Quit)
	case ViewRemoteChooser:
		return join(k.Select, k.Escape, k.Quit)
	case ViewIssues:
		return join(k.Select, k.Search, k.StatusToggle, k.WorkItemsToggle,
			k.AssigneeCycle, k.CreateIssue, k.ClosePrefix, k.OpenBrowser, k.Help)
	case ViewIssueDetail:
		return join(k.Select, k.AddComment, k.Edit, k.OpenLinkedTUI,
			k.OpenLabels, k.OpenAssignees, k.Back, k.Help)
	case ViewIssueComments:
		return join(k.AddComment, k.Edit, k.DeleteComment, k.Escape, k.Help)
	case ViewPullRequestFiles:
		if m.app.reviewFocus == ReviewFocusDiff {
			return join(k.AddComment, k.VisualMode, k.CollapseHunk, k.SideLeft,
				k.SideRight, k.CommentNext, k.ResolveThread, k.FocusLeft, k.Help)
		}
		return join(k.Select, k.ToggleViewed, k.CheckoutPull, k.FocusRight, k.Escape, k.Help)
	case ViewLabelPicker, ViewAssigneePicker:
		return join(k.PopupToggle, k.Select, k.Search, k.ClearFilter, k.Escape)
	case ViewCommentPresetPicker, ViewLinkedPicker:
		return join(k.Select, k.Escape)
	case ViewCommentEditor, ViewCommentPresetName:
		return "enter submit | alt+enter newline | esc cancel"
	}
	return ""
}

func paneFrame(width, height int, focused bool) lipgloss.Style {
	borderColor := lipgloss.Color("245")
	if focused {
		borderColor = lipgloss.Color("39")
	}
	return lipgloss.NewStyle().
		Width(max(1, width)).
		Height(max(1, height)).
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor)
}

func (m Model) renderRepoPicker(bodyH int) string {
	a := m.app
	contentW := max(1, m.width-2)
	contentH := max(1, bodyH-2)

	title := fmt.Sprintf("Repositories (%d)", len(a.filteredRepos))
	if a.scanning {
		title += "  scanning..."
	}
	prompt := ""
	if a.repoSearch {
		prompt = "/" + a.repoQuery + "█"
	} else if a.repoQuery != "" {
		prompt = "/" + a.repoQuery
	}

	lines := []string{title, styleDim.Render(prompt)}
	page := max(1, contentH-2)
	start, end := listWindow(len(a.filteredRepos), a.repoCursor, page)
	rowsTop := headerHeight + 3
	if len(a.filteredRepos) == 0 && !a.scanning {
		lines = append(lines, styleDim.Render("No repositories found. ctrl+r rescans."))
	}
	for p, pos := 0, start; pos < end; p, pos = p+1, pos+1 {
		repo := a.repos[a.filteredRepos[pos]]
		label := repo.Path
		if len(repo.Remotes) > 0 {
			r := repo.Remotes[0]
			label = fmt.Sprintf("%s  %s/%s", repo.Path, r.Owner, r.Repo)
		}
		lines = append(lines, m.listRow(label, pos == a.repoCursor, contentW))
		a.AddRegion(RegionRepoRow, pos, patch.SideRight, 0, rowsTop+p, m.width, 1)
	}
	return paneFrame(contentW, contentH, true).Render(strings.Join(lines, "\n"))
}

func (m Model) renderRemoteChooser(bodyH int) string {
	a := m.app
	panelW := min(64, max(24, m.width-8))
	lines := []string{"Choose remote", ""}
	for i, r := range a.remotes {
		label := fmt.Sprintf("%s  %s/%s", r.Name, r.Owner, r.Repo)
		lines = append(lines, m.listRow(label, i == a.remoteCursor, panelW-2))
	}
	panel := paneFrame(panelW-2, len(lines), true).Render(strings.Join(lines, "\n"))

	x0 := max(0, (m.width-lipgloss.Width(panel))/2)
	y0 := headerHeight + max(0, (bodyH-lipgloss.Height(panel))/2)
	for i := range a.remotes {
		a.AddRegion(RegionRemoteRow, i, patch.SideRight, x0, y0+3+i, lipgloss.Width(panel), 1)
	}
	return overlayCentered(blankCanvas(m.width, bodyH), panel, m.width, bodyH)
}

func (m Model) renderIssues(bodyH int) string {
	a := m.app
	contentW := max(1, m.width-2)
	contentH := max(1, bodyH-2)

	open, closed := a.issueCounts()
	kind := "issues"
	if a.workItems == WorkItemPulls {
		kind = "pull requests"
	}
	title := fmt.Sprintf("%s (open %d / closed %d, showing %s)", kind, open, closed,
		strings.ToLower(a.effectiveStatus().String()))

	filters := "assignee: " + a.assigneeFilter.String()
	if a.searchActive {
		filters += "   /" + a.searchQuery + "█"
	} else if a.searchQuery != "" {
		filters += "   /" + a.searchQuery
	}

	lines := []string{title, styleDim.Render(filters)}
	page := max(1, contentH-2)
	start, end := listWindow(len(a.filteredIssues), a.issueCursor, page)
	rowsTop := headerHeight + 3
	if len(a.filteredIssues) == 0 {
		empty := "No matching items"
		if a.syncing {
			empty = "Syncing..."
		}
		lines = append(lines, styleDim.Render(empty))
	}
	for p, pos := 0, start; pos < end; p, pos = p+1, pos+1 {
		issue := a.issues[a.filteredIssues[pos]]
		lines = append(lines, m.issueRow(issue, pos == a.issueCursor, contentW))
		a.AddRegion(RegionIssueRow, pos, patch.SideRight, 0, rowsTop+p, m.width, 1)
	}
	return paneFrame(contentW, contentH, true).Render(strings.Join(lines, "\n"))
}

func (m Model) issueRow(issue Issue, selected bool, width int) string {
	state := styleOpen.Render("●")
	if issue.State == "closed" {
		state = styleClosed.Render("●")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "#%-5d %s", issue.Number, issue.Title)
	for _, l := range issue.Labels {
		fmt.Fprintf(&b, " [%s]", l.Name)
	}
	if len(issue.Assignees) > 0 {
		fmt.Fprintf(&b, " @%s", strings.Join(issue.Assignees, " @"))
	}
	if issue.Comments > 0 {
		fmt.Fprintf(&b, " (%d)", issue.Comments)
	}
	prefix := "  "
	if selected {
		prefix = "> "
	}
	text := ansi.Truncate(b.String(), max(1, width-4), "")
	if selected {
		return prefix + state + " " + styleCursor.Render(text)
	}
	return prefix + state + " " + text
}

func (m Model) renderIssueDetail(bodyH int) string {
	a := m.app
	issue, ok := a.currentIssueRow()
	if !ok {
		return paneFrame(max(1, m.width-2), max(1, bodyH-2), true).Render("No work item selected")
	}
	bodyW, sideW := detailPaneWidths(m.width)
	contentH := max(1, bodyH-2)

	// Body pane.
	title := ansi.Truncate(fmt.Sprintf("#%d %s", issue.Number, issue.Title), max(1, bodyW), "")
	stateTag := fmt.Sprintf("%s / %s / %d comments", issue.State, issue.Author, issue.Comments)
	wrapped := wrapLines(issue.Body, max(1, bodyW-1))
	if len(wrapped) == 0 {
		wrapped = []string{styleDim.Render("No description")}
	}
	page := max(1, contentH-3)
	a.SetDetailMaxScroll(len(wrapped) - page)
	from := clampInt(a.detailScroll, 0, max(0, len(wrapped)-1))
	to := min(len(wrapped), from+page)
	bodyLines := append([]string{title, styleDim.Render(stateTag), ""}, wrapped[from:to]...)
	bodyPane := paneFrame(bodyW, contentH, a.focus != FocusSidePanel).Render(strings.Join(bodyLines, "\n"))

	// Side panel.
	side := m.sidePanelLines(issue)
	sidePage := max(1, contentH)
	a.SetSideMaxScroll(len(side) - sidePage)
	sFrom := clampInt(a.sideScroll, 0, max(0, len(side)-1))
	sTo := min(len(side), sFrom+sidePage)
	sidePane := paneFrame(sideW, contentH, a.focus == FocusSidePanel).Render(strings.Join(side[sFrom:sTo], "\n"))

	return lipgloss.JoinHorizontal(lipgloss.Top, bodyPane, sidePane)
}

func (m Model) sidePanelLines(issue Issue) []string {
	a := m.app
	lines := []string{
		"State:    " + issue.State,
		"Author:   " + issue.Author,
		"Created:  " + issue.CreatedAt.Format("2006-01-02"),
		"Updated:  " + issue.UpdatedAt.Format("2006-01-02"),
		"",
		"Labels:",
	}
	if len(issue.Labels) == 0 {
		lines = append(lines, styleDim.Render("  none"))
	}
	for _, l := range issue.Labels {
		lines = append(lines, "  "+l.Name)
	}
	lines = append(lines, "", "Assignees:")
	if len(issue.Assignees) == 0 {
		lines = append(lines, styleDim.Render("  none"))
	}
	for _, u := range issue.Assignees {
		lines = append(lines, "  "+u)
	}
	var linked []int
	header := "Linked PRs:"
	if issue.IsPull {
		linked = a.LinkedIssuesForPull(issue.Number)
		header = "Linked issues:"
	} else {
		linked = a.LinkedPullRequestsForIssue(issue.Number)
	}
	lines = append(lines, "", header)
	if len(linked) == 0 {
		lines = append(lines, styleDim.Render("  none"))
	}
	for _, n := range linked {
		lines = append(lines, fmt.Sprintf("  #%d", n))
	}
	return lines
}

func (m Model) renderIssueComments(bodyH int) string {
	a := m.app
	contentW := max(1, m.width-2)
	contentH := max(1, bodyH-2)

	lines := []string{fmt.Sprintf("Comments (%d)", len(a.comments)), ""}
	if len(a.comments) == 0 {
		empty := "No comments"
		if a.commentsSyncing {
			empty = "Syncing..."
		}
		lines = append(lines, styleDim.Render(empty))
		return paneFrame(contentW, contentH, true).Render(strings.Join(lines, "\n"))
	}

	listPage := max(3, (contentH-3)/2)
	start, end := listWindow(len(a.comments), a.commentCursor, listPage)
	rowsTop := headerHeight + 3
	for p, pos := 0, start; pos < end; p, pos = p+1, pos+1 {
		c := a.comments[pos]
		summary := strings.ReplaceAll(strings.TrimSpace(c.Body), "\n", " / ")
		label := fmt.Sprintf("%s  %s  %s", c.Author, c.CreatedAt.Format("2006-01-02 15:04"), summary)
		lines = append(lines, m.listRow(label, pos == a.commentCursor, contentW))
		a.AddRegion(RegionCommentRow, pos, patch.SideRight, 0, rowsTop+p, m.width, 1)
	}

	if c, ok := a.selectedComment(); ok {
		lines = append(lines, styleDim.Render(strings.Repeat("─", max(1, contentW))))
		bodyRoom := contentH - len(lines)
		for i, l := range wrapLines(c.Body, max(1, contentW-1)) {
			if i >= bodyRoom {
				break
			}
			lines = append(lines, l)
		}
	}
	return paneFrame(contentW, contentH, true).Render(strings.Join(lines, "\n"))
}

func (m Model) renderReview(bodyH int) string {
	a := m.app
	dock := ""
	if a.reviewFocus == ReviewFocusDiff {
		if thread := a.currentReviewThread(); len(thread) > 0 {
			dock = m.renderThreadDock(thread)
		}
	}
	paneH := max(3, bodyH-lipgloss.Height(dock))
	if dock == "" {
		paneH = bodyH
	}

	leftW, diffAreaW := paneWidths(m.width, filePaneWidth, a.prExpanded)
	oldW, newW := splitRightPanes(diffAreaW)
	contentH := max(1, paneH-2)

	file, haveFile := a.currentPullFile()
	rows := a.currentDiffRows()

	visStart, visEnd, visOK := a.visualRange()
	if !visOK {
		visStart, visEnd = -1, -1
	}
	cfg := patch.RenderConfig{
		Path:        file.Path,
		Cursor:      a.prRowCursor,
		Collapsed:   a.currentCollapsed(),
		VisualStart: visStart,
		VisualEnd:   visEnd,
		XOffset:     a.prXScroll,
		Highlight:   true,
		HasComment: func(line int, side patch.Side) bool {
			return a.reviewCommentOnLine(file.Path, side, line)
		},
	}
	split := patch.RenderSplit(rows, oldW, newW, cfg)
	a.SetDiffMaxPan(max(0, split.MaxLineWidth-10))

	diffPage := max(1, contentH-1)
	a.SetDiffMaxScroll(len(split.Rows) - diffPage)
	// Keep the cursor row inside the window.
	rel := -1
	for i, rowIdx := range split.Rows {
		if rowIdx == a.prRowCursor {
			rel = i
			break
		}
	}
	if rel >= 0 {
		if rel < a.prScroll {
			a.prScroll = rel
		}
		if rel >= a.prScroll+diffPage {
			a.prScroll = rel - diffPage + 1
		}
	}
	from := clampInt(a.prScroll, 0, max(0, len(split.Rows)-1))
	to := min(len(split.Rows), from+diffPage)
	if len(split.Rows) == 0 {
		from, to = 0, 0
	}

	filesOuterW := 0
	var panes []string
	if !a.prExpanded {
		filesOuterW = leftW + 2
		panes = append(panes, m.renderFilesPane(leftW, contentH, paneH))
	}

	diffFocused := a.reviewFocus == ReviewFocusDiff
	oldTitle := "old"
	newTitle := "new"
	if haveFile {
		oldTitle = ansi.Truncate("old  "+leftPathFor(file), max(1, oldW), "")
		newTitle = ansi.Truncate("new  "+file.Path, max(1, newW), "")
	}
	oldLines := append([]string{styleDim.Render(oldTitle)}, split.Left[from:to]...)
	newLines := append([]string{styleDim.Render(newTitle)}, split.Right[from:to]...)
	panes = append(panes,
		paneFrame(oldW, contentH, diffFocused && a.prSide == patch.SideLeft).Render(strings.Join(oldLines, "\n")),
		paneFrame(newW, contentH, diffFocused && a.prSide == patch.SideRight).Render(strings.Join(newLines, "\n")),
	)

	diffRowsTop := headerHeight + 2
	oldX := filesOuterW
	newX := filesOuterW + oldW + 2
	for p, vis := 0, from; vis < to; p, vis = p+1, vis+1 {
		rowIdx := split.Rows[vis]
		a.AddRegion(RegionDiffRow, rowIdx, patch.SideLeft, oldX, diffRowsTop+p, oldW+2, 1)
		a.AddRegion(RegionDiffRow, rowIdx, patch.SideRight, newX, diffRowsTop+p, newW+2, 1)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, panes...)
	if dock != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, dock)
	}
	return body
}

func leftPathFor(f PullRequestFile) string {
	if f.PreviousPath != "" {
		return f.PreviousPath
	}
	return f.Path
}

func (m Model) renderFilesPane(width, contentH, paneH int) string {
	a := m.app
	title := fmt.Sprintf("Files (%d)", len(a.prFiles))
	if a.prFilesSyncing {
		title += "  syncing..."
	}
	lines := []string{title, ""}
	page := max(1, contentH-2)
	start, end := listWindow(len(a.prFiles), a.prFileCursor, page)
	rowsTop := headerHeight + 3
	if len(a.prFiles) == 0 {
		lines = append(lines, styleDim.Render("No changed files"))
	}
	for p, pos := 0, start; pos < end; p, pos = p+1, pos+1 {
		f := a.prFiles[pos]
		viewedMark := " "
		if a.prViewed[f.Path] {
			viewedMark = "v"
		}
		commentMark := " "
		if pathHasComments(a.reviewComments, f.Path) {
			commentMark = "*"
		}
		label := fmt.Sprintf("%s%s [%s] %s  +%d/-%d",
			viewedMark, commentMark, statusLetter(f.Status), f.Path, f.Additions, f.Deletions)
		lines = append(lines, m.listRow(label, pos == a.prFileCursor, width))
		a.AddRegion(RegionFileRow, pos, patch.SideRight, 0, rowsTop+p, width+2, 1)
	}
	return paneFrame(width, contentH, a.reviewFocus == ReviewFocusFiles).Render(strings.Join(lines, "\n"))
}

func pathHasComments(comments []ReviewComment, path string) bool {
	for _, c := range comments {
		if c.Anchored && c.Path == path {
			return true
		}
	}
	return false
}

func statusLetter(status string) string {
	switch status {
	case "added":
		return "A"
	case "removed":
		return "D"
	case "modified":
		return "M"
	case "renamed":
		return "R"
	}
	if status == "" {
		return "?"
	}
	return strings.ToUpper(status[:1])
}

func (m Model) renderThreadDock(thread []ReviewComment) string {
	a := m.app
	selected, _ := a.SelectedReviewComment()

	title := fmt.Sprintf("Thread %s:%d (%s)", selected.Path, selected.Line, selected.Side)
	var lines []string
	for _, c := range thread {
		mark := "  "
		if c.ID == selected.ID {
			mark = "> "
		}
		state := ""
		if c.Resolved {
			state = "  [resolved]"
		}
		lines = append(lines, mark+c.Author+"  "+c.CreatedAt.Format("2006-01-02 15:04")+styleDim.Render(state))
	}
	body := wrapLines(selected.Body, max(10, m.width-8))
	if len(body) > 4 {
		body = append(body[:4], styleDim.Render("..."))
	}
	lines = append(lines, "")
	lines = append(lines, body...)
	return m.renderDockPanel(title, lipgloss.Color("39"), lipgloss.Color("39"), strings.Join(lines, "\n"))
}

func (m Model) renderLinkedPicker(bodyH int) string {
	a := m.app
	labels := a.LinkedChoiceLabels()
	panelW := min(70, max(30, m.width-8))
	lines := []string{"Linked work items", ""}
	for i, label := range labels {
		lines = append(lines, m.listRow(ansi.Truncate(label, panelW-4, ""), i == a.linkedCursor, panelW-2))
	}
	panel := paneFrame(panelW-2, len(lines), true).Render(strings.Join(lines, "\n"))

	x0 := max(0, (m.width-lipgloss.Width(panel))/2)
	y0 := headerHeight + max(0, (bodyH-lipgloss.Height(panel))/2)
	for i := range labels {
		a.AddRegion(RegionLinkedRow, i, patch.SideRight, x0, y0+3+i, lipgloss.Width(panel), 1)
	}
	return overlayCentered(blankCanvas(m.width, bodyH), panel, m.width, bodyH)
}

func (m Model) renderOptionPicker(bodyH int) string {
	a := m.app
	title := "Labels"
	if a.view == ViewAssigneePicker {
		title = "Assignees"
	}
	title += fmt.Sprintf(" for #%d", a.pickerIssue)

	prompt := ""
	if a.popupFilterActive {
		prompt = "/" + a.popupQuery + "█"
	} else if a.popupQuery != "" {
		prompt = "/" + a.popupQuery
	}

	options := a.pickerOptions()
	checked := a.pickerChecked()
	panelW := min(60, max(28, m.width-8))
	maxRows := max(3, bodyH-7)
	page := min(maxRows, max(1, len(a.filteredOptions)))
	start, end := listWindow(len(a.filteredOptions), a.pickerCursor, page)

	lines := []string{title, styleDim.Render(prompt)}
	if len(a.filteredOptions) == 0 {
		lines = append(lines, styleDim.Render("No options"))
	}
	for pos := start; pos < end; pos++ {
		name := options[a.filteredOptions[pos]]
		box := "[ ]"
		if checked[strings.ToLower(name)] {
			box = styleChecked.Render("[x]")
		}
		label := box + " " + ansi.Truncate(name, panelW-8, "")
		lines = append(lines, m.listRow(label, pos == a.pickerCursor, panelW-2))
	}
	panel := paneFrame(panelW-2, len(lines), true).Render(strings.Join(lines, "\n"))

	x0 := max(0, (m.width-lipgloss.Width(panel))/2)
	y0 := headerHeight + max(0, (bodyH-lipgloss.Height(panel))/2)
	for p, pos := 0, start; pos < end; p, pos = p+1, pos+1 {
		a.AddRegion(RegionPickerRow, pos, patch.SideRight, x0, y0+3+p, lipgloss.Width(panel), 1)
	}
	return overlayCentered(blankCanvas(m.width, bodyH), panel, m.width, bodyH)
}

func (m Model) renderPresetPicker(bodyH int) string {
	a := m.app
	labels := a.PresetOptionLabels()
	panelW := min(60, max(30, m.width-8))
	lines := []string{fmt.Sprintf("Close #%d", a.closeIssueNumber), ""}
	for i, label := range labels {
		lines = append(lines, m.listRow(ansi.Truncate(label, panelW-6, ""), i == a.presetCursor, panelW-2))
	}
	panel := paneFrame(panelW-2, len(lines), true).Render(strings.Join(lines, "\n"))

	x0 := max(0, (m.width-lipgloss.Width(panel))/2)
	y0 := headerHeight + max(0, (bodyH-lipgloss.Height(panel))/2)
	for i := range labels {
		a.AddRegion(RegionPresetRow, i, patch.SideRight, x0, y0+3+i, lipgloss.Width(panel), 1)
	}
	return overlayCentered(blankCanvas(m.width, bodyH), panel, m.width, bodyH)
}

func (m Model) renderPresetName(bodyH int) string {
	a := m.app
	panelW := min(54, max(28, m.width-8))
	body := strings.Join([]string{
		"Name: " + a.presetName + "█",
		"",
		styleDim.Render("Enter continue | Esc cancel"),
	}, "\n")
	panel := m.renderModalPanel("New Preset", panelW, lipgloss.Color("39"), body)
	return overlayCentered(blankCanvas(m.width, bodyH), panel, m.width, bodyH)
}

func (m Model) renderEditor(bodyH int) string {
	a := m.app
	contentW := max(20, m.width-8)

	var lines []string
	if a.editorMode == EditorCreateIssue {
		title := "Title: " + a.editorTitle
		if a.editorTitleFocused {
			title += "█"
		}
		lines = append(lines, title, "")
	}
	text := strings.Split(a.editorText, "\n")
	for i, l := range text {
		wrappedAll := wrapLines(l, contentW-4)
		if len(wrappedAll) == 0 {
			wrappedAll = []string{""}
		}
		if i == len(text)-1 && !(a.editorMode == EditorCreateIssue && a.editorTitleFocused) {
			wrappedAll[len(wrappedAll)-1] += "█"
		}
		lines = append(lines, wrappedAll...)
	}
	hint := "Enter submit | Alt+Enter newline | Esc cancel"
	if a.editorMode == EditorCreateIssue {
		hint = "Enter next/confirm | Ctrl+K title | Alt+Enter newline | Esc cancel"
	}
	lines = append(lines, "", styleDim.Render(hint))

	panel := m.renderModalPanel(m.editorTitleFor(), contentW, lipgloss.Color("39"), strings.Join(lines, "\n"))
	body := overlayCentered(blankCanvas(m.width, bodyH), panel, m.width, bodyH)
	if a.confirmActive {
		body = overlayCentered(body, m.renderConfirmModal(), m.width, bodyH)
	}
	return body
}

func (m Model) editorTitleFor() string {
	a := m.app
	switch a.editorMode {
	case EditorAddComment:
		return fmt.Sprintf("Comment on #%d", a.currentIssue)
	case EditorEditComment:
		return "Edit Comment"
	case EditorCloseIssue:
		return fmt.Sprintf("Close #%d with message", a.closeIssueNumber)
	case EditorCreateIssue:
		return "New Issue"
	case EditorEditIssueBody:
		return fmt.Sprintf("Edit #%d description", a.currentIssue)
	case EditorAddReviewComment:
		if a.editorTarget != nil {
			return fmt.Sprintf("Review comment at %s:%d", a.editorTarget.Path, a.editorTarget.Line)
		}
		return "Review Comment"
	case EditorEditReviewComment:
		return "Edit Review Comment"
	case EditorPresetBody:
		return "Preset body: " + a.presetName
	}
	return "Editor"
}

func (m Model) renderConfirmModal() string {
	title := strings.TrimSpace(m.app.editorTitle)
	body := strings.Join([]string{
		fmt.Sprintf("Create issue %q?", title),
		"",
		styleDim.Render("Y/Enter confirm | N/Esc cancel"),
	}, "\n")

	width := 54
	if m.width > 0 && m.width-6 < width {
		width = max(24, m.width-6)
	}
	titleBar := lipgloss.NewStyle().
		Width(max(1, width-2)).
		Padding(0, 1).
		Bold(true).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("39")).
		Render("Confirm")
	bodyBlock := lipgloss.NewStyle().
		Width(max(1, width-2)).
		Padding(1, 2).
		Render(body)
	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("39")).
		Render(titleBar + "\n" + bodyBlock)
}

func (m Model) renderModalPanel(title string, width int, color lipgloss.Color, body string) string {
	titleText := ansi.Truncate(title, max(1, width-2), "")
	titleBar := lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Bold(true).
		Foreground(lipgloss.Color("230")).
		Background(color).
		Render(titleText)
	bodyBlock := lipgloss.NewStyle().
		Width(width).
		Padding(1, 2).
		Render(body)
	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Render(titleBar + "\n" + bodyBlock)
}

func (m Model) renderDockPanel(title string, titleColor, borderColor lipgloss.Color, body string) string {
	contentW := max(10, m.width-2)
	titleText := ansi.Truncate(title, max(1, contentW-2), "")
	titleBar := lipgloss.NewStyle().
		Width(contentW).
		Padding(0, 1).
		Bold(true).
		Foreground(lipgloss.Color("230")).
		Background(titleColor).
		Render(titleText)
	bodyBlock := lipgloss.NewStyle().
		Width(contentW).
		Padding(0, 1).
		Render(body)
	return lipgloss.NewStyle().
		Width(contentW).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Render(titleBar + "\n" + bodyBlock)
}

func (m Model) renderHelp() string {
	k := m.app.keys
	groups := []struct {
		name string
		keys []key.Binding
	}{
		{"Global", []key.Binding{k.Help, k.Quit, k.Refresh, k.RepoPicker, k.Rescan, k.CopyStatus, k.Back}},
		{"Lists", []key.Binding{k.Up, k.Down, k.JumpPrefix, k.JumpBottom, k.Select}},
		{"Issues", []key.Binding{k.Search, k.StatusOpen, k.StatusClosed, k.StatusToggle,
			k.WorkItemsToggle, k.AssigneeCycle, k.AssigneeReset, k.CreateIssue,
			k.ClosePrefix, k.OpenBrowser, k.OpenLabels, k.OpenAssignees}},
		{"Work item", []key.Binding{k.AddComment, k.Edit, k.DeleteComment, k.CommentNext,
			k.CommentPrev, k.OpenLinkedTUI, k.OpenLinkedBrowser, k.CheckoutPull}},
		{"Review", []key.Binding{k.ToggleViewed, k.CollapseHunk, k.VisualMode, k.SideLeft,
			k.SideRight, k.ScrollLeft, k.ScrollRight, k.ScrollReset, k.ResolveThread}},
		{"Pickers", []key.Binding{k.PopupToggle, k.ClearFilter}},
	}

	var lines []string
	for _, g := range groups {
		lines = append(lines, styleCursor.Render(g.name))
		for _, b := range g.keys {
			h := b.Help()
			lines = append(lines, fmt.Sprintf("  %-10s %s", h.Key, h.Desc))
		}
		lines = append(lines, "")
	}
	if len(lines) > 0 {
		lines = lines[:len(lines)-1]
	}

	width := min(44, max(30, m.width-10))
	return m.renderModalPanel("Keys", width, lipgloss.Color("39"), strings.Join(lines, "\n"))
}

func (m Model) listRow(label string, selected bool, width int) string {
	prefix := "  "
	if selected {
		prefix = "> "
	}
	text := ansi.Truncate(label, max(1, width-2), "")
	if selected {
		return prefix + styleCursor.Render(text)
	}
	return prefix + text
}

func blankCanvas(width, height int) string {
	line := strings.Repeat(" ", max(1, width))
	lines := make([]string, max(1, height))
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func overlayCentered(base, overlay string, width, height int) string {
	baseLines := normalizeCanvas(base, width, height)
	overlayLines := strings.Split(overlay, "\n")
	overlayW := lipgloss.Width(overlay)
	if overlayW <= 0 || len(overlayLines) == 0 {
		return strings.Join(baseLines, "\n")
	}

	x := max(0, (width-overlayW)/2)
	y := max(0, (height-len(overlayLines))/2)
	for i, ol := range overlayLines {
		row := y + i
		if row < 0 || row >= len(baseLines) {
			continue
		}
		baseLines[row] = spliceLine(baseLines[row], ol, x, overlayW, width)
	}
	return strings.Join(baseLines, "\n")
}

func normalizeCanvas(s string, width, height int) []string {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	raw := strings.Split(s, "\n")
	lines := make([]string, 0, height)
	for i := 0; i < height; i++ {
		line := ""
		if i < len(raw) {
			line = raw[i]
		}
		w := lipgloss.Width(line)
		switch {
		case w > width:
			lines = append(lines, ansi.Truncate(line, width, ""))
		case w < width:
			lines = append(lines, line+strings.Repeat(" ", width-w))
		default:
			lines = append(lines, line)
		}
	}
	return lines
}

// spliceLine lays an overlay segment over a base line. The base loses its
// styling; overlays sit on blank or dimmed rows, so nothing of value is lost.
func spliceLine(baseLine, overlay string, x, overlayW, totalW int) string {
	if x >= totalW {
		return baseLine
	}
	if x+overlayW > totalW {
		overlay = ansi.Truncate(overlay, totalW-x, "")
		overlayW = lipgloss.Width(overlay)
		if overlayW <= 0 {
			return baseLine
		}
	}
	plain := []rune(ansi.Strip(baseLine))
	if len(plain) < totalW {
		plain = append(plain, []rune(strings.Repeat(" ", totalW-len(plain)))...)
	}
	left := string(plain[:x])
	rightStart := min(len(plain), x+overlayW)
	return left + overlay + string(plain[rightStart:])
}

// wrapLines greedily wraps text on spaces; words longer than the width are
// split hard.
func wrapLines(s string, width int) []string {
	if width < 1 {
		width = 1
	}
	var out []string
	for _, raw := range strings.Split(s, "\n") {
		if raw == "" {
			out = append(out, "")
			continue
		}
		line := ""
		for _, word := range strings.Fields(raw) {
			for len([]rune(word)) > width {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				runes := []rune(word)
				out = append(out, string(runes[:width]))
				word = string(runes[width:])
			}
			switch {
			case line == "":
				line = word
			case len([]rune(line))+1+len([]rune(word)) <= width:
				line += " " + word
			default:
				out = append(out, line)
				line = word
			}
		}
		out = append(out, line)
	}
	// Trim the trailing blank produced by a trailing newline.
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}
