package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"hubbub/internal/config"
)

type EditorMode int

const (
	EditorNone EditorMode = iota
	EditorAddComment
	EditorEditComment
	EditorCloseIssue
	EditorCreateIssue
	EditorEditIssueBody
	EditorAddReviewComment
	EditorEditReviewComment
	EditorPresetBody
)

// openEditor enters the text editor with shared bookkeeping: remember where
// to return on cancel, start without the confirm overlay.
func (a *App) openEditor(mode EditorMode, prefill string) {
	a.editorMode = mode
	a.editorText = prefill
	a.editorTitle = ""
	a.editorTitleFocused = false
	a.editorCancelView = a.view
	a.confirmActive = false
	a.setView(ViewCommentEditor)
}

func (a *App) openAddCommentEditor() {
	if !a.canComment {
		a.setTransient("No comment permission")
		return
	}
	if _, ok := a.currentIssueRow(); !ok {
		return
	}
	a.editorCommentID = 0
	a.editorTarget = nil
	a.openEditor(EditorAddComment, "")
}

func (a *App) openEditCommentEditor() {
	c, ok := a.selectedComment()
	if !ok {
		a.setTransient("No comment selected")
		return
	}
	a.editorCommentID = c.ID
	a.editorTarget = nil
	a.openEditor(EditorEditComment, c.Body)
}

func (a *App) openEditIssueEditor() {
	issue, ok := a.currentIssueRow()
	if !ok {
		return
	}
	a.editorCommentID = 0
	a.editorTarget = nil
	a.openEditor(EditorEditIssueBody, issue.Body)
}

func (a *App) openCreateIssueEditor() {
	a.editorCommentID = 0
	a.editorTarget = nil
	a.openEditor(EditorCreateIssue, "")
	a.editorTitleFocused = true
}

func (a *App) openAddReviewCommentEditor() {
	if !a.canComment {
		a.setTransient("No comment permission")
		return
	}
	target, ok := a.reviewTarget()
	if !ok {
		a.setTransient("No commentable line selected")
		return
	}
	a.editorTarget = &target
	a.editorCommentID = 0
	a.openEditor(EditorAddReviewComment, "")
}

func (a *App) openEditReviewCommentEditor() {
	c, ok := a.SelectedReviewComment()
	if !ok {
		a.setTransient("No comment selected")
		return
	}
	a.editorCommentID = c.ID
	a.editorTarget = nil
	a.openEditor(EditorEditReviewComment, c.Body)
}

func (a *App) openCloseMessageEditor(prefill string) {
	a.editorCommentID = 0
	a.editorTarget = nil
	a.openEditor(EditorCloseIssue, prefill)
}

// openPresetBodyEditor collects the body of a new preset; cancel and submit
// both land back on the preset picker.
func (a *App) openPresetBodyEditor() {
	a.editorCommentID = 0
	a.editorTarget = nil
	a.editorMode = EditorPresetBody
	a.editorText = ""
	a.editorTitle = ""
	a.editorTitleFocused = false
	a.editorCancelView = ViewCommentPresetPicker
	a.confirmActive = false
	a.setView(ViewCommentEditor)
}

func (a *App) cancelEditor() {
	view := a.editorCancelView
	a.resetEditor()
	a.setView(view)
}

func (a *App) resetEditor() {
	a.editorMode = EditorNone
	a.editorText = ""
	a.editorTitle = ""
	a.editorTitleFocused = false
	a.editorCommentID = 0
	a.editorTarget = nil
	a.confirmActive = false
}

// handleEditorKey consumes every key while the editor is open. Enter submits
// (in the create-issue flow it first moves title → body → confirm overlay);
// alt+enter and ctrl+j insert a newline in body text.
func (a *App) handleEditorKey(msg tea.KeyMsg) {
	if a.confirmActive {
		switch msg.String() {
		case "enter", "y", "Y":
			a.submitEditor()
		case "esc", "n", "N":
			a.confirmActive = false
		}
		return
	}

	switch msg.String() {
	case "esc":
		a.cancelEditor()
	case "enter":
		if a.editorMode == EditorCreateIssue {
			if a.editorTitleFocused {
				a.editorTitleFocused = false
				return
			}
			a.confirmActive = true
			return
		}
		a.submitEditor()
	case "ctrl+j":
		if a.editorMode == EditorCreateIssue {
			a.editorTitleFocused = false
			return
		}
		a.editorText += "\n"
	case "alt+enter":
		if !a.editorTitleFocused {
			a.editorText += "\n"
		}
	case "ctrl+k":
		if a.editorMode == EditorCreateIssue {
			a.editorTitleFocused = true
		}
	case "backspace":
		a.editorBackspace()
	default:
		switch msg.Type {
		case tea.KeyRunes:
			a.editorInsert(string(msg.Runes))
		case tea.KeySpace:
			a.editorInsert(" ")
		case tea.KeyTab:
			a.editorInsert("\t")
		}
	}
}

func (a *App) editorInsert(s string) {
	if a.editorMode == EditorCreateIssue && a.editorTitleFocused {
		a.editorTitle += s
		return
	}
	a.editorText += s
}

func (a *App) editorBackspace() {
	if a.editorMode == EditorCreateIssue && a.editorTitleFocused {
		a.editorTitle = trimLastRune(a.editorTitle)
		return
	}
	a.editorText = trimLastRune(a.editorText)
}

// submitEditor emits the action for the editor's mode and leaves the editor.
// Add flows refuse empty bodies and keep the editor open instead.
func (a *App) submitEditor() {
	text := a.editorText

	switch a.editorMode {
	case EditorAddComment:
		if strings.TrimSpace(text) == "" {
			a.setTransient("Nothing to submit")
			return
		}
		a.emit(Action{Kind: ActionAddComment, IssueNumber: a.currentIssue, Body: text})

	case EditorEditComment:
		a.emit(Action{Kind: ActionEditComment, IssueNumber: a.currentIssue, CommentID: a.editorCommentID, Body: text})

	case EditorEditIssueBody:
		a.emit(Action{Kind: ActionEditIssueBody, IssueNumber: a.currentIssue, Body: text})

	case EditorCloseIssue:
		a.emit(Action{Kind: ActionCloseIssue, IssueNumber: a.closeIssueNumber, Body: text})
		a.resetEditor()
		a.setView(a.presetReturn)
		return

	case EditorCreateIssue:
		title := strings.TrimSpace(a.editorTitle)
		if title == "" {
			a.confirmActive = false
			a.editorTitleFocused = true
			a.setTransient("Title required")
			return
		}
		a.emit(Action{Kind: ActionCreateIssue, Title: title, Body: text})

	case EditorAddReviewComment:
		if a.editorTarget == nil {
			a.cancelEditor()
			return
		}
		if strings.TrimSpace(text) == "" {
			a.setTransient("Nothing to submit")
			return
		}
		target := *a.editorTarget
		a.emit(Action{Kind: ActionAddReviewComment, IssueNumber: a.prFilesIssue, Body: text, Target: &target})

	case EditorEditReviewComment:
		a.emit(Action{Kind: ActionEditReviewComment, IssueNumber: a.prFilesIssue, CommentID: a.editorCommentID, Body: text})

	case EditorPresetBody:
		name := strings.TrimSpace(a.presetName)
		if name == "" || strings.TrimSpace(text) == "" {
			a.setTransient("Preset needs a name and a body")
			return
		}
		a.presets = append(a.presets, config.Preset{Name: name, Body: text})
		a.presetsDirty = true
		a.presetName = ""
		a.resetEditor()
		a.presetCursor = len(a.presets) + 1
		a.setView(ViewCommentPresetPicker)
		return
	}

	view := a.editorCancelView
	a.resetEditor()
	a.setView(view)
}

// handlePresetNameKey collects the name of a new preset.
func (a *App) handlePresetNameKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc":
		a.presetName = ""
		a.setView(ViewCommentPresetPicker)
	case "enter":
		if strings.TrimSpace(a.presetName) == "" {
			a.setTransient("Preset name required")
			return
		}
		a.openPresetBodyEditor()
	case "backspace":
		a.presetName = trimLastRune(a.presetName)
	default:
		switch msg.Type {
		case tea.KeyRunes:
			a.presetName += string(msg.Runes)
		case tea.KeySpace:
			a.presetName += " "
		}
	}
}

func trimLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}
