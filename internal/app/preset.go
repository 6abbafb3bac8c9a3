package app

import "fmt"

// Fixed rows surrounding the saved presets in the close-issue picker.
const (
	presetOptionCloseWithout = 0
	presetOptionCustom       = 1
	presetFixedBefore        = 2
)

// openClosePresetPicker starts the dd close flow for an issue: close bare,
// close with a custom message, close with a saved preset, or add one.
func (a *App) openClosePresetPicker() {
	issue, ok := a.closeTarget()
	if !ok {
		return
	}
	a.closeIssueNumber = issue.Number
	a.presetReturn = a.view
	a.presetCursor = 0
	a.setView(ViewCommentPresetPicker)
}

// closeTarget is the issue dd closes: the list selection in the issue list,
// the open issue everywhere else.
func (a *App) closeTarget() (Issue, bool) {
	if a.view == ViewIssues {
		return a.selectedIssue()
	}
	return a.currentIssueRow()
}

// presetOptionCount covers the two fixed rows, the saved presets, and the
// trailing "Add preset" row.
func (a *App) presetOptionCount() int {
	return presetFixedBefore + len(a.presets) + 1
}

// PresetOptionLabels are the picker rows in display order.
func (a *App) PresetOptionLabels() []string {
	out := make([]string, 0, a.presetOptionCount())
	out = append(out, "Close without comment", "Close with custom message")
	for _, p := range a.presets {
		out = append(out, p.Name)
	}
	out = append(out, "Add preset")
	return out
}

func (a *App) activatePresetOption() {
	switch i := a.presetCursor; {
	case i == presetOptionCloseWithout:
		a.closeIssueWith("")
	case i == presetOptionCustom:
		a.openCloseMessageEditor("")
	case i == a.presetOptionCount()-1:
		a.presetName = ""
		a.setView(ViewCommentPresetName)
	case i >= presetFixedBefore && i-presetFixedBefore < len(a.presets):
		a.closeIssueWith(a.presets[i-presetFixedBefore].Body)
	}
}

func (a *App) closeIssueWith(body string) {
	a.emit(Action{Kind: ActionCloseIssue, IssueNumber: a.closeIssueNumber, Body: body})
	a.setTransient(fmt.Sprintf("Closing #%d", a.closeIssueNumber))
	a.setView(a.presetReturn)
}
