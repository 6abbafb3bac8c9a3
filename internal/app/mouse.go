package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"hubbub/internal/patch"
)

// wheelStep is how many rows one wheel notch moves the selection.
const wheelStep = 3

// RegionKind identifies what a clickable screen region maps to.
type RegionKind int

const (
	RegionRepoRow RegionKind = iota
	RegionRemoteRow
	RegionIssueRow
	RegionCommentRow
	RegionFileRow
	RegionDiffRow
	RegionLinkedRow
	RegionPickerRow
	RegionPresetRow
)

// mouseRegion is a rectangle registered by the renderer each frame. For list
// rows index is the position in the filtered list; for diff rows it is the
// absolute row index and side says which half of the split was hit.
type mouseRegion struct {
	kind  RegionKind
	index int
	side  patch.Side
	x, y  int
	w, h  int
}

// ResetRegions clears the clickable regions before a frame is rendered.
func (a *App) ResetRegions() {
	a.regions = a.regions[:0]
}

// AddRegion registers a clickable rectangle for the current frame.
func (a *App) AddRegion(kind RegionKind, index int, side patch.Side, x, y, w, h int) {
	a.regions = append(a.regions, mouseRegion{kind: kind, index: index, side: side, x: x, y: y, w: w, h: h})
}

// hitTest returns the most recently registered region containing the point,
// so overlays registered last win over the panes beneath them.
func (a *App) hitTest(x, y int) (mouseRegion, bool) {
	for i := len(a.regions) - 1; i >= 0; i-- {
		r := a.regions[i]
		if x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h {
			return r, true
		}
	}
	return mouseRegion{}, false
}

// HandleMouse dispatches wheel, back-button, and left-click events.
func (a *App) HandleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		for i := 0; i < wheelStep; i++ {
			a.moveSelection(-1)
		}
	case tea.MouseButtonWheelDown:
		for i := 0; i < wheelStep; i++ {
			a.moveSelection(1)
		}
	case tea.MouseButtonWheelLeft:
		if a.view == ViewPullRequestFiles {
			a.panDiff(-2 * diffPanStep)
		}
	case tea.MouseButtonWheelRight:
		if a.view == ViewPullRequestFiles {
			a.panDiff(2 * diffPanStep)
		}
	case tea.MouseButtonBackward:
		if msg.Action == tea.MouseActionPress {
			a.back()
		}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress {
			a.clickAt(msg.X, msg.Y)
		}
	}
}

func (a *App) clickAt(x, y int) {
	r, ok := a.hitTest(x, y)
	if !ok {
		return
	}
	switch r.kind {
	case RegionRepoRow:
		if r.index >= 0 && r.index < len(a.filteredRepos) {
			a.repoCursor = r.index
		}
	case RegionRemoteRow:
		if r.index >= 0 && r.index < len(a.remotes) {
			a.remoteCursor = r.index
		}
	case RegionIssueRow:
		if r.index >= 0 && r.index < len(a.filteredIssues) {
			a.issueCursor = r.index
		}
	case RegionCommentRow:
		if r.index >= 0 && r.index < len(a.comments) {
			a.commentCursor = r.index
		}
	case RegionFileRow:
		if r.index >= 0 && r.index < len(a.prFiles) {
			a.reviewFocus = ReviewFocusFiles
			a.selectFile(r.index)
		}
	case RegionDiffRow:
		rows := a.currentDiffRows()
		if r.index < 0 || r.index >= len(rows) {
			return
		}
		a.reviewFocus = ReviewFocusDiff
		a.prSide = r.side
		a.prRowCursor = patch.NearestVisible(rows, a.currentCollapsed(), r.index)
		a.syncSelectedComment()
	case RegionLinkedRow:
		if r.index >= 0 && r.index < len(a.linkedChoices) {
			a.linkedCursor = r.index
		}
	case RegionPickerRow:
		if r.index >= 0 && r.index < len(a.filteredOptions) {
			a.pickerCursor = r.index
		}
	case RegionPresetRow:
		if r.index >= 0 && r.index < a.presetOptionCount() {
			a.presetCursor = r.index
		}
	}
}
