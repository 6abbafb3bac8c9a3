package app

import (
	"sort"
	"strings"
)

// MergeLabelOptions unions fresh label suggestions into the cached options:
// case-insensitive dedupe keeping first-seen casing, sorted without case.
func (a *App) MergeLabelOptions(names []string) {
	a.labelOptions = mergeOptions(a.labelOptions, names)
	if a.view == ViewLabelPicker {
		a.rebuildPickerFilter()
	}
}

func (a *App) MergeAssigneeOptions(names []string) {
	a.assigneeOptions = mergeOptions(a.assigneeOptions, names)
	if a.view == ViewAssigneePicker {
		a.rebuildPickerFilter()
	}
}

func mergeOptions(have, add []string) []string {
	seen := make(map[string]bool, len(have)+len(add))
	out := make([]string, 0, len(have)+len(add))
	for _, list := range [][]string{have, add} {
		for _, s := range list {
			if s == "" {
				continue
			}
			lower := strings.ToLower(s)
			if !seen[lower] {
				seen[lower] = true
				out = append(out, s)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}

// pickerTarget is the issue a picker edits: the list selection in the issue
// list, the open issue everywhere else.
func (a *App) pickerTarget() (Issue, bool) {
	if a.view == ViewIssues {
		return a.selectedIssue()
	}
	return a.currentIssueRow()
}

func (a *App) openLabelPicker() {
	issue, ok := a.pickerTarget()
	if !ok {
		return
	}
	names := make([]string, 0, len(issue.Labels))
	a.labelChecked = make(map[string]bool, len(issue.Labels))
	for _, l := range issue.Labels {
		names = append(names, l.Name)
		a.labelChecked[strings.ToLower(l.Name)] = true
	}
	a.labelOptions = mergeOptions(a.labelOptions, names)
	a.openPicker(ViewLabelPicker, issue.Number)
}

func (a *App) openAssigneePicker() {
	issue, ok := a.pickerTarget()
	if !ok {
		return
	}
	a.assigneeChecked = make(map[string]bool, len(issue.Assignees))
	for _, u := range issue.Assignees {
		a.assigneeChecked[strings.ToLower(u)] = true
	}
	a.assigneeOptions = mergeOptions(a.assigneeOptions, issue.Assignees)
	a.openPicker(ViewAssigneePicker, issue.Number)
}

func (a *App) openPicker(v View, issueNumber int) {
	a.pickerIssue = issueNumber
	a.pickerReturn = a.view
	a.pickerCursor = 0
	a.popupQuery = ""
	a.popupFilterActive = false
	a.requestMetadataSync()
	a.setView(v)
	a.rebuildPickerFilter()
}

func (a *App) pickerOptions() []string {
	if a.view == ViewAssigneePicker {
		return a.assigneeOptions
	}
	return a.labelOptions
}

func (a *App) pickerChecked() map[string]bool {
	if a.view == ViewAssigneePicker {
		return a.assigneeChecked
	}
	return a.labelChecked
}

// rebuildPickerFilter recomputes the filtered option indices for the popup
// filter query.
func (a *App) rebuildPickerFilter() {
	options := a.pickerOptions()
	q := strings.ToLower(strings.TrimSpace(a.popupQuery))
	idx := make([]int, 0, len(options))
	for i, opt := range options {
		if q == "" || strings.Contains(strings.ToLower(opt), q) {
			idx = append(idx, i)
		}
	}
	a.filteredOptions = idx
	a.pickerCursor = clampCursor(a.pickerCursor, len(idx))
}

func (a *App) setPopupQuery(q string) {
	a.popupQuery = q
	a.rebuildPickerFilter()
}

// togglePickerOption flips the checkmark on the highlighted option.
func (a *App) togglePickerOption() {
	options := a.pickerOptions()
	if a.pickerCursor < 0 || a.pickerCursor >= len(a.filteredOptions) {
		return
	}
	name := options[a.filteredOptions[a.pickerCursor]]
	checked := a.pickerChecked()
	key := strings.ToLower(name)
	if checked[key] {
		delete(checked, key)
	} else {
		checked[key] = true
	}
}

// submitPicker emits the complete new set for the issue, in option order
// with stored casing, and returns to the view the picker opened from.
func (a *App) submitPicker() {
	checked := a.pickerChecked()
	var names []string
	for _, opt := range a.pickerOptions() {
		if checked[strings.ToLower(opt)] {
			names = append(names, opt)
		}
	}
	kind := ActionSetLabels
	if a.view == ViewAssigneePicker {
		kind = ActionSetAssignees
	}
	a.emit(Action{Kind: kind, IssueNumber: a.pickerIssue, Names: names})
	a.setView(a.pickerReturn)
}
