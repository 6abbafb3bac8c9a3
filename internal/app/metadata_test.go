package app

import "testing"

func TestMergeOptions(t *testing.T) {
	tests := []struct {
		name string
		have []string
		add  []string
		want []string
	}{
		{
			name: "from empty",
			have: nil,
			add:  []string{"ui", "bug"},
			want: []string{"bug", "ui"},
		},
		{
			name: "case insensitive dedupe keeps first casing",
			have: []string{"Bug", "docs"},
			add:  []string{"bug", "Feature", "DOCS"},
			want: []string{"Bug", "docs", "Feature"},
		},
		{
			name: "empty strings are dropped",
			have: []string{"bug"},
			add:  []string{"", "ui", ""},
			want: []string{"bug", "ui"},
		},
		{
			name: "sorted without case",
			have: []string{"Zeta", "alpha"},
			add:  []string{"Mid"},
			want: []string{"alpha", "Mid", "Zeta"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mergeOptions(tt.have, tt.add); !equalStrings(got, tt.want) {
				t.Fatalf("mergeOptions(%v, %v) = %v, want %v", tt.have, tt.add, got, tt.want)
			}
		})
	}
}

func TestLabelPickerSeedsFromIssue(t *testing.T) {
	a := newTestApp()
	press(a, "L") // list cursor sits on #12, labelled "bug"

	if a.view != ViewLabelPicker {
		t.Fatalf("view = %d, want the label picker", a.view)
	}
	if a.pickerIssue != 12 || a.pickerReturn != ViewIssues {
		t.Fatalf("picker targets #%d returning to %d", a.pickerIssue, a.pickerReturn)
	}
	if !a.labelChecked["bug"] {
		t.Fatalf("current label not pre-checked: %v", a.labelChecked)
	}
	if got, want := a.labelOptions, []string{"bug"}; !equalStrings(got, want) {
		t.Fatalf("options = %v, want %v", got, want)
	}
	if !a.TakeMetadataSyncRequest() {
		t.Fatalf("opening the picker did not request a metadata sync")
	}
}

func TestLabelPickerToggleAndSubmit(t *testing.T) {
	a := newTestApp()
	press(a, "L")
	a.MergeLabelOptions([]string{"docs", "Feature"}) // the sync answer arrives

	if got, want := a.labelOptions, []string{"bug", "docs", "Feature"}; !equalStrings(got, want) {
		t.Fatalf("options after merge = %v, want %v", got, want)
	}

	press(a, "space")      // uncheck bug
	press(a, "j", "enter") // enter checks the highlighted row and submits

	act := mustAction(t, a)
	if act.Kind != ActionSetLabels || act.IssueNumber != 12 {
		t.Fatalf("action = kind %d #%d", act.Kind, act.IssueNumber)
	}
	if got, want := act.Names, []string{"docs"}; !equalStrings(got, want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
	if a.view != ViewIssues {
		t.Fatalf("submit left view %d, want the issue list", a.view)
	}
}

func TestAssigneePickerFilter(t *testing.T) {
	a := newTestApp()
	press(a, "A") // #12 is assigned to alice
	a.MergeAssigneeOptions([]string{"bob", "Alice", "carol"})

	if got, want := a.assigneeOptions, []string{"alice", "bob", "carol"}; !equalStrings(got, want) {
		t.Fatalf("options = %v, want %v", got, want)
	}

	press(a, "/")
	press(a, "j") // with an empty query, j still navigates
	if got, want := a.pickerCursor, 1; got != want {
		t.Fatalf("cursor = %d, want %d", got, want)
	}

	press(a, "car")
	if got, want := len(a.filteredOptions), 1; got != want {
		t.Fatalf("filtered rows = %d, want %d", got, want)
	}
	if a.pickerCursor != 0 {
		t.Fatalf("cursor not clamped into the filtered list: %d", a.pickerCursor)
	}

	press(a, "enter") // leave the filter prompt, keep the query
	if a.popupFilterActive {
		t.Fatalf("enter did not close the filter prompt")
	}
	press(a, "enter") // check carol and submit in one stroke

	act := mustAction(t, a)
	if act.Kind != ActionSetAssignees || act.IssueNumber != 12 {
		t.Fatalf("action = kind %d #%d", act.Kind, act.IssueNumber)
	}
	if got, want := act.Names, []string{"alice", "carol"}; !equalStrings(got, want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
}

func TestPopupFilterBackspaceOnEmptyExits(t *testing.T) {
	a := newTestApp()
	press(a, "L", "/")
	if !a.popupFilterActive {
		t.Fatalf("/ did not open the filter prompt")
	}
	press(a, "backspace")
	if a.popupFilterActive {
		t.Fatalf("backspace on an empty query did not close the prompt")
	}

	press(a, "/", "xy", "esc") // esc wipes the query too
	if a.popupFilterActive || a.popupQuery != "" {
		t.Fatalf("esc left filter %v query %q", a.popupFilterActive, a.popupQuery)
	}
}

func TestPickerEscReturns(t *testing.T) {
	a := newTestApp()
	press(a, "j", "enter") // open #11 first
	press(a, "L")
	if a.pickerReturn != ViewIssueDetail {
		t.Fatalf("pickerReturn = %d, want the detail view", a.pickerReturn)
	}
	press(a, "esc")
	noAction(t, a)
	if a.view != ViewIssueDetail {
		t.Fatalf("esc landed on view %d, want the detail view", a.view)
	}
}
