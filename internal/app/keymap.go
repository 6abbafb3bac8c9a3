package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap is the full binding table. Every binding can be redirected from the
// config file by action name; assigning a chord removes it from whichever
// binding held it before.
type KeyMap struct {
	Quit    key.Binding
	Help    key.Binding
	Refresh key.Binding
	Search  key.Binding

	Up         key.Binding
	Down       key.Binding
	JumpPrefix key.Binding
	JumpBottom key.Binding
	Select     key.Binding
	Back       key.Binding
	Escape     key.Binding

	StatusOpen      key.Binding
	StatusClosed    key.Binding
	StatusToggle    key.Binding
	AssigneeCycle   key.Binding
	AssigneeReset   key.Binding
	WorkItemsToggle key.Binding
	CreateIssue     key.Binding
	ClosePrefix     key.Binding

	Edit          key.Binding
	AddComment    key.Binding
	DeleteComment key.Binding
	ResolveThread key.Binding
	CommentNext   key.Binding
	CommentPrev   key.Binding

	ToggleViewed key.Binding
	CollapseHunk key.Binding
	VisualMode   key.Binding
	SideLeft     key.Binding
	SideRight    key.Binding
	ScrollLeft   key.Binding
	ScrollRight  key.Binding
	ScrollReset  key.Binding

	CheckoutPull      key.Binding
	OpenBrowser       key.Binding
	OpenLinkedBrowser key.Binding
	OpenLinkedTUI     key.Binding
	OpenLabels        key.Binding
	OpenAssignees     key.Binding

	PopupToggle key.Binding
	ClearFilter key.Binding

	CopyStatus key.Binding
	FocusLeft  key.Binding
	FocusRight key.Binding
	FocusUp    key.Binding
	FocusDown  key.Binding
	RepoPicker key.Binding
	Rescan     key.Binding
}

func defaultKeyMap() KeyMap {
	return KeyMap{
		Quit:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),

		Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		JumpPrefix: key.NewBinding(key.WithKeys("g"), key.WithHelp("gg", "top")),
		JumpBottom: key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "bottom")),
		Select:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Back:       key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "back")),
		Escape:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),

		StatusOpen:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "open items")),
		StatusClosed:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "closed items")),
		StatusToggle:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "toggle open/closed")),
		AssigneeCycle:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "cycle assignee")),
		AssigneeReset:   key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "all assignees")),
		WorkItemsToggle: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "issues/PRs")),
		CreateIssue:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "new issue")),
		ClosePrefix:     key.NewBinding(key.WithKeys("d"), key.WithHelp("dd", "close issue")),

		Edit:          key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		AddComment:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "comment")),
		DeleteComment: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete comment")),
		ResolveThread: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "resolve thread")),
		CommentNext:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next comment")),
		CommentPrev:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "prev comment")),

		ToggleViewed: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "viewed")),
		CollapseHunk: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "fold hunk")),
		VisualMode:   key.NewBinding(key.WithKeys("V"), key.WithHelp("V", "visual")),
		SideLeft:     key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "left side")),
		SideRight:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "right side")),
		ScrollLeft:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "pan left")),
		ScrollRight:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "pan right")),
		ScrollReset:  key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "pan reset")),

		CheckoutPull:      key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "checkout")),
		OpenBrowser:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in browser")),
		OpenLinkedBrowser: key.NewBinding(key.WithKeys("O"), key.WithHelp("O", "linked in browser")),
		OpenLinkedTUI:     key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "open linked")),
		OpenLabels:        key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "labels")),
		OpenAssignees:     key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "assignees")),

		PopupToggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		ClearFilter: key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "clear filter")),

		CopyStatus: key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy status")),
		FocusLeft:  key.NewBinding(key.WithKeys("ctrl+h"), key.WithHelp("ctrl+h", "focus left")),
		FocusRight: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "focus right")),
		FocusUp:    key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "focus up")),
		FocusDown:  key.NewBinding(key.WithKeys("ctrl+j"), key.WithHelp("ctrl+j", "focus down")),
		RepoPicker: key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "repositories")),
		Rescan:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "rescan")),
	}
}

// bindings maps config action names onto the keymap fields.
func (k *KeyMap) bindings() map[string]*key.Binding {
	return map[string]*key.Binding{
		"quit":                &k.Quit,
		"help":                &k.Help,
		"refresh":             &k.Refresh,
		"search":              &k.Search,
		"move_up":             &k.Up,
		"move_down":           &k.Down,
		"jump_prefix":         &k.JumpPrefix,
		"jump_bottom":         &k.JumpBottom,
		"select":              &k.Select,
		"back":                &k.Back,
		"back_escape":         &k.Escape,
		"status_open":         &k.StatusOpen,
		"status_closed":       &k.StatusClosed,
		"status_toggle":       &k.StatusToggle,
		"assignee_cycle":      &k.AssigneeCycle,
		"assignee_reset":      &k.AssigneeReset,
		"work_items_toggle":   &k.WorkItemsToggle,
		"create_issue":        &k.CreateIssue,
		"close_issue_prefix":  &k.ClosePrefix,
		"edit":                &k.Edit,
		"add_comment":         &k.AddComment,
		"delete_comment":      &k.DeleteComment,
		"resolve_thread":      &k.ResolveThread,
		"comment_next":        &k.CommentNext,
		"comment_prev":        &k.CommentPrev,
		"toggle_viewed":       &k.ToggleViewed,
		"collapse_hunk":       &k.CollapseHunk,
		"visual_mode":         &k.VisualMode,
		"side_left":           &k.SideLeft,
		"side_right":          &k.SideRight,
		"diff_scroll_left":    &k.ScrollLeft,
		"diff_scroll_right":   &k.ScrollRight,
		"diff_scroll_reset":   &k.ScrollReset,
		"checkout_pr":         &k.CheckoutPull,
		"open_browser":        &k.OpenBrowser,
		"open_linked_browser": &k.OpenLinkedBrowser,
		"open_linked_tui":     &k.OpenLinkedTUI,
		"open_labels":         &k.OpenLabels,
		"open_assignees":      &k.OpenAssignees,
		"popup_toggle":        &k.PopupToggle,
		"clear_filter":        &k.ClearFilter,
		"copy_status":         &k.CopyStatus,
		"focus_left":          &k.FocusLeft,
		"focus_right":         &k.FocusRight,
		"focus_up":            &k.FocusUp,
		"focus_down":          &k.FocusDown,
		"repo_picker":         &k.RepoPicker,
		"rescan_repos":        &k.Rescan,
	}
}

// ApplyOverrides rewrites bindings from an action-name to chord map. A chord
// given here replaces the binding's keys entirely and is removed from any
// other binding that used it, so remapping quit away from "q" really
// disables "q".
func (k *KeyMap) ApplyOverrides(overrides map[string]string) error {
	if len(overrides) == 0 {
		return nil
	}
	byName := k.bindings()

	var unknown []string
	var invalid []string
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		binding, ok := byName[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		chord := normalizeChord(overrides[name])
		if chord == "" {
			invalid = append(invalid, name)
			continue
		}
		for otherName, other := range byName {
			if otherName == name {
				continue
			}
			removeKey(other, chord)
		}
		binding.SetKeys(chord)
		binding.SetHelp(overrides[name], binding.Help().Desc)
	}

	if len(unknown) > 0 {
		return fmt.Errorf("unknown keybind action(s): %s", strings.Join(unknown, ", "))
	}
	if len(invalid) > 0 {
		return fmt.Errorf("empty chord for keybind action(s): %s", strings.Join(invalid, ", "))
	}
	return nil
}

// normalizeChord converts config chord spellings to the strings Bubble Tea
// reports for key presses: "shift+g" becomes "G", "space" becomes " ",
// modifier chords stay as written.
func normalizeChord(chord string) string {
	s := strings.TrimSpace(chord)
	if s == "" {
		return ""
	}
	lower := strings.ToLower(s)
	if lower == "space" {
		return " "
	}
	if rest, ok := strings.CutPrefix(lower, "shift+"); ok {
		runes := []rune(rest)
		if len(runes) == 1 {
			return strings.ToUpper(rest)
		}
		return rest
	}
	if strings.ContainsRune(lower, '+') || len([]rune(s)) > 1 {
		return lower
	}
	// Single characters keep their case so "G" and "g" stay distinct.
	return s
}

func removeKey(b *key.Binding, chord string) {
	keys := b.Keys()
	kept := keys[:0]
	for _, existing := range keys {
		if existing != chord {
			kept = append(kept, existing)
		}
	}
	if len(kept) != len(keys) {
		b.SetKeys(kept...)
	}
}
