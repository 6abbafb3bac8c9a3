package patch

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	styleHunk     = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	styleMeta     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	styleAdded    = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	styleRemoved  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	styleLineNum  = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	styleEmphasis = lipgloss.NewStyle().Underline(true).Bold(true)
)

// RenderConfig controls how RenderSplit draws a file's rows.
type RenderConfig struct {
	Path        string       // file name, used to pick a syntax lexer
	Cursor      int          // selected row index
	Collapsed   map[int]bool // collapsed hunk-header indices
	VisualStart int          // inclusive visual range; -1 when inactive
	VisualEnd   int
	XOffset     int  // horizontal pan applied to line content
	Highlight   bool // syntax-highlight unchanged content
	HasComment  func(line int, side Side) bool
}

// SplitRender is the drawn form of a patch: one line per visible row on each
// side, plus the row index behind every rendered line so clicks and scroll
// positions map back to rows.
type SplitRender struct {
	Left         []string
	Right        []string
	Rows         []int
	MaxLineWidth int
}

// RenderSplit draws the visible rows side by side. Rows folded away by
// collapsed hunks are skipped; a collapsed header renders as a one-line
// summary with the hidden-line count.
func RenderSplit(rows []DiffRow, leftWidth, rightWidth int, cfg RenderConfig) SplitRender {
	if leftWidth <= 0 {
		leftWidth = 1
	}
	if rightWidth <= 0 {
		rightWidth = 1
	}

	maxOld := 0
	maxNew := 0
	maxText := 0
	for _, row := range rows {
		if row.OldLine != nil && *row.OldLine > maxOld {
			maxOld = *row.OldLine
		}
		if row.NewLine != nil && *row.NewLine > maxNew {
			maxNew = *row.NewLine
		}
		if n := len([]rune(row.LeftText)); n > maxText {
			maxText = n
		}
		if n := len([]rune(row.RightText)); n > maxText {
			maxText = n
		}
	}
	oldNumW := maxInt(3, digits(maxOld))
	newNumW := maxInt(3, digits(maxNew))

	out := SplitRender{
		Left:         make([]string, 0, len(rows)),
		Right:        make([]string, 0, len(rows)),
		Rows:         make([]int, 0, len(rows)),
		MaxLineWidth: maxText,
	}
	for i := range rows {
		if Hidden(rows, cfg.Collapsed, i) {
			continue
		}
		out.Left = append(out.Left, renderRowSide(rows, i, SideLeft, leftWidth, oldNumW, cfg))
		out.Right = append(out.Right, renderRowSide(rows, i, SideRight, rightWidth, newNumW, cfg))
		out.Rows = append(out.Rows, i)
	}
	return out
}

func renderRowSide(rows []DiffRow, i int, side Side, width, numW int, cfg RenderConfig) string {
	row := rows[i]

	cursorMark := " "
	if i == cfg.Cursor {
		cursorMark = ">"
	} else if cfg.VisualStart >= 0 && i >= cfg.VisualStart && i <= cfg.VisualEnd {
		cursorMark = "|"
	}
	commentMark := " "
	if lineNo := row.LineFor(side); lineNo != nil && cfg.HasComment != nil && cfg.HasComment(*lineNo, side) {
		commentMark = "*"
	}
	prefix := cursorMark + commentMark + " "
	lineWidth := maxInt(1, width-len(prefix))

	switch row.Kind {
	case RowHunkHeader:
		header := row.Raw
		if cfg.Collapsed[i] {
			header += fmt.Sprintf("  (%d lines hidden)", HiddenCount(rows, i))
		}
		return prefix + fitLine(styleHunk.Render(header), lineWidth)
	case RowMeta:
		return prefix + fitLine(styleMeta.Render(row.Raw), lineWidth)
	}

	lineNo := row.LineFor(side)
	if lineNo == nil {
		return prefix + strings.Repeat(" ", lineWidth)
	}

	marker := ' '
	base := lipgloss.NewStyle()
	switch {
	case side == SideLeft && (row.Kind == RowRemoved || row.Kind == RowChanged):
		marker = '-'
		base = styleRemoved
	case side == SideRight && (row.Kind == RowAdded || row.Kind == RowChanged):
		marker = '+'
		base = styleAdded
	}

	content := renderContent(row, side, base, cfg)
	gutter := fmt.Sprintf("%c %s ", marker, styleLineNum.Render(fmt.Sprintf("%*d", numW, *lineNo)))
	return prefix + fitLine(gutter+content, lineWidth)
}

// renderContent produces the styled text portion of a row's side, with the
// horizontal offset already applied. Changed rows get character-level
// emphasis on the parts that differ; unchanged content gets syntax
// highlighting when enabled.
func renderContent(row DiffRow, side Side, base lipgloss.Style, cfg RenderConfig) string {
	text := row.TextFor(side)

	if row.Kind == RowChanged {
		leftSpans, rightSpans := ChangedSpans(row.LeftText, row.RightText)
		spans := leftSpans
		if side == SideRight {
			spans = rightSpans
		}
		return renderSpanned(panRunes(text, cfg.XOffset), shiftSpans(spans, cfg.XOffset), base)
	}

	text = panRunes(text, cfg.XOffset)
	if cfg.Highlight && row.Kind == RowContext {
		return HighlightLine(cfg.Path, text)
	}
	return base.Render(text)
}

func renderSpanned(text string, spans []Span, base lipgloss.Style) string {
	runes := []rune(text)
	var b strings.Builder
	pos := 0
	for _, sp := range spans {
		start := clampInt(sp.Start, 0, len(runes))
		end := clampInt(sp.End, 0, len(runes))
		if start > pos {
			b.WriteString(base.Render(string(runes[pos:start])))
		}
		if end > start {
			b.WriteString(styleEmphasis.Inherit(base).Render(string(runes[start:end])))
		}
		if end > pos {
			pos = end
		}
	}
	if pos < len(runes) {
		b.WriteString(base.Render(string(runes[pos:])))
	}
	return b.String()
}

func shiftSpans(spans []Span, off int) []Span {
	if off <= 0 {
		return spans
	}
	out := make([]Span, 0, len(spans))
	for _, sp := range spans {
		start := sp.Start - off
		end := sp.End - off
		if end <= 0 {
			continue
		}
		if start < 0 {
			start = 0
		}
		out = append(out, Span{Start: start, End: end})
	}
	return out
}

func panRunes(s string, off int) string {
	if off <= 0 {
		return s
	}
	runes := []rune(s)
	if off >= len(runes) {
		return ""
	}
	return string(runes[off:])
}

func fitLine(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
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

func digits(n int) int {
	if n <= 0 {
		return 1
	}
	d := 0
	for n > 0 {
		d++
		n /= 10
	}
	return d
}
