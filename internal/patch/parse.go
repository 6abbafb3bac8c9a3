package patch

import (
	"strconv"
	"strings"
)

type pendingLine struct {
	line int
	text string
	raw  string
}

// Parse turns a per-file unified-diff fragment into typed rows. It never
// fails: malformed hunk headers keep the previous line counters, and any
// line that is not part of a hunk becomes a Meta row. An empty patch yields
// no rows.
//
// Adjacent removed/added runs are paired positionally: the first removed
// line lines up with the first added line and so on, which keeps replaced
// blocks aligned in a split view. Leftover lines of the longer run become
// plain Removed or Added rows.
func Parse(text string) []DiffRow {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	rows := make([]DiffRow, 0, len(lines))
	oldLine := 0
	newLine := 0
	var dels, adds []pendingLine

	flush := func() {
		rows = flushPending(rows, dels, adds)
		dels = dels[:0]
		adds = adds[:0]
	}

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "@@"):
			flush()
			oldLine, newLine = parseHunkHeader(line, oldLine, newLine)
			rows = append(rows, DiffRow{
				Kind:      RowHunkHeader,
				LeftText:  line,
				RightText: line,
				Raw:       line,
			})

		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			flush()
			rows = append(rows, DiffRow{Kind: RowMeta, LeftText: line, RightText: line, Raw: line})

		case strings.HasPrefix(line, "+"):
			adds = append(adds, pendingLine{line: newLine, text: line[1:], raw: line})
			newLine++

		case strings.HasPrefix(line, "-"):
			dels = append(dels, pendingLine{line: oldLine, text: line[1:], raw: line})
			oldLine++

		case strings.HasPrefix(line, " "):
			flush()
			text := line[1:]
			rows = append(rows, DiffRow{
				Kind:      RowContext,
				OldLine:   linePtr(oldLine),
				NewLine:   linePtr(newLine),
				LeftText:  text,
				RightText: text,
				Raw:       line,
			})
			oldLine++
			newLine++

		default:
			flush()
			rows = append(rows, DiffRow{Kind: RowMeta, LeftText: line, RightText: line, Raw: line})
		}
	}
	flush()

	return rows
}

func flushPending(rows []DiffRow, dels, adds []pendingLine) []DiffRow {
	count := maxInt(len(dels), len(adds))
	for i := 0; i < count; i++ {
		hasDel := i < len(dels)
		hasAdd := i < len(adds)
		switch {
		case hasDel && hasAdd:
			rows = append(rows, DiffRow{
				Kind:      RowChanged,
				OldLine:   linePtr(dels[i].line),
				NewLine:   linePtr(adds[i].line),
				LeftText:  dels[i].text,
				RightText: adds[i].text,
				Raw:       dels[i].raw + "\n" + adds[i].raw,
			})
		case hasDel:
			rows = append(rows, DiffRow{
				Kind:     RowRemoved,
				OldLine:  linePtr(dels[i].line),
				LeftText: dels[i].text,
				Raw:      dels[i].raw,
			})
		default:
			rows = append(rows, DiffRow{
				Kind:      RowAdded,
				NewLine:   linePtr(adds[i].line),
				RightText: adds[i].text,
				Raw:       adds[i].raw,
			})
		}
	}
	return rows
}

// parseHunkHeader reads the start lines out of an "@@ -old[,n] +new[,n] @@"
// header. Headers that do not parse keep the current counters.
func parseHunkHeader(line string, curOld, curNew int) (int, int) {
	parts := strings.Fields(line)
	if len(parts) < 3 || parts[0] != "@@" {
		return curOld, curNew
	}
	oldStart, okOld := parseHunkStart(parts[1], "-")
	newStart, okNew := parseHunkStart(parts[2], "+")
	if !okOld || !okNew {
		return curOld, curNew
	}
	return oldStart, newStart
}

func parseHunkStart(field, prefix string) (int, bool) {
	if !strings.HasPrefix(field, prefix) {
		return 0, false
	}
	field = field[len(prefix):]
	if i := strings.IndexByte(field, ','); i >= 0 {
		field = field[:i]
	}
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0, false
	}
	return n, true
}

func linePtr(n int) *int {
	v := n
	return &v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
