package patch

// HunkRange spans the rows of one hunk. Start is the index of the HunkHeader
// row, End the index of the last row before the next header or the end of
// the slice.
type HunkRange struct {
	Start int
	End   int
}

// HunkEnd returns the last row index belonging to the hunk that starts at
// the given header row. It reports false when start does not address a
// HunkHeader row.
func HunkEnd(rows []DiffRow, start int) (int, bool) {
	if start < 0 || start >= len(rows) || rows[start].Kind != RowHunkHeader {
		return 0, false
	}
	end := len(rows) - 1
	for i := start + 1; i < len(rows); i++ {
		if rows[i].Kind == RowHunkHeader {
			end = i - 1
			break
		}
	}
	return end, true
}

// HunkForRow finds the hunk enclosing the given row by walking back to the
// nearest header at or before it.
func HunkForRow(rows []DiffRow, row int) (HunkRange, bool) {
	if row < 0 || row >= len(rows) {
		return HunkRange{}, false
	}
	for i := row; i >= 0; i-- {
		if rows[i].Kind != RowHunkHeader {
			continue
		}
		end, ok := HunkEnd(rows, i)
		if !ok || row > end {
			return HunkRange{}, false
		}
		return HunkRange{Start: i, End: end}, true
	}
	return HunkRange{}, false
}

// Hidden reports whether row i is folded away by one of the collapsed hunks.
// The header row of a collapsed hunk stays visible.
func Hidden(rows []DiffRow, collapsed map[int]bool, i int) bool {
	for start, on := range collapsed {
		if !on {
			continue
		}
		end, ok := HunkEnd(rows, start)
		if !ok {
			continue
		}
		if start < i && i <= end {
			return true
		}
	}
	return false
}

// HiddenCount returns how many rows a collapsed hunk folds away.
func HiddenCount(rows []DiffRow, start int) int {
	end, ok := HunkEnd(rows, start)
	if !ok {
		return 0
	}
	return end - start
}

// NearestVisible snaps an index to a visible row: hidden rows resolve to
// their hunk's header. The result is clamped into the slice bounds.
func NearestVisible(rows []DiffRow, collapsed map[int]bool, i int) int {
	if len(rows) == 0 {
		return 0
	}
	if i < 0 {
		i = 0
	}
	if i >= len(rows) {
		i = len(rows) - 1
	}
	if !Hidden(rows, collapsed, i) {
		return i
	}
	if r, ok := HunkForRow(rows, i); ok {
		return r.Start
	}
	return i
}

// NextVisible returns the first visible row after from.
func NextVisible(rows []DiffRow, collapsed map[int]bool, from int) (int, bool) {
	for i := from + 1; i < len(rows); i++ {
		if !Hidden(rows, collapsed, i) {
			return i, true
		}
	}
	return 0, false
}

// PreviousVisible returns the first visible row before from.
func PreviousVisible(rows []DiffRow, collapsed map[int]bool, from int) (int, bool) {
	for i := from - 1; i >= 0; i-- {
		if !Hidden(rows, collapsed, i) {
			return i, true
		}
	}
	return 0, false
}

// LastVisible returns the last visible row of the slice.
func LastVisible(rows []DiffRow, collapsed map[int]bool) (int, bool) {
	for i := len(rows) - 1; i >= 0; i-- {
		if !Hidden(rows, collapsed, i) {
			return i, true
		}
	}
	return 0, false
}
