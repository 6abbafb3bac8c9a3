package app

// Preferred content width of the review screen's file list.
const filePaneWidth = 36

// paneWidths splits the review screen into the file-list content width and
// the diff-area content width. Each bordered pane eats two columns, and the
// diff area itself holds two bordered panes. hideLeft gives everything to
// the diff.
func paneWidths(total, desiredLeft int, hideLeft bool) (int, int) {
	if hideLeft {
		available := total - 4
		if available < 2 {
			return 0, 2
		}
		return 0, available
	}

	available := total - 6
	if available < 3 {
		return 1, 2
	}
	left := desiredLeft
	if left < 1 {
		left = 1
	}
	if left > available-2 {
		left = available - 2
	}
	return left, available - left
}

// splitRightPanes halves the diff area between the two sides.
func splitRightPanes(total int) (int, int) {
	if total <= 1 {
		return 1, 1
	}
	left := total / 2
	return left, total - left
}

// detailPaneWidths splits the issue-detail screen between the body pane and
// the side panel. Content widths; both panes carry their own border.
func detailPaneWidths(total int) (int, int) {
	available := total - 4
	if available < 2 {
		return 1, 1
	}
	side := available / 3
	if side < 1 {
		side = 1
	}
	return available - side, side
}

// listWindow returns the half-open row range to draw: page rows with the
// cursor kept inside, pinned to the list edges.
func listWindow(count, cursor, page int) (int, int) {
	if page < 1 {
		page = 1
	}
	if count <= page {
		return 0, count
	}
	start := cursor - page/2
	if start < 0 {
		start = 0
	}
	if start > count-page {
		start = count - page
	}
	return start, start + page
}
