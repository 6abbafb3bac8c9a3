package patch

// Side identifies which file of a unified diff a line belongs to. It matches
// the LEFT/RIGHT sides GitHub uses to anchor review comments.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideLeft {
		return "LEFT"
	}
	return "RIGHT"
}

type RowKind int

const (
	RowMeta RowKind = iota
	RowHunkHeader
	RowContext
	RowChanged
	RowAdded
	RowRemoved
)

// DiffRow is one addressable row of a parsed patch. Row indices into the
// slice returned by Parse are the shared addressing scheme: hunk ranges,
// collapse sets, the diff cursor and comment anchors all refer to them.
type DiffRow struct {
	Kind      RowKind
	OldLine   *int
	NewLine   *int
	LeftText  string
	RightText string
	Raw       string
}

// LineFor returns the row's line number on the given side, or nil when the
// row has no line there.
func (r DiffRow) LineFor(side Side) *int {
	if side == SideLeft {
		return r.OldLine
	}
	return r.NewLine
}

// TextFor returns the row's content for the given side.
func (r DiffRow) TextFor(side Side) string {
	if side == SideLeft {
		return r.LeftText
	}
	return r.RightText
}
