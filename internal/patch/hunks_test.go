package patch

import "testing"

const twoHunkPatch = "@@ -1,2 +1,2 @@\n ctx1\n-a\n+b\n@@ -10,2 +10,2 @@\n ctx2\n ctx3\n"

func TestHunkEndAndRangeLookup(t *testing.T) {
	rows := Parse(twoHunkPatch)
	if got, want := len(rows), 6; got != want {
		t.Fatalf("len(rows) = %d, want %d", got, want)
	}

	end, ok := HunkEnd(rows, 0)
	if !ok || end != 2 {
		t.Fatalf("HunkEnd(0) = %d, %v, want 2, true", end, ok)
	}
	end, ok = HunkEnd(rows, 3)
	if !ok || end != 5 {
		t.Fatalf("HunkEnd(3) = %d, %v, want 5, true", end, ok)
	}
	if _, ok := HunkEnd(rows, 1); ok {
		t.Fatalf("HunkEnd on a non-header row should report false")
	}

	r, ok := HunkForRow(rows, 2)
	if !ok || r.Start != 0 || r.End != 2 {
		t.Fatalf("HunkForRow(2) = %+v, %v, want {0 2}, true", r, ok)
	}
	r, ok = HunkForRow(rows, 5)
	if !ok || r.Start != 3 || r.End != 5 {
		t.Fatalf("HunkForRow(5) = %+v, %v, want {3 5}, true", r, ok)
	}
	if _, ok := HunkForRow(rows, -1); ok {
		t.Fatalf("HunkForRow(-1) should report false")
	}
}

func TestCollapseHidesBodyRowsOnly(t *testing.T) {
	rows := Parse(twoHunkPatch)
	collapsed := map[int]bool{0: true}

	for i, want := range []bool{false, true, true, false, false, false} {
		if got := Hidden(rows, collapsed, i); got != want {
			t.Fatalf("Hidden(%d) = %v, want %v", i, got, want)
		}
	}
	if got, want := HiddenCount(rows, 0), 2; got != want {
		t.Fatalf("HiddenCount(0) = %d, want %d", got, want)
	}
}

func TestVisibleNavigationSkipsHiddenRows(t *testing.T) {
	rows := Parse(twoHunkPatch)
	collapsed := map[int]bool{0: true}

	if got := NearestVisible(rows, collapsed, 2); got != 0 {
		t.Fatalf("NearestVisible(2) = %d, want 0", got)
	}
	next, ok := NextVisible(rows, collapsed, 0)
	if !ok || next != 3 {
		t.Fatalf("NextVisible(0) = %d, %v, want 3, true", next, ok)
	}
	prev, ok := PreviousVisible(rows, collapsed, 3)
	if !ok || prev != 0 {
		t.Fatalf("PreviousVisible(3) = %d, %v, want 0, true", prev, ok)
	}
	last, ok := LastVisible(rows, collapsed)
	if !ok || last != 5 {
		t.Fatalf("LastVisible = %d, %v, want 5, true", last, ok)
	}

	collapsed[3] = true
	last, ok = LastVisible(rows, collapsed)
	if !ok || last != 3 {
		t.Fatalf("LastVisible with both hunks collapsed = %d, %v, want 3, true", last, ok)
	}
	if _, ok := NextVisible(rows, collapsed, 3); ok {
		t.Fatalf("NextVisible past the last visible row should report false")
	}
	if _, ok := PreviousVisible(rows, collapsed, 0); ok {
		t.Fatalf("PreviousVisible before the first row should report false")
	}
}
