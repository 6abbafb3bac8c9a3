package patch

import "testing"

func TestChangedSpansEqualLines(t *testing.T) {
	left, right := ChangedSpans("same", "same")
	if left != nil || right != nil {
		t.Fatalf("expected no spans for equal lines, got %v and %v", left, right)
	}
}

func TestChangedSpansInsertion(t *testing.T) {
	left, right := ChangedSpans("hello world", "hello brave world")
	if len(left) != 0 {
		t.Fatalf("left spans = %v, want none", left)
	}
	if len(right) != 1 || right[0].Start != 6 || right[0].End != 12 {
		t.Fatalf("right spans = %v, want [{6 12}]", right)
	}
}

func TestChangedSpansReplacement(t *testing.T) {
	left, right := ChangedSpans("abc", "axc")
	if len(left) != 1 || left[0].Start != 1 || left[0].End != 2 {
		t.Fatalf("left spans = %v, want [{1 2}]", left)
	}
	if len(right) != 1 || right[0].Start != 1 || right[0].End != 2 {
		t.Fatalf("right spans = %v, want [{1 2}]", right)
	}
}
