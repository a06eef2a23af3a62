package types

import "testing"

func TestNewPagination(t *testing.T) {
	p := NewPagination(0, 12, 25)
	if p.Page != 1 || p.Pages != 3 || p.HasPrev || !p.HasNext {
		t.Fatalf("unexpected pagination %+v", p)
	}
	if p.Offset() != 0 {
		t.Fatalf("expected offset 0, got %d", p.Offset())
	}

	last := NewPagination(3, 12, 25)
	if last.HasNext || !last.HasPrev || last.Offset() != 24 {
		t.Fatalf("unexpected last page %+v", last)
	}

	empty := NewPagination(1, 12, 0)
	if empty.Pages != 0 || empty.HasNext {
		t.Fatalf("unexpected empty pagination %+v", empty)
	}
}

func TestPaginationClamp(t *testing.T) {
	p := NewPagination(9, 30, 61).Clamp()
	if p.Page != 3 {
		t.Fatalf("expected clamp to page 3, got %d", p.Page)
	}
	if q := NewPagination(9, 30, 0).Clamp(); q.Page != 9 {
		t.Fatalf("empty result should not clamp, got %d", q.Page)
	}
}
