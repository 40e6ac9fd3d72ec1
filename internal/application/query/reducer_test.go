package query

import (
	"testing"

	"mtodo/internal/domain/valueobject"
)

func TestReduce_SetFilterResetsPageAndClearsSearch(t *testing.T) {
	start := State{Filter: valueobject.FilterAll, Search: "milk", Page: 4, PageSize: 10}

	for _, f := range valueobject.Filters {
		next, fetch := Reduce(start, SetFilter{Filter: f})
		if !fetch {
			t.Errorf("SetFilter(%s): expected fetch", f)
		}
		if next.Page != 1 {
			t.Errorf("SetFilter(%s): expected page 1, got %d", f, next.Page)
		}
		if next.Search != "" {
			t.Errorf("SetFilter(%s): expected empty search, got %q", f, next.Search)
		}
		if next.Filter != f {
			t.Errorf("SetFilter(%s): got filter %s", f, next.Filter)
		}
		if next.PageSize != start.PageSize {
			t.Errorf("SetFilter(%s): page size changed to %d", f, next.PageSize)
		}
	}
}

func TestReduce_SetFilterInvalidIsNoop(t *testing.T) {
	start := State{Filter: valueobject.FilterPending, Search: "x", Page: 2, PageSize: 10}
	next, fetch := Reduce(start, SetFilter{Filter: "archived"})
	if fetch {
		t.Error("expected no fetch for unknown filter")
	}
	if next != start {
		t.Errorf("expected state unchanged, got %+v", next)
	}
}

func TestReduce_SetSearchResetsPage(t *testing.T) {
	start := State{Filter: valueobject.FilterCompleted, Page: 3, PageSize: 5}
	next, fetch := Reduce(start, SetSearch{Text: "  report "})
	if !fetch {
		t.Fatal("expected fetch")
	}
	if next.Search != "report" {
		t.Errorf("expected trimmed search, got %q", next.Search)
	}
	if next.Page != 1 {
		t.Errorf("expected page 1, got %d", next.Page)
	}
	if next.Filter != valueobject.FilterCompleted {
		t.Errorf("search must keep the filter, got %s", next.Filter)
	}
}

func TestReduce_SetSearchSameTextOnFirstPage(t *testing.T) {
	start := State{Filter: valueobject.FilterAll, Search: "a", Page: 1, PageSize: 10}
	if _, fetch := Reduce(start, SetSearch{Text: "a"}); fetch {
		t.Error("expected no fetch when nothing changes")
	}
}

func TestReduce_SetPage(t *testing.T) {
	start := NewState(10)

	next, fetch := Reduce(start, SetPage{Page: 3})
	if !fetch || next.Page != 3 {
		t.Errorf("expected page 3 with fetch, got %d (fetch=%v)", next.Page, fetch)
	}

	for _, p := range []int{0, -1} {
		if got, fetch := Reduce(next, SetPage{Page: p}); fetch || got.Page != 3 {
			t.Errorf("SetPage(%d): expected no-op, got page %d (fetch=%v)", p, got.Page, fetch)
		}
	}
}

func TestReduce_SetPageSizeResetsPage(t *testing.T) {
	start := State{Filter: valueobject.FilterAll, Search: "q", Page: 5, PageSize: 10}

	next, fetch := Reduce(start, SetPageSize{Size: 20})
	if !fetch {
		t.Fatal("expected fetch")
	}
	if next.Page != 1 || next.PageSize != 20 {
		t.Errorf("expected page 1 size 20, got page %d size %d", next.Page, next.PageSize)
	}
	if next.Search != "q" {
		t.Errorf("page size must keep search, got %q", next.Search)
	}

	if _, fetch := Reduce(next, SetPageSize{Size: 0}); fetch {
		t.Error("expected size 0 to be ignored")
	}
}

func TestReduce_Reload(t *testing.T) {
	start := State{Filter: valueobject.FilterPending, Page: 2, PageSize: 10}
	next, fetch := Reduce(start, Reload{})
	if !fetch {
		t.Error("expected reload to fetch")
	}
	if next != start {
		t.Errorf("reload changed state: %+v", next)
	}
}

func TestNewState_Defaults(t *testing.T) {
	s := NewState(0)
	if s.PageSize != DefaultPageSize {
		t.Errorf("expected default page size %d, got %d", DefaultPageSize, s.PageSize)
	}
	if s.Page != 1 || s.Filter != valueobject.FilterAll || s.Search != "" {
		t.Errorf("unexpected initial state %+v", s)
	}

	req := State{Filter: valueobject.FilterCompleted, Search: "x", Page: 2, PageSize: 5}.Request()
	if req.Filter != valueobject.FilterCompleted || req.Search != "x" || req.Page != 2 || req.Limit != 5 {
		t.Errorf("unexpected request %+v", req)
	}
}
