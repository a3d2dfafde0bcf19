package listing

import "testing"

func TestNewPageResultCeilTotalPages(t *testing.T) {
	res := NewPageResult([]int{1, 2, 3}, 21, PageRequest{Page: 1, PageSize: 10})
	if res.TotalPages != 3 {
		t.Fatalf("ceil(21/10) should be 3, got %d", res.TotalPages)
	}
}

func TestNewPageResultBeyondLastPage(t *testing.T) {
	res := NewPageResult[int](nil, 4, PageRequest{Page: 9, PageSize: 10})
	if res.Items == nil || len(res.Items) != 0 {
		t.Fatalf("items should be an empty slice, got %v", res.Items)
	}
	if res.CurrentPage != 9 {
		t.Fatalf("current page must echo the request, got %d", res.CurrentPage)
	}
	if res.TotalPages != 1 {
		t.Fatalf("total pages should still reflect the data, got %d", res.TotalPages)
	}
}

func TestPageRequestOffset(t *testing.T) {
	p := PageRequest{Page: 3, PageSize: 5}
	if p.Offset() != 10 {
		t.Fatalf("offset wrong: %d", p.Offset())
	}
}
