package listing

import (
	"errors"
	"net/url"
	"testing"

	"shop-backend/internal/domain"
)

func TestParseCustomerListQueryDefaults(t *testing.T) {
	q, err := ParseCustomerListQuery(url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Page.Page != 1 || q.Page.PageSize != 10 {
		t.Fatalf("unexpected page defaults: %+v", q.Page)
	}
	if q.SortField != "createdAt" || q.SortColumn != "created_at" || q.SortOrder != "desc" {
		t.Fatalf("unexpected sort defaults: %+v", q)
	}
	if q.Search != "" {
		t.Fatalf("search should default empty")
	}
}

func TestParsePageRequestClampsAndFalls(t *testing.T) {
	q, err := ParseCustomerListQuery(url.Values{
		"page":  {"2.9"},
		"limit": {"250"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Page.Page != 2 {
		t.Fatalf("page should floor to 2, got %d", q.Page.Page)
	}
	if q.Page.PageSize != MaxPageSize {
		t.Fatalf("limit should clamp to %d, got %d", MaxPageSize, q.Page.PageSize)
	}

	q, err = ParseCustomerListQuery(url.Values{
		"page":  {"abc"},
		"limit": {"-3"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Page.Page != 1 {
		t.Fatalf("non-numeric page should fall back to 1, got %d", q.Page.Page)
	}
	if q.Page.PageSize != 1 {
		t.Fatalf("negative limit should clamp to 1, got %d", q.Page.PageSize)
	}
}

func TestParseRepeatedParamRejected(t *testing.T) {
	_, err := ParseCustomerListQuery(url.Values{
		"page": {"1", "2"},
	})
	var invalid domain.InvalidParameterError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidParameterError, got %v", err)
	}
	if invalid.Name != "page" {
		t.Fatalf("error should name the parameter, got %q", invalid.Name)
	}
}

func TestParseSortFieldAllowList(t *testing.T) {
	_, err := ParseCustomerListQuery(url.Values{
		"sortField": {"password_hash"},
	})
	var bad domain.InvalidSortFieldError
	if !errors.As(err, &bad) {
		t.Fatalf("expected InvalidSortFieldError, got %v", err)
	}

	q, err := ParseCustomerListQuery(url.Values{
		"sortField": {"totalAmount"},
		"sortOrder": {"asc"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.SortColumn != "total_amount" || q.SortOrder != "asc" {
		t.Fatalf("unexpected sort mapping: %+v", q)
	}
}

func TestParseSortOrderRejected(t *testing.T) {
	_, err := ParseOrderListQuery(url.Values{
		"order": {"sideways"},
	})
	var bad domain.InvalidSortOrderError
	if !errors.As(err, &bad) {
		t.Fatalf("expected InvalidSortOrderError, got %v", err)
	}
}

func TestParseOrderListQueryStatusEnum(t *testing.T) {
	_, err := ParseOrderListQuery(url.Values{
		"status": {"delivering"},
	})
	var bad domain.InvalidStatusError
	if !errors.As(err, &bad) {
		t.Fatalf("expected InvalidStatusError, got %v", err)
	}

	q, err := ParseOrderListQuery(url.Values{
		"status": {"delivery"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Status != "delivery" {
		t.Fatalf("status not carried: %+v", q)
	}
	if q.Page.PageSize != 5 {
		t.Fatalf("order listing default limit should be 5, got %d", q.Page.PageSize)
	}
}

func TestParseRegistrationDateAlias(t *testing.T) {
	q, err := ParseCustomerListQuery(url.Values{
		"registrationDateFrom": {"2024-07-01"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.CreatedAt.From == nil {
		t.Fatalf("alias should populate the createdAt range")
	}
	if got := q.CreatedAt.From.Format("2006-01-02"); got != "2024-07-01" {
		t.Fatalf("unexpected bound: %s", got)
	}
}

func TestParseDateBoundMalformed(t *testing.T) {
	_, err := ParseOrderListQuery(url.Values{
		"orderDateFrom": {"July 1st"},
	})
	var invalid domain.InvalidParameterError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidParameterError, got %v", err)
	}
}

func TestParseNumberBoundMalformed(t *testing.T) {
	_, err := ParseCustomerListQuery(url.Values{
		"totalAmountFrom": {"lots"},
	})
	var invalid domain.InvalidParameterError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidParameterError, got %v", err)
	}
	if invalid.Name != "totalAmountFrom" {
		t.Fatalf("error should name the bound, got %q", invalid.Name)
	}
}

func TestParseSearchTrimAndBound(t *testing.T) {
	q, err := ParseCustomerListQuery(url.Values{
		"search": {"  running shoes  "},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Search != "running shoes" {
		t.Fatalf("search not trimmed: %q", q.Search)
	}

	long := make([]rune, MaxSearchLength+1)
	for i := range long {
		long[i] = 'x'
	}
	_, err = ParseCustomerListQuery(url.Values{"search": {string(long)}})
	var tooLong domain.SearchTooLongError
	if !errors.As(err, &tooLong) {
		t.Fatalf("expected SearchTooLongError, got %v", err)
	}
}

func TestParseIsIdempotent(t *testing.T) {
	// Feeding normalized values back through the parser must not change
	// them a second time.
	first, err := ParseOrderListQuery(url.Values{
		"page":   {"3"},
		"limit":  {"7"},
		"search": {" +49 151 "},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ParseOrderListQuery(url.Values{
		"page":   {"3"},
		"limit":  {"7"},
		"search": {first.Search},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Search != second.Search || first.Page != second.Page {
		t.Fatalf("normalization not idempotent: %+v vs %+v", first, second)
	}
}
