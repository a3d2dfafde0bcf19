package listing

import (
	"strings"
	"testing"
	"time"
)

func f64(v float64) *float64 { return &v }

func ts(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestFilterWhereEmpty(t *testing.T) {
	f := &Filter{}
	clause, args := f.Where()
	if clause != "" || args != nil {
		t.Fatalf("empty filter should render nothing, got %q %v", clause, args)
	}
}

func TestBuildCustomerFilterRanges(t *testing.T) {
	f, err := BuildCustomerFilter(CustomerListQuery{
		TotalAmount: NumberRange{From: f64(100), To: f64(500)},
		OrderCount:  NumberRange{From: f64(2)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	clause, args := f.Where()
	want := " WHERE total_amount >= ? AND total_amount <= ? AND order_count >= ?"
	if clause != want {
		t.Fatalf("got %q want %q", clause, want)
	}
	if len(args) != 3 || args[0] != 100.0 || args[1] != 500.0 || args[2] != 2.0 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuildCustomerFilterDateUpperBoundEndOfDay(t *testing.T) {
	f, err := BuildCustomerFilter(CustomerListQuery{
		CreatedAt: DateRange{To: ts("2024-07-15")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, args := f.Where()
	if len(args) != 1 {
		t.Fatalf("expected one arg, got %v", args)
	}
	bound, ok := args[0].(time.Time)
	if !ok {
		t.Fatalf("arg should be a time, got %T", args[0])
	}
	if bound.Hour() != 23 || bound.Minute() != 59 || bound.Second() != 59 {
		t.Fatalf("upper bound not widened to end of day: %v", bound)
	}
	if bound.Day() != 15 {
		t.Fatalf("widening must not cross into the next day: %v", bound)
	}
}

func TestBuildCustomerFilterSearchSpansContactColumns(t *testing.T) {
	f, err := BuildCustomerFilter(CustomerListQuery{Search: "+49 151"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	clause, args := f.Where()
	for _, col := range []string{"name", "email", "phone"} {
		if !strings.Contains(clause, "REGEXP_LIKE("+col+", ?, 'i')") {
			t.Fatalf("clause missing %s match: %q", col, clause)
		}
	}
	if len(args) != 3 {
		t.Fatalf("one escaped pattern per column, got %v", args)
	}
	if args[0] != `\+49 151` {
		t.Fatalf("pattern should be escaped: %v", args[0])
	}
}

func TestBuildOrderFilterStatusAndSearch(t *testing.T) {
	f, err := BuildOrderFilter(OrderListQuery{
		Status: "delivery",
		Search: "boots",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	clause, args := f.Where()
	if !strings.Contains(clause, "o.status = ?") {
		t.Fatalf("status condition missing: %q", clause)
	}
	if !strings.Contains(clause, "EXISTS (SELECT 1 FROM order_products") {
		t.Fatalf("title search condition missing: %q", clause)
	}
	if strings.Contains(clause, "o.order_number") {
		t.Fatalf("non-numeric search must not match order numbers: %q", clause)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuildOrderFilterNumericSearchAddsOrderNumber(t *testing.T) {
	f, err := BuildOrderFilter(OrderListQuery{Search: "1024"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	clause, args := f.Where()
	if !strings.Contains(clause, "OR o.order_number = ?") {
		t.Fatalf("numeric search should add order number equality: %q", clause)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %v", args)
	}
	if args[1] != 1024.0 {
		t.Fatalf("order number arg wrong: %v", args[1])
	}
}
