package listing

import (
	"strconv"
	"strings"
	"time"

	"shop-backend/internal/utils"
)

// MatchTimeout bounds every in-process evaluation of a compiled search
// pattern.
const MatchTimeout = 500 * time.Millisecond

// Filter accumulates WHERE conditions joined with AND alongside their
// placeholder arguments. Conditions are only ever built from allow-listed
// column names; user input travels exclusively through args.
type Filter struct {
	conds []string
	args  []any
}

// Add appends one condition with its arguments.
func (f *Filter) Add(cond string, args ...any) {
	f.conds = append(f.conds, cond)
	f.args = append(f.args, args...)
}

// Where renders the clause (with leading " WHERE ") or "" when no
// condition was added. The same clause feeds both the count query and the
// page fetch, so the two can never diverge.
func (f *Filter) Where() (string, []any) {
	if len(f.conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(f.conds, " AND "), f.args
}

// CompileSearch builds the case-insensitive matcher for a normalized
// search term. The normalizer already enforced the length bound before
// the term gets here.
func CompileSearch(term string) (*utils.SafePattern, error) {
	return utils.CompilePattern(term, utils.PatternOptions{
		MaxLength: MaxSearchLength,
		Timeout:   MatchTimeout,
	})
}

// BuildCustomerFilter translates a normalized customer query into SQL
// conditions. Search spans name, email and phone.
func BuildCustomerFilter(q CustomerListQuery) (*Filter, error) {
	f := &Filter{}
	addNumberRange(f, "total_amount", q.TotalAmount)
	addNumberRange(f, "order_count", q.OrderCount)
	addDateRange(f, "created_at", q.CreatedAt)
	addDateRange(f, "last_order_date", q.LastOrder)

	if q.Search != "" {
		p, err := CompileSearch(q.Search)
		if err != nil {
			return nil, err
		}
		src := p.Source()
		f.Add("(REGEXP_LIKE(name, ?, 'i') OR REGEXP_LIKE(email, ?, 'i') OR REGEXP_LIKE(phone, ?, 'i'))",
			src, src, src)
	}
	return f, nil
}

// BuildOrderFilter translates a normalized order query into SQL
// conditions. Search is a disjunction over product titles reachable
// through the order's product list, plus an order-number equality when the
// term parses as a number.
func BuildOrderFilter(q OrderListQuery) (*Filter, error) {
	f := &Filter{}
	if q.Status != "" {
		f.Add("o.status = ?", q.Status)
	}
	addNumberRange(f, "o.total_amount", q.TotalAmount)
	addDateRange(f, "o.created_at", q.OrderDate)

	if q.Search != "" {
		p, err := CompileSearch(q.Search)
		if err != nil {
			return nil, err
		}
		conds := []string{
			"EXISTS (SELECT 1 FROM order_products op JOIN products p ON p.id = op.product_id WHERE op.order_id = o.id AND REGEXP_LIKE(p.title, ?, 'i'))",
		}
		args := []any{p.Source()}
		if n, perr := strconv.ParseFloat(q.Search, 64); perr == nil {
			conds = append(conds, "o.order_number = ?")
			args = append(args, n)
		}
		f.Add("("+strings.Join(conds, " OR ")+")", args...)
	}
	return f, nil
}

// addNumberRange merges each present bound additively; a field with
// neither bound is omitted entirely.
func addNumberRange(f *Filter, column string, r NumberRange) {
	if r.From != nil {
		f.Add(column+" >= ?", *r.From)
	}
	if r.To != nil {
		f.Add(column+" <= ?", *r.To)
	}
}

// addDateRange widens the upper bound to the end of its calendar day so
// the range is inclusive of the whole day.
func addDateRange(f *Filter, column string, r DateRange) {
	if r.From != nil {
		f.Add(column+" >= ?", *r.From)
	}
	if r.To != nil {
		f.Add(column+" <= ?", EndOfDay(*r.To))
	}
}

// EndOfDay returns 23:59:59.999 of t's calendar day in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}
