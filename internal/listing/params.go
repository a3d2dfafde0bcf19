package listing

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"shop-backend/internal/domain"
	"shop-backend/internal/domain/models"
)

// Search terms longer than this are rejected before any pattern is built.
const MaxSearchLength = 50

// NumberRange is an optional lower/upper bound pair on a numeric column.
type NumberRange struct {
	From *float64
	To   *float64
}

// Empty reports whether neither bound is set.
func (r NumberRange) Empty() bool { return r.From == nil && r.To == nil }

// DateRange is an optional lower/upper bound pair on a date column. The
// upper bound is widened to end-of-day by the filter builder.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

func (r DateRange) Empty() bool { return r.From == nil && r.To == nil }

// Sort field allow-lists double as the API-name to SQL-column mapping, so
// nothing outside them can ever reach an ORDER BY clause.
var customerSortFields = map[string]string{
	"createdAt":     "created_at",
	"name":          "name",
	"totalAmount":   "total_amount",
	"orderCount":    "order_count",
	"lastOrderDate": "last_order_date",
}

var orderSortFields = map[string]string{
	"createdAt":   "o.created_at",
	"totalAmount": "o.total_amount",
	"orderNumber": "o.order_number",
	"status":      "o.status",
}

// CustomerListQuery is the normalized parameter set for GET /customers.
type CustomerListQuery struct {
	Page        PageRequest
	SortField   string
	SortColumn  string
	SortOrder   string
	CreatedAt   DateRange
	LastOrder   DateRange
	TotalAmount NumberRange
	OrderCount  NumberRange
	Search      string
}

// OrderListQuery is the normalized parameter set for GET /orders.
type OrderListQuery struct {
	Page        PageRequest
	SortField   string
	SortColumn  string
	SortOrder   string
	Status      string
	TotalAmount NumberRange
	OrderDate   DateRange
	Search      string
}

// MyOrdersQuery is the normalized parameter set for the current user's
// order listing.
type MyOrdersQuery struct {
	Page   PageRequest
	Search string
}

// ParseCustomerListQuery validates and clamps the customer listing
// parameters, failing fast before any data-store call.
func ParseCustomerListQuery(q url.Values) (CustomerListQuery, error) {
	var out CustomerListQuery

	page, err := parsePageRequest(q, DefaultPageSize)
	if err != nil {
		return out, err
	}
	out.Page = page

	field, column, order, err := parseSort(q, customerSortFields)
	if err != nil {
		return out, err
	}
	out.SortField, out.SortColumn, out.SortOrder = field, column, order

	// registrationDate* are accepted as aliases for createdAt*.
	out.CreatedAt, err = parseDateRange(q, "createdAtFrom", "createdAtTo")
	if err != nil {
		return out, err
	}
	if out.CreatedAt.Empty() {
		out.CreatedAt, err = parseDateRange(q, "registrationDateFrom", "registrationDateTo")
		if err != nil {
			return out, err
		}
	}
	out.LastOrder, err = parseDateRange(q, "lastOrderDateFrom", "lastOrderDateTo")
	if err != nil {
		return out, err
	}
	out.TotalAmount, err = parseNumberRange(q, "totalAmountFrom", "totalAmountTo")
	if err != nil {
		return out, err
	}
	out.OrderCount, err = parseNumberRange(q, "orderCountFrom", "orderCountTo")
	if err != nil {
		return out, err
	}

	out.Search, err = parseSearch(q)
	if err != nil {
		return out, err
	}
	return out, nil
}

// ParseOrderListQuery validates and clamps the admin order listing
// parameters. The default page size here is 5, matching the wire contract.
func ParseOrderListQuery(q url.Values) (OrderListQuery, error) {
	var out OrderListQuery

	page, err := parsePageRequest(q, 5)
	if err != nil {
		return out, err
	}
	out.Page = page

	field, column, order, err := parseSort(q, orderSortFields)
	if err != nil {
		return out, err
	}
	out.SortField, out.SortColumn, out.SortOrder = field, column, order

	// Only a plain string status is accepted, and only from the closed
	// enum: operator objects can never ride a filter value into the store.
	status, _, err := getParam(q, "status")
	if err != nil {
		return out, err
	}
	if status != "" {
		if !models.OrderStatuses[status] {
			return out, domain.InvalidStatusError{Status: status}
		}
		out.Status = status
	}

	out.TotalAmount, err = parseNumberRange(q, "totalAmountFrom", "totalAmountTo")
	if err != nil {
		return out, err
	}
	out.OrderDate, err = parseDateRange(q, "orderDateFrom", "orderDateTo")
	if err != nil {
		return out, err
	}

	out.Search, err = parseSearch(q)
	if err != nil {
		return out, err
	}
	return out, nil
}

// ParseMyOrdersQuery handles the reduced parameter set of the current
// user's order listing.
func ParseMyOrdersQuery(q url.Values) (MyOrdersQuery, error) {
	var out MyOrdersQuery

	page, err := parsePageRequest(q, DefaultPageSize)
	if err != nil {
		return out, err
	}
	out.Page = page

	out.Search, err = parseSearch(q)
	if err != nil {
		return out, err
	}
	return out, nil
}

// getParam extracts a single-valued parameter. A parameter supplied more
// than once (the url.Values shape of a non-string query value) is a
// request error, never silently defaulted.
func getParam(q url.Values, name string) (string, bool, error) {
	vs, ok := q[name]
	if !ok || len(vs) == 0 {
		return "", false, nil
	}
	if len(vs) > 1 {
		return "", false, domain.InvalidParameterError{Name: name}
	}
	return vs[0], true, nil
}

// getParamAlias tries names in order and returns the first present one.
func getParamAlias(q url.Values, names ...string) (string, bool, error) {
	for _, name := range names {
		v, ok, err := getParam(q, name)
		if err != nil || ok {
			return v, ok, err
		}
	}
	return "", false, nil
}

// parseNumberParam keeps the type-rejection vs value-fallback split: a
// repeated parameter is rejected upstream, while a single non-numeric
// string falls back to the default.
func parseNumberParam(q url.Values, fallback float64, names ...string) (float64, error) {
	raw, ok, err := getParamAlias(q, names...)
	if err != nil {
		return 0, err
	}
	if !ok {
		return fallback, nil
	}
	v, perr := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if perr != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback, nil
	}
	return v, nil
}

func parsePageRequest(q url.Values, defaultSize float64) (PageRequest, error) {
	rawPage, err := parseNumberParam(q, 1, "page")
	if err != nil {
		return PageRequest{}, err
	}
	rawLimit, err := parseNumberParam(q, defaultSize, "limit")
	if err != nil {
		return PageRequest{}, err
	}

	page := int(math.Floor(rawPage))
	if page < 1 {
		page = 1
	}
	size := int(math.Floor(rawLimit))
	if size < 1 {
		size = 1
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return PageRequest{Page: page, PageSize: size}, nil
}

func parseSort(q url.Values, allowed map[string]string) (field, column, order string, err error) {
	field, ok, err := getParamAlias(q, "sortField", "sort")
	if err != nil {
		return "", "", "", err
	}
	if !ok || field == "" {
		field = "createdAt"
	}
	column, found := allowed[field]
	if !found {
		return "", "", "", domain.InvalidSortFieldError{Field: field}
	}

	order, ok, err = getParamAlias(q, "sortOrder", "order")
	if err != nil {
		return "", "", "", err
	}
	if !ok || order == "" {
		order = "desc"
	}
	if order != "asc" && order != "desc" {
		return "", "", "", domain.InvalidSortOrderError{Order: order}
	}
	return field, column, order, nil
}

func parseNumberRange(q url.Values, fromName, toName string) (NumberRange, error) {
	var out NumberRange
	from, err := parseNumberBound(q, fromName)
	if err != nil {
		return out, err
	}
	to, err := parseNumberBound(q, toName)
	if err != nil {
		return out, err
	}
	out.From, out.To = from, to
	return out, nil
}

func parseNumberBound(q url.Values, name string) (*float64, error) {
	raw, ok, err := getParam(q, name)
	if err != nil {
		return nil, err
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	v, perr := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if perr != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, domain.InvalidParameterError{Name: name}
	}
	return &v, nil
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDateRange(q url.Values, fromName, toName string) (DateRange, error) {
	var out DateRange
	from, err := parseDateBound(q, fromName)
	if err != nil {
		return out, err
	}
	to, err := parseDateBound(q, toName)
	if err != nil {
		return out, err
	}
	out.From, out.To = from, to
	return out, nil
}

func parseDateBound(q url.Values, name string) (*time.Time, error) {
	raw, ok, err := getParam(q, name)
	if err != nil {
		return nil, err
	}
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, perr := time.Parse(layout, raw); perr == nil {
			return &t, nil
		}
	}
	return nil, domain.InvalidParameterError{Name: name}
}

func parseSearch(q url.Values) (string, error) {
	raw, ok, err := getParam(q, "search")
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	trimmed := strings.TrimSpace(raw)
	if n := utf8.RuneCountInString(trimmed); n > MaxSearchLength {
		return "", domain.SearchTooLongError{Length: n}
	}
	return trimmed, nil
}
