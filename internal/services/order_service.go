package services

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"shop-backend/internal/domain"
	"shop-backend/internal/domain/models"
	"shop-backend/internal/listing"
	"shop-backend/internal/repositories"
	"shop-backend/internal/utils"
)

// OrderService orchestrates order listings and the order lifecycle.
type OrderService struct {
	Repo      repositories.OrderRepository
	Products  repositories.ProductRepository
	RequestID string

	// FetchCustomerOrders overrides the customer-order load in tests.
	FetchCustomerOrders func(ctx context.Context, customerID int64) ([]models.Order, error)
}

// List is the admin listing: store-side filtering, concurrent bounded
// count+fetch, then product/customer expansion of the page.
func (s OrderService) List(ctx context.Context, q listing.OrderListQuery) (listing.PageResult[models.Order], error) {
	var out listing.PageResult[models.Order]

	f, err := listing.BuildOrderFilter(q)
	if err != nil {
		return out, err
	}

	orders, total, err := s.Repo.List(ctx, f, q.SortColumn, q.SortOrder, q.Page)
	if err != nil {
		return out, err
	}
	utils.LogEvent(s.RequestID, "orders", "list",
		fmt.Sprintf("page=%d size=%d total=%d", q.Page.Page, q.Page.PageSize, total))

	if err := s.Repo.PopulateProducts(ctx, orders); err != nil {
		return out, err
	}
	if err := s.Repo.PopulateCustomers(ctx, orders); err != nil {
		return out, err
	}
	return listing.NewPageResult(orders, total, q.Page), nil
}

// ListForCustomer searches and paginates one customer's orders in memory.
// Acceptable only because a single user's order list is small; a
// store-level filter should replace this if that assumption breaks.
func (s OrderService) ListForCustomer(ctx context.Context, customerID int64, q listing.MyOrdersQuery) (listing.PageResult[models.Order], error) {
	var out listing.PageResult[models.Order]

	orders, err := s.fetchCustomerOrders(ctx, customerID)
	if err != nil {
		return out, err
	}

	if q.Search != "" {
		pattern, err := listing.CompileSearch(q.Search)
		if err != nil {
			return out, err
		}
		searchNumber, numErr := strconv.ParseFloat(q.Search, 64)

		filtered := orders[:0:0]
		for _, o := range orders {
			if numErr == nil && float64(o.OrderNumber) == searchNumber {
				filtered = append(filtered, o)
				continue
			}
			matched := false
			for _, p := range o.Products {
				ok, merr := pattern.MatchString(p.Title)
				if merr != nil {
					return out, merr
				}
				if ok {
					matched = true
					break
				}
			}
			if matched {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}

	total := len(orders)
	start := q.Page.Offset()
	if start > total {
		start = total
	}
	end := start + q.Page.PageSize
	if end > total {
		end = total
	}
	return listing.NewPageResult(orders[start:end], total, q.Page), nil
}

func (s OrderService) fetchCustomerOrders(ctx context.Context, customerID int64) ([]models.Order, error) {
	if s.FetchCustomerOrders != nil {
		return s.FetchCustomerOrders(ctx, customerID)
	}
	return s.Repo.ListByCustomer(ctx, customerID)
}

// CreateOrderRequest is the order placement payload.
type CreateOrderRequest struct {
	Items   []int64 `json:"items"`
	Total   float64 `json:"total"`
	Payment string  `json:"payment"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Address string  `json:"address"`
	Comment string  `json:"comment"`
}

// Create re-prices the basket against the products table, verifies the
// claimed total and persists the order. The free-text comment is
// entity-escaped before it is stored.
func (s OrderService) Create(ctx context.Context, customerID int64, req CreateOrderRequest) (models.Order, error) {
	var zero models.Order
	if len(req.Items) == 0 {
		return zero, domain.ValidationError{Field: "items", Msg: "order has no items"}
	}

	products, err := s.Products.GetByIDs(ctx, req.Items)
	if err != nil {
		return zero, err
	}

	var basketTotal float64
	for _, id := range req.Items {
		p, ok := products[id]
		if !ok {
			return zero, domain.ValidationError{Field: "items", Msg: fmt.Sprintf("product %d not found", id)}
		}
		if p.Price == nil {
			return zero, domain.ValidationError{Field: "items", Msg: fmt.Sprintf("product %d is not for sale", id)}
		}
		basketTotal += *p.Price
	}
	if math.Abs(basketTotal-req.Total) > 1e-9 {
		return zero, domain.ValidationError{Field: "total", Msg: "order total does not match basket"}
	}

	order := models.Order{
		TotalAmount:     basketTotal,
		Payment:         req.Payment,
		Email:           req.Email,
		Phone:           req.Phone,
		Comment:         utils.EscapeHTML(req.Comment),
		DeliveryAddress: req.Address,
		CustomerID:      customerID,
	}
	created, err := s.Repo.Create(ctx, order, req.Items)
	if err != nil {
		return zero, err
	}
	utils.LogEvent(s.RequestID, "orders", "create",
		fmt.Sprintf("order_number=%d customer_id=%d", created.OrderNumber, customerID))
	return created, nil
}

func (s OrderService) GetByNumber(ctx context.Context, number int64) (models.Order, error) {
	return s.Repo.GetByNumber(ctx, number)
}

// GetForCustomer returns 404, not 403, when the order belongs to someone
// else, so order numbers cannot be probed.
func (s OrderService) GetForCustomer(ctx context.Context, customerID, number int64) (models.Order, error) {
	o, err := s.Repo.GetByNumber(ctx, number)
	if err != nil {
		return o, err
	}
	if o.CustomerID != customerID {
		return models.Order{}, domain.NotFoundError{Resource: "order"}
	}
	return o, nil
}

func (s OrderService) UpdateStatus(ctx context.Context, number int64, status string) (models.Order, error) {
	if !models.OrderStatuses[status] {
		return models.Order{}, domain.InvalidStatusError{Status: status}
	}
	if _, err := s.Repo.GetByNumber(ctx, number); err != nil {
		return models.Order{}, err
	}
	o, err := s.Repo.UpdateStatus(ctx, number, status)
	if err != nil {
		return o, err
	}
	utils.LogEvent(s.RequestID, "orders", "update_status",
		fmt.Sprintf("order_number=%d status=%s", number, status))
	return o, nil
}

func (s OrderService) Delete(ctx context.Context, id int64) (models.Order, error) {
	o, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return o, err
	}
	utils.LogEvent(s.RequestID, "orders", "delete", fmt.Sprintf("order_id=%d", id))
	return o, nil
}
