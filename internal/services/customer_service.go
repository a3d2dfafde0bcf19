package services

import (
	"context"
	"fmt"

	"shop-backend/internal/domain/models"
	"shop-backend/internal/listing"
	"shop-backend/internal/repositories"
	"shop-backend/internal/utils"
)

// CustomerService orchestrates the customer listing: filter build, bounded
// count+fetch, then relational expansion of the page items.
type CustomerService struct {
	Repo      repositories.CustomerRepository
	Orders    repositories.OrderRepository
	RequestID string
}

func (s CustomerService) List(ctx context.Context, q listing.CustomerListQuery) (listing.PageResult[models.Customer], error) {
	var out listing.PageResult[models.Customer]

	f, err := listing.BuildCustomerFilter(q)
	if err != nil {
		return out, err
	}

	customers, total, err := s.Repo.List(ctx, f, q.SortColumn, q.SortOrder, q.Page)
	if err != nil {
		return out, err
	}
	utils.LogEvent(s.RequestID, "customers", "list",
		fmt.Sprintf("page=%d size=%d total=%d", q.Page.Page, q.Page.PageSize, total))

	// Dependent lookups run after the primary fetch and only for the page.
	if err := s.populateOrders(ctx, customers); err != nil {
		return out, err
	}
	return listing.NewPageResult(customers, total, q.Page), nil
}

func (s CustomerService) Get(ctx context.Context, id int64) (models.Customer, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return c, err
	}
	single := []models.Customer{c}
	if err := s.populateOrders(ctx, single); err != nil {
		return c, err
	}
	return single[0], nil
}

func (s CustomerService) Update(ctx context.Context, id int64, fields map[string]string) (models.Customer, error) {
	c, err := s.Repo.Update(ctx, id, fields)
	if err != nil {
		return c, err
	}
	utils.LogEvent(s.RequestID, "customers", "update", fmt.Sprintf("customer_id=%d", id))
	single := []models.Customer{c}
	if err := s.populateOrders(ctx, single); err != nil {
		return c, err
	}
	return single[0], nil
}

func (s CustomerService) Delete(ctx context.Context, id int64) (models.Customer, error) {
	c, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return c, err
	}
	utils.LogEvent(s.RequestID, "customers", "delete", fmt.Sprintf("customer_id=%d", id))
	return c, nil
}

// populateOrders attaches each customer's orders and last order. Products
// come along so the last order renders fully in admin views.
func (s CustomerService) populateOrders(ctx context.Context, customers []models.Customer) error {
	if len(customers) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(customers))
	for i := range customers {
		customers[i].Orders = []models.Order{}
		ids = append(ids, customers[i].ID)
	}

	orders, err := s.Orders.ListByCustomers(ctx, ids)
	if err != nil {
		return err
	}

	byCustomer := map[int64][]models.Order{}
	for _, o := range orders {
		byCustomer[o.CustomerID] = append(byCustomer[o.CustomerID], o)
	}
	for i := range customers {
		list := byCustomer[customers[i].ID]
		if list == nil {
			continue
		}
		customers[i].Orders = list
		// ListByCustomers orders by created_at descending
		last := list[0]
		customers[i].LastOrder = &last
	}
	return nil
}
