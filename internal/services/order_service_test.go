package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"shop-backend/internal/domain"
	"shop-backend/internal/domain/models"
	"shop-backend/internal/listing"
	"shop-backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func fixedOrders() []models.Order {
	return []models.Order{
		{ID: 1, OrderNumber: 1001, Products: []models.Product{{Title: "Running shoes"}}},
		{ID: 2, OrderNumber: 1002, Products: []models.Product{{Title: "Leather boots"}}},
		{ID: 3, OrderNumber: 1003, Products: []models.Product{{Title: "Wool socks"}}},
	}
}

func testOrderService(orders []models.Order) OrderService {
	return OrderService{
		FetchCustomerOrders: func(ctx context.Context, customerID int64) ([]models.Order, error) {
			return orders, nil
		},
	}
}

func TestListForCustomerFiltersByProductTitle(t *testing.T) {
	svc := testOrderService(fixedOrders())
	res, err := svc.ListForCustomer(context.Background(), 5, listing.MyOrdersQuery{
		Page:   listing.PageRequest{Page: 1, PageSize: 10},
		Search: "boots",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Items) != 1 || res.Items[0].OrderNumber != 1002 {
		t.Fatalf("unexpected items: %+v", res.Items)
	}
	if res.Total != 1 {
		t.Fatalf("total should count the filtered set, got %d", res.Total)
	}
}

func TestListForCustomerNumericSearchMatchesOrderNumber(t *testing.T) {
	svc := testOrderService(fixedOrders())
	res, err := svc.ListForCustomer(context.Background(), 5, listing.MyOrdersQuery{
		Page:   listing.PageRequest{Page: 1, PageSize: 10},
		Search: "1003",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Items) != 1 || res.Items[0].OrderNumber != 1003 {
		t.Fatalf("numeric search should match the order number: %+v", res.Items)
	}
}

func TestListForCustomerPageBeyondLast(t *testing.T) {
	svc := testOrderService(fixedOrders())
	res, err := svc.ListForCustomer(context.Background(), 5, listing.MyOrdersQuery{
		Page: listing.PageRequest{Page: 4, PageSize: 10},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Items == nil || len(res.Items) != 0 {
		t.Fatalf("expected empty items slice, got %v", res.Items)
	}
	if res.CurrentPage != 4 {
		t.Fatalf("current page must echo the request, got %d", res.CurrentPage)
	}
	if res.Total != 3 || res.TotalPages != 1 {
		t.Fatalf("pagination block wrong: %+v", res)
	}
}

func TestListForCustomerCaseInsensitiveSearch(t *testing.T) {
	svc := testOrderService(fixedOrders())
	res, err := svc.ListForCustomer(context.Background(), 5, listing.MyOrdersQuery{
		Page:   listing.PageRequest{Page: 1, PageSize: 10},
		Search: "RUNNING",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Items) != 1 || res.Items[0].OrderNumber != 1001 {
		t.Fatalf("search should ignore case: %+v", res.Items)
	}
}

func TestGetForCustomerForeignOrderReadsAsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM orders o WHERE o.order_number = \\?").
		WithArgs(int64(1001)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "order_number", "status", "total_amount", "payment",
			"email", "phone", "comment", "delivery_address", "customer_id", "created_at",
		}).AddRow(1, 1001, "new", 100.0, "card", "a@b.c", "+1", "", "", 42, time.Now()))
	mock.ExpectQuery("SELECT op.order_id, p.id").
		WillReturnRows(sqlmock.NewRows([]string{
			"order_id", "id", "title", "image", "category", "description", "price", "created_at",
		}))
	mock.ExpectQuery("SELECT id, name, email, .+ FROM customers WHERE id IN").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "email", "phone", "delivery_address",
			"total_amount", "order_count", "last_order_date", "created_at",
		}))

	svc := OrderService{Repo: repositories.OrderRepository{DB: db}}
	_, err = svc.GetForCustomer(context.Background(), 7, 1001)
	var notFound domain.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("foreign order should read as not found, got %v", err)
	}
}

func TestCreateRejectsTotalMismatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM products WHERE id IN").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "image", "category", "description", "price", "created_at",
		}).AddRow(1, "Shoes", "", "", "", 50.0, time.Now()))

	svc := OrderService{Products: repositories.ProductRepository{DB: db}}
	_, err = svc.Create(context.Background(), 7, CreateOrderRequest{
		Items: []int64{1},
		Total: 60,
	})
	var validation domain.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validation.Field != "total" {
		t.Fatalf("error should point at the total, got %q", validation.Field)
	}
}

func TestCreateRejectsUnknownProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM products WHERE id IN").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "image", "category", "description", "price", "created_at",
		}))

	svc := OrderService{Products: repositories.ProductRepository{DB: db}}
	_, err = svc.Create(context.Background(), 7, CreateOrderRequest{
		Items: []int64{999},
		Total: 10,
	})
	var validation domain.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc := OrderService{}
	_, err := svc.UpdateStatus(context.Background(), 1001, "delivering")
	var bad domain.InvalidStatusError
	if !errors.As(err, &bad) {
		t.Fatalf("expected InvalidStatusError, got %v", err)
	}
}
