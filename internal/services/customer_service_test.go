package services

import (
	"context"
	"testing"
	"time"

	"shop-backend/internal/listing"
	"shop-backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCustomerListAttachesOrdersAndLastOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	now := time.Now()
	older := now.Add(-48 * time.Hour)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM customers").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("SELECT id, name, email, .+ FROM customers ORDER BY created_at DESC").
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "email", "phone", "delivery_address",
			"total_amount", "order_count", "last_order_date", "created_at",
		}).
			AddRow(1, "Ana", "ana@example.com", "+1", "", 300.0, 2, now, now).
			AddRow(2, "Ben", "ben@example.com", "+2", "", 0.0, 0, nil, now))

	// Order expansion for the page. Newest first per customer.
	mock.ExpectQuery("SELECT o.id, o.order_number, .+ FROM orders o WHERE o.customer_id IN").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "order_number", "status", "total_amount", "payment",
			"email", "phone", "comment", "delivery_address", "customer_id", "created_at",
		}).
			AddRow(11, 1002, "new", 200.0, "card", "", "", "", "", 1, now).
			AddRow(10, 1001, "completed", 100.0, "card", "", "", "", "", 1, older))
	mock.ExpectQuery("SELECT op.order_id, p.id").
		WillReturnRows(sqlmock.NewRows([]string{
			"order_id", "id", "title", "image", "category", "description", "price", "created_at",
		}))

	svc := CustomerService{
		Repo:   repositories.CustomerRepository{DB: db},
		Orders: repositories.OrderRepository{DB: db},
	}
	q, err := listing.ParseCustomerListQuery(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res, err := svc.List(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Total != 2 || res.TotalPages != 1 || res.CurrentPage != 1 {
		t.Fatalf("pagination block wrong: %+v", res)
	}
	if len(res.Items) != 2 {
		t.Fatalf("unexpected page: %+v", res.Items)
	}

	ana := res.Items[0]
	if len(ana.Orders) != 2 {
		t.Fatalf("orders not attached: %+v", ana)
	}
	if ana.LastOrder == nil || ana.LastOrder.OrderNumber != 1002 {
		t.Fatalf("last order should be the newest, got %+v", ana.LastOrder)
	}

	ben := res.Items[1]
	if ben.Orders == nil || len(ben.Orders) != 0 {
		t.Fatalf("customers without orders get an empty slice, got %+v", ben.Orders)
	}
	if ben.LastOrder != nil {
		t.Fatalf("no last order expected, got %+v", ben.LastOrder)
	}
}
