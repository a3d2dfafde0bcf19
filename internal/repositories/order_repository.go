package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intdb "shop-backend/internal/db"
	"shop-backend/internal/domain"
	"shop-backend/internal/domain/models"
	"shop-backend/internal/listing"
)

// OrderRepository wraps DB access for orders and their product joins.
type OrderRepository struct {
	DB *sql.DB
}

const orderColumns = `o.id, o.order_number, o.status, o.total_amount, o.payment, o.email, o.phone, COALESCE(o.comment, ''), o.delivery_address, o.customer_id, o.created_at`

func scanOrder(row rowScanner) (models.Order, error) {
	var o models.Order
	err := row.Scan(
		&o.ID,
		&o.OrderNumber,
		&o.Status,
		&o.TotalAmount,
		&o.Payment,
		&o.Email,
		&o.Phone,
		&o.Comment,
		&o.DeliveryAddress,
		&o.CustomerID,
		&o.CreatedAt,
	)
	return o, err
}

// List runs the filtered page fetch and the count concurrently against the
// same filter clause. Relational expansion happens afterwards, on the page
// items only.
func (r OrderRepository) List(ctx context.Context, f *listing.Filter, sortColumn, sortOrder string, page listing.PageRequest) ([]models.Order, int, error) {
	where, args := f.Where()

	qctx, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	countCh := make(chan countResult, 1)
	go func() {
		var total int
		err := r.DB.QueryRowContext(qctx, "SELECT COUNT(*) FROM orders o"+where, args...).Scan(&total)
		countCh <- countResult{total, err}
	}()

	direction := "DESC"
	if sortOrder == "asc" {
		direction = "ASC"
	}
	query := fmt.Sprintf("SELECT %s FROM orders o%s ORDER BY %s %s LIMIT ? OFFSET ?",
		orderColumns, where, sortColumn, direction)

	pageArgs := make([]any, 0, len(args)+2)
	pageArgs = append(pageArgs, args...)
	pageArgs = append(pageArgs, page.PageSize, page.Offset())

	rows, err := r.DB.QueryContext(qctx, query, pageArgs...)
	if err != nil {
		<-countCh
		return nil, 0, wrapQueryErr("orders list", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			<-countCh
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		<-countCh
		return nil, 0, wrapQueryErr("orders list", err)
	}

	cr := <-countCh
	if cr.err != nil {
		return nil, 0, wrapQueryErr("orders count", cr.err)
	}
	return orders, cr.total, nil
}

// ListByCustomer loads all of one customer's orders, products attached.
// The per-user collection is small, which is what makes in-memory search
// over it acceptable upstream.
func (r OrderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]models.Order, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+orderColumns+" FROM orders o WHERE o.customer_id = ? ORDER BY o.created_at DESC", customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.PopulateProducts(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListByCustomers loads the orders of a set of customers, newest first,
// products attached. Used for the relational expansion of a customer page.
func (r OrderRepository) ListByCustomers(ctx context.Context, customerIDs []int64) ([]models.Order, error) {
	if len(customerIDs) == 0 {
		return []models.Order{}, nil
	}
	args := make([]any, 0, len(customerIDs))
	placeholders := make([]string, 0, len(customerIDs))
	for _, id := range customerIDs {
		args = append(args, id)
		placeholders = append(placeholders, "?")
	}

	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+orderColumns+" FROM orders o WHERE o.customer_id IN ("+strings.Join(placeholders, ",")+") ORDER BY o.created_at DESC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.PopulateProducts(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// PopulateProducts attaches each order's product list in one query.
func (r OrderRepository) PopulateProducts(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}
	idx := make(map[int64]int, len(orders))
	ids := make([]any, 0, len(orders))
	placeholders := make([]string, 0, len(orders))
	for i := range orders {
		orders[i].Products = []models.Product{}
		idx[orders[i].ID] = i
		ids = append(ids, orders[i].ID)
		placeholders = append(placeholders, "?")
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT op.order_id, p.id, p.title, p.image, p.category, COALESCE(p.description, ''), p.price, p.created_at
		FROM order_products op
		JOIN products p ON p.id = op.product_id
		WHERE op.order_id IN (`+strings.Join(placeholders, ",")+`)`, ids...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var orderID int64
		var p models.Product
		var price sql.NullFloat64
		if err := rows.Scan(&orderID, &p.ID, &p.Title, &p.Image, &p.Category, &p.Description, &price, &p.CreatedAt); err != nil {
			return err
		}
		if price.Valid {
			v := price.Float64
			p.Price = &v
		}
		if i, ok := idx[orderID]; ok {
			orders[i].Products = append(orders[i].Products, p)
		}
	}
	return rows.Err()
}

// PopulateCustomers attaches the owning customer to each order.
func (r OrderRepository) PopulateCustomers(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}
	seen := map[int64]bool{}
	ids := []any{}
	placeholders := []string{}
	for i := range orders {
		if !seen[orders[i].CustomerID] {
			seen[orders[i].CustomerID] = true
			ids = append(ids, orders[i].CustomerID)
			placeholders = append(placeholders, "?")
		}
	}

	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+customerColumns+" FROM customers WHERE id IN ("+strings.Join(placeholders, ",")+")", ids...)
	if err != nil {
		return err
	}
	defer rows.Close()

	customers := map[int64]models.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return err
		}
		customers[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range orders {
		if c, ok := customers[orders[i].CustomerID]; ok {
			cc := c
			orders[i].Customer = &cc
		}
	}
	return nil
}

func (r OrderRepository) GetByNumber(ctx context.Context, number int64) (models.Order, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders o WHERE o.order_number = ?", number)
	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return o, domain.NotFoundError{Resource: "order", Err: err}
	}
	if err != nil {
		return o, err
	}
	single := []models.Order{o}
	if err := r.PopulateProducts(ctx, single); err != nil {
		return o, err
	}
	if err := r.PopulateCustomers(ctx, single); err != nil {
		return o, err
	}
	return single[0], nil
}

// Create inserts the order and its product links in one transaction and
// bumps the customer's aggregates so customer listings stay filterable by
// totalAmount/orderCount/lastOrderDate.
func (r OrderRepository) Create(ctx context.Context, o models.Order, productIDs []int64) (models.Order, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return o, err
	}
	defer tx.Rollback()

	var next int64
	if err := tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(order_number), 0) + 1 FROM orders FOR UPDATE").Scan(&next); err != nil {
		return o, err
	}
	o.OrderNumber = next
	o.Status = models.StatusNew

	res, err := tx.ExecContext(ctx, `
		INSERT INTO orders (order_number, status, total_amount, payment, email, phone, comment, delivery_address, customer_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.OrderNumber, o.Status, o.TotalAmount, o.Payment, o.Email, o.Phone, intdb.NullIfEmpty(o.Comment), o.DeliveryAddress, o.CustomerID)
	if err != nil {
		return o, err
	}
	o.ID, err = res.LastInsertId()
	if err != nil {
		return o, err
	}

	for _, pid := range productIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT IGNORE INTO order_products (order_id, product_id) VALUES (?, ?)", o.ID, pid); err != nil {
			return o, err
		}
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE customers
		SET order_count = order_count + 1,
		    total_amount = total_amount + ?,
		    last_order_date = NOW(3)
		WHERE id = ?`, o.TotalAmount, o.CustomerID); err != nil {
		return o, err
	}

	if err := tx.Commit(); err != nil {
		return o, err
	}
	return r.GetByNumber(ctx, o.OrderNumber)
}

func (r OrderRepository) UpdateStatus(ctx context.Context, number int64, status string) (models.Order, error) {
	// zero affected rows can mean "same status"; the caller already
	// checked existence
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE orders SET status = ? WHERE order_number = ?", status, number); err != nil {
		return models.Order{}, err
	}
	return r.GetByNumber(ctx, number)
}

func (r OrderRepository) Delete(ctx context.Context, id int64) (models.Order, error) {
	var number int64
	err := r.DB.QueryRowContext(ctx, "SELECT order_number FROM orders WHERE id = ?", id).Scan(&number)
	if err == sql.ErrNoRows {
		return models.Order{}, domain.NotFoundError{Resource: "order", Err: err}
	}
	if err != nil {
		return models.Order{}, err
	}
	o, err := r.GetByNumber(ctx, number)
	if err != nil {
		return o, err
	}
	if _, err := r.DB.ExecContext(ctx, "DELETE FROM order_products WHERE order_id = ?", id); err != nil {
		return o, err
	}
	if _, err := r.DB.ExecContext(ctx, "DELETE FROM orders WHERE id = ?", id); err != nil {
		return o, err
	}
	return o, nil
}
