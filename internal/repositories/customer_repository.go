package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"shop-backend/internal/domain"
	"shop-backend/internal/domain/models"
	"shop-backend/internal/listing"
)

// CustomerRepository wraps DB access for the customers table. Listing
// queries select an explicit column list so credential and token columns
// never reach a response model.
type CustomerRepository struct {
	DB *sql.DB
}

const customerColumns = `id, name, email, phone, delivery_address, total_amount, order_count, last_order_date, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (models.Customer, error) {
	var c models.Customer
	var lastOrder sql.NullTime
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.DeliveryAddress,
		&c.TotalAmount,
		&c.OrderCount,
		&lastOrder,
		&c.CreatedAt,
	)
	if err != nil {
		return c, err
	}
	if lastOrder.Valid {
		t := lastOrder.Time
		c.LastOrderDate = &t
	}
	return c, nil
}

// List runs the filtered page fetch and the count concurrently; both share
// the same filter clause and the same time budget.
func (r CustomerRepository) List(ctx context.Context, f *listing.Filter, sortColumn, sortOrder string, page listing.PageRequest) ([]models.Customer, int, error) {
	where, args := f.Where()

	qctx, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	countCh := make(chan countResult, 1)
	go func() {
		var total int
		err := r.DB.QueryRowContext(qctx, "SELECT COUNT(*) FROM customers"+where, args...).Scan(&total)
		countCh <- countResult{total, err}
	}()

	direction := "DESC"
	if sortOrder == "asc" {
		direction = "ASC"
	}
	// sortColumn comes from the allow-list mapping, never from raw input.
	query := fmt.Sprintf("SELECT %s FROM customers%s ORDER BY %s %s LIMIT ? OFFSET ?",
		customerColumns, where, sortColumn, direction)

	pageArgs := make([]any, 0, len(args)+2)
	pageArgs = append(pageArgs, args...)
	pageArgs = append(pageArgs, page.PageSize, page.Offset())

	rows, err := r.DB.QueryContext(qctx, query, pageArgs...)
	if err != nil {
		<-countCh
		return nil, 0, wrapQueryErr("customers list", err)
	}
	defer rows.Close()

	customers := []models.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			<-countCh
			return nil, 0, err
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		<-countCh
		return nil, 0, wrapQueryErr("customers list", err)
	}

	cr := <-countCh
	if cr.err != nil {
		return nil, 0, wrapQueryErr("customers count", cr.err)
	}
	return customers, cr.total, nil
}

func (r CustomerRepository) GetByID(ctx context.Context, id int64) (models.Customer, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+customerColumns+" FROM customers WHERE id = ?", id)
	c, err := scanCustomer(row)
	if err == sql.ErrNoRows {
		return c, domain.NotFoundError{Resource: "customer", Err: err}
	}
	return c, err
}

// customerUpdateColumns is the allow-list of externally updatable fields.
var customerUpdateColumns = map[string]string{
	"name":            "name",
	"email":           "email",
	"phone":           "phone",
	"deliveryAddress": "delivery_address",
}

// Update applies only allow-listed fields; anything else in the payload is
// dropped, mirroring the account-update contract.
func (r CustomerRepository) Update(ctx context.Context, id int64, fields map[string]string) (models.Customer, error) {
	sets := []string{}
	args := []any{}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		col, ok := customerUpdateColumns[k]
		if !ok {
			continue
		}
		sets = append(sets, col+" = ?")
		args = append(args, fields[k])
	}
	if len(sets) > 0 {
		args = append(args, id)
		res, err := r.DB.ExecContext(ctx,
			"UPDATE customers SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
		if err != nil {
			return models.Customer{}, err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			// zero rows can mean "no change" as well as "no row"
			if _, err := r.GetByID(ctx, id); err != nil {
				return models.Customer{}, err
			}
		}
	}
	return r.GetByID(ctx, id)
}

func (r CustomerRepository) Delete(ctx context.Context, id int64) (models.Customer, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return c, err
	}
	if _, err := r.DB.ExecContext(ctx, "DELETE FROM customers WHERE id = ?", id); err != nil {
		return c, err
	}
	return c, nil
}
