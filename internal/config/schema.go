package config

import (
	"database/sql"
	"log"

	intdb "shop-backend/internal/db"
)

var schemaStatements = []struct {
	table string
	ddl   string
}{
	{"customers", `
		CREATE TABLE IF NOT EXISTS customers (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			phone VARCHAR(64) NOT NULL DEFAULT '',
			delivery_address VARCHAR(512) NOT NULL DEFAULT '',
			password_hash VARCHAR(255) NOT NULL,
			refresh_token_hash VARCHAR(255) NOT NULL DEFAULT '',
			role VARCHAR(32) NOT NULL DEFAULT 'customer',
			total_amount DECIMAL(12,2) NOT NULL DEFAULT 0,
			order_count INT NOT NULL DEFAULT 0,
			last_order_date DATETIME(3) NULL,
			created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
			INDEX idx_customers_created_at (created_at),
			INDEX idx_customers_total_amount (total_amount)
		)`},
	{"products", `
		CREATE TABLE IF NOT EXISTS products (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			image VARCHAR(512) NOT NULL DEFAULT '',
			category VARCHAR(128) NOT NULL DEFAULT '',
			description TEXT NULL,
			price DECIMAL(12,2) NULL,
			created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3)
		)`},
	{"orders", `
		CREATE TABLE IF NOT EXISTS orders (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			order_number BIGINT NOT NULL UNIQUE,
			status VARCHAR(32) NOT NULL DEFAULT 'new',
			total_amount DECIMAL(12,2) NOT NULL DEFAULT 0,
			payment VARCHAR(32) NOT NULL DEFAULT '',
			email VARCHAR(255) NOT NULL DEFAULT '',
			phone VARCHAR(64) NOT NULL DEFAULT '',
			comment TEXT NULL,
			delivery_address VARCHAR(512) NOT NULL DEFAULT '',
			customer_id BIGINT NOT NULL,
			created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
			INDEX idx_orders_customer (customer_id),
			INDEX idx_orders_created_at (created_at),
			INDEX idx_orders_status (status)
		)`},
	{"order_products", `
		CREATE TABLE IF NOT EXISTS order_products (
			order_id BIGINT NOT NULL,
			product_id BIGINT NOT NULL,
			PRIMARY KEY (order_id, product_id),
			INDEX idx_order_products_product (product_id)
		)`},
}

// Columns added after the first release. Databases created before them
// get the column backfilled on boot.
var columnBackfills = []struct {
	table  string
	column string
	ddl    string
}{
	{"customers", "refresh_token_hash",
		"ALTER TABLE customers ADD COLUMN refresh_token_hash VARCHAR(255) NOT NULL DEFAULT ''"},
	{"customers", "delivery_address",
		"ALTER TABLE customers ADD COLUMN delivery_address VARCHAR(512) NOT NULL DEFAULT ''"},
	{"products", "category",
		"ALTER TABLE products ADD COLUMN category VARCHAR(128) NOT NULL DEFAULT ''"},
}

// EnsureSchema creates missing tables and backfills late columns on
// startup. Statements are idempotent, so re-running on every boot is safe.
func EnsureSchema(db *sql.DB) error {
	for _, s := range schemaStatements {
		if intdb.HasTable(db, s.table) {
			continue
		}
		if _, err := db.Exec(s.ddl); err != nil {
			return err
		}
		log.Printf("schema: created table %s", s.table)
	}
	for _, b := range columnBackfills {
		if intdb.HasColumn(db, b.table, b.column) {
			continue
		}
		if _, err := db.Exec(b.ddl); err != nil {
			return err
		}
		log.Printf("schema: added column %s.%s", b.table, b.column)
	}
	return nil
}
