package models

import "time"

// Product price is nullable: a product without a price is listed but not
// for sale.
type Product struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Image       string    `json:"image"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Price       *float64  `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
}
