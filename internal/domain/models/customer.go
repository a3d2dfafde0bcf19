package models

import "time"

// Customer is the account record. Credential and token columns are loaded
// only by the auth flow and never serialized.
type Customer struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	DeliveryAddress string     `json:"deliveryAddress"`
	TotalAmount     float64    `json:"totalAmount"`
	OrderCount      int        `json:"orderCount"`
	LastOrderDate   *time.Time `json:"lastOrderDate"`
	CreatedAt       time.Time  `json:"createdAt"`

	Orders    []Order `json:"orders,omitempty"`
	LastOrder *Order  `json:"lastOrder,omitempty"`

	Role             string `json:"-"`
	PasswordHash     string `json:"-"`
	RefreshTokenHash string `json:"-"`
}
