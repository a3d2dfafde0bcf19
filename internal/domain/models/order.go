package models

import "time"

// Order statuses. Anything else on input is rejected, never coerced.
const (
	StatusNew       = "new"
	StatusDelivery  = "delivery"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// OrderStatuses is the closed set used to validate filter values and
// status updates.
var OrderStatuses = map[string]bool{
	StatusNew:       true,
	StatusDelivery:  true,
	StatusCompleted: true,
	StatusCancelled: true,
}

type Order struct {
	ID              int64     `json:"id"`
	OrderNumber     int64     `json:"orderNumber"`
	Status          string    `json:"status"`
	TotalAmount     float64   `json:"totalAmount"`
	Payment         string    `json:"payment"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Comment         string    `json:"comment"`
	DeliveryAddress string    `json:"deliveryAddress"`
	CustomerID      int64     `json:"-"`
	Customer        *Customer `json:"customer,omitempty"`
	Products        []Product `json:"products"`
	CreatedAt       time.Time `json:"createdAt"`
}
