package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderView is the denormalized response shape: customer, address and
// product data inlined into the order payload. It must be producible
// whenever the order itself exists; missing enrichment data degrades to
// placeholder values.
type OrderView struct {
	ID            int64           `json:"id"`
	OrderNumber   string          `json:"orderNumber"`
	Customer      CustomerInfo    `json:"customer"`
	Items         []OrderItemView `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Shipping      decimal.Decimal `json:"shipping"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"paymentMethod"`
	PaymentStatus string          `json:"paymentStatus"`
	CouponCode    string          `json:"couponCode,omitempty"`
	Address       AddressInfo     `json:"shippingAddress"`
	History       []HistoryEntry  `json:"statusHistory"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type OrderItemView struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
}

type AddressInfo struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type HistoryEntry struct {
	OldStatus string    `json:"oldStatus,omitempty"`
	NewStatus string    `json:"newStatus"`
	ChangedBy int64     `json:"changedBy"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type OrderPage struct {
	Items      []OrderView `json:"orders"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	TotalPages int         `json:"totalPages"`
}
