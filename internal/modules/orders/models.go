package orders

import "time"

const (
	PaymentCOD    = "cod"
	PaymentCard   = "card"
	PaymentUPI    = "upi"
	PaymentWallet = "wallet"
)

// Order holds the persisted order record. All monetary columns are in
// cents, two implied fraction digits.
type Order struct {
	ID                int64      `gorm:"primaryKey;autoIncrement"`
	OrderNumber       string     `gorm:"type:varchar(32);not null;uniqueIndex"`
	UserID            int64      `gorm:"not null;index:ix_orders_user_id"`
	Status            Status     `gorm:"type:varchar(32);not null;index:ix_orders_status"`
	PaymentMethod     string     `gorm:"type:varchar(32);not null"`
	CouponCode        *string    `gorm:"type:varchar(64)"`
	SubtotalCents     int64      `gorm:"not null"`
	DiscountCents     int64      `gorm:"not null"`
	ShippingCents     int64      `gorm:"not null"`
	TotalCents        int64      `gorm:"not null"`
	ShippingAddressID int64      `gorm:"not null"`
	Notes             *string    `gorm:"type:varchar(500)"`
	OrderDate         time.Time  `gorm:"type:datetime(3);not null"`
	DeliveredDate     *time.Time `gorm:"type:datetime(3)"`
	CreatedAt         time.Time  `gorm:"type:datetime(3);not null;index:ix_orders_created_at"`
	UpdatedAt         time.Time  `gorm:"type:datetime(3);not null"`
}

func (Order) TableName() string { return "orders" }

// ValidateTotals checks the monetary invariant:
// total = subtotal - discount + shipping, all amounts non-negative,
// discount never exceeds subtotal.
func (o Order) ValidateTotals() error {
	if o.SubtotalCents < 0 || o.DiscountCents < 0 || o.ShippingCents < 0 || o.TotalCents < 0 {
		return ErrNegativeAmount
	}
	if o.DiscountCents > o.SubtotalCents {
		return ErrDiscountExceedsSubtotal
	}
	if o.TotalCents != o.SubtotalCents-o.DiscountCents+o.ShippingCents {
		return ErrTotalMismatch
	}
	return nil
}

// OrderItem snapshots the unit price at order time; it is never
// re-derived from the current product price.
type OrderItem struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	OrderID    int64     `gorm:"not null;index:ix_order_items_order_id"`
	ProductID  int64     `gorm:"not null"`
	Quantity   int       `gorm:"not null"`
	PriceCents int64     `gorm:"not null"`
	CreatedAt  time.Time `gorm:"type:datetime(3);not null"`
}

func (OrderItem) TableName() string { return "order_items" }

// StatusHistory is the append-only transition ledger. Rows are created
// exactly once per committed transition and never mutated or deleted.
// OldStatus is nil only for the initial creation entry.
type StatusHistory struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	OrderID   int64     `gorm:"not null;index:ix_order_status_history_order_id"`
	OldStatus *Status   `gorm:"type:varchar(32)"`
	NewStatus Status    `gorm:"type:varchar(32);not null"`
	ChangedBy int64     `gorm:"not null"`
	Note      *string   `gorm:"type:varchar(500)"`
	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (StatusHistory) TableName() string { return "order_status_history" }
