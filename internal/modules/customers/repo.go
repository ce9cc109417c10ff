package customers

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Customer struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	FullName  string    `gorm:"type:varchar(255);not null"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Mobile    string    `gorm:"type:varchar(32)"`
	Role      string    `gorm:"type:varchar(32);not null"`
	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Customer) TableName() string { return "users" }

type Repo struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewRepo(db *gorm.DB, timeout time.Duration) *Repo {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Repo{db: db, timeout: timeout}
}

// FindByID reports found=false when no record exists; the caller decides
// how to degrade.
func (r *Repo) FindByID(ctx context.Context, id int64) (Customer, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var c Customer
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Customer{}, false, nil
	}
	if err != nil {
		return Customer{}, false, err
	}
	return c, true, nil
}

func (r *Repo) CountCustomers(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var n int64
	err := r.db.WithContext(ctx).Model(&Customer{}).
		Where("role = ?", "customer").
		Count(&n).Error
	return n, err
}
