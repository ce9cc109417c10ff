package addresses

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Address struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	UserID       int64     `gorm:"not null;index:ix_addresses_user_id"`
	AddressLine1 string    `gorm:"type:varchar(255);not null"`
	AddressLine2 *string   `gorm:"type:varchar(255)"`
	City         string    `gorm:"type:varchar(128)"`
	State        string    `gorm:"type:varchar(128)"`
	ZipCode      string    `gorm:"type:varchar(16)"`
	Country      string    `gorm:"type:varchar(128)"`
	CreatedAt    time.Time `gorm:"type:datetime(3);not null"`
}

func (Address) TableName() string { return "addresses" }

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

func (r *Repo) FindByID(ctx context.Context, id int64) (Address, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var a Address
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Address{}, false, nil
	}
	if err != nil {
		return Address{}, false, err
	}
	return a, true, nil
}
