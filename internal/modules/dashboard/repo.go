package dashboard

import (
	"context"
	"time"

	"gorm.io/gorm"
)

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

func (r *Repo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// RevenueCentsSince sums order totals created at or after since.
// An empty range is zero, not an error.
func (r *Repo) RevenueCentsSince(ctx context.Context, since time.Time) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var cents int64
	err := r.db.WithContext(ctx).
		Table("orders").
		Select("COALESCE(SUM(total_cents), 0)").
		Where("created_at >= ?", since).
		Scan(&cents).Error
	return cents, err
}

func (r *Repo) CountOrdersSince(ctx context.Context, since time.Time) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var n int64
	err := r.db.WithContext(ctx).
		Table("orders").
		Where("created_at >= ?", since).
		Count(&n).Error
	return n, err
}

func (r *Repo) CountAllOrders(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var n int64
	err := r.db.WithContext(ctx).Table("orders").Count(&n).Error
	return n, err
}
