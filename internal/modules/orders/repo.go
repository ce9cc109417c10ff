package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
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

type ListParams struct {
	Status   string // optional filter, already validated by the caller
	Search   string // optional free-text match on order number or customer name
	Page     int
	PageSize int
}

type ListResult struct {
	Items []Order
	Total int64
}

// List returns a page of orders, newest first. Status filter and search
// are independent predicates and may be combined.
func (r *Repo) List(ctx context.Context, in ListParams) (ListResult, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 100 {
		size = 10
	}

	base := r.db.WithContext(ctx).Model(&Order{})
	if status := strings.TrimSpace(in.Status); status != "" {
		base = base.Where("orders.status = ?", status)
	}
	if q := strings.TrimSpace(in.Search); q != "" {
		like := "%" + q + "%"
		base = base.
			Select("orders.*").
			Joins("LEFT JOIN users ON users.id = orders.user_id").
			Where("(orders.order_number LIKE ? OR users.full_name LIKE ?)", like, like)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return ListResult{}, err
	}

	var items []Order
	if err := base.
		Order("orders.created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&items).Error; err != nil {
		return ListResult{}, err
	}

	return ListResult{Items: items, Total: total}, nil
}

func (r *Repo) GetWithItems(ctx context.Context, id int64) (Order, []OrderItem, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var o Order
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Order{}, nil, ErrNotFound
		}
		return Order{}, nil, err
	}
	var items []OrderItem
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&items, "order_id = ?", id).Error; err != nil {
		return Order{}, nil, err
	}
	return o, items, nil
}

// History returns the full audit trail for an order, oldest entry first.
func (r *Repo) History(ctx context.Context, orderID int64) ([]StatusHistory, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var entries []StatusHistory
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&entries, "order_id = ?", orderID).Error
	return entries, err
}

type TransitionParams struct {
	OrderID int64
	From    Status // status observed by the caller before the write
	To      Status
	ActorID int64
	Note    string
}

// TransitionStatus applies a validated status change together with its
// ledger entry as a single transaction. The row lock plus the optimistic
// status guard serialize concurrent transitions on the same order: the
// loser gets ErrConflict and may retry.
func (r *Repo) TransitionStatus(ctx context.Context, in TransitionParams) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o Order
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&o, "id = ?", in.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if o.Status != in.From {
			return fmt.Errorf("%w: now %s, was %s", ErrConflict, o.Status, in.From)
		}

		now := time.Now()
		updates := map[string]any{
			"status":     in.To,
			"updated_at": now,
		}
		if in.To == StatusDelivered && o.DeliveredDate == nil {
			updates["delivered_date"] = now
		}

		res := tx.Model(&Order{}).
			Where("id = ? AND status = ?", o.ID, in.From). // optimistic guard
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}

		var notePtr *string
		if n := strings.TrimSpace(in.Note); n != "" {
			notePtr = &n
		}

		from := in.From
		entry := StatusHistory{
			OrderID:   o.ID,
			OldStatus: &from,
			NewStatus: in.To,
			ChangedBy: in.ActorID,
			Note:      notePtr,
			CreatedAt: now,
		}
		return tx.Create(&entry).Error
	})
	if err != nil && isLockContention(err) {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}

// isLockContention reports MySQL lock wait timeouts (1205) and deadlocks
// (1213), both of which the caller may retry.
func isLockContention(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && (me.Number == 1205 || me.Number == 1213)
}
