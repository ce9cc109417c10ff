package orders

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Nihar360/admin/internal/modules/addresses"
	"github.com/Nihar360/admin/internal/modules/customers"
	"github.com/Nihar360/admin/internal/modules/products"
	"github.com/Nihar360/admin/internal/shared/money"
)

const (
	defaultNote = "status updated by administrator"

	// The store trades in a single currency; orders carry no currency
	// column, mirroring the schema.
	storeCurrency = "USD"
)

type OrderRepository interface {
	List(ctx context.Context, in ListParams) (ListResult, error)
	GetWithItems(ctx context.Context, id int64) (Order, []OrderItem, error)
	History(ctx context.Context, orderID int64) ([]StatusHistory, error)
	TransitionStatus(ctx context.Context, in TransitionParams) error
}

// Collaborator lookups. A found=false result or an error both degrade to
// placeholder values in the view, never fail the request.
type CustomerLookup interface {
	FindByID(ctx context.Context, id int64) (customers.Customer, bool, error)
}

type AddressLookup interface {
	FindByID(ctx context.Context, id int64) (addresses.Address, bool, error)
}

type ProductLookup interface {
	FindByID(ctx context.Context, id int64) (products.Product, bool, error)
}

type Service struct {
	repo      OrderRepository
	customers CustomerLookup
	addresses AddressLookup
	products  ProductLookup
	log       *slog.Logger
}

func NewService(repo OrderRepository, cl CustomerLookup, al AddressLookup, pl ProductLookup, log *slog.Logger) *Service {
	return &Service{repo: repo, customers: cl, addresses: al, products: pl, log: log}
}

type TransitionInput struct {
	OrderID int64
	Status  Status
	ActorID int64
	Note    string
}

// Transition validates the requested status change against the state
// machine and applies it together with its ledger entry. Requesting the
// status the order is already in is an idempotent no-op: success, no
// ledger write.
func (s *Service) Transition(ctx context.Context, in TransitionInput) (OrderView, error) {
	o, items, err := s.repo.GetWithItems(ctx, in.OrderID)
	if err != nil {
		return OrderView{}, err
	}

	if o.Status == in.Status {
		return s.compose(ctx, o, items)
	}

	if !CanTransition(o.Status, in.Status) {
		return OrderView{}, fmt.Errorf("%w: %s -> %s (allowed from %s: %s)",
			ErrInvalidTransition, o.Status, in.Status, o.Status, describeNext(o.Status))
	}

	note := in.Note
	if note == "" {
		note = defaultNote
	}

	if err := s.repo.TransitionStatus(ctx, TransitionParams{
		OrderID: o.ID,
		From:    o.Status,
		To:      in.Status,
		ActorID: in.ActorID,
		Note:    note,
	}); err != nil {
		return OrderView{}, err
	}

	s.log.InfoContext(ctx, "order status updated",
		slog.Int64("order_id", o.ID),
		slog.String("from", string(o.Status)),
		slog.String("to", string(in.Status)),
		slog.Int64("actor_id", in.ActorID),
		slog.String("total", money.Format(storeCurrency, o.TotalCents)))

	o, items, err = s.repo.GetWithItems(ctx, in.OrderID)
	if err != nil {
		return OrderView{}, err
	}
	return s.compose(ctx, o, items)
}

func (s *Service) Get(ctx context.Context, id int64) (OrderView, error) {
	o, items, err := s.repo.GetWithItems(ctx, id)
	if err != nil {
		return OrderView{}, err
	}
	return s.compose(ctx, o, items)
}

func (s *Service) List(ctx context.Context, in ListParams) (OrderPage, error) {
	res, err := s.repo.List(ctx, in)
	if err != nil {
		return OrderPage{}, err
	}

	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 100 {
		size = 10
	}

	views := make([]OrderView, 0, len(res.Items))
	for _, o := range res.Items {
		v, err := s.compose(ctx, o, nil)
		if err != nil {
			return OrderPage{}, err
		}
		views = append(views, v)
	}

	return OrderPage{
		Items:      views,
		Total:      res.Total,
		Page:       page,
		TotalPages: pagesFromTotal(res.Total, size),
	}, nil
}

// compose builds the denormalized view. Enrichment lookups that fail or
// come back empty are replaced by placeholders and logged; the view is
// always producible once the order row exists. items may be nil, in
// which case they are loaded here.
func (s *Service) compose(ctx context.Context, o Order, items []OrderItem) (OrderView, error) {
	if items == nil {
		var err error
		_, items, err = s.repo.GetWithItems(ctx, o.ID)
		if err != nil {
			return OrderView{}, err
		}
	}

	if err := o.ValidateTotals(); err != nil {
		s.log.WarnContext(ctx, "order totals inconsistent",
			slog.Int64("order_id", o.ID), slog.Any("err", err))
	}

	cust := CustomerInfo{Name: "Unknown"}
	if c, found, err := s.customers.FindByID(ctx, o.UserID); err != nil {
		s.log.WarnContext(ctx, "customer lookup degraded",
			slog.Int64("order_id", o.ID), slog.Int64("user_id", o.UserID), slog.Any("err", err))
	} else if found {
		cust = CustomerInfo{Name: c.FullName, Email: c.Email, Phone: c.Mobile}
	}

	var addr AddressInfo
	if a, found, err := s.addresses.FindByID(ctx, o.ShippingAddressID); err != nil {
		s.log.WarnContext(ctx, "address lookup degraded",
			slog.Int64("order_id", o.ID), slog.Int64("address_id", o.ShippingAddressID), slog.Any("err", err))
	} else if found {
		addr = AddressInfo{
			Street:  a.AddressLine1,
			City:    a.City,
			State:   a.State,
			ZipCode: a.ZipCode,
			Country: a.Country,
		}
	}

	itemViews := make([]OrderItemView, 0, len(items))
	for _, it := range items {
		iv := OrderItemView{
			ID:       it.ID,
			Name:     "Unknown Product",
			Quantity: it.Quantity,
			Price:    money.FromCents(it.PriceCents),
		}
		if p, found, err := s.products.FindByID(ctx, it.ProductID); err != nil {
			s.log.WarnContext(ctx, "product lookup degraded",
				slog.Int64("order_id", o.ID), slog.Int64("product_id", it.ProductID), slog.Any("err", err))
		} else if found {
			iv.Name = p.Name
			if p.Image != nil {
				iv.Image = *p.Image
			}
		}
		itemViews = append(itemViews, iv)
	}

	var history []HistoryEntry
	entries, err := s.repo.History(ctx, o.ID)
	if err != nil {
		s.log.WarnContext(ctx, "history lookup degraded",
			slog.Int64("order_id", o.ID), slog.Any("err", err))
	} else {
		history = make([]HistoryEntry, 0, len(entries))
		for _, e := range entries {
			h := HistoryEntry{
				NewStatus: string(e.NewStatus),
				ChangedBy: e.ChangedBy,
				CreatedAt: e.CreatedAt,
			}
			if e.OldStatus != nil {
				h.OldStatus = string(*e.OldStatus)
			}
			if e.Note != nil {
				h.Note = *e.Note
			}
			history = append(history, h)
		}
	}

	v := OrderView{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		Customer:      cust,
		Items:         itemViews,
		Subtotal:      money.FromCents(o.SubtotalCents),
		Discount:      money.FromCents(o.DiscountCents),
		Shipping:      money.FromCents(o.ShippingCents),
		Total:         money.FromCents(o.TotalCents),
		Status:        string(o.Status),
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: "paid",
		Address:       addr,
		History:       history,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
	if o.CouponCode != nil {
		v.CouponCode = *o.CouponCode
	}
	return v, nil
}

func pagesFromTotal(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
