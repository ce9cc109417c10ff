package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/Nihar360/admin/internal/http/middleware"
	"github.com/Nihar360/admin/internal/modules/dashboard"
	"github.com/Nihar360/admin/internal/modules/orders"
	"github.com/Nihar360/admin/internal/shared/apperr"
)

const maxSeriesDays = 365

type DashboardHandler struct {
	Svc    *dashboard.Service
	Orders *orders.Service
}

func NewDashboardHandler(svc *dashboard.Service, orderSvc *orders.Service) *DashboardHandler {
	return &DashboardHandler{Svc: svc, Orders: orderSvc}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	snap, err := h.Svc.Stats(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	ok(c, snap)
}

func (h *DashboardHandler) Sales(c *gin.Context) {
	days := parseIntDefault(c.Query("days"), 30)
	if days > maxSeriesDays {
		days = maxSeriesDays
	}

	points, err := h.Svc.SalesSeries(c.Request.Context(), days)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	ok(c, points)
}

// Recent lists the latest orders for the dashboard panel, denormalized
// the same way the order endpoints are.
func (h *DashboardHandler) Recent(c *gin.Context) {
	limit := parseIntDefault(c.Query("limit"), 5)
	if limit > 20 {
		limit = 20
	}

	page, err := h.Orders.List(c.Request.Context(), orders.ListParams{Page: 1, PageSize: limit})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	ok(c, page.Items)
}
