package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Nihar360/admin/internal/http/middleware"
	"github.com/Nihar360/admin/internal/http/validation"
	"github.com/Nihar360/admin/internal/modules/orders"
	"github.com/Nihar360/admin/internal/shared/apperr"
)

type OrdersHandler struct {
	Svc *orders.Service
}

func NewOrdersHandler(svc *orders.Service) *OrdersHandler {
	return &OrdersHandler{Svc: svc}
}

func (h *OrdersHandler) List(c *gin.Context) {
	status := strings.TrimSpace(c.Query("status"))
	search := strings.TrimSpace(c.Query("search"))
	page := parseIntDefault(c.Query("page"), 1)
	size := parseIntDefault(c.Query("limit"), 10)

	var statusFilter string
	if status != "" && status != "all" {
		st, err := orders.ParseStatus(status)
		if err != nil {
			middleware.Fail(c, apperr.InvalidErr("Unknown order status.", map[string]string{"status": status}))
			return
		}
		statusFilter = string(st)
	}

	res, err := h.Svc.List(c.Request.Context(), orders.ListParams{
		Status:   statusFilter,
		Search:   search,
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	ok(c, res)
}

func (h *OrdersHandler) Get(c *gin.Context) {
	id, err := orderID(c)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	v, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Order not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	ok(c, v)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note" binding:"omitempty,max=500"`
}

func (h *OrdersHandler) UpdateStatus(c *gin.Context) {
	id, err := orderID(c)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	actorID, okActor := middleware.ActorID(c)
	if !okActor {
		middleware.Fail(c, apperr.UnauthorizedErr("Authentication required."))
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid request.", validation.FromBindError(err, &req)))
		return
	}

	newStatus, err := orders.ParseStatus(req.Status)
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Unknown order status.", map[string]string{"status": req.Status}))
		return
	}

	v, err := h.Svc.Transition(c.Request.Context(), orders.TransitionInput{
		OrderID: id,
		Status:  newStatus,
		ActorID: actorID,
		Note:    strings.TrimSpace(req.Note),
	})
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrNotFound):
			middleware.Fail(c, apperr.NotFoundErr("Order not found."))
		case errors.Is(err, orders.ErrInvalidTransition):
			middleware.Fail(c, apperr.InvalidErr(err.Error(), nil))
		case errors.Is(err, orders.ErrConflict):
			middleware.Fail(c, apperr.ConflictErr("Order is being updated by another request, retry."))
		default:
			middleware.Fail(c, apperr.Wrap(err))
		}
		return
	}

	okMsg(c, "Order status updated successfully", v)
}

func orderID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, apperr.InvalidErr("Invalid order id.", nil)
	}
	return id, nil
}
