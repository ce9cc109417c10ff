package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Nihar360/admin/internal/config"
	adminhandlers "github.com/Nihar360/admin/internal/http/handlers/admin"
	"github.com/Nihar360/admin/internal/http/middleware"
	"github.com/Nihar360/admin/internal/modules/addresses"
	"github.com/Nihar360/admin/internal/modules/customers"
	"github.com/Nihar360/admin/internal/modules/dashboard"
	"github.com/Nihar360/admin/internal/modules/orders"
	"github.com/Nihar360/admin/internal/modules/products"
)

func NewRouter(l *slog.Logger, db *gorm.DB, cfg config.Config) *gin.Engine {
	r := gin.New()

	// ErrorHandler must sit outside Recovery: the recovery callback only
	// queues the error, ErrorHandler renders it after the panic is caught.
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(l))
	r.Use(middleware.ErrorHandler(l))
	r.Use(middleware.Recovery(l))

	orderRepo := orders.NewRepo(db, cfg.StoreTimeout)
	customerRepo := customers.NewRepo(db, cfg.StoreTimeout)
	addressRepo := addresses.NewRepo(db, cfg.StoreTimeout)
	productRepo := products.NewRepo(db, cfg.StoreTimeout)
	dashboardRepo := dashboard.NewRepo(db, cfg.StoreTimeout)

	orderSvc := orders.NewService(orderRepo, customerRepo, addressRepo, productRepo, l)
	dashboardSvc := dashboard.NewService(dashboardRepo, customerRepo, l)

	ordersHandler := adminhandlers.NewOrdersHandler(orderSvc)
	dashboardHandler := adminhandlers.NewDashboardHandler(dashboardSvc, orderSvc)

	adm := r.Group("/admin")
	{
		adm.GET("/orders", ordersHandler.List)
		adm.GET("/orders/:id", ordersHandler.Get)
		adm.PATCH("/orders/:id/status", middleware.AdminActor(), ordersHandler.UpdateStatus)

		adm.GET("/dashboard/stats", dashboardHandler.Stats)
		adm.GET("/dashboard/sales", dashboardHandler.Sales)
		adm.GET("/dashboard/recent", dashboardHandler.Recent)
	}

	return r
}
