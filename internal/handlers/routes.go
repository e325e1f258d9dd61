package handlers

import (
	"github.com/gin-gonic/gin"

	"canteen/internal/middleware"
	"canteen/internal/models"
	"canteen/internal/ordering"
	"canteen/internal/store"
	"canteen/internal/wallet"
	"canteen/internal/ws"
)

type Dependencies struct {
	Orders    *ordering.Service
	Ledger    *wallet.Ledger
	Catalog   store.Catalog
	DB        Pinger
	Hub       *ws.Hub
	JWTSecret string
}

func RegisterRoutes(r *gin.Engine, deps Dependencies) {
	r.GET("/healthz", Health(deps.DB))

	r.GET("/canteens", GetCanteens(deps.Catalog))
	r.GET("/canteens/:id", GetCanteen(deps.Catalog))
	r.GET("/canteens/:id/menu", GetCanteenMenu(deps.Catalog))
	r.GET("/menu/:id", GetMenuItem(deps.Catalog))

	staffOnly := middleware.RequireRole(models.RoleAdmin, models.RoleStaff)

	orders := r.Group("/orders")
	orders.Use(middleware.UserAuth(deps.JWTSecret))
	{
		orders.POST("", CreateOrder(deps.Orders))
		orders.GET("/user", GetUserOrders(deps.Orders))
		orders.GET("/:id", GetOrder(deps.Orders))
		orders.PUT("/:id/status", staffOnly, UpdateOrderStatus(deps.Orders))
		orders.POST("/:id/feedback", SubmitFeedback(deps.Orders))
	}
	r.GET("/orders/:id/ws",
		middleware.TokenFromQuery(),
		middleware.UserAuth(deps.JWTSecret),
		TrackOrder(deps.Orders, deps.Hub),
	)

	walletGroup := r.Group("/wallet")
	walletGroup.Use(middleware.UserAuth(deps.JWTSecret))
	{
		walletGroup.GET("/balance", GetWalletBalance(deps.Ledger))
		walletGroup.POST("/add-money", AddMoney(deps.Ledger))
		walletGroup.POST("/pay", Pay(deps.Ledger))
		walletGroup.POST("/refund", staffOnly, Refund(deps.Orders))
		walletGroup.GET("/transactions", GetTransactions(deps.Ledger))
		walletGroup.GET("/check", CheckBalance(deps.Ledger))
	}

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(deps.JWTSecret))
	{
		admin.PUT("/menu/:id", UpdateMenuItem(deps.Catalog))
	}
}
