package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"canteen/internal/middleware"
	"canteen/internal/models"
	"canteen/internal/ordering"
	"canteen/internal/wallet"
)

type addMoneyRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod"`
}

type payRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	OrderID     string          `json:"orderId"`
	Description string          `json:"description"`
}

type refundRequest struct {
	Amount  decimal.Decimal `json:"amount"`
	Reason  string          `json:"reason" binding:"required"`
	OrderID string          `json:"orderId" binding:"required"`
}

type walletView struct {
	Balance            decimal.Decimal      `json:"balance"`
	TotalAdded         decimal.Decimal      `json:"totalAdded"`
	TotalSpent         decimal.Decimal      `json:"totalSpent"`
	IsActive           bool                 `json:"isActive"`
	RecentTransactions []models.Transaction `json:"recentTransactions,omitempty"`
}

func newWalletView(w models.Wallet) walletView {
	return walletView{
		Balance:    w.Balance,
		TotalAdded: w.TotalAdded,
		TotalSpent: w.TotalSpent,
		IsActive:   w.IsActive,
	}
}

func GetWalletBalance(ledger *wallet.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /wallet/balance"
		defer handlePanic(c, route)

		userID, ok := middleware.UserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		summary, err := ledger.Summary(ctx, userID)
		if err != nil {
			respondAppError(c, route, err)
			return
		}

		view := newWalletView(summary.Wallet)
		view.RecentTransactions = summary.Recent
		if view.RecentTransactions == nil {
			view.RecentTransactions = []models.Transaction{}
		}
		respondOK(c, http.StatusOK, gin.H{"wallet": view})
	}
}

func AddMoney(ledger *wallet.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /wallet/add-money"
		defer handlePanic(c, route)

		userID, ok := middleware.UserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		var req addMoneyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		description := "Money added"
		if method := strings.TrimSpace(req.PaymentMethod); method != "" {
			description = "Money added via " + method
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		w, err := ledger.Credit(ctx, userID, req.Amount, description, nil)
		if err != nil {
			respondAppError(c, route, err)
			return
		}

		zap.L().Info("[WALLET] money added",
			zap.String("userId", userID.Hex()),
			zap.String("amount", req.Amount.String()),
		)
		respondOK(c, http.StatusOK, gin.H{
			"message": "Money added successfully",
			"wallet":  newWalletView(w),
		})
	}
}

func Pay(ledger *wallet.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /wallet/pay"
		defer handlePanic(c, route)

		userID, ok := middleware.UserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		var req payRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		var orderID *primitive.ObjectID
		if strings.TrimSpace(req.OrderID) != "" {
			id, err := ordering.ParseID(req.OrderID, "order")
			if err != nil {
				respondAppError(c, route, err)
				return
			}
			orderID = &id
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		w, err := ledger.Debit(ctx, userID, req.Amount, req.Description, orderID)
		if err != nil {
			respondAppError(c, route, err)
			return
		}

		zap.L().Info("[WALLET] payment taken",
			zap.String("userId", userID.Hex()),
			zap.String("amount", req.Amount.String()),
		)
		respondOK(c, http.StatusOK, gin.H{
			"message": "Payment successful",
			"wallet":  newWalletView(w),
		})
	}
}

// Refund credits the owner of the referenced order. Routed for staff and
// admins only; all refunds against one order together may not exceed what
// the order cost.
func Refund(orders *ordering.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /wallet/refund"
		defer handlePanic(c, route)

		var req refundRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		order, w, err := orders.RefundOrder(ctx, req.OrderID, req.Amount, req.Reason)
		if err != nil {
			respondAppError(c, route, err)
			return
		}

		zap.L().Info("[WALLET] refund issued",
			zap.String("orderId", order.ID.Hex()),
			zap.String("userId", order.UserID.Hex()),
			zap.String("amount", req.Amount.String()),
			zap.String("refundedTotal", order.RefundedAmount.String()),
		)
		respondOK(c, http.StatusOK, gin.H{
			"message": "Refund processed successfully",
			"wallet":  newWalletView(w),
		})
	}
}

func GetTransactions(ledger *wallet.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /wallet/transactions"
		defer handlePanic(c, route)

		userID, ok := middleware.UserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		limit, skip, err := parseLimitSkip(c.Query("limit"), c.Query("skip"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		page, err := ledger.ListTransactions(ctx, userID, limit, skip)
		if err != nil {
			respondAppError(c, route, err)
			return
		}

		respondOK(c, http.StatusOK, gin.H{
			"transactions":      page.Transactions,
			"totalTransactions": page.Total,
			"limit":             limit,
			"skip":              skip,
		})
	}
}

func CheckBalance(ledger *wallet.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /wallet/check"
		defer handlePanic(c, route)

		userID, ok := middleware.UserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		balance, active, err := ledger.CheckBalance(ctx, userID)
		if err != nil {
			respondAppError(c, route, err)
			return
		}

		respondOK(c, http.StatusOK, gin.H{
			"balance":  balance,
			"isActive": active,
		})
	}
}
