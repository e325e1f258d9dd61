package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"canteen/internal/ordering"
)

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus advances an order through its lifecycle. Routed for
// staff and admins only.
func UpdateOrderStatus(orders *ordering.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /orders/:id/status"
		defer handlePanic(c, route)

		var req updateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		order, err := orders.Transition(ctx, c.Param("id"), req.Status)
		if err != nil {
			respondAppError(c, route, err)
			return
		}

		zap.L().Info("[ORDER] status updated",
			zap.String("orderId", order.ID.Hex()),
			zap.String("status", string(order.Status)),
			zap.String("paymentStatus", string(order.PaymentStatus)),
		)
		respondOK(c, http.StatusOK, gin.H{
			"message": "Order status updated",
			"order":   order,
		})
	}
}
