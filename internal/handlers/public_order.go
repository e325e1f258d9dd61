package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"canteen/internal/apperror"
	"canteen/internal/middleware"
	"canteen/internal/models"
	"canteen/internal/ordering"
	"canteen/internal/ws"
)

type createOrderItemRequest struct {
	MenuItem            string `json:"menuItem" binding:"required"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"specialInstructions"`
}

type createOrderRequest struct {
	CanteenID       string                   `json:"canteenId" binding:"required"`
	Items           []createOrderItemRequest `json:"items" binding:"dive"`
	OrderMode       string                   `json:"orderMode" binding:"required"`
	PaymentMethod   string                   `json:"paymentMethod" binding:"required"`
	SpecialRequests string                   `json:"specialRequests"`
	TableNumber     string                   `json:"tableNumber"`
	DeliveryAddress string                   `json:"deliveryAddress"`
}

type feedbackRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func CreateOrder(orders *ordering.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		userID, ok := middleware.UserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		items := make([]ordering.LineRequest, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, ordering.LineRequest{
				MenuItemID:          item.MenuItem,
				Quantity:            item.Quantity,
				SpecialInstructions: item.SpecialInstructions,
			})
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		order, err := orders.PlaceOrder(ctx, ordering.PlaceOrderInput{
			UserID:          userID,
			CanteenID:       req.CanteenID,
			Items:           items,
			OrderMode:       req.OrderMode,
			PaymentMethod:   req.PaymentMethod,
			SpecialRequests: req.SpecialRequests,
			TableNumber:     req.TableNumber,
			DeliveryAddress: req.DeliveryAddress,
		})
		if err != nil {
			respondAppError(c, route, err)
			return
		}

		zap.L().Info("[ORDER] order created",
			zap.String("orderId", order.ID.Hex()),
			zap.String("userId", userID.Hex()),
			zap.String("finalAmount", order.FinalAmount.String()),
		)
		respondOK(c, http.StatusCreated, gin.H{
			"message": "Order placed successfully",
			"order":   order,
		})
	}
}

func GetOrder(orders *ordering.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/:id"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		order, err := orders.Get(ctx, c.Param("id"))
		if err != nil {
			respondAppError(c, route, err)
			return
		}
		if err := authorizeOrderAccess(c, order); err != nil {
			respondAppError(c, route, err)
			return
		}

		respondOK(c, http.StatusOK, gin.H{"order": order})
	}
}

func GetUserOrders(orders *ordering.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/user"
		defer handlePanic(c, route)

		userID, ok := middleware.UserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		list, err := orders.ListForUser(ctx, userID)
		if err != nil {
			respondAppError(c, route, err)
			return
		}

		respondOK(c, http.StatusOK, gin.H{
			"count":  len(list),
			"orders": list,
		})
	}
}

func SubmitFeedback(orders *ordering.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders/:id/feedback"
		defer handlePanic(c, route)

		var req feedbackRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		order, err := orders.Get(ctx, c.Param("id"))
		if err != nil {
			respondAppError(c, route, err)
			return
		}
		if err := authorizeOrderAccess(c, order); err != nil {
			respondAppError(c, route, err)
			return
		}

		updated, err := orders.AttachFeedback(ctx, c.Param("id"), req.Rating, req.Comment)
		if err != nil {
			respondAppError(c, route, err)
			return
		}

		respondOK(c, http.StatusOK, gin.H{
			"message": "Feedback submitted successfully",
			"order":   updated,
		})
	}
}

// TrackOrder upgrades to a websocket that receives the order on every change.
func TrackOrder(orders *ordering.Service, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/:id/ws"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		order, err := orders.Get(ctx, c.Param("id"))
		cancel()
		if err != nil {
			respondAppError(c, route, err)
			return
		}
		if err := authorizeOrderAccess(c, order); err != nil {
			respondAppError(c, route, err)
			return
		}

		if err := ws.Serve(hub, c.Writer, c.Request, *order); err != nil {
			// The upgrader has already written an HTTP error.
			zap.L().Info("[ORDER] websocket upgrade failed",
				zap.String("orderId", order.ID.Hex()),
				zap.Error(err),
			)
		}
	}
}

// authorizeOrderAccess lets owners see their own orders and canteen staff
// see all of them.
func authorizeOrderAccess(c *gin.Context, order *models.Order) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return apperror.New(apperror.KindUnauthorized, "unauthorized")
	}
	if order.UserID == userID || isStaff(middleware.Role(c)) {
		return nil
	}
	return apperror.New(apperror.KindForbidden, "You do not have access to this order")
}

func isStaff(role string) bool {
	return role == models.RoleAdmin || role == models.RoleStaff
}
