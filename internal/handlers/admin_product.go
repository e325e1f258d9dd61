package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"canteen/internal/apperror"
	"canteen/internal/ordering"
	"canteen/internal/store"
	"canteen/internal/wallet"
)

type menuItemUpdateRequest struct {
	Price       *decimal.Decimal `json:"price"`
	IsAvailable *bool            `json:"isAvailable"`
}

// UpdateMenuItem changes an item's price or availability. Orders placed
// earlier keep the price they captured.
func UpdateMenuItem(catalog store.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/menu/:id"
		defer handlePanic(c, route)

		itemID, err := ordering.ParseID(c.Param("id"), "menu item")
		if err != nil {
			respondAppError(c, route, err)
			return
		}

		var req menuItemUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}
		if req.Price == nil && req.IsAvailable == nil {
			respondWithError(c, http.StatusBadRequest, route, "nothing to update")
			return
		}
		if req.Price != nil {
			price, err := wallet.NormalizeAmount(*req.Price)
			if err != nil {
				respondAppError(c, route, err)
				return
			}
			req.Price = &price
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		item, err := catalog.UpdateMenuItem(ctx, itemID, store.MenuItemUpdate{
			Price:       req.Price,
			IsAvailable: req.IsAvailable,
		})
		if errors.Is(err, store.ErrNotFound) {
			respondAppError(c, route, apperror.New(apperror.KindNotFound, "Menu item not found: %s", itemID.Hex()))
			return
		}
		if err != nil {
			respondAppError(c, route, apperror.Storage(err, "failed to update menu item"))
			return
		}

		zap.L().Info("[MENU] item updated",
			zap.String("menuItemId", item.ID.Hex()),
			zap.String("price", item.Price.String()),
			zap.Bool("isAvailable", item.IsAvailable),
		)
		respondOK(c, http.StatusOK, gin.H{
			"message":  "Menu item updated",
			"menuItem": item,
		})
	}
}
