package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"canteen/internal/apperror"
	"canteen/internal/ordering"
	"canteen/internal/store"
)

// GetCanteenMenu lists a canteen's items, optionally filtered by category
// and dietary tag.
func GetCanteenMenu(catalog store.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /canteens/:id/menu"
		defer handlePanic(c, route)

		canteenID, err := ordering.ParseID(c.Param("id"), "canteen")
		if err != nil {
			respondAppError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		if _, err := catalog.FindCanteen(ctx, canteenID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondAppError(c, route, apperror.New(apperror.KindNotFound, "Canteen not found"))
				return
			}
			respondAppError(c, route, apperror.Storage(err, "failed to fetch menu"))
			return
		}

		items, err := catalog.ListMenuItems(ctx, store.MenuFilter{
			CanteenID: canteenID,
			Category:  strings.TrimSpace(c.Query("category")),
			Dietary:   strings.TrimSpace(c.Query("dietary")),
		})
		if err != nil {
			respondAppError(c, route, apperror.Storage(err, "failed to fetch menu"))
			return
		}

		respondOK(c, http.StatusOK, gin.H{
			"count":     len(items),
			"menuItems": items,
		})
	}
}

func GetMenuItem(catalog store.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /menu/:id"
		defer handlePanic(c, route)

		itemID, err := ordering.ParseID(c.Param("id"), "menu item")
		if err != nil {
			respondAppError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		item, err := catalog.FindMenuItem(ctx, itemID)
		if errors.Is(err, store.ErrNotFound) {
			respondAppError(c, route, apperror.New(apperror.KindNotFound, "Menu item not found: %s", itemID.Hex()))
			return
		}
		if err != nil {
			respondAppError(c, route, apperror.Storage(err, "failed to fetch menu item"))
			return
		}

		respondOK(c, http.StatusOK, gin.H{"menuItem": item})
	}
}
