package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"canteen/internal/apperror"
	"canteen/internal/ordering"
	"canteen/internal/store"
)

func GetCanteens(catalog store.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /canteens"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		canteens, err := catalog.ListCanteens(ctx)
		if err != nil {
			respondAppError(c, route, apperror.Storage(err, "failed to fetch canteens"))
			return
		}

		respondOK(c, http.StatusOK, gin.H{
			"count":    len(canteens),
			"canteens": canteens,
		})
	}
}

func GetCanteen(catalog store.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /canteens/:id"
		defer handlePanic(c, route)

		canteenID, err := ordering.ParseID(c.Param("id"), "canteen")
		if err != nil {
			respondAppError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		canteen, err := catalog.FindCanteen(ctx, canteenID)
		if errors.Is(err, store.ErrNotFound) {
			respondAppError(c, route, apperror.New(apperror.KindNotFound, "Canteen not found"))
			return
		}
		if err != nil {
			respondAppError(c, route, apperror.Storage(err, "failed to fetch canteen"))
			return
		}

		respondOK(c, http.StatusOK, gin.H{"canteen": canteen})
	}
}
