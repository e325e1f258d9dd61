package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Health(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /healthz"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}
		respondOK(c, http.StatusOK, gin.H{"status": "ok"})
	}
}
