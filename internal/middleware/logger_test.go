package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLoggerOmitsQueryToken(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	token := signed(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"userId": primitive.NewObjectID().Hex(),
		"role":   "student",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/orders/:id/ws", TokenFromQuery(), UserAuth(testSecret), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/orders/abc/ws?token="+token, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	entries := logs.FilterMessage("got incoming HTTP request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/orders/abc/ws", fields["path"])
	assert.Equal(t, "/orders/:id/ws", fields["route"])
	for key, value := range fields {
		if s, ok := value.(string); ok {
			assert.False(t, strings.Contains(s, token), "token logged in field %q", key)
		}
	}
}
