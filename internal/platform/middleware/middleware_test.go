package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop_backend/internal/platform/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		wantSame bool
	}{
		{"generated when absent", "", false},
		{"upstream id reused", "trace-123", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := gin.New()
			r.Use(RequestID())
			var seen string
			r.GET("/", func(c *gin.Context) {
				seen = c.GetString(ContextRequestID)
				c.Status(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(HeaderRequestID, tt.incoming)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, seen, w.Header().Get(HeaderRequestID))
			if tt.wantSame {
				assert.Equal(t, tt.incoming, seen)
				return
			}
			_, err := uuid.Parse(seen)
			assert.NoError(t, err)
		})
	}
}

func TestAccessLog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := logger.NewWithWriter("production", &buf)

	r := gin.New()
	r.Use(RequestID(), AccessLog(base))
	r.GET("/api/orders/:id", func(c *gin.Context) {
		logger.FromContext(c.Request.Context()).Info("inside handler")
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/orders/abc", nil)
	req.Header.Set(HeaderRequestID, "rid-1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	dec := json.NewDecoder(&buf)
	var inner, access map[string]any
	require.NoError(t, dec.Decode(&inner))
	require.NoError(t, dec.Decode(&access))

	assert.Equal(t, "rid-1", inner["request_id"])
	assert.Equal(t, "request", access["msg"])
	assert.Equal(t, "WARN", access["level"])
	assert.Equal(t, "/api/orders/abc", access["path"])
	assert.Equal(t, float64(http.StatusNotFound), access["status"])
	assert.Equal(t, "rid-1", access["request_id"])
}
