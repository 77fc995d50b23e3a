package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mthstanley/stockpot/internal/platform/ctxutil"
)

func TestAttachTraceContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var seen *ctxutil.TraceData
	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/", func(c *gin.Context) {
		seen = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	t.Run("generates ids", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if seen == nil || seen.RequestID == "" || seen.TraceID == "" {
			t.Fatalf("trace data not attached: %+v", seen)
		}
		if rec.Header().Get(HeaderRequestID) != seen.RequestID {
			t.Fatalf("request id header mismatch")
		}
	})

	t.Run("honours inbound ids", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, "req-123")
		req.Header.Set(HeaderTraceID, "trace-abc")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if seen.RequestID != "req-123" || seen.TraceID != "trace-abc" {
			t.Fatalf("inbound ids ignored: %+v", seen)
		}
	})

	t.Run("rejects oversized ids", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, strings.Repeat("x", maxInboundIDLen+1))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if len(seen.RequestID) > maxInboundIDLen {
			t.Fatalf("oversized id accepted")
		}
	})
}
