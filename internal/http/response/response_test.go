package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainagg "github.com/mthstanley/stockpot/internal/domain/aggregates"
	"github.com/mthstanley/stockpot/internal/platform/logger"
)

func respond(t *testing.T, err error) (int, ErrorEnvelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	RespondAggregateError(c, logger.Nop(), err)

	var body ErrorEnvelope
	if decodeErr := json.Unmarshal(rec.Body.Bytes(), &body); decodeErr != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), decodeErr)
	}
	return rec.Code, body
}

func TestRespondAggregateErrorStatuses(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", domainagg.NewError(domainagg.CodeValidation, "op", "title is required", nil), http.StatusBadRequest, "title is required"},
		{"not found", domainagg.NewError(domainagg.CodeNotFound, "op", "recipe with id `7` not found", nil), http.StatusNotFound, "recipe with id `7` not found"},
		{"unauthorized", domainagg.NewError(domainagg.CodeUnauthorized, "op", "Invalid credentials", nil), http.StatusUnauthorized, "Invalid credentials"},
		{"conflict", domainagg.NewError(domainagg.CodeConflict, "op", "username `a` is already taken", nil), http.StatusConflict, "username `a` is already taken"},
		{"precondition", domainagg.NewError(domainagg.CodePreconditionFailed, "op", "author missing", nil), http.StatusUnprocessableEntity, "author missing"},
		{"invariant", domainagg.NewError(domainagg.CodeInvariantViolation, "op", "bad graph", nil), http.StatusUnprocessableEntity, "bad graph"},
		{"retryable", domainagg.NewError(domainagg.CodeRetryable, "op", "deadlock detected", nil), http.StatusServiceUnavailable, unavailableMessage},
		{"internal", domainagg.NewError(domainagg.CodeInternal, "op", "pq: connection refused", nil), http.StatusInternalServerError, internalMessage},
		{"unknown code", domainagg.NewError(domainagg.ErrorCode("weird"), "op", "secret detail", nil), http.StatusInternalServerError, internalMessage},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, internalMessage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := respond(t, tc.err)
			if status != tc.status {
				t.Fatalf("status: got=%d want=%d", status, tc.status)
			}
			if body.Error != tc.message {
				t.Fatalf("message: got=%q want=%q", body.Error, tc.message)
			}
		})
	}
}

func TestStatusForCodeUnknown(t *testing.T) {
	if got := StatusForCode(""); got != http.StatusInternalServerError {
		t.Fatalf("got=%d want=500", got)
	}
}
