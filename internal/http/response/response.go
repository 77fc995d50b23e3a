package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainagg "github.com/mthstanley/stockpot/internal/domain/aggregates"
	"github.com/mthstanley/stockpot/internal/platform/logger"
)

const (
	internalMessage    = "unexpected error occurred"
	unavailableMessage = "service temporarily unavailable, please retry"
)

// ErrorEnvelope is the only error body the API writes.
type ErrorEnvelope struct {
	Error string `json:"error"`
}

var statusByCode = map[domainagg.ErrorCode]int{
	domainagg.CodeValidation:         http.StatusBadRequest,
	domainagg.CodeNotFound:           http.StatusNotFound,
	domainagg.CodeUnauthorized:       http.StatusUnauthorized,
	domainagg.CodeConflict:           http.StatusConflict,
	domainagg.CodePreconditionFailed: http.StatusUnprocessableEntity,
	domainagg.CodeInvariantViolation: http.StatusUnprocessableEntity,
	domainagg.CodeRetryable:          http.StatusServiceUnavailable,
	domainagg.CodeInternal:           http.StatusInternalServerError,
}

// StatusForCode maps an aggregate error code to its HTTP status; unknown codes are 500.
func StatusForCode(code domainagg.ErrorCode) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func RespondError(c *gin.Context, status int, msg string) {
	c.JSON(status, ErrorEnvelope{Error: msg})
}

func AbortWithError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: msg})
}

// RespondAggregateError writes err with the status its code maps to.
// Internal and retryable failures never leak their cause to the client.
func RespondAggregateError(c *gin.Context, log *logger.Logger, err error) {
	var aggErr *domainagg.Error
	if !errors.As(err, &aggErr) {
		if log != nil {
			log.Error("Unhandled error", "error", err, "path", c.FullPath())
		}
		RespondError(c, http.StatusInternalServerError, internalMessage)
		return
	}
	status := StatusForCode(aggErr.Code)
	switch aggErr.Code {
	case domainagg.CodeInternal:
		if log != nil {
			log.Error("Internal error", "error", err, "op", aggErr.Op, "path", c.FullPath())
		}
		RespondError(c, status, internalMessage)
	case domainagg.CodeRetryable:
		if log != nil {
			log.Warn("Retryable error", "error", err, "op", aggErr.Op, "path", c.FullPath())
		}
		RespondError(c, status, unavailableMessage)
	default:
		if status == http.StatusInternalServerError {
			if log != nil {
				log.Error("Unknown error code", "error", err, "code", aggErr.Code)
			}
			RespondError(c, status, internalMessage)
			return
		}
		RespondError(c, status, domainagg.MessageOf(err))
	}
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
