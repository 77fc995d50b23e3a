package services

import (
	domainagg "github.com/mthstanley/stockpot/internal/domain/aggregates"
	"github.com/mthstanley/stockpot/internal/platform/logger"
)

// opaqueInternal logs an internal failure with its full cause and returns an
// error safe to show to callers.
func opaqueInternal(log *logger.Logger, op string, err error) error {
	log.Error("Unexpected error", "op", op, "error", err)
	return domainagg.NewError(domainagg.CodeInternal, op, "unexpected error occurred", err)
}

// surface passes aggregate errors through, replacing internal ones with an
// opaque error after logging them.
func surface(log *logger.Logger, op string, err error) error {
	if err == nil {
		return nil
	}
	code := domainagg.CodeOf(err)
	if code == "" || code == domainagg.CodeInternal {
		return opaqueInternal(log, op, err)
	}
	return err
}
