package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mthstanley/stockpot/internal/http/response"
)

// pathID reads a positive integer path parameter, writing a 400 when it is not one.
func pathID(c *gin.Context, name string) (int, bool) {
	raw := c.Param(name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid id `"+raw+"`")
		return 0, false
	}
	return id, true
}
