package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func ParseStringIDParam(c *gin.Context, param string) string {
	idStr := c.Param(param)
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "ID cannot be empty",
		})
		return ""
	}
	return idStr
}

// ParseOptionalIntQuery returns nil when the query parameter is absent. ok is
// false after an error response has been written.
func ParseOptionalIntQuery(c *gin.Context, name string) (value *int, ok bool) {
	raw, exists := c.GetQuery(name)
	if !exists || strings.TrimSpace(raw) == "" {
		return nil, true
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + name,
			Details: "must be an integer",
		})
		return nil, false
	}
	return &n, true
}
