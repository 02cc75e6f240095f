package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// idParam parses a positive integer path parameter, answering 400 when it
// is malformed
func idParam(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		JSONError(c, http.StatusBadRequest, fmt.Errorf("invalid %s %q", name, raw), "invalid "+name)
		return 0, false
	}
	return id, true
}
