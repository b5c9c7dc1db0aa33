package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// setETag exposes the batch version so clients can send it back in If-Match.
func setETag(c *gin.Context, version int64) {
	c.Header("ETag", fmt.Sprintf("%q", strconv.FormatInt(version, 10)))
}

// expectedVersion reads If-Match. A missing header or "*" means no version check.
func expectedVersion(c *gin.Context) (*int64, error) {
	raw := strings.TrimSpace(c.GetHeader("If-Match"))
	if raw == "" || raw == "*" {
		return nil, nil
	}
	raw = strings.TrimPrefix(raw, "W/")
	raw = strings.Trim(raw, `"`)
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid If-Match header %q", c.GetHeader("If-Match"))
	}
	return &v, nil
}
