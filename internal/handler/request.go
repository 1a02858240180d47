package handler

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/enrollment-api/internal/models"
	appErrors "github.com/noah-isme/enrollment-api/pkg/errors"
	"github.com/noah-isme/enrollment-api/pkg/response"
)

var errMissingID = appErrors.Clone(appErrors.ErrBadRequest, "missing id")

// bindBody decodes an optional JSON body into dest. An empty body leaves dest
// untouched; malformed JSON is answered with 400 and false is returned.
func bindBody(c *gin.Context, dest interface{}) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return true
		}
		response.Failure(c, appErrors.WithCause(appErrors.ErrBadRequest, "invalid JSON body", err))
		return false
	}
	return true
}

// mergeID fills *target from the :id path segment or the ?id= query, which
// take precedence over the body. It answers 400 and returns false when the
// value is not an integer.
func mergeID(c *gin.Context, target **models.LooseInt) bool {
	raw := strings.TrimSpace(c.Param("id"))
	if raw == "" {
		raw = strings.TrimSpace(c.Query("id"))
	}
	if raw == "" {
		return true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.Failure(c, appErrors.WithCause(appErrors.ErrBadRequest, "invalid id", err))
		return false
	}
	id := models.LooseInt(v)
	*target = &id
	return true
}
