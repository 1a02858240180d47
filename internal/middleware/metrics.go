package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/enrollment-api/internal/handler"
	"github.com/noah-isme/enrollment-api/internal/service"
)

const unknownModule = "unknown"

var legacyModules = map[string]struct{}{
	handler.ModuleStudents:    {},
	handler.ModuleSubjects:    {},
	handler.ModuleEnrollments: {},
}

// Metrics records one observation per request, labelled by route template.
// Requests to legacyPath carry their module in the label; any module outside
// the known set is folded into "unknown" so the series count stays fixed.
func Metrics(metricsSvc *service.MetricsService, legacyPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		metricsSvc.ObserveHTTPRequest(c.Request.Method, routeLabel(c, legacyPath), c.Writer.Status(), time.Since(start))
	}
}

func routeLabel(c *gin.Context, legacyPath string) string {
	path := c.FullPath()
	switch {
	case path == "":
		return "unmatched"
	case legacyPath == "" || path != legacyPath:
		return path
	}
	module := c.Query("module")
	if _, ok := legacyModules[module]; !ok {
		module = unknownModule
	}
	return path + "?module=" + module
}
