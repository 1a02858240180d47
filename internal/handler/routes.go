package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/enrollment-api/pkg/errors"
	"github.com/noah-isme/enrollment-api/pkg/response"
)

// Entity route names, shared by the REST prefix and the legacy module query.
const (
	ModuleStudents    = "students"
	ModuleSubjects    = "subjects"
	ModuleEnrollments = "students_subjects"
)

type entityHandler interface {
	Get(c *gin.Context)
	Post(c *gin.Context)
	Put(c *gin.Context)
	Delete(c *gin.Context)
}

// Handlers groups everything Register mounts. Health is optional.
type Handlers struct {
	Students    *StudentHandler
	Subjects    *SubjectHandler
	Enrollments *EnrollmentHandler
	Health      *HealthHandler
}

// RouteOptions controls which surfaces are mounted.
type RouteOptions struct {
	Prefix string
	// LegacyPath mounts the ?module= dispatcher when non-empty.
	LegacyPath string
	Metrics    bool
}

// Register mounts the entity, legacy and health routes on r.
func Register(r gin.IRouter, h Handlers, opts RouteOptions) {
	if h.Health != nil {
		r.GET("/health", h.Health.Health)
		r.GET("/ready", h.Health.Ready)
		if opts.Metrics {
			r.GET("/metrics", h.Health.Prometheus)
		}
	}

	api := r.Group(opts.Prefix)
	mountEntity(api, ModuleStudents, h.Students)
	mountEntity(api, ModuleSubjects, h.Subjects)
	api.GET("/"+ModuleEnrollments+"/export", h.Enrollments.Export)
	mountEntity(api, ModuleEnrollments, h.Enrollments)
	api.GET("/"+ModuleStudents+"/:id/subjects", h.Students.Subjects)

	if opts.LegacyPath != "" {
		r.Any(opts.LegacyPath, dispatcher(map[string]entityHandler{
			ModuleStudents:    h.Students,
			ModuleSubjects:    h.Subjects,
			ModuleEnrollments: h.Enrollments,
		}))
	}
}

func mountEntity(g *gin.RouterGroup, name string, h entityHandler) {
	base := "/" + name
	g.GET(base, h.Get)
	g.POST(base, h.Post)
	g.PUT(base, h.Put)
	g.DELETE(base, h.Delete)

	g.GET(base+"/:id", h.Get)
	g.PUT(base+"/:id", h.Put)
	g.DELETE(base+"/:id", h.Delete)
}

// dispatcher routes a single endpoint by the module query parameter and the
// HTTP method, the way the legacy front controller does.
func dispatcher(modules map[string]entityHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		h, ok := modules[c.Query("module")]
		if !ok {
			response.Failure(c, appErrors.Clone(appErrors.ErrBadRequest, "unknown module"))
			return
		}
		switch c.Request.Method {
		case http.MethodGet:
			h.Get(c)
		case http.MethodPost:
			h.Post(c)
		case http.MethodPut:
			h.Put(c)
		case http.MethodDelete:
			h.Delete(c)
		case http.MethodOptions:
			c.Status(http.StatusNoContent)
		default:
			response.Failure(c, appErrors.New("METHOD_NOT_ALLOWED", http.StatusMethodNotAllowed, "method not allowed"))
		}
	}
}
