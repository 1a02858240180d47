package service

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/enrollment-api/pkg/database"
	appErrors "github.com/noah-isme/enrollment-api/pkg/errors"
)

// Options carries the collaborators shared by the entity services.
type Options struct {
	Validator *validator.Validate
	Logger    *zap.Logger
	Cache     *CacheService
	Metrics   *MetricsService
	// StrictErrors reports missing rows as 404 and constraint violations as
	// 409 instead of collapsing everything into 500.
	StrictErrors bool
}

func (o Options) withDefaults() Options {
	if o.Validator == nil {
		o.Validator = NewValidator()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// NewValidator returns a validator that reports fields by their JSON name.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (o Options) validate(req interface{}, message string) error {
	err := o.Validator.Struct(req)
	if err == nil {
		return nil
	}
	var fields []string
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
	}
	if len(fields) > 0 {
		sort.Strings(fields)
		message = fmt.Sprintf("%s: missing %s", message, strings.Join(fields, ", "))
	}
	return appErrors.WithCause(appErrors.ErrValidation, message, err)
}

// check validates a write request. Outside strict mode an incomplete payload
// fails the way the write itself would, with the generic 500 for verb.
func (o Options) check(req interface{}, entity, verb, message string) error {
	err := o.validate(req, message)
	if err == nil || o.StrictErrors {
		return err
	}
	o.Logger.Warn("incomplete payload", zap.String("entity", entity), zap.String("op", verb), zap.Error(err))
	o.Metrics.RecordWrite(entity, verb, false)
	return appErrors.Clone(appErrors.ErrInternal, fmt.Sprintf("could not %s %s", verb, entity))
}

// failed maps a storage error for verb on entity.
func (o Options) failed(entity, verb string, err error) error {
	message := fmt.Sprintf("could not %s %s", verb, entity)
	if o.StrictErrors && database.IsConstraintViolation(err) {
		return appErrors.WithCause(appErrors.ErrConflict, message, err)
	}
	return appErrors.WithCause(appErrors.ErrInternal, message, err)
}

// noRows maps a zero affected-row count for verb on entity.
func (o Options) noRows(entity, verb string) error {
	if o.StrictErrors && verb != verbCreate {
		return appErrors.Clone(appErrors.ErrNotFound, entity+" not found")
	}
	return appErrors.Clone(appErrors.ErrInternal, fmt.Sprintf("could not %s %s", verb, entity))
}

// settle turns the outcome of a write into the error returned to callers
// and records it.
func (o Options) settle(entity, verb string, affected int64, err error) error {
	switch {
	case err != nil:
		o.Logger.Error("storage write failed",
			zap.String("entity", entity), zap.String("op", verb), zap.Error(err))
		err = o.failed(entity, verb, err)
	case affected == 0:
		o.Logger.Warn("write affected no rows", zap.String("entity", entity), zap.String("op", verb))
		err = o.noRows(entity, verb)
	}
	o.Metrics.RecordWrite(entity, verb, err == nil)
	return err
}

const (
	entityStudent    = "student"
	entitySubject    = "subject"
	entityEnrollment = "enrollment"

	verbCreate = "create"
	verbUpdate = "update"
	verbDelete = "delete"
	verbLoad   = "load"
)
