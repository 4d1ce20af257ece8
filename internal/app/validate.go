package service

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/okian/revintel/pkg/apperr"
)

const idRule = "required,max=64,entityid"

var entityIDPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("entityid", func(fl validator.FieldLevel) bool {
		return entityIDPattern.MatchString(fl.Field().String())
	})
	return v
}

func (s *Service) checkID(op, field, id string) error {
	if err := s.validate.Var(id, idRule); err != nil {
		return apperr.FromVar(op, field, err)
	}
	return nil
}

func (s *Service) checkStruct(op string, v any) error {
	if err := s.validate.Struct(v); err != nil {
		return apperr.FromValidator(op, err)
	}
	return nil
}
