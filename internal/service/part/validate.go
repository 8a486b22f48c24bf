package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/you-humble/sewing-inventory/internal/model"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Numeric tags such as gte=0 need a comparable value, not the decimal struct.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	return v
}

func (s *service) validateStruct(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Join(model.ErrValidation, err)
	}

	msgs := lo.Map(verrs, func(fe validator.FieldError, _ int) string {
		return fieldMessage(fe)
	})
	return errors.Join(model.ErrValidation, errors.New(strings.Join(msgs, "; ")))
}

func fieldMessage(fe validator.FieldError) string {
	name := fieldPath(fe.Namespace())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "min":
		return fmt.Sprintf("%s must not be empty", name)
	case "gte":
		return fmt.Sprintf("%s must be >= %s", name, fe.Param())
	default:
		return fmt.Sprintf("%s failed on %s", name, fe.Tag())
	}
}

// fieldPath turns a validator namespace such as "PartDraft.Price.LandingPrice"
// into the request path "price.landingPrice".
func fieldPath(namespace string) string {
	segments := strings.Split(namespace, ".")
	if len(segments) > 1 {
		segments = segments[1:]
	}

	return strings.Join(lo.Map(segments, func(seg string, _ int) string {
		return lo.CamelCase(seg)
	}), ".")
}

func normalizeDraft(d model.PartDraft) model.PartDraft {
	d.PartName = strings.TrimSpace(d.PartName)
	d.PartNumber = strings.TrimSpace(d.PartNumber)
	d.ModelName = strings.TrimSpace(d.ModelName)

	if d.Location != nil {
		loc := *d.Location
		loc.BoxNumber = strings.TrimSpace(loc.BoxNumber)
		loc.BoxColor = strings.TrimSpace(loc.BoxColor)
		d.Location = &loc
	}

	return d
}

func normalizePatch(p model.PartPatch) model.PartPatch {
	p.PartName = trimPtr(p.PartName)
	p.PartNumber = trimPtr(p.PartNumber)
	p.ModelName = trimPtr(p.ModelName)

	if p.Location != nil {
		loc := *p.Location
		loc.BoxNumber = trimPtr(loc.BoxNumber)
		loc.BoxColor = trimPtr(loc.BoxColor)
		p.Location = &loc
	}

	return p
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	return lo.ToPtr(strings.TrimSpace(*s))
}
