package task

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
	// Dates are validated through their string form so "required" means "has a date".
	validate.RegisterCustomTypeFunc(func(v reflect.Value) any {
		if d, ok := v.Interface().(Date); ok {
			return d.String()
		}
		return nil
	}, Date{})
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
}

// Validate checks the admission rules of a single task: title and due date present,
// numeric fields in range. index is reported on the error (-1 for non-import use).
func (t *Task) Validate(index int) error {
	if err := validate.Struct(t); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		var missing, invalid []string
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				missing = append(missing, fe.Field())
			} else {
				invalid = append(invalid, fe.Field())
			}
		}
		if len(missing) > 0 {
			return &ValidationError{Index: index, Fields: missing}
		}
		return &ValidationError{Index: index, Fields: invalid, Reason: "out of range"}
	}
	return nil
}
