// Package validation wraps go-playground/validator with the tags used by the
// owner forms.
package validation

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

const (
	// TagNotBlank fails on empty or whitespace-only strings
	TagNotBlank = "notblank"
	// TagPositiveNumber fails unless the string parses as a finite number > 0
	TagPositiveNumber = "positive_number"
)

var (
	instance *validator.Validate
	once     sync.Once
)

// Get returns the shared validator with custom tags registered.
func Get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(formFieldName)
		// Registration only fails for empty tags or nil funcs
		_ = v.RegisterValidation(TagNotBlank, notBlank)
		_ = v.RegisterValidation(TagPositiveNumber, positiveNumber)
		instance = v
	})
	return instance
}

// FieldTags runs struct validation and returns the failing tag per field.
// Fields are keyed by their `form` tag. A nil map means the struct is valid.
func FieldTags(s any) (map[string]string, error) {
	err := Get().Struct(s)
	if err == nil {
		return nil, nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil, err
	}
	tags := make(map[string]string, len(ve))
	for _, fe := range ve {
		if _, seen := tags[fe.Field()]; seen {
			continue
		}
		tags[fe.Field()] = fe.Tag()
	}
	return tags, nil
}

// ParsePositiveNumber parses s the way the price field is validated.
func ParsePositiveNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0, false
	}
	return f, true
}

func formFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return strings.ToLower(fld.Name)
	}
	return name
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return !field.IsZero()
	}
	return strings.TrimSpace(field.String()) != ""
}

func positiveNumber(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	_, ok := ParsePositiveNumber(fl.Field().String())
	return ok
}
