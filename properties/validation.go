package properties

import (
	"github.com/rs/zerolog/log"
	"github.com/shuzaifak/Property-Sync-Owner/internal/validation"
)

// ErrorCode identifies a failed form rule
type ErrorCode string

const (
	Required                ErrorCode = "Required"
	MustBePositiveNumber    ErrorCode = "MustBePositiveNumber"
	AtLeastOneImageRequired ErrorCode = "AtLeastOneImageRequired"
)

// Form fields that can carry a validation error
const (
	FieldTitle   = "title"
	FieldAddress = "address"
	FieldPrice   = "price"
	FieldImages  = "images"
)

// ValidationErrors maps a form field to its failed rule. Empty means valid.
type ValidationErrors map[string]ErrorCode

// Message returns the text shown under a field, or "" when it passed
func (v ValidationErrors) Message(field string) string {
	code, ok := v[field]
	if !ok {
		return ""
	}
	switch code {
	case Required:
		switch field {
		case FieldTitle:
			return "Title is required"
		case FieldAddress:
			return "Address is required"
		case FieldPrice:
			return "Price is required"
		}
		return field + " is required"
	case MustBePositiveNumber:
		return "Price must be a positive number"
	case AtLeastOneImageRequired:
		return "At least one image is required"
	}
	return string(code)
}

type draftInput struct {
	Title   string `form:"title" validate:"notblank"`
	Address string `form:"address" validate:"notblank"`
	Price   string `form:"price" validate:"required,positive_number"`
	Images  int    `form:"images" validate:"required_if=Create true"`
	Create  bool   `form:"-"`
}

var tagCodes = map[string]ErrorCode{
	"required":                   Required,
	validation.TagNotBlank:       Required,
	validation.TagPositiveNumber: MustBePositiveNumber,
	"required_if":                AtLeastOneImageRequired,
}

// validateFields evaluates every rule and collects all failures.
func validateFields(in draftInput) ValidationErrors {
	errs := ValidationErrors{}
	tags, err := validation.FieldTags(in)
	if err != nil {
		// only reachable with a broken struct definition
		log.Err(err).Msg("Draft validation could not run")
		return errs
	}
	for field, tag := range tags {
		code, ok := tagCodes[tag]
		if !ok {
			code = ErrorCode(tag)
		}
		errs[field] = code
	}
	return errs
}
