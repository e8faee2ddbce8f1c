package utils

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs tag-based validation (validate:"..." tags).
func ValidateStruct(obj any) error {
	return validate.Struct(obj)
}

// ProcessValidationErrors flattens validator errors into field -> message.
func ProcessValidationErrors(err error) map[string]string {
	errorResponse := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errorResponse["error"] = err.Error()
		return errorResponse
	}
	for _, fieldError := range validationErrors {
		switch fieldError.Tag() {
		case "required":
			errorResponse[fieldError.Field()] = "this field is required"
		case "min":
			errorResponse[fieldError.Field()] = "value is below the allowed minimum"
		case "max":
			errorResponse[fieldError.Field()] = "value is above the allowed maximum"
		case "oneof":
			errorResponse[fieldError.Field()] = "value is not one of the allowed choices"
		default:
			errorResponse[fieldError.Field()] = "invalid value"
		}
	}
	return errorResponse
}
