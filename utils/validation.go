package utils

import (
	"fmt"
	"strings"

	"guia-piracicaba-backend/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the custom binding tags on a validator:
//   - clock: "HH:MM" 24h string
//   - category: one of models.Categories
//   - weekschedule: weekday keys 0..6 with valid clocks
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return models.ValidClock(fl.Field().String())
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.IsValidCategory(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("weekschedule", func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(models.WeekSchedule)
		if !ok {
			return false
		}
		return ValidWeekSchedule(s)
	})
}

// RegisterBindingValidators registers the custom tags on gin's default validator.
func RegisterBindingValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	return RegisterValidators(v)
}

// ValidWeekSchedule checks weekday keys and clock formats. An empty schedule is valid.
func ValidWeekSchedule(s models.WeekSchedule) bool {
	for day, d := range s {
		if day < 0 || day > 6 {
			return false
		}
		if !models.ValidClock(d.Open) || !models.ValidClock(d.Close) {
			return false
		}
	}
	return true
}

// SanitizeValidationError takes a validator error and returns a user-friendly message
// without leaking internal Go struct names.
func SanitizeValidationError(err error) string {
	if err == nil {
		return ""
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return "Invalid request body"
	}

	var messages []string
	for _, fe := range validationErrors {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", field))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email address", field))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		case "gte":
			messages = append(messages, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		case "clock":
			messages = append(messages, fmt.Sprintf("%s must be a time in HH:MM format", field))
		case "category":
			messages = append(messages, fmt.Sprintf("%s must be one of: %s", field, strings.Join(models.Categories, ", ")))
		case "weekschedule":
			messages = append(messages, fmt.Sprintf("%s must map weekdays 0-6 to HH:MM open and close times", field))
		case "latitude", "longitude":
			messages = append(messages, fmt.Sprintf("%s must be a valid %s", field, fe.Tag()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", field))
		}
	}

	if len(messages) == 0 {
		return "Invalid request body"
	}

	return strings.Join(messages, "; ")
}
