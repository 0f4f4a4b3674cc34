package validator

import (
	"errors"
	"fmt"
	"strings"

	"roomly/pkg/logger"
	"roomly/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()

	if err := v.RegisterValidation("email_list", validateEmailList); err != nil {
		log.Fatal("Failed to register 'email_list' validator",
			"error", err,
		)
	}

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

var emailCheck = validator.New()

// validateEmailList requires every element to pass the built-in email check.
// Emptiness of the slice is the min=1 tag's concern.
func validateEmailList(fl validator.FieldLevel) bool {
	emails, ok := fl.Field().Interface().([]string)
	if !ok {
		return false
	}

	for _, email := range emails {
		if emailCheck.Var(email, "required,email") != nil {
			return false
		}
	}
	return true
}

func (v *BookingValidator) Validate(booking *model.BookingRequest) error {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if !booking.TimeSlot.EndAt.After(booking.TimeSlot.StartAt) {
		return ValidationErrors{
			ValidationError{
				Field:   "TimeSlot",
				Message: "end_at must be after start_at",
			},
		}
	}

	if strings.TrimSpace(booking.Description) == "" {
		return ValidationErrors{
			ValidationError{
				Field:   "Description",
				Message: "description cannot be blank",
			},
		}
	}

	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must have at least %s element(s)", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "email_list":
			message = fmt.Sprintf("%s must contain only valid email addresses", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
