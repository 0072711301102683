package validation

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jcvalerio/moneywiz-mcp-server/internal/catalog"
	"github.com/jcvalerio/moneywiz-mcp-server/internal/models"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("period_phrase", validatePeriodPhrase)
	_ = v.RegisterValidation("granularity", validateGranularity)
	_ = v.RegisterValidation("account_subtype", validateAccountSubtype)
	_ = v.RegisterValidation("transaction_subtype", validateTransactionSubtype)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// ValidateStruct validates a struct and returns field errors keyed by the
// json field name. A nil return means the struct passed.
func (v *Validator) ValidateStruct(s any) map[string]string {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_struct": err.Error()}
	}

	fieldErrors := make(map[string]string, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fieldErrors[fieldErr.Field()] = formatValidationError(fieldErr)
	}
	return fieldErrors
}

// Custom validation functions

// validatePeriodPhrase accepts the supported natural-language periods
func validatePeriodPhrase(fl validator.FieldLevel) bool {
	phrase := fl.Field().String()
	if phrase == "" {
		return false
	}
	// Resolution only needs to know the phrase parses, not where it lands
	_, err := models.ResolvePeriod(phrase, time.Now())
	return err == nil
}

// validateGranularity accepts day, week, month, or year
func validateGranularity(fl validator.FieldLevel) bool {
	_, err := models.ParseGranularity(fl.Field().String())
	return err == nil
}

// validateAccountSubtype validates against the catalog's account subtypes
func validateAccountSubtype(fl validator.FieldLevel) bool {
	subtype := strings.ToLower(fl.Field().String())
	for _, s := range catalog.AccountSubtypes() {
		if s == subtype {
			return true
		}
	}
	return false
}

// validateTransactionSubtype validates against the catalog's transaction subtypes
func validateTransactionSubtype(fl validator.FieldLevel) bool {
	subtype := strings.ToLower(fl.Field().String())
	for _, s := range catalog.TransactionSubtypes() {
		if s == subtype {
			return true
		}
	}
	return false
}

// formatValidationError turns a single field error into a readable message
func formatValidationError(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "field is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fieldErr.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fieldErr.Param(), " ", ", "))
	case "period_phrase":
		return "unrecognized time period"
	case "granularity":
		return "must be one of: day, week, month, year"
	case "account_subtype":
		return fmt.Sprintf("must be one of: %s", strings.Join(catalog.AccountSubtypes(), ", "))
	case "transaction_subtype":
		return fmt.Sprintf("must be one of: %s", strings.Join(catalog.TransactionSubtypes(), ", "))
	default:
		return fmt.Sprintf("failed validation rule %q", fieldErr.Tag())
	}
}
