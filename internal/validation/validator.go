package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"finance-tracker/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var reportMonthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

var (
	instance *Validator
	once     sync.Once
)

// GetValidator returns the shared validator instance
func GetValidator() *Validator {
	once.Do(func() {
		instance = NewValidator()
	})
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("transaction_type", validateTransactionType)
	_ = v.RegisterValidation("report_month", validateReportMonth)
	_ = v.RegisterValidation("calendar_date", validateCalendarDate)

	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	return &Validator{validate: v}
}

// Struct validates s and returns validator.ValidationErrors on failure.
func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

// decimalValue exposes a decimal as float64 so numeric tags (gte, lte) apply.
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

// validateTransactionType accepts exactly "income" or "expense"
func validateTransactionType(fl validator.FieldLevel) bool {
	return models.IsValidTransactionType(fl.Field().String())
}

// ValidReportMonth reports whether month is YYYY-MM with a month in 01..12.
func ValidReportMonth(month string) bool {
	if !reportMonthPattern.MatchString(month) {
		return false
	}
	m := month[5:]
	return m >= "01" && m <= "12"
}

func validateReportMonth(fl validator.FieldLevel) bool {
	return ValidReportMonth(fl.Field().String())
}

// validateCalendarDate accepts YYYY-MM-DD or RFC 3339
func validateCalendarDate(fl validator.FieldLevel) bool {
	_, _, err := models.ParseDate(fl.Field().String())
	return err == nil
}

// FieldErrors maps each failing field to a readable message.
func FieldErrors(err error) map[string]string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}

	out := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		out[fe.Field()] = describe(fe)
	}
	return out
}

// MissingFields lists the fields that failed a "required" rule, sorted.
func MissingFields(err error) []string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}

	var missing []string
	for _, fe := range validationErrors {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		}
	}
	sort.Strings(missing)
	return missing
}

// HasTag reports whether any field failed the given rule.
func HasTag(err error, tag string) bool {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return false
	}
	for _, fe := range validationErrors {
		if fe.Tag() == tag {
			return true
		}
	}
	return false
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "transaction_type":
		return "must be income or expense"
	case "report_month":
		return "must be YYYY-MM"
	case "calendar_date":
		return "must be YYYY-MM-DD or RFC 3339"
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
