package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/foyer-app/foyer-voice/internal/domain/entities"
)

// CustomValidator implements echo.Validator using go-playground/validator,
// with domain enum tags registered on top of the built-in rules.
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance
func New() *CustomValidator {
	v := validator.New()
	v.RegisterValidation("taskcategory", validTaskCategory)
	v.RegisterValidation("taskpriority", validTaskPriority)
	v.RegisterValidation("urgencylevel", validUrgencyLevel)
	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}

func validTaskCategory(fl validator.FieldLevel) bool {
	cat := entities.TaskCategory(fl.Field().String())
	for _, known := range entities.AllCategories {
		if cat == known {
			return true
		}
	}
	return false
}

func validTaskPriority(fl validator.FieldLevel) bool {
	switch entities.TaskPriority(fl.Field().String()) {
	case entities.PriorityLow, entities.PriorityMedium, entities.PriorityHigh, entities.PriorityCritical:
		return true
	}
	return false
}

func validUrgencyLevel(fl validator.FieldLevel) bool {
	switch entities.UrgencyLevel(fl.Field().String()) {
	case entities.UrgencyCritical, entities.UrgencyHigh, entities.UrgencyLow, entities.UrgencyNone:
		return true
	}
	return false
}
