package validator

import (
	"fmt"

	"go-shop-ledger/internal/ledger"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	FailedField string `json:"failed_field"`
	Tag         string `json:"tag"`
	Value       string `json:"value"`
}

var validate = validator.New()

func init() {
	// "pool" accepts MRP or Bar in any letter case
	validate.RegisterValidation("pool", func(fl validator.FieldLevel) bool {
		_, err := ledger.ParsePool(fl.Field().String())
		return err == nil
	})
	// "isodate" accepts a strict YYYY-MM-DD calendar date
	validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := ledger.ParseDate(fl.Field().String())
		return err == nil
	})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return []*ErrorResponse{{FailedField: "", Tag: "invalid", Value: err.Error()}}
		}
		for _, err := range verrs {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}

// Message renders the first validation failure for an API response.
func Message(errs []*ErrorResponse) string {
	if len(errs) == 0 {
		return ""
	}
	return fmt.Sprintf("Validation failed: Field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
}
