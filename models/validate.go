package models

import (
	"fmt"
	"math"
	"strings"
)

// Column limits of the products and product_additives tables.
const (
	maxBarcodeLen      = 64
	maxAdditiveCodeLen = 32
)

// RequiredFields lists the fields a new product must carry.
var RequiredFields = []string{
	"barcode", "name", "brand",
	"sugar", "salt", "fat", "saturated_fat", "protein", "fiber", "calories",
}

// ValidateProduct checks the record for blank identity fields and invalid
// nutrient amounts, and its additive list for blank or oversized codes.
// It returns nil or a *ValidationError.
func ValidateProduct(r NutritionRecord, additives []string) error {
	errs := r.fieldErrors()
	for i, code := range additives {
		field := fmt.Sprintf("additives[%d]", i)
		switch {
		case code == "" || strings.TrimSpace(code) != code:
			errs = append(errs, FieldError{Field: field, Message: "must be a non-blank code without surrounding spaces"})
		case len(code) > maxAdditiveCodeLen:
			errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf("must be at most %d characters", maxAdditiveCodeLen)})
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func (r NutritionRecord) fieldErrors() []FieldError {
	var errs []FieldError
	required := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, FieldError{Field: field, Message: "is required"})
		}
	}
	amount := func(field string, v float64) {
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			errs = append(errs, FieldError{Field: field, Message: "must be a finite number"})
		case v < 0:
			errs = append(errs, FieldError{Field: field, Message: "must not be negative"})
		}
	}

	required("barcode", r.Barcode)
	if len(r.Barcode) > maxBarcodeLen {
		errs = append(errs, FieldError{Field: "barcode", Message: fmt.Sprintf("must be at most %d characters", maxBarcodeLen)})
	}
	required("name", r.Name)
	required("brand", r.Brand)

	n := r.Nutrition
	amount("sugar", n.Sugar)
	amount("salt", n.Salt)
	amount("fat", n.Fat)
	amount("saturated_fat", n.SaturatedFat)
	amount("protein", n.Protein)
	amount("fiber", n.Fiber)
	amount("calories", n.Calories)

	return errs
}

// withDefaults fills the optional fields left empty by the caller.
func (r NutritionRecord) withDefaults() NutritionRecord {
	if strings.TrimSpace(r.Category) == "" {
		r.Category = DefaultCategory
	}
	return r
}
