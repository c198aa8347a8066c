package taxcalc

import (
	"math"
	"time"
)

// Flat tax rates. Stored obligations are derived eagerly at write time, so a
// rate change here does not touch existing rows.
const (
	IncomeTaxRate   = 0.17
	PropertyTaxRate = 0.012
)

// IncomeTaxDue derives the annual income tax obligation from gross income.
func IncomeTaxDue(income int64) int64 {
	return int64(math.Floor(float64(income) * IncomeTaxRate))
}

// PropertyTax derives the annual property tax obligation from the assessed
// property value.
func PropertyTax(propertyValue int64) int64 {
	return int64(math.Floor(float64(propertyValue) * PropertyTaxRate))
}

// DueDate returns the fixed filing deadline applied to every profile.
func DueDate() time.Time {
	return time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC)
}
