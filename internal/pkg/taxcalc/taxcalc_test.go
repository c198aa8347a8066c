package taxcalc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIncomeTaxDue(t *testing.T) {
	tests := []struct {
		income int64
		want   int64
	}{
		{income: 0, want: 0},
		{income: 1, want: 0},
		{income: 100, want: 17},
		{income: 50000, want: 8500},
		{income: 60000, want: 10200},
		{income: 99999, want: 16999},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IncomeTaxDue(tt.income), "income %d", tt.income)
	}
}

func TestPropertyTax(t *testing.T) {
	tests := []struct {
		value int64
		want  int64
	}{
		{value: 0, want: 0},
		{value: 50, want: 0},
		{value: 1000, want: 12},
		{value: 150000, want: 1800},
		{value: 200000, want: 2400},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PropertyTax(tt.value), "value %d", tt.value)
	}
}

func TestDueDateIsFixed(t *testing.T) {
	want := time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, want, DueDate())
	// Two calls must agree; the deadline is not derived from the clock.
	assert.Equal(t, DueDate(), DueDate())
}
