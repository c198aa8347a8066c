package controllers

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civitax/CiviTax/app/models"
)

func TestAnalyticsAggregatesProfileAndPayments(t *testing.T) {
	profiles := newFakeTaxProfileRepo()
	require.NoError(t, profiles.Create(&models.TaxProfile{
		UserID:       "user-1",
		Income:       50000,
		IncomeTaxDue: 8500,
		PropertyTax:  2400,
		ElectricBill: 120,
		GasBill:      80,
	}))

	pay := newFakePaymentRepo()
	require.NoError(t, pay.Create(&models.Payment{UserID: "user-1", TaxProfileID: "p1", Amount: 3000, PaymentType: models.PaymentTypeIncomeTax, Status: models.PaymentStatusCompleted}))
	require.NoError(t, pay.Create(&models.Payment{UserID: "user-1", TaxProfileID: "p1", Amount: 2000, PaymentType: models.PaymentTypePropertyTax, Status: models.PaymentStatusCompleted}))
	// pending and failed rows appear in history but not in totals
	require.NoError(t, pay.Create(&models.Payment{UserID: "user-1", TaxProfileID: "p1", Amount: 999, PaymentType: models.PaymentTypeUtilityBill, Status: models.PaymentStatusPending}))
	require.NoError(t, pay.Create(&models.Payment{UserID: "user-1", TaxProfileID: "p1", Amount: 500, PaymentType: models.PaymentTypeUtilityBill, Status: models.PaymentStatusFailed}))
	// another user's payment must not leak in
	require.NoError(t, pay.Create(&models.Payment{UserID: "user-2", TaxProfileID: "p2", Amount: 7000, PaymentType: models.PaymentTypeIncomeTax, Status: models.PaymentStatusCompleted}))

	ac := NewAnalyticsController(profiles, pay)
	app := newTestApp(userCtx("user-1"), fiber.MethodGet, "/api/analytics", ac.HandleGet)

	resp, err := app.Test(jsonRequest(fiber.MethodGet, "/api/analytics", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		TotalTaxOwed     int64 `json:"totalTaxOwed"`
		TotalPaid        int64 `json:"totalPaid"`
		MonthlyUtilities int64 `json:"monthlyUtilities"`
		TaxBreakdown     struct {
			IncomeTax   int64 `json:"incomeTax"`
			PropertyTax int64 `json:"propertyTax"`
			Utilities   int64 `json:"utilities"`
		} `json:"taxBreakdown"`
		PaymentHistory []models.Payment `json:"paymentHistory"`
	}
	require.NoError(t, decodeBody(resp, &got))

	assert.Equal(t, int64(10900), got.TotalTaxOwed)
	assert.Equal(t, int64(5000), got.TotalPaid)
	assert.Equal(t, int64(200), got.MonthlyUtilities)
	assert.Equal(t, int64(8500), got.TaxBreakdown.IncomeTax)
	assert.Equal(t, int64(2400), got.TaxBreakdown.PropertyTax)
	assert.Equal(t, int64(2400), got.TaxBreakdown.Utilities)
	assert.Len(t, got.PaymentHistory, 4)
}

func TestAnalyticsWithoutProfile(t *testing.T) {
	ac := NewAnalyticsController(newFakeTaxProfileRepo(), newFakePaymentRepo())
	app := newTestApp(userCtx("user-1"), fiber.MethodGet, "/api/analytics", ac.HandleGet)

	resp, err := app.Test(jsonRequest(fiber.MethodGet, "/api/analytics", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAnalyticsEmptyHistory(t *testing.T) {
	profiles := newFakeTaxProfileRepo()
	require.NoError(t, profiles.Create(&models.TaxProfile{
		UserID:       "user-1",
		IncomeTaxDue: 8500,
		PropertyTax:  2400,
	}))

	ac := NewAnalyticsController(profiles, newFakePaymentRepo())
	app := newTestApp(userCtx("user-1"), fiber.MethodGet, "/api/analytics", ac.HandleGet)

	resp, err := app.Test(jsonRequest(fiber.MethodGet, "/api/analytics", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		TotalPaid      int64            `json:"totalPaid"`
		PaymentHistory []models.Payment `json:"paymentHistory"`
	}
	require.NoError(t, decodeBody(resp, &got))
	assert.Zero(t, got.TotalPaid)
	assert.NotNil(t, got.PaymentHistory)
	assert.Empty(t, got.PaymentHistory)
}
