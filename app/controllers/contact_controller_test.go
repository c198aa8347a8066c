package controllers

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civitax/CiviTax/app/models"
)

func TestContactCreateStoresMessage(t *testing.T) {
	repo := &fakeContactMessageRepo{}
	cc := NewContactController(repo)
	app := newTestApp(userCtx("user-1"), fiber.MethodPost, "/api/contact", cc.HandleCreate)

	resp, err := app.Test(jsonRequest(fiber.MethodPost, "/api/contact", fiber.Map{
		"subject": "Wrong due date",
		"message": "My due date looks off by a year.",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.ContactMessage
	require.NoError(t, decodeBody(resp, &got))
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "Wrong due date", got.Subject)
	assert.NotEmpty(t, got.ID)
}

func TestContactCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		body fiber.Map
	}{
		{"missing subject", fiber.Map{"message": "hello there"}},
		{"missing message", fiber.Map{"subject": "hello"}},
		{"short subject", fiber.Map{"subject": "a", "message": "hello there"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cc := NewContactController(&fakeContactMessageRepo{})
			app := newTestApp(userCtx("user-1"), fiber.MethodPost, "/api/contact", cc.HandleCreate)

			resp, err := app.Test(jsonRequest(fiber.MethodPost, "/api/contact", tc.body))
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestContactListScopedToCaller(t *testing.T) {
	repo := &fakeContactMessageRepo{}
	require.NoError(t, repo.Create(&models.ContactMessage{UserID: "user-1", Subject: "First", Message: "first message"}))
	require.NoError(t, repo.Create(&models.ContactMessage{UserID: "user-2", Subject: "Other", Message: "not yours"}))
	require.NoError(t, repo.Create(&models.ContactMessage{UserID: "user-1", Subject: "Second", Message: "second message"}))

	cc := NewContactController(repo)
	app := newTestApp(userCtx("user-1"), fiber.MethodGet, "/api/contact-messages", cc.HandleList)

	resp, err := app.Test(jsonRequest(fiber.MethodGet, "/api/contact-messages", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var list []models.ContactMessage
	require.NoError(t, decodeBody(resp, &list))
	require.Len(t, list, 2)
	assert.Equal(t, "First", list[0].Subject)
	assert.Equal(t, "Second", list[1].Subject)
}

func TestContactListEmptyIsArray(t *testing.T) {
	cc := NewContactController(&fakeContactMessageRepo{})
	app := newTestApp(userCtx("user-1"), fiber.MethodGet, "/api/contact-messages", cc.HandleList)

	resp, err := app.Test(jsonRequest(fiber.MethodGet, "/api/contact-messages", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var list []models.ContactMessage
	require.NoError(t, decodeBody(resp, &list))
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
