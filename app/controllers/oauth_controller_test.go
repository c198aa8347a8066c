package controllers

import (
	"testing"

	"github.com/markbates/goth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civitax/CiviTax/app/models"
)

func TestUserFromClaims(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", "clerk@city.gov, Treasurer@City.gov")

	tests := []struct {
		name      string
		claim     goth.User
		wantFirst string
		wantLast  string
		wantRole  string
	}{
		{
			name:      "split name fallback",
			claim:     goth.User{UserID: "sub-1", Email: "jane@example.com", Name: "Jane Q Resident"},
			wantFirst: "Jane",
			wantLast:  "Q Resident",
			wantRole:  models.ROLE_USER,
		},
		{
			name:      "explicit first and last preferred",
			claim:     goth.User{UserID: "sub-2", Email: "jane@example.com", FirstName: "Jane", LastName: "Resident", Name: "ignored"},
			wantFirst: "Jane",
			wantLast:  "Resident",
			wantRole:  models.ROLE_USER,
		},
		{
			name:      "allowlisted email gets admin role case-insensitively",
			claim:     goth.User{UserID: "sub-3", Email: "TREASURER@city.gov"},
			wantRole:  models.ROLE_ADMIN,
		},
		{
			name:     "empty email never matches the allowlist",
			claim:    goth.User{UserID: "sub-4"},
			wantRole: models.ROLE_USER,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			user := userFromClaims(tc.claim)
			assert.Equal(t, tc.claim.UserID, user.ID)
			assert.Equal(t, tc.wantFirst, user.FirstName)
			assert.Equal(t, tc.wantLast, user.LastName)
			assert.Equal(t, tc.wantRole, user.Role)
			// A claim without an email maps to NULL so the unique index
			// never collides for providers that omit the address.
			if tc.claim.Email == "" {
				assert.Nil(t, user.Email)
			} else {
				require.NotNil(t, user.Email)
				assert.Equal(t, tc.claim.Email, *user.Email)
			}
		})
	}
}
