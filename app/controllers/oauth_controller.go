package controllers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/markbates/goth"
	gothfiber "github.com/shareed2k/goth_fiber"

	"github.com/civitax/CiviTax/app/models"
	"github.com/civitax/CiviTax/app/repository"
	"github.com/civitax/CiviTax/internal/pkg/env"
	"github.com/civitax/CiviTax/internal/pkg/session"
	"github.com/civitax/CiviTax/internal/pkg/usercontext"
)

// OAuthController completes the identity provider flow and maintains the
// local user record.
type OAuthController struct {
	users repository.UserRepository
}

// NewOAuthController creates an OAuth controller with its repository dependency.
func NewOAuthController(users repository.UserRepository) *OAuthController {
	return &OAuthController{users: users}
}

// HandleCallback completes the provider flow, upserts the user row from the
// identity claim and logs the user in. The subject id from the claim is
// trusted as-is; it is the primary key of the users table.
func (oc *OAuthController) HandleCallback(c *fiber.Ctx) error {
	u, err := gothfiber.CompleteUserAuth(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(fmt.Sprintf("OAuth failed: %v", err))
	}
	if u.UserID == "" {
		return c.Status(fiber.StatusBadRequest).SendString("OAuth failed: provider returned no subject id")
	}

	user := userFromClaims(u)
	persisted, err := oc.users.Upsert(user)
	if err != nil {
		fiberlog.Error(fmt.Sprintf("upsert user %s failed: %v", u.UserID, err))
		return c.Status(fiber.StatusInternalServerError).SendString("login failed")
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("login failed")
	}
	sess.Set(usercontext.AuthKey, true)
	sess.Set(usercontext.KeyUserID, persisted.ID)
	sess.Set(usercontext.KeyUsername, persisted.DisplayName())
	sess.Set(usercontext.KeyIsAdmin, persisted.IsAdmin())
	if err := sess.Save(); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("login failed")
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

// userFromClaims maps the provider claim onto the local user row. The admin
// role is granted by the ADMIN_EMAILS allowlist on every login, so revoking
// an address there takes effect on the next sign-in.
func userFromClaims(u goth.User) *models.User {
	role := models.ROLE_USER
	if isAdminEmail(u.Email) {
		role = models.ROLE_ADMIN
	}

	firstName := u.FirstName
	lastName := u.LastName
	if firstName == "" && u.Name != "" {
		parts := strings.SplitN(u.Name, " ", 2)
		firstName = parts[0]
		if len(parts) > 1 {
			lastName = parts[1]
		}
	}

	// Email stays NULL when the claim has none; an empty string would
	// collide on the unique index the second time a provider omits it.
	var email *string
	if e := strings.TrimSpace(u.Email); e != "" {
		email = &e
	}

	return &models.User{
		ID:              u.UserID,
		Email:           email,
		FirstName:       firstName,
		LastName:        lastName,
		ProfileImageURL: u.AvatarURL,
		Role:            role,
	}
}

func isAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	for _, admin := range strings.Split(env.GetEnv("ADMIN_EMAILS", ""), ",") {
		if strings.ToLower(strings.TrimSpace(admin)) == email {
			return true
		}
	}
	return false
}
