package controllers

import (
	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"

	"github.com/civitax/CiviTax/internal/pkg/session"
	"github.com/civitax/CiviTax/internal/pkg/statistics"
	"github.com/civitax/CiviTax/internal/pkg/usercontext"
)

// HandleIndex renders the landing page. The real dashboard lives in the
// external SPA; this page only links into the sign-in flow.
func HandleIndex(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	stats := statistics.GetHomeStats()
	return c.Render("index", fiber.Map{
		"LoggedIn":      userCtx.IsLoggedIn,
		"Username":      userCtx.Username,
		"TotalUsers":    stats.TotalUsers,
		"TotalProfiles": stats.TotalProfiles,
	})
}

// HandleLoginPage renders the provider picker.
func HandleLoginPage(c *fiber.Ctx) error {
	if usercontext.IsLoggedIn(c) {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return c.Render("login", fiber.Map{})
}

// HandleOAuthLogin starts the provider flow for /auth/:provider.
func HandleOAuthLogin(c *fiber.Ctx) error {
	return gothfiber.BeginAuthHandler(c)
}

// HandleAuthLogout destroys the session and returns to the login page.
func HandleAuthLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	if err := sess.Destroy(); err != nil {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	c.Locals(usercontext.KeyFromProtected, false)
	return c.Redirect("/login", fiber.StatusSeeOther)
}
