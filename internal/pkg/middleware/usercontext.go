package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/civitax/CiviTax/internal/pkg/session"
	"github.com/civitax/CiviTax/internal/pkg/usercontext"
)

// UserContextMiddleware resolves the session into a UserContext for every
// request. OAuth routes are skipped because Goth drives its own fiber
// session store there and per-request locals would collide.
func UserContextMiddleware(c *fiber.Ctx) error {
	if strings.HasPrefix(c.Path(), "/auth/") {
		return c.Next()
	}

	anonymous := func() error {
		usercontext.SetUserContext(c, usercontext.UserContext{
			IsLoggedIn: false,
			IsAdmin:    false,
		})
		c.Locals(usercontext.KeyFromProtected, false)
		c.Locals(usercontext.KeyIsAdmin, false)
		return c.Next()
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return anonymous()
	}

	userID, _ := sess.Get(usercontext.KeyUserID).(string)
	if userID == "" {
		return anonymous()
	}

	username, _ := sess.Get(usercontext.KeyUsername).(string)
	isAdmin, _ := sess.Get(usercontext.KeyIsAdmin).(bool)

	usercontext.SetUserContext(c, usercontext.UserContext{
		UserID:     userID,
		Username:   username,
		IsLoggedIn: true,
		IsAdmin:    isAdmin,
	})

	c.Locals(usercontext.KeyFromProtected, true)
	c.Locals(usercontext.KeyUserID, userID)
	c.Locals(usercontext.KeyUsername, username)
	c.Locals(usercontext.KeyIsAdmin, isAdmin)

	return c.Next()
}
