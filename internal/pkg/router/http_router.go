package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/civitax/CiviTax/app/controllers"
	"github.com/civitax/CiviTax/app/repository"
	"github.com/civitax/CiviTax/internal/pkg/middleware"
	"github.com/civitax/CiviTax/internal/pkg/oauth"
	"github.com/civitax/CiviTax/internal/pkg/session"
)

type HttpRouter struct {
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init oauth providers
	oauth.Setup()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	repos := repository.GetGlobalRepositories()
	oauthController := controllers.NewOAuthController(repos.User)

	app.Get("/", controllers.HandleIndex)
	app.Get("/login", controllers.HandleLoginPage)
	app.Get("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)

	app.Get("/auth/:provider", controllers.HandleOAuthLogin)
	app.Get("/auth/:provider/callback", oauthController.HandleCallback)
}
