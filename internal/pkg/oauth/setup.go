package oauth

import (
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"
	redisstorage "github.com/gofiber/storage/redis"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"
	"github.com/markbates/goth/providers/openidConnect"
	gothfiber "github.com/shareed2k/goth_fiber"

	"github.com/civitax/CiviTax/internal/pkg/cache"
	"github.com/civitax/CiviTax/internal/pkg/env"
)

// Setup initializes Goth providers and the OAuth state store based on
// environment variables. Safe to call multiple times; providers are simply
// re-registered.
func Setup() {
	base := strings.TrimRight(env.GetEnv("PUBLIC_DOMAIN", ""), "/")
	if base == "" {
		base = "http://localhost:" + env.GetEnv("APP_PORT", "4000")
	}

	providers := []goth.Provider{
		google.New(
			env.GetEnv("GOOGLE_KEY", ""),
			env.GetEnv("GOOGLE_SECRET", ""),
			base+"/auth/google/callback",
			"email", "profile",
		),
	}

	// Generic OIDC provider for municipal identity platforms
	if discovery := env.GetEnv("OIDC_DISCOVERY_URL", ""); discovery != "" {
		if oidc, err := openidConnect.New(
			env.GetEnv("OIDC_CLIENT_ID", ""),
			env.GetEnv("OIDC_CLIENT_SECRET", ""),
			base+"/auth/openid-connect/callback",
			discovery,
			"openid", "email", "profile",
		); err == nil && oidc != nil {
			providers = append(providers, oidc)
		}
	}

	goth.UseProviders(providers...)

	// OAuth state via Redis, using the same connection as app sessions
	// but a separate database
	cacheClient := cache.GetClient()
	cacheOpts := cacheClient.Options()
	host, port := "127.0.0.1", 6379
	if cacheOpts != nil && cacheOpts.Addr != "" {
		if h, p, err := net.SplitHostPort(cacheOpts.Addr); err == nil {
			host = h
			if parsed, e := strconv.Atoi(p); e == nil {
				port = parsed
			}
		} else {
			host = cacheOpts.Addr
		}
	}

	gothfiber.SessionStore = session.New(session.Config{
		Storage: redisstorage.New(redisstorage.Config{
			Host:     host,
			Port:     port,
			Username: cacheOpts.Username,
			Password: cacheOpts.Password,
			Database: 2,
			Reset:    false,
		}),
		KeyLookup:      "cookie:" + gothic.SessionName,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		CookieSecure:   !env.IsDev(),
		Expiration:     72 * time.Hour,
	})
}
