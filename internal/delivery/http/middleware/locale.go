package middleware

import (
	"wow-campus/internal/i18n"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxLocalizerKey  = "localizer"
	LocaleCookieName = "app_lang"
)

// Locale resolves the request language from ?lang, the app_lang cookie and
// Accept-Language, and echoes it in Content-Language.
func Locale() fiber.Handler {
	return func(c fiber.Ctx) error {
		loc := i18n.Resolve(c.Query("lang"), c.Cookies(LocaleCookieName), c.Get(fiber.HeaderAcceptLanguage))
		c.Locals(CtxLocalizerKey, i18n.New(loc))
		c.Set(fiber.HeaderContentLanguage, string(loc))
		return c.Next()
	}
}

// Localizer falls back to the default locale when the middleware did not run.
func Localizer(c fiber.Ctx) i18n.Localizer {
	if l, ok := c.Locals(CtxLocalizerKey).(i18n.Localizer); ok {
		return l
	}
	return i18n.New(i18n.Default)
}
