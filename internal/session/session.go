// Package session carries the logged-in doctor's identity between
// requests as a signed token delivered in an HTTP-only cookie.
package session

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/medregistry/clinic-backend/internal/config"
)

// CookieName is the session cookie set on login.
const CookieName = "clinic_session"

// Establish sets the session token as a cookie bound to the doctor.
// HTTPOnly keeps it out of script reach; SameSite=Strict blocks
// cross-site request forgery in a browser context.
func Establish(c *fiber.Ctx, token string, cfg *config.Config) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  time.Now().Add(cfg.SessionExpiry),
		HTTPOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
	})
}

// Clear expires the session cookie unconditionally.
func Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Path:     "/",
	})
}

// CurrentDoctorID extracts the doctor UUID from the verified token claims
// placed in context by the session middleware.
func CurrentDoctorID(c *fiber.Ctx) (uuid.UUID, error) {
	claims, err := claimsFromContext(c)
	if err != nil {
		return uuid.Nil, err
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}

// CurrentDoctorName returns the display name recorded in the session, or
// an empty string when the claim is absent.
func CurrentDoctorName(c *fiber.Ctx) string {
	claims, err := claimsFromContext(c)
	if err != nil {
		return ""
	}
	name, _ := claims["name"].(string)
	return name
}

func claimsFromContext(c *fiber.Ctx) (jwt.MapClaims, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	return claims, nil
}
