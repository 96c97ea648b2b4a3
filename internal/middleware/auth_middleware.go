package middleware

import (
	"strings"

	"go-creamery-pos/internal/repository"
	"go-creamery-pos/pkg/jwt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// RequireAuth is middleware that validates JWT token and sets user info in context
func RequireAuth(tokens *jwt.Manager, userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "Missing authorization token")
		}

		tokenString, ok := bearerToken(authHeader)
		if !ok {
			return unauthorized(c, "Invalid authorization format. Use: Bearer <token>")
		}

		if msg := authenticate(c, tokens, userRepo, tokenString); msg != "" {
			return unauthorized(c, msg)
		}
		return c.Next()
	}
}

// RequireSocketAuth guards the /ws upgrade. The token is read from ?token=
// or the Authorization header.
func RequireSocketAuth(tokens *jwt.Manager, userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Query("token")
		if tokenString == "" {
			tokenString, _ = bearerToken(c.Get("Authorization"))
		}
		if tokenString == "" {
			return unauthorized(c, "Missing authorization token")
		}

		if msg := authenticate(c, tokens, userRepo, tokenString); msg != "" {
			return unauthorized(c, msg)
		}
		if !websocket.IsWebSocketUpgrade(c) {
			return c.SendStatus(fiber.StatusUpgradeRequired)
		}
		return c.Next()
	}
}

// bearerToken extracts the token from "Bearer <token>".
func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}
	return parts[1], true
}

// authenticate checks the token against the stored user and fills the request locals.
// It returns the rejection message, or "" when the caller may proceed.
func authenticate(c *fiber.Ctx, tokens *jwt.Manager, userRepo repository.UserRepository, tokenString string) string {
	claims, err := tokens.ValidateToken(tokenString)
	if err != nil {
		return "Invalid or expired token"
	}

	// Check strict session against DB
	user, err := userRepo.FindByID(c.UserContext(), claims.UserID)
	if err != nil {
		return "User not found"
	}
	if !user.IsActive {
		return "User is inactive"
	}
	if user.TokenVersion != claims.TokenVersion {
		return "Session expired (logged in on another device)"
	}

	// Privileges come from the DB row so revocations apply before the token expires
	c.Locals("user_id", claims.UserID.String())
	c.Locals("user_email", user.Email)
	c.Locals("user_name", user.FullName)
	c.Locals("user_role", user.RoleCode())
	c.Locals("user_privileges", user.GetPrivilegeCodes())
	return ""
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msg})
}

// RequirePrivilege checks if the authenticated user has the required privilege
func RequirePrivilege(requiredPrivilege string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		privileges, ok := c.Locals("user_privileges").([]string)
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "No privileges found"})
		}

		for _, p := range privileges {
			if p == requiredPrivilege {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Forbidden: requires '" + requiredPrivilege + "' privilege",
		})
	}
}

// RequireAnyPrivilege checks if the user has at least one of the specified privileges
func RequireAnyPrivilege(requiredPrivileges ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		privileges, ok := c.Locals("user_privileges").([]string)
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "No privileges found"})
		}

		for _, userPriv := range privileges {
			for _, reqPriv := range requiredPrivileges {
				if userPriv == reqPriv {
					return c.Next()
				}
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Forbidden: requires one of " + strings.Join(requiredPrivileges, ", ") + " privileges",
		})
	}
}
