package middleware

import (
	"github.com/Behyna/wallet-service/internal/constants"
	"github.com/gofiber/fiber/v2"
)

const (
	// HeaderUserID carries the authenticated principal's user id, resolved
	// by the upstream authentication gateway.
	HeaderUserID = "X-User-Id"

	// LocalUserID is the fiber locals key handlers read the caller from.
	LocalUserID = "user_id"
)

// CallerIdentity threads the caller's user id from the gateway header into
// the request scope. Requests without an identity never reach a handler.
func CallerIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get(HeaderUserID)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    constants.ErrCodeUnauthorized,
				"message": constants.ErrMsgUnauthorized,
			})
		}

		c.Locals(LocalUserID, userID)
		return c.Next()
	}
}

// UserID returns the caller identity stored by CallerIdentity.
func UserID(c *fiber.Ctx) string {
	userID, _ := c.Locals(LocalUserID).(string)
	return userID
}
