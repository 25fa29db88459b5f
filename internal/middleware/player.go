package middleware

import (
	"strings"
	"unicode"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

const maxPlayerIDLen = 64

// EnsurePlayerID stores the caller's player ID in c.Locals("playerID"),
// taken from the X-Player-ID header or the playerId query parameter.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("playerID") != nil {
			return c.Next()
		}

		playerID := c.Get("X-Player-ID")
		if playerID == "" {
			playerID = c.Query("playerId")
		}

		if playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Player ID is required. Please ensure client is properly initialized.",
			})
		}
		if !validPlayerID(playerID) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Player ID must be at most 64 printable characters without spaces.",
			})
		}

		// the ID outlives the request in games, queues and the archive, so it
		// must not alias fasthttp's reused buffer
		c.Locals("playerID", utils.CopyString(playerID))
		return c.Next()
	}
}

func validPlayerID(id string) bool {
	if len(id) > maxPlayerIDLen {
		return false
	}
	return strings.IndexFunc(id, func(r rune) bool {
		return unicode.IsSpace(r) || !unicode.IsPrint(r)
	}) < 0
}
