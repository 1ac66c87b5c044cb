package server

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten signals that the handler already wrote an error
// response to the client; callers should return nil to Fiber.
var errResponseWritten = errors.New("response already written")

const maxPaginationLimit = 100

// Pagination carries the parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

// parsePagination reads limit/offset from the query string, clamping the
// limit to maxPaginationLimit. Writes a 400 response and returns
// errResponseWritten on malformed input.
func parsePagination(c *fiber.Ctx, defaultLimit int) (Pagination, error) {
	p := Pagination{Limit: defaultLimit}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid limit parameter",
			})
			return p, errResponseWritten
		}
		if limit > maxPaginationLimit {
			limit = maxPaginationLimit
		}
		p.Limit = limit
	}

	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid offset parameter",
			})
			return p, errResponseWritten
		}
		p.Offset = offset
	}

	return p, nil
}

// parseID parses a numeric path parameter. Writes a 400 response and
// returns errResponseWritten when the value is not a positive integer.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	raw := c.Params(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid " + humanizeParam(param),
		})
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// actorID returns the authenticated user's ID from locals, or 0 when the
// request is unauthenticated.
func actorID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}

// humanizeParam turns a camelCase route parameter into words for error
// messages ("userId" -> "user id").
func humanizeParam(param string) string {
	return strings.ToLower(strings.Join(splitCamel(param), " "))
}

func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}
