package middleware

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/ulule/limiter/v3"
)

// RateLimit throttles requests per client IP. Store errors let the request through.
func RateLimit(store limiter.Store, rate limiter.Rate) fiber.Handler {
	lim := limiter.New(store, rate)
	return func(c *fiber.Ctx) error {
		res, err := lim.Get(c.UserContext(), c.IP())
		if err != nil {
			log.Printf("rate limiter: %v", err)
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.FormatInt(res.Limit, 10))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(res.Reset, 10))

		if res.Reached {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many requests, slow down"})
		}
		return c.Next()
	}
}
