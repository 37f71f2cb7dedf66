package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestIDKey - ключ request id в locals и имя заголовка
const RequestIDKey = "X-Request-ID"

// RequestID - middleware, проставляющее уникальный идентификатор запроса.
// Входящий заголовок уважается, чтобы не рвать сквозную трассировку.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(RequestIDKey)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Locals(RequestIDKey, requestID)
		c.Set(RequestIDKey, requestID)

		return c.Next()
	}
}
