package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/journeyresolver/pkg/api/routes"
)

const requestIDHeader = "X-Request-ID"

// NewLogger tags every request with an id and writes one access line, including the resolve outcome when the
// planner handled the request
func NewLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDHeader, requestID)

		started := time.Now()
		handlerErr := c.Next()
		if handlerErr != nil {
			// Let the app error handler write the response so the logged status is the one sent
			if err := c.App().ErrorHandler(c, handlerErr); err != nil {
				c.Status(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()

		event := accessLogEvent(status).
			Str("request_id", requestID).
			Int("status", status).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Dur("latency", time.Since(started))

		if outcome, ok := c.Locals(routes.ResolveOutcomeKey).(string); ok {
			event = event.Str("outcome", outcome)
		}
		if handlerErr != nil {
			event = event.Err(handlerErr)
		}

		event.Msg("Request served")

		return nil
	}
}

func accessLogEvent(status int) *zerolog.Event {
	switch {
	case status >= fiber.StatusInternalServerError:
		return log.Error()
	case status >= fiber.StatusBadRequest:
		return log.Warn()
	default:
		return log.Info()
	}
}
