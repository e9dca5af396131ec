package routes

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/rs/zerolog/log"
	"github.com/travigo/journeyresolver/pkg/ctdf"
)

// ResolveOutcomeKey is the fiber local holding the outcome class of a resolve request
const ResolveOutcomeKey = "resolveOutcome"

type JourneyResolver interface {
	Run(ctx context.Context, request ctdf.ResolveRequest) (*ctdf.ResultData, error)
}

func PlannerRouter(router fiber.Router, resolver JourneyResolver) {
	router.Post("/resolve", func(c *fiber.Ctx) error {
		return resolveJourney(c, resolver)
	})
}

// StatusForError maps a resolution failure onto the HTTP status returned with it
func StatusForError(err error) int {
	var providerError *ctdf.ProviderError

	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, ctdf.InvalidRequestError), errors.Is(err, ctdf.LocationRequiredError):
		return fiber.StatusBadRequest
	case errors.Is(err, ctdf.LocationNotFoundError), errors.Is(err, ctdf.NoJourneysFoundError):
		return fiber.StatusNotFound
	case errors.Is(err, ctdf.LowConfidenceIntentError), errors.Is(err, ctdf.NotJourneyQueryError):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	case errors.As(err, &providerError):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// OutcomeClass names the kind of failure behind err for access logs
func OutcomeClass(err error) string {
	var providerError *ctdf.ProviderError

	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ctdf.InvalidTimeError):
		return "invalid_time"
	case errors.Is(err, ctdf.InvalidRequestError):
		return "invalid_request"
	case errors.Is(err, ctdf.LocationRequiredError):
		return "location_required"
	case errors.Is(err, ctdf.LocationNotFoundError):
		return "location_not_found"
	case errors.Is(err, ctdf.NoJourneysFoundError):
		return "no_journeys"
	case errors.Is(err, ctdf.LowConfidenceIntentError):
		return "low_confidence"
	case errors.Is(err, ctdf.NotJourneyQueryError):
		return "not_journey"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &providerError):
		return "provider"
	default:
		return "internal"
	}
}

func resolveJourney(c *fiber.Ctx, resolver JourneyResolver) error {
	var request ctdf.ResolveRequest
	if err := c.BodyParser(&request); err != nil {
		c.Locals(ResolveOutcomeKey, OutcomeClass(ctdf.InvalidRequestError))
		c.Status(fiber.StatusBadRequest)
		return c.JSON(ctdf.ErrorResult(ctdf.InvalidRequestError))
	}

	var result ctdf.Result

	data, resolveErr := resolver.Run(c.UserContext(), request)
	c.Locals(ResolveOutcomeKey, OutcomeClass(resolveErr))
	if resolveErr != nil {
		log.Debug().Err(resolveErr).Msg("Journey resolution failed")
		result = ctdf.ErrorResult(resolveErr)
	} else {
		result = ctdf.SuccessResult(data)
	}

	groups := []string{"basic", "detailed"}
	if c.Query("detail") == "basic" {
		groups = []string{"basic"}
	}

	resultReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, result)
	if err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce Result",
		})
	}

	c.Status(StatusForError(resolveErr))
	return c.JSON(resultReduced)
}
