package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/journeyresolver/pkg/api/routes"
)

func NewApp(resolver routes.JourneyResolver) *fiber.App {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.PlannerRouter(group.Group("/planner"), resolver)

	return webApp
}

func SetupServer(listen string, resolver routes.JourneyResolver) error {
	return NewApp(resolver).Listen(listen)
}
