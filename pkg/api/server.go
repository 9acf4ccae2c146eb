package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/railaccess/pkg/api/routes"
)

func NewApp(results *routes.Results) *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(NewLogger())

	webApp.Get("/", routes.MapPage)

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.CellsRouter(group.Group("/cells"), results)
	routes.TiersRouter(group.Group("/tiers"), results)
	routes.StationsRouter(group.Group("/stations"), results)

	return webApp
}

func SetupServer(listen string, results *routes.Results) error {
	return NewApp(results).Listen(listen)
}
