package routes

import "github.com/gofiber/fiber/v2"

func StationsRouter(router fiber.Router, results *Results) {
	router.Get("/", func(c *fiber.Ctx) error {
		if results.Stations == nil {
			c.SendStatus(fiber.StatusNotFound)
			return c.JSON(fiber.Map{
				"error": "No station layer was written for these results",
			})
		}

		c.Set(fiber.HeaderContentType, "application/geo+json")
		return c.JSON(results.Stations)
	})
}
