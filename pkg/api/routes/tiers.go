package routes

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/travigo/railaccess/pkg/accessibility"
)

type legendEntry struct {
	Tier        accessibility.Tier `json:"tier"`
	Colour      string             `json:"colour"`
	Description string             `json:"description"`
	Cells       int                `json:"cells"`
	Population  int                `json:"population"`
}

func describeTier(tier accessibility.Tier) string {
	threshold, ok := accessibility.ThresholdFor(tier)
	if !ok {
		return "Everything else"
	}
	return fmt.Sprintf("Within %g km of a station with at least %g stops per day", threshold.MaxDistanceKm, threshold.MinAvgDailyStops)
}

func TiersRouter(router fiber.Router, results *Results) {
	router.Get("/", func(c *fiber.Ctx) error {
		legend := make([]*legendEntry, 0, len(accessibility.Tiers()))
		entries := map[accessibility.Tier]*legendEntry{}

		for _, tier := range accessibility.Tiers() {
			entry := &legendEntry{
				Tier:        tier,
				Colour:      tier.Colour(),
				Description: describeTier(tier),
			}
			entries[tier] = entry
			legend = append(legend, entry)
		}

		for _, cell := range results.Cells {
			if entry, exists := entries[cell.Accessibility]; exists {
				entry.Cells += 1
				entry.Population += cell.Population
			}
		}

		return c.JSON(legend)
	})
}
