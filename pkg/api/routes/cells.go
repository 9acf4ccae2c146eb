package routes

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/paulmach/orb"
	"github.com/travigo/railaccess/pkg/accessibility"
	"github.com/travigo/railaccess/pkg/ctdf"
	"github.com/travigo/railaccess/pkg/output"
	"github.com/travigo/railaccess/pkg/util"
)

func CellsRouter(router fiber.Router, results *Results) {
	router.Get("/", func(c *fiber.Ctx) error {
		return listCells(c, results)
	})
	router.Get("/:identifier", func(c *fiber.Ctx) error {
		return getCell(c, results)
	})
}

func getTierQuery(c *fiber.Ctx) (map[accessibility.Tier]bool, error) {
	query := c.Query("tier")
	if query == "" {
		return nil, nil
	}

	tiers := map[accessibility.Tier]bool{}
	for _, name := range strings.Split(query, ",") {
		tier, err := accessibility.ParseTier(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		tiers[tier] = true
	}

	return tiers, nil
}

func getBoundsQuery(c *fiber.Ctx) (*orb.Bound, error) {
	bounds := c.Query("bounds")
	if bounds == "" {
		return nil, nil
	}

	boundsSplit := strings.Split(bounds, ",")
	if len(boundsSplit) != 4 {
		return nil, errors.New("Bounds must contain 4 co-ordinates")
	}

	var values [4]float64
	for i, value := range boundsSplit {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, errors.New("Bounds must be numeric")
		}
		values[i] = parsed
	}

	return &orb.Bound{
		Min: orb.Point{values[0], values[1]},
		Max: orb.Point{values[2], values[3]},
	}, nil
}

func listCells(c *fiber.Ctx, results *Results) error {
	tiers, err := getTierQuery(c)
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	bounds, err := getBoundsQuery(c)
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	cells := append([]*ctdf.PopulationCell{}, results.Cells...)
	util.InPlaceFilter(&cells, func(cell *ctdf.PopulationCell) bool {
		if tiers != nil && !tiers[cell.Accessibility] {
			return false
		}
		if bounds != nil && !bounds.Contains(cell.Location.Point()) {
			return false
		}
		return true
	})

	c.Set(fiber.HeaderContentType, "application/geo+json")
	return c.JSON(output.CellsFeatureCollection(cells))
}

func getCell(c *fiber.Ctx, results *Results) error {
	cell := results.Cell(c.Params("identifier"))

	if cell == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Cell matching Grid Identifier",
		})
	}

	cellReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic", "detailed"},
	}, cell)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce Cell",
		})
	}

	return c.JSON(cellReduced)
}
