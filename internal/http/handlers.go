package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mange/backend/internal/domain"
	"github.com/mange/backend/internal/service"
)

func Register(app *fiber.App, svcs *service.Services) {
	app.Post("/login", login(svcs))
	app.Post("/users", createUser(svcs))

	g := app.Group("/", RequireToken(svcs))

	g.Get("branches", func(c *fiber.Ctx) error {
		items, err := svcs.Repos.ListBranches(c.Context())
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(items)
	})
	g.Post("branches", createBranch(svcs))
	g.Get("branches/:id", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid branch id")
		}
		b, err := svcs.Repos.BranchByID(c.Context(), int64(id))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(b)
	})
	g.Put("branches/:id/reading", updateReading(svcs))
	g.Post("branches/:id/liquidate", liquidate(svcs))
	g.Get("branches/:id/consumption", totalConsumption(svcs))
	g.Get("branches/:id/records", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid branch id")
		}
		items, err := svcs.Repos.ListRecords(c.Context(), int64(id))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(items)
	})
	g.Get("records/over", overConsumption(svcs))

	g.Post("areas", createArea(svcs))
	g.Get("branches/:id/areas", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid branch id")
		}
		items, err := svcs.Repos.ListAreas(c.Context(), int64(id))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(items)
	})

	g.Post("equipment", createEquipment(svcs))
	g.Get("areas/:id/equipment", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid area id")
		}
		items, err := svcs.Repos.ListEquipment(c.Context(), int64(id))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(items)
	})

	g.Post("groups", createGroup(svcs))
	g.Get("groups", func(c *fiber.Ctx) error {
		items, err := svcs.Repos.ListGroups(c.Context())
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(items)
	})

	g.Post("maintenance/review", func(c *fiber.Ctx) error {
		findings, err := svcs.Maintenance.ReviewEquipment(c.Context())
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(findings)
	})
}

func login(svcs *service.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Name     string `json:"name"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		token, err := svcs.Auth.Login(c.Context(), body.Name, body.Password)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"token": token.Value})
	}
}

func createUser(svcs *service.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Name     string `json:"name"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.Name == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name and password are required")
		}
		user, err := svcs.Auth.CreateUser(c.Context(), body.Name, body.Password)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(user)
	}
}

func createBranch(svcs *service.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Name         string `json:"name"`
			LastReading  int64  `json:"last_reading"`
			Reading      int64  `json:"reading"`
			MonthlyLimit int64  `json:"monthly_limit"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		b, err := svcs.Billing.CreateBranch(c.Context(), body.Name, body.LastReading, body.Reading, body.MonthlyLimit)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(b)
	}
}

func updateReading(svcs *service.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid branch id")
		}
		var body struct {
			Reading int64 `json:"reading"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := svcs.Repos.UpdateReading(c.Context(), int64(id), body.Reading); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func liquidate(svcs *service.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid branch id")
		}
		var body struct {
			Date time.Time `json:"date"`
		}
		if err := c.BodyParser(&body); err != nil && len(c.Body()) > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		b, err := svcs.Repos.BranchByID(c.Context(), int64(id))
		if err != nil {
			return fail(c, err)
		}
		rec, err := svcs.Billing.Liquidate(c.Context(), b, body.Date)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(rec)
	}
}

func totalConsumption(svcs *service.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid branch id")
		}
		start, end, err := dateWindow(c)
		if err != nil {
			return err
		}
		total, err := svcs.Billing.TotalConsumption(c.Context(), &domain.Branch{ID: int64(id)}, start, end)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"total": total})
	}
}

func overConsumption(svcs *service.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end, err := dateWindow(c)
		if err != nil {
			return err
		}
		items, err := svcs.Billing.OverConsumption(c.Context(), start, end)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(items)
	}
}

func createArea(svcs *service.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var a domain.Area
		if err := c.BodyParser(&a); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := svcs.Repos.InsertArea(c.Context(), &a); err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(a)
	}
}

func createEquipment(svcs *service.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var e domain.Equipment
		if err := c.BodyParser(&e); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := svcs.Repos.InsertEquipment(c.Context(), &e); err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(e)
	}
}

func createGroup(svcs *service.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var g domain.Group
		if err := c.BodyParser(&g); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := svcs.Repos.InsertGroup(c.Context(), &g); err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(g)
	}
}

func dateWindow(c *fiber.Ctx) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "invalid start date")
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "invalid end date")
	}
	return start, end, nil
}

func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrUniqueness):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrReferentialIntegrity), errors.Is(err, domain.ErrInvalidReading):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrAuthentication):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
