package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// Ayudantes para recursos CRUD simples: todos leen :id, validan el cuerpo y mapean errores igual.

func listHandler[T any](list func(context.Context) ([]T, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := list(c.UserContext())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

func getHandler[T any](get func(context.Context, int64) (*T, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c)
		if !ok {
			return nil
		}
		out, err := get(c.UserContext(), id)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

func createHandler[In, Out any](create func(context.Context, In) (*Out, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in In
		if err := parseBody(c, &in); err != nil {
			return nil
		}
		out, err := create(c.UserContext(), in)
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

func updateHandler[In, Out any](update func(context.Context, int64, In) (*Out, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c)
		if !ok {
			return nil
		}
		var in In
		if err := parseBody(c, &in); err != nil {
			return nil
		}
		out, err := update(c.UserContext(), id, in)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

func deleteHandler(del func(context.Context, int64) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c)
		if !ok {
			return nil
		}
		if err := del(c.UserContext(), id); err != nil {
			return writeError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
