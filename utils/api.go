package utils

import (
	fiber "github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/todo-api/database"
)

// MakeHTTPHandleFunc binds a store-aware handler to a plain fiber.Handler
func MakeHTTPHandleFunc(handler func(c *fiber.Ctx, store database.Storage) error, store database.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return handler(c, store)
	}
}
