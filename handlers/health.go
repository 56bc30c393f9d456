package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/todo-api/database"
	"github.com/sahilchouksey/todo-api/utils/response"
)

func HandleCheckHealth(c *fiber.Ctx, store database.Storage) error {
	if err := store.HealthCheck(); err != nil {
		return response.ServiceUnavailable(c, "Database is not reachable")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// RouteInfo describes one registered route
type RouteInfo struct {
	Method string   `json:"method"`
	Path   string   `json:"path"`
	Params []string `json:"params"`
}

// HandleListRoutes answers with the routes registered on the app, skipping
// the HEAD twins fiber adds for every GET
func HandleListRoutes(c *fiber.Ctx) error {
	routes := []RouteInfo{}
	for _, route := range c.App().GetRoutes(true) {
		if route.Method == fiber.MethodHead {
			continue
		}
		params := route.Params
		if params == nil {
			params = []string{}
		}
		routes = append(routes, RouteInfo{
			Method: route.Method,
			Path:   route.Path,
			Params: params,
		})
	}
	return response.Success(c, routes)
}
