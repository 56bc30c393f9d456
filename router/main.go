package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/todo-api/database"
	"github.com/sahilchouksey/todo-api/handlers"
	todo_handlers "github.com/sahilchouksey/todo-api/handlers/todo"
	"github.com/sahilchouksey/todo-api/utils"
	"github.com/sirupsen/logrus"
)

func SetupRoutes(app *fiber.App, store database.Storage, log *logrus.Logger) {
	todoHandler := todo_handlers.NewTodoHandler(store, log)

	// Health check endpoint
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, store))

	api := app.Group("/api")

	// Route description
	api.Get("/routes", handlers.HandleListRoutes)

	// Todo routes; search is registered ahead of /:id
	todos := api.Group("/todo")
	todos.Get("/", todoHandler.ListTodos)
	todos.Get("/search", todoHandler.SearchTodos)
	todos.Get("/:id", todoHandler.GetTodo)
	todos.Post("/", todoHandler.CreateTodo)
	todos.Put("/:id", todoHandler.UpdateTodo)
	todos.Delete("/:id", todoHandler.DeleteTodo)
}
