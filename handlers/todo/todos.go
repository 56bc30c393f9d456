package todo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/todo-api/database"
	"github.com/sahilchouksey/todo-api/model"
	"github.com/sahilchouksey/todo-api/utils/middleware"
	"github.com/sahilchouksey/todo-api/utils/response"
	"github.com/sahilchouksey/todo-api/utils/validation"
	"github.com/sirupsen/logrus"
)

// ErrorMessage is the only failure text a client sees for unexpected errors
const ErrorMessage = "An error occurred while processing your request."

// TodoHandler handles todo-related requests
type TodoHandler struct {
	store     database.Storage
	validator *validation.Validator
	log       *logrus.Logger
}

// NewTodoHandler creates a new todo handler
func NewTodoHandler(store database.Storage, log *logrus.Logger) *TodoHandler {
	return &TodoHandler{
		store:     store,
		validator: validation.NewValidator(),
		log:       log,
	}
}

// TodoRequest is the body accepted by create and update. The id is only
// compared against the path on update; createdDate is never read.
type TodoRequest struct {
	ID          *int64         `json:"id"`
	Title       string         `json:"title" validate:"required,notblank,max=100"`
	Description *string        `json:"description" validate:"omitempty,max=500"`
	IsComplete  bool           `json:"isComplete"`
	Category    *string        `json:"category" validate:"omitempty,max=50"`
	Priority    model.Priority `json:"priority" validate:"oneof=Low Medium High"`
}

func (r *TodoRequest) normalize() {
	r.Title = validation.SanitizeString(r.Title)
	r.Description = validation.SanitizeOptional(r.Description)
	r.Category = validation.SanitizeOptional(r.Category)
	if r.Priority == "" {
		r.Priority = model.PriorityMedium
	}
}

func (r *TodoRequest) toTodo() *model.Todo {
	return &model.Todo{
		Title:       r.Title,
		Description: r.Description,
		IsComplete:  r.IsComplete,
		Category:    r.Category,
		Priority:    r.Priority,
	}
}

func (h *TodoHandler) entry(c *fiber.Ctx) *logrus.Entry {
	return h.log.WithFields(logrus.Fields{
		"component":  "todo_handler",
		"request_id": middleware.GetRequestID(c),
	})
}

func notFoundMessage(id int64) string {
	return fmt.Sprintf("Todo with ID %d not found", id)
}

func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// decodeBody parses a todo payload. It writes the 400 itself and returns
// false when the body is not JSON.
func (h *TodoHandler) decodeBody(c *fiber.Ctx, req *TodoRequest) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		h.entry(c).WithError(err).Warn("Invalid todo request body")
		return false, response.BadRequest(c, "Invalid request body")
	}
	return true, nil
}

// validateBody normalizes a decoded payload and checks its constraints.
func (h *TodoHandler) validateBody(c *fiber.Ctx, req *TodoRequest) (bool, error) {
	req.normalize()

	if err := h.validator.ValidateStruct(req); err != nil {
		details := validation.FormatValidationErrors(err)
		h.entry(c).WithField("fields", details).Warn("Todo validation failed")
		return false, response.ValidationError(c, details)
	}
	return true, nil
}

// ListTodos handles GET /api/todo
func (h *TodoHandler) ListTodos(c *fiber.Ctx) error {
	todos, err := h.store.ListTodos(c.UserContext())
	if err != nil {
		h.entry(c).WithError(err).Error("Error occurred while getting all todos")
		return response.InternalServerError(c, ErrorMessage)
	}

	h.entry(c).WithField("count", len(todos)).Info("Listed todos")
	return response.Success(c, todos)
}

// GetTodo handles GET /api/todo/:id
func (h *TodoHandler) GetTodo(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.BadRequest(c, "Invalid todo ID")
	}
	log := h.entry(c).WithField("todo_id", id)

	todo, err := h.store.FindTodoByID(c.UserContext(), id)
	if errors.Is(err, database.ErrTodoNotFound) {
		log.Warn("Todo not found")
		return response.NotFound(c, notFoundMessage(id))
	}
	if err != nil {
		log.WithError(err).Error("Error occurred while getting todo")
		return response.InternalServerError(c, ErrorMessage)
	}

	log.Info("Fetched todo")
	return response.Success(c, todo)
}

// CreateTodo handles POST /api/todo
func (h *TodoHandler) CreateTodo(c *fiber.Ctx) error {
	var req TodoRequest
	if ok, err := h.decodeBody(c, &req); !ok {
		return err
	}
	if ok, err := h.validateBody(c, &req); !ok {
		return err
	}

	todo := req.toTodo()
	if err := h.store.InsertTodo(c.UserContext(), todo); err != nil {
		h.entry(c).WithError(err).Error("Error occurred while creating todo")
		return response.InternalServerError(c, ErrorMessage)
	}

	h.entry(c).WithField("todo_id", todo.ID).Info("Created new todo")
	return response.Created(c, fmt.Sprintf("/api/todo/%d", todo.ID), todo)
}

// UpdateTodo handles PUT /api/todo/:id
func (h *TodoHandler) UpdateTodo(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.BadRequest(c, "Invalid todo ID")
	}
	log := h.entry(c).WithField("todo_id", id)

	var req TodoRequest
	if ok, err := h.decodeBody(c, &req); !ok {
		return err
	}
	if req.ID == nil || *req.ID != id {
		log.Warn("Todo update rejected: ID mismatch")
		return response.BadRequest(c, "ID mismatch")
	}
	if ok, err := h.validateBody(c, &req); !ok {
		return err
	}

	err := h.store.ReplaceTodo(c.UserContext(), id, req.toTodo())
	if errors.Is(err, database.ErrTodoNotFound) {
		log.Warn("Todo not found during update")
		return response.NotFound(c, notFoundMessage(id))
	}
	if err != nil {
		log.WithError(err).Error("Error occurred while updating todo")
		return response.InternalServerError(c, ErrorMessage)
	}

	log.Info("Updated todo")
	return response.NoContent(c)
}

// DeleteTodo handles DELETE /api/todo/:id
func (h *TodoHandler) DeleteTodo(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.BadRequest(c, "Invalid todo ID")
	}
	log := h.entry(c).WithField("todo_id", id)

	_, err := h.store.FindTodoByID(c.UserContext(), id)
	if err == nil {
		err = h.store.DeleteTodo(c.UserContext(), id)
	}
	if errors.Is(err, database.ErrTodoNotFound) {
		log.Warn("Todo not found for deletion")
		return response.NotFound(c, notFoundMessage(id))
	}
	if err != nil {
		log.WithError(err).Error("Error occurred while deleting todo")
		return response.InternalServerError(c, ErrorMessage)
	}

	log.Info("Deleted todo")
	return response.NoContent(c)
}

// SearchTodos handles GET /api/todo/search?term=&priority=
// A blank term or priority means "any"; an unknown priority is a 400.
// A non-blank term is matched as sent, surrounding spaces included.
func (h *TodoHandler) SearchTodos(c *fiber.Ctx) error {
	var filter model.TodoFilter
	if term := c.Query("term"); strings.TrimSpace(term) != "" {
		filter.Term = term
	}

	if raw := strings.TrimSpace(c.Query("priority")); raw != "" {
		priority, err := model.ParsePriority(raw)
		if err != nil {
			h.entry(c).WithField("priority", raw).Warn("Invalid priority in todo search")
			return response.ValidationError(c, map[string]string{
				"priority": "priority must be one of: Low, Medium, High",
			})
		}
		filter.Priority = priority
	}

	todos, err := h.store.FilterTodos(c.UserContext(), filter)
	if err != nil {
		h.entry(c).WithError(err).Error("Error occurred while searching todos")
		return response.InternalServerError(c, ErrorMessage)
	}

	h.entry(c).WithFields(logrus.Fields{
		"term":     filter.Term,
		"priority": filter.Priority,
		"count":    len(todos),
	}).Info("Searched todos")
	return response.Success(c, todos)
}
