package database

import (
	"context"
	"fmt"

	"github.com/sahilchouksey/todo-api/model"
)

// UnavailableStore stands in when the database could not be reached at
// startup. Every call fails with the original cause, so requests answer 500
// while the server keeps running.
type UnavailableStore struct {
	cause error
}

func NewUnavailableStore(cause error) *UnavailableStore {
	return &UnavailableStore{cause: cause}
}

func (s *UnavailableStore) err() error {
	return fmt.Errorf("database unavailable: %w", s.cause)
}

func (s *UnavailableStore) Init() error        { return s.err() }
func (s *UnavailableStore) Close() error       { return nil }
func (s *UnavailableStore) HealthCheck() error { return s.err() }

func (s *UnavailableStore) InsertTodo(context.Context, *model.Todo) error {
	return s.err()
}

func (s *UnavailableStore) FindTodoByID(context.Context, int64) (*model.Todo, error) {
	return nil, s.err()
}

func (s *UnavailableStore) ListTodos(context.Context) ([]model.Todo, error) {
	return nil, s.err()
}

func (s *UnavailableStore) ReplaceTodo(context.Context, int64, *model.Todo) error {
	return s.err()
}

func (s *UnavailableStore) DeleteTodo(context.Context, int64) error {
	return s.err()
}

func (s *UnavailableStore) FilterTodos(context.Context, model.TodoFilter) ([]model.Todo, error) {
	return nil, s.err()
}
