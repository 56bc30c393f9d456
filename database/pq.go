package database

import (
	"context"
	"database/sql"
	"errors"
	"log"

	_ "github.com/lib/pq"
	"github.com/sahilchouksey/todo-api/config"
	"github.com/sahilchouksey/todo-api/model"
)

// ErrTodoNotFound is returned when no row matches the requested id
var ErrTodoNotFound = errors.New("todo not found")

// Storage defines the interface that all database implementations must satisfy
type Storage interface {
	// Lifecycle methods
	Init() error
	Close() error
	HealthCheck() error

	// Todo methods
	InsertTodo(ctx context.Context, todo *model.Todo) error
	FindTodoByID(ctx context.Context, id int64) (*model.Todo, error)
	ListTodos(ctx context.Context) ([]model.Todo, error)
	ReplaceTodo(ctx context.Context, id int64, todo *model.Todo) error
	DeleteTodo(ctx context.Context, id int64) error
	FilterTodos(ctx context.Context, filter model.TodoFilter) ([]model.Todo, error)
}

// PostgreSQLStore talks to Postgres through database/sql and lib/pq
type PostgreSQLStore struct {
	db *sql.DB
}

// Start opens a lib/pq pool. The first query establishes the connection.
func Start(env *config.EnviornmentVariable) (*PostgreSQLStore, error) {
	db, err := sql.Open("postgres", env.PostgresDSN())
	if err != nil {
		log.Println("Unable to Start PostgresSQL Database.")
		return nil, err
	}

	log.Println("Successfully opened PostgresSQL Database.")
	return NewPostgreSQLStore(db), nil
}

func NewPostgreSQLStore(db *sql.DB) *PostgreSQLStore {
	return &PostgreSQLStore{db: db}
}

func (s *PostgreSQLStore) Init() error {
	log.Println("Initializing PostgresSQL Database.")
	return s.Initialize()
}

func (s *PostgreSQLStore) Close() error {
	log.Println("Closing PostgresSQL Database.")
	return s.db.Close()
}

// HealthCheck verifies the database connection is alive
func (s *PostgreSQLStore) HealthCheck() error {
	return s.db.Ping()
}
