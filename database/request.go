package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sahilchouksey/todo-api/model"
	queryHelper "github.com/sahilchouksey/todo-api/utils/query"
)

const selectTodoColumns = `SELECT id, title, description, is_complete, created_date, category, priority FROM todos`

func (s *PostgreSQLStore) InsertTodo(ctx context.Context, todo *model.Todo) error {
	query := `
		INSERT INTO todos (title, description, is_complete, created_date, category, priority)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;
	`

	todo.CreatedDate = creationTime()

	err := s.db.QueryRowContext(ctx, query,
		todo.Title,
		todo.Description,
		todo.IsComplete,
		todo.CreatedDate,
		todo.Category,
		todo.Priority,
	).Scan(&todo.ID)
	if err != nil {
		return fmt.Errorf("insert todo: %w", err)
	}
	return nil
}

func (s *PostgreSQLStore) FindTodoByID(ctx context.Context, id int64) (*model.Todo, error) {
	row := s.db.QueryRowContext(ctx, selectTodoColumns+" WHERE id = $1;", id)

	todo, err := scanIntoTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTodoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find todo %d: %w", id, err)
	}
	return todo, nil
}

func (s *PostgreSQLStore) ListTodos(ctx context.Context) ([]model.Todo, error) {
	return s.queryTodos(ctx, selectTodoColumns+" ORDER BY id;")
}

func (s *PostgreSQLStore) ReplaceTodo(ctx context.Context, id int64, todo *model.Todo) error {
	query, values := queryHelper.UpdateQueryBuilder("todos", "id", id, []queryHelper.Column{
		{Name: "title", Value: todo.Title},
		{Name: "description", Value: todo.Description},
		{Name: "is_complete", Value: todo.IsComplete},
		{Name: "category", Value: todo.Category},
		{Name: "priority", Value: todo.Priority},
	})

	result, err := s.db.ExecContext(ctx, query, values...)
	if err != nil {
		return fmt.Errorf("update todo %d: %w", id, err)
	}
	if err := expectOneRow(result); err != nil {
		return err
	}

	todo.ID = id
	return nil
}

func (s *PostgreSQLStore) DeleteTodo(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM todos WHERE id = $1;", id)
	if err != nil {
		return fmt.Errorf("delete todo %d: %w", id, err)
	}
	return expectOneRow(result)
}

func (s *PostgreSQLStore) FilterTodos(ctx context.Context, filter model.TodoFilter) ([]model.Todo, error) {
	var conditions []string
	var args []interface{}

	if strings.TrimSpace(filter.Term) != "" {
		args = append(args, queryHelper.ContainsPattern(filter.Term))
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			`(LOWER(title) LIKE LOWER($%d) ESCAPE '\' OR LOWER(COALESCE(description, '')) LIKE LOWER($%d) ESCAPE '\')`, n, n))
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		conditions = append(conditions, fmt.Sprintf("priority = $%d", len(args)))
	}

	query := selectTodoColumns
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id;"

	return s.queryTodos(ctx, query, args...)
}

func (s *PostgreSQLStore) queryTodos(ctx context.Context, query string, args ...interface{}) ([]model.Todo, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}
	defer rows.Close()

	todos := []model.Todo{}
	for rows.Next() {
		todo, err := scanIntoTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, *todo)
	}

	return todos, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanIntoTodo(row rowScanner) (*model.Todo, error) {
	todo := new(model.Todo)
	err := row.Scan(
		&todo.ID,
		&todo.Title,
		&todo.Description,
		&todo.IsComplete,
		&todo.CreatedDate,
		&todo.Category,
		&todo.Priority,
	)
	if err != nil {
		return nil, err
	}
	todo.CreatedDate = todo.CreatedDate.UTC()
	return todo, nil
}

func expectOneRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTodoNotFound
	}
	return nil
}
