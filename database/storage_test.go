package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/sahilchouksey/todo-api/model"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func strPtr(s string) *string { return &s }

// newSQLiteStore returns a migrated GORM store over a private in-memory database
func newSQLiteStore(t *testing.T) *GORMStore {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	store := NewGORMStore(db)
	require.NoError(t, store.Init())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func postgresDSN(t *testing.T) string {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}
	return dsn
}

func TestGORMStoreSQLite(t *testing.T) {
	runStorageContract(t, func(t *testing.T) Storage {
		return newSQLiteStore(t)
	})
}

func TestGORMStorePostgres(t *testing.T) {
	dsn := postgresDSN(t)

	runStorageContract(t, func(t *testing.T) Storage {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Discard})
		require.NoError(t, err)
		require.NoError(t, db.Exec("DROP TABLE IF EXISTS todos").Error)

		store := NewGORMStore(db)
		require.NoError(t, store.Init())
		t.Cleanup(func() { _ = store.Close() })
		return store
	})
}

func TestPostgreSQLStore(t *testing.T) {
	dsn := postgresDSN(t)

	runStorageContract(t, func(t *testing.T) Storage {
		db, err := sql.Open("postgres", dsn)
		require.NoError(t, err)
		_, err = db.Exec("DROP TABLE IF EXISTS todos")
		require.NoError(t, err)

		store := NewPostgreSQLStore(db)
		require.NoError(t, store.Init())
		t.Cleanup(func() { _ = store.Close() })
		return store
	})
}

// runStorageContract exercises the behaviour every Storage must share
func runStorageContract(t *testing.T, newStore func(t *testing.T) Storage) {
	ctx := context.Background()

	t.Run("insert assigns id and creation time", func(t *testing.T) {
		store := newStore(t)

		todo := &model.Todo{ID: 99, Title: "Buy milk", Priority: model.PriorityMedium}
		require.NoError(t, store.InsertTodo(ctx, todo))

		assert.NotZero(t, todo.ID)
		assert.NotEqual(t, int64(99), todo.ID)
		assert.False(t, todo.CreatedDate.IsZero())

		found, err := store.FindTodoByID(ctx, todo.ID)
		require.NoError(t, err)
		assert.Equal(t, todo.Title, found.Title)
		assert.Nil(t, found.Description)
		assert.Nil(t, found.Category)
		assert.False(t, found.IsComplete)
		assert.Equal(t, model.PriorityMedium, found.Priority)
		assert.True(t, todo.CreatedDate.Equal(found.CreatedDate))
	})

	t.Run("find missing id", func(t *testing.T) {
		store := newStore(t)

		_, err := store.FindTodoByID(ctx, 12345)
		assert.True(t, errors.Is(err, ErrTodoNotFound))
	})

	t.Run("list returns every row in id order", func(t *testing.T) {
		store := newStore(t)

		empty, err := store.ListTodos(ctx)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		for _, title := range []string{"one", "two", "three"} {
			require.NoError(t, store.InsertTodo(ctx, &model.Todo{Title: title, Priority: model.PriorityLow}))
		}

		todos, err := store.ListTodos(ctx)
		require.NoError(t, err)
		require.Len(t, todos, 3)
		assert.Equal(t, "one", todos[0].Title)
		assert.Equal(t, "three", todos[2].Title)
	})

	t.Run("replace overwrites mutable fields only", func(t *testing.T) {
		store := newStore(t)

		original := &model.Todo{Title: "Draft", Description: strPtr("old"), Category: strPtr("work"), Priority: model.PriorityLow}
		require.NoError(t, store.InsertTodo(ctx, original))

		replacement := &model.Todo{Title: "Final", IsComplete: true, Priority: model.PriorityHigh}
		require.NoError(t, store.ReplaceTodo(ctx, original.ID, replacement))
		assert.Equal(t, original.ID, replacement.ID)

		found, err := store.FindTodoByID(ctx, original.ID)
		require.NoError(t, err)
		assert.Equal(t, "Final", found.Title)
		assert.Nil(t, found.Description)
		assert.Nil(t, found.Category)
		assert.True(t, found.IsComplete)
		assert.Equal(t, model.PriorityHigh, found.Priority)
		assert.True(t, original.CreatedDate.Equal(found.CreatedDate))
	})

	t.Run("replace missing id", func(t *testing.T) {
		store := newStore(t)

		err := store.ReplaceTodo(ctx, 404, &model.Todo{Title: "ghost", Priority: model.PriorityLow})
		assert.True(t, errors.Is(err, ErrTodoNotFound))

		todos, err := store.ListTodos(ctx)
		require.NoError(t, err)
		assert.Empty(t, todos)
	})

	t.Run("delete removes the row", func(t *testing.T) {
		store := newStore(t)

		todo := &model.Todo{Title: "Temporary", Priority: model.PriorityLow}
		require.NoError(t, store.InsertTodo(ctx, todo))
		require.NoError(t, store.DeleteTodo(ctx, todo.ID))

		_, err := store.FindTodoByID(ctx, todo.ID)
		assert.True(t, errors.Is(err, ErrTodoNotFound))
		assert.True(t, errors.Is(store.DeleteTodo(ctx, todo.ID), ErrTodoNotFound))
	})

	t.Run("filter by term and priority", func(t *testing.T) {
		store := newStore(t)

		seed := []*model.Todo{
			{Title: "Learn Go", Description: strPtr("Complete the tutorial"), Priority: model.PriorityHigh},
			{Title: "Build a REST API", Description: strPtr("Fiber and GORM"), Priority: model.PriorityMedium},
			{Title: "Write docs", Description: strPtr("Document the rest endpoints"), Priority: model.PriorityHigh},
			{Title: "Groceries", Priority: model.PriorityLow},
			{Title: "100% coverage", Priority: model.PriorityLow},
		}
		for _, todo := range seed {
			require.NoError(t, store.InsertTodo(ctx, todo))
		}

		all, err := store.FilterTodos(ctx, model.TodoFilter{})
		require.NoError(t, err)
		assert.Len(t, all, len(seed))

		blank, err := store.FilterTodos(ctx, model.TodoFilter{Term: "   "})
		require.NoError(t, err)
		assert.Len(t, blank, len(seed))

		rest, err := store.FilterTodos(ctx, model.TodoFilter{Term: "REST"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Build a REST API", "Write docs"}, titles(rest))

		high, err := store.FilterTodos(ctx, model.TodoFilter{Priority: model.PriorityHigh})
		require.NoError(t, err)
		assert.Equal(t, []string{"Learn Go", "Write docs"}, titles(high))

		both, err := store.FilterTodos(ctx, model.TodoFilter{Term: "rest", Priority: model.PriorityHigh})
		require.NoError(t, err)
		assert.Equal(t, []string{"Write docs"}, titles(both))

		literal, err := store.FilterTodos(ctx, model.TodoFilter{Term: "0%"})
		require.NoError(t, err)
		assert.Equal(t, []string{"100% coverage"}, titles(literal))

		none, err := store.FilterTodos(ctx, model.TodoFilter{Term: "_"})
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("filter matches non-ascii and keeps spaces in the term", func(t *testing.T) {
		store := newStore(t)

		for _, todo := range []*model.Todo{
			{Title: "Éclair recipe", Priority: model.PriorityLow},
			{Title: "Build a REST API", Priority: model.PriorityMedium},
			{Title: "APIs overview", Description: strPtr("Pâtisserie notes"), Priority: model.PriorityLow},
		} {
			require.NoError(t, store.InsertTodo(ctx, todo))
		}

		eclair, err := store.FilterTodos(ctx, model.TodoFilter{Term: "Éclair"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Éclair recipe"}, titles(eclair))

		pastry, err := store.FilterTodos(ctx, model.TodoFilter{Term: "pâtisserie"})
		require.NoError(t, err)
		assert.Equal(t, []string{"APIs overview"}, titles(pastry))

		spaced, err := store.FilterTodos(ctx, model.TodoFilter{Term: " api"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Build a REST API"}, titles(spaced))

		api, err := store.FilterTodos(ctx, model.TodoFilter{Term: "api"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Build a REST API", "APIs overview"}, titles(api))
	})
}

func titles(todos []model.Todo) []string {
	out := make([]string, 0, len(todos))
	for _, todo := range todos {
		out = append(out, todo.Title)
	}
	return out
}

func TestUnavailableStore(t *testing.T) {
	cause := errors.New("connection refused")
	store := NewUnavailableStore(cause)
	ctx := context.Background()

	assert.ErrorIs(t, store.HealthCheck(), cause)
	assert.ErrorIs(t, store.InsertTodo(ctx, &model.Todo{}), cause)
	_, err := store.ListTodos(ctx)
	assert.ErrorIs(t, err, cause)
	_, err = store.FindTodoByID(ctx, 1)
	assert.ErrorIs(t, err, cause)
	assert.False(t, errors.Is(err, ErrTodoNotFound))
	assert.NoError(t, store.Close())
}

func TestSeedTodos(t *testing.T) {
	store := newSQLiteStore(t)
	log := logrus.New()
	log.SetOutput(io.Discard)
	ctx := context.Background()

	require.NoError(t, RunSeeds(ctx, store, log))
	todos, err := store.ListTodos(ctx)
	require.NoError(t, err)
	assert.Len(t, todos, len(SampleTodos()))

	// a second run leaves the table alone
	require.NoError(t, RunSeeds(ctx, store, log))
	todos, err = store.ListTodos(ctx)
	require.NoError(t, err)
	assert.Len(t, todos, len(SampleTodos()))
}
