package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sahilchouksey/todo-api/config"
	"github.com/sahilchouksey/todo-api/database"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStoreSQLiteSeeds(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	env := &config.EnviornmentVariable{
		GO_ENV:     "production",
		DB_DRIVER:  "sqlite",
		DB_PATH:    filepath.Join(t.TempDir(), "todos.db"),
		SEED_TODOS: true,
	}

	store := OpenStore(env, log)
	t.Cleanup(func() { _ = store.Close() })

	_, ok := store.(*database.GORMStore)
	require.True(t, ok)

	todos, err := store.ListTodos(context.Background())
	require.NoError(t, err)
	assert.Len(t, todos, len(database.SampleTodos()))
}

func TestOpenStoreFallsBackWhenDatabaseIsDown(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	env := &config.EnviornmentVariable{
		GO_ENV:       "production",
		DB_DRIVER:    "postgres",
		DB_HOST:      "127.0.0.1",
		DB_PORT:      "1",
		DB_NAME:      "todos",
		DB_USER_NAME: "todo",
		DB_SSL_MODE:  "disable",
	}

	store := OpenStore(env, log)

	_, ok := store.(*database.UnavailableStore)
	assert.True(t, ok)
	assert.Error(t, store.HealthCheck())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "An error occurred while connecting to the database", hook.LastEntry().Message)
}
