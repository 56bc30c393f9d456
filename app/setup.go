package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sahilchouksey/todo-api/api"
	"github.com/sahilchouksey/todo-api/config"
	"github.com/sahilchouksey/todo-api/database"
	"github.com/sahilchouksey/todo-api/router"
	"github.com/sahilchouksey/todo-api/utils"
	"github.com/sahilchouksey/todo-api/utils/middleware"
	"github.com/sirupsen/logrus"
)

// OpenStore connects the configured backend. A connection failure is logged
// and replaced by an UnavailableStore so the server still starts; a migration
// failure is logged and the store is used as-is.
func OpenStore(env *config.EnviornmentVariable, log *logrus.Logger) database.Storage {
	var store database.Storage
	var err error

	switch env.DB_DRIVER {
	case "pq":
		store, err = database.Start(env)
	default:
		store, err = database.StartGORM(env, log)
	}
	if err != nil {
		log.WithError(err).WithField("driver", env.DB_DRIVER).Error("An error occurred while connecting to the database")
		return database.NewUnavailableStore(err)
	}

	if err := store.Init(); err != nil {
		log.WithError(err).Error("An error occurred while creating the database")
		return store
	}

	if env.SEED_TODOS {
		if err := database.RunSeeds(context.Background(), store, log); err != nil {
			log.WithError(err).Error("An error occurred while seeding the database")
		}
	}

	return store
}

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	log := utils.NewLogger("todo-api", getEnv.LOG_LEVEL, getEnv.LOG_FORMAT)

	store := OpenStore(getEnv, log)

	// Defer Closing DB
	defer func() {
		if err := store.Close(); err != nil {
			log.WithError(err).Warn("Failed to close the database")
		}
	}()

	// Init API
	server := api.NewAPIServer(getEnv.Addr(), log)
	app := server.GetEngine()

	// Attach Middleware
	middleware.SetupSecurity(app, middleware.SecurityConfig{
		RateLimitRequests: getEnv.RATE_LIMIT_REQUESTS,
		RateLimitWindow:   getEnv.RATE_LIMIT_WINDOW,
		Logger:            log,
	})

	// Setup Routes
	router.SetupRoutes(app, store, log)

	// Shut down on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		if err := server.Shutdown(); err != nil {
			log.WithError(err).Error("Failed to shut down the server")
		}
	}()

	// Start the Server
	return server.Run()
}
