package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/sahilchouksey/todo-api/config"
	"github.com/sahilchouksey/todo-api/database"
	"github.com/sahilchouksey/todo-api/utils"
)

func main() {
	// Load environment variables
	if err := config.LoadENV(); err != nil {
		log.Println("Warning: could not read .env, using system environment variables:", err)
	}

	env, err := config.Get()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	appLog := utils.NewLogger("todo-seed", env.LOG_LEVEL, env.LOG_FORMAT)

	var store database.Storage
	if env.DB_DRIVER == "pq" {
		store, err = database.Start(env)
	} else {
		store, err = database.StartGORM(env, appLog)
	}
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Run seeds
	separator := strings.Repeat("=", 60)
	fmt.Println(separator)
	fmt.Println("Todo API - Database Seeding")
	fmt.Println(separator)
	fmt.Println()

	if err := database.RunSeeds(context.Background(), store, appLog); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	fmt.Println()
	fmt.Println(separator)
	fmt.Println("Seeding completed successfully!")
	fmt.Println(separator)
}
