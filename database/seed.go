package database

import (
	"context"
	"fmt"

	"github.com/sahilchouksey/todo-api/model"
	"github.com/sirupsen/logrus"
)

// Seeder handles database seeding operations
type Seeder struct {
	store Storage
	log   *logrus.Logger
}

// NewSeeder creates a new seeder instance
func NewSeeder(store Storage, log *logrus.Logger) *Seeder {
	return &Seeder{store: store, log: log}
}

// RunSeeds seeds every table that is still empty
func RunSeeds(ctx context.Context, store Storage, log *logrus.Logger) error {
	return NewSeeder(store, log).SeedAll(ctx)
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll(ctx context.Context) error {
	s.log.Info("Starting database seeding")

	if err := s.SeedTodos(ctx); err != nil {
		return fmt.Errorf("failed to seed todos: %w", err)
	}

	s.log.Info("Database seeding completed")
	return nil
}

// SampleTodos returns the rows inserted into an empty table
func SampleTodos() []model.Todo {
	learnDesc := "Complete the tutorial and build a sample application"
	apiDesc := "Create a RESTful API using Go and Fiber"

	return []model.Todo{
		{
			Title:       "Learn Go",
			Description: &learnDesc,
			Priority:    model.PriorityHigh,
		},
		{
			Title:       "Build a REST API",
			Description: &apiDesc,
			Priority:    model.PriorityMedium,
		},
	}
}

// SeedTodos inserts the sample todos unless the table already has rows
func (s *Seeder) SeedTodos(ctx context.Context) error {
	existing, err := s.store.ListTodos(ctx)
	if err != nil {
		return err
	}

	if len(existing) > 0 {
		s.log.WithField("count", len(existing)).Info("Todos already exist, skipping")
		return nil
	}

	for _, todo := range SampleTodos() {
		todo := todo
		if err := s.store.InsertTodo(ctx, &todo); err != nil {
			return err
		}
		s.log.WithField("todo_id", todo.ID).Info("Seeded todo")
	}

	return nil
}
