package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sahilchouksey/todo-api/config"
	"github.com/sahilchouksey/todo-api/model"
	queryHelper "github.com/sahilchouksey/todo-api/utils/query"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type GORMStore struct {
	db *gorm.DB
}

// StartGORM opens a GORM connection to Postgres or to an embedded SQLite file,
// depending on DB_DRIVER
func StartGORM(env *config.EnviornmentVariable, appLog *logrus.Logger) (*GORMStore, error) {
	var dialector gorm.Dialector
	switch env.DB_DRIVER {
	case "sqlite":
		dialector = sqlite.Open(env.DB_PATH)
	default:
		dialector = postgres.Open(env.PostgresDSN())
	}

	// Configure GORM logger
	logLevel := logger.Info
	if env.GO_ENV == "production" {
		logLevel = logger.Error
	}
	gormLogger := logger.New(appLog, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logLevel,
		IgnoreRecordNotFoundError: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:      gormLogger,
		PrepareStmt: true,
	})
	if err != nil {
		log.Println("Unable to connect to the database with GORM:", err)
		return nil, err
	}

	// Get underlying *sql.DB to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if env.DB_DRIVER == "sqlite" {
		// SQLite serializes writers; one connection avoids SQLITE_BUSY
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	log.Printf("Successfully connected to %s database with GORM.", env.DB_DRIVER)

	return NewGORMStore(db), nil
}

func NewGORMStore(db *gorm.DB) *GORMStore {
	return &GORMStore{db: db}
}

// Init runs the AutoMigrate to create/update the todos table
func (s *GORMStore) Init() error {
	log.Println("Running GORM AutoMigrate for todos...")

	if err := s.db.AutoMigrate(&model.Todo{}); err != nil {
		log.Println("Error running AutoMigrate:", err)
		return err
	}

	log.Println("GORM AutoMigrate completed successfully!")
	return nil
}

// Close closes the database connection
func (s *GORMStore) Close() error {
	log.Println("Closing GORM database connection...")
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// HealthCheck verifies the database connection is alive
func (s *GORMStore) HealthCheck() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// InsertTodo assigns the id and creation time and persists the row
func (s *GORMStore) InsertTodo(ctx context.Context, todo *model.Todo) error {
	todo.ID = 0
	todo.CreatedDate = creationTime()

	if err := s.db.WithContext(ctx).Create(todo).Error; err != nil {
		return fmt.Errorf("insert todo: %w", err)
	}
	return nil
}

func (s *GORMStore) FindTodoByID(ctx context.Context, id int64) (*model.Todo, error) {
	var todo model.Todo
	err := s.db.WithContext(ctx).First(&todo, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTodoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find todo %d: %w", id, err)
	}
	todo.CreatedDate = todo.CreatedDate.UTC()
	return &todo, nil
}

func (s *GORMStore) ListTodos(ctx context.Context) ([]model.Todo, error) {
	return s.findTodos(s.db.WithContext(ctx))
}

// ReplaceTodo overwrites every mutable column. created_date is never touched.
func (s *GORMStore) ReplaceTodo(ctx context.Context, id int64, todo *model.Todo) error {
	result := s.db.WithContext(ctx).
		Model(&model.Todo{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":       todo.Title,
			"description": todo.Description,
			"is_complete": todo.IsComplete,
			"category":    todo.Category,
			"priority":    todo.Priority,
		})
	if result.Error != nil {
		return fmt.Errorf("update todo %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTodoNotFound
	}

	todo.ID = id
	return nil
}

func (s *GORMStore) DeleteTodo(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&model.Todo{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete todo %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTodoNotFound
	}
	return nil
}

// FilterTodos matches the term as a case-insensitive substring of title or
// description, ANDed with an exact priority match
func (s *GORMStore) FilterTodos(ctx context.Context, filter model.TodoFilter) ([]model.Todo, error) {
	query := s.db.WithContext(ctx)

	if strings.TrimSpace(filter.Term) != "" {
		pattern := queryHelper.ContainsPattern(filter.Term)
		query = query.Where(
			`(LOWER(title) LIKE LOWER(?) ESCAPE '\' OR LOWER(COALESCE(description, '')) LIKE LOWER(?) ESCAPE '\')`,
			pattern, pattern)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}

	return s.findTodos(query)
}

func (s *GORMStore) findTodos(query *gorm.DB) ([]model.Todo, error) {
	todos := []model.Todo{}
	if err := query.Order("id").Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}
	for i := range todos {
		todos[i].CreatedDate = todos[i].CreatedDate.UTC()
	}
	return todos, nil
}

// creationTime is truncated to the precision every backend keeps
func creationTime() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
