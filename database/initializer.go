package database

import (
	"log"
	"strings"
)

func (s *PostgreSQLStore) Initialize() error {
	log.Println("Initializing PostgresSQL Database.", "Initializing Enums")
	if err := s.InitEnums(); err != nil {
		return err
	}
	log.Println("Initializing PostgresSQL Database.", "Initializing Tables")
	return s.InitTables()
}

func (s *PostgreSQLStore) InitEnums() error {
	query := `
		DO $$
		BEGIN
           	IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'todo_priority') THEN
				CREATE TYPE todo_priority AS ENUM ('Low', 'Medium', 'High');
           	END IF;
		END $$;
	`
	_, err := s.db.Exec(query)

	return err
}

func (s *PostgreSQLStore) InitTables() error {
	todos_table := `
	CREATE TABLE IF NOT EXISTS todos (
		id BIGINT PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		title VARCHAR(100) NOT NULL CHECK (title <> ''),
		description VARCHAR(500),
		is_complete BOOLEAN NOT NULL DEFAULT FALSE,
		created_date TIMESTAMPTZ NOT NULL DEFAULT now(),
		category VARCHAR(50),
		priority todo_priority NOT NULL DEFAULT 'Medium'
	);
	`
	todos_priority_index := `
	CREATE INDEX IF NOT EXISTS idx_todos_priority ON todos (priority);
	`

	all_tables := strings.Join([]string{todos_table, todos_priority_index}, "")

	_, err := s.db.Exec(all_tables)
	return err
}
