package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Priority is stored and serialized by name, never by ordinal
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities lists the valid values in ascending order
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// ParsePriority accepts a priority name (any case) or its ordinal "0".."2"
func ParsePriority(s string) (Priority, error) {
	s = strings.TrimSpace(s)
	for _, p := range Priorities {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n < len(Priorities) {
		return Priorities[n], nil
	}
	return "", fmt.Errorf("invalid priority %q", s)
}

// Valid reports whether p is one of the defined priorities
func (p Priority) Valid() bool {
	for _, known := range Priorities {
		if p == known {
			return true
		}
	}
	return false
}

// UnmarshalJSON normalizes names and ordinals. Unknown values are kept as-is
// so that request validation can reject them with a field-level message.
func (p *Priority) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
		*p = ""
	case string:
		if parsed, err := ParsePriority(v); err == nil {
			*p = parsed
		} else {
			*p = Priority(v)
		}
	case float64:
		parsed, err := ParsePriority(strconv.FormatFloat(v, 'f', -1, 64))
		if err != nil {
			*p = Priority(strconv.FormatFloat(v, 'f', -1, 64))
			return nil
		}
		*p = parsed
	default:
		return fmt.Errorf("priority must be a string or a number")
	}
	return nil
}

// Value implements driver.Valuer
func (p Priority) Value() (driver.Value, error) {
	return string(p), nil
}

// Scan implements sql.Scanner
func (p *Priority) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*p = Priority(v)
	case []byte:
		*p = Priority(string(v))
	case nil:
		*p = ""
	default:
		return fmt.Errorf("cannot scan %T into Priority", src)
	}
	return nil
}

// Todo is a single task row in the todos table
type Todo struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string    `json:"title" gorm:"size:100;not null"`
	Description *string   `json:"description" gorm:"size:500"`
	IsComplete  bool      `json:"isComplete" gorm:"not null"`
	CreatedDate time.Time `json:"createdDate" gorm:"not null"`
	Category    *string   `json:"category" gorm:"size:50"`
	Priority    Priority  `json:"priority" gorm:"size:10;not null;index"`
}

func (Todo) TableName() string {
	return "todos"
}

// TodoFilter narrows a todo listing. Zero values mean "no constraint".
type TodoFilter struct {
	Term     string
	Priority Priority
}
