package queryHelper

import (
	"fmt"
	"strings"
)

// Column is one assignment in an UPDATE statement
type Column struct {
	Name  string
	Value interface{}
}

// UpdateQueryBuilder builds a positional-parameter UPDATE for the given
// columns. Every column is written, including zero values and nils.
func UpdateQueryBuilder(tableName string, identifier string, id int64, columns []Column) (string, []interface{}) {
	var query strings.Builder
	fmt.Fprintf(&query, "UPDATE %s SET ", tableName)

	values := make([]interface{}, 0, len(columns)+1)
	for i, col := range columns {
		if i > 0 {
			query.WriteString(", ")
		}
		fmt.Fprintf(&query, "%s=$%d", col.Name, i+1)
		values = append(values, col.Value)
	}

	fmt.Fprintf(&query, " WHERE %s=$%d;", identifier, len(values)+1)
	values = append(values, id)

	return query.String(), values
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so term matches literally with ESCAPE '\'
func EscapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// ContainsPattern returns an escaped "%term%" LIKE pattern. Case folding is
// left to the database so both sides of the LIKE go through the same LOWER.
func ContainsPattern(term string) string {
	return "%" + EscapeLike(term) + "%"
}
