package querysql

import (
	"fmt"
	"strings"

	"github.com/0dillon/HNG1/internal/queryir"
)

// Table is the SQLite table holding string records.
const Table = "strings"

// Columns is the column list every compiled query selects, in scan order.
const Columns = "id, value, length, is_palindrome, unique_characters, word_count, character_frequency_map, created_at"

// columns maps filterable fields to SQL columns. Only fields listed here
// can appear in generated SQL, so field names are never interpolated
// unchecked.
var columns = map[queryir.Field]string{
	queryir.FieldValue:        "value",
	queryir.FieldLength:       "length",
	queryir.FieldIsPalindrome: "is_palindrome",
	queryir.FieldWordCount:    "word_count",
}

// SQLCompiler compiles queryir predicates to parameterized SQL for SQLite.
//
// CRITICAL: ALL queries include ORDER BY seq so results come back in
// insertion order, matching the memory backend.
// CRITICAL: All values are parameterized (never interpolated).
type SQLCompiler struct{}

// NewSQLCompiler creates a new SQLCompiler.
func NewSQLCompiler() *SQLCompiler {
	return &SQLCompiler{}
}

// Compile converts a predicate into a complete SELECT over Table.
// Returns (sql, params, error) tuple.
func (c *SQLCompiler) Compile(pred queryir.Predicate) (string, []any, error) {
	var whereClause string
	var params []any
	if pred != nil {
		filterSQL, filterParams, err := c.compilePredicate(pred)
		if err != nil {
			return "", nil, fmt.Errorf("compile filter: %w", err)
		}
		whereClause = " WHERE " + filterSQL
		params = filterParams
	}

	sql := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY seq ASC",
		Columns,
		Table,
		whereClause)

	return sql, params, nil
}

// compilePredicate compiles a predicate to a WHERE clause fragment.
// CRITICAL: Values NEVER interpolated - always use ? placeholders.
func (c *SQLCompiler) compilePredicate(p queryir.Predicate) (string, []any, error) {
	switch pred := p.(type) {
	case nil:
		return "1 = 1", nil, nil
	case queryir.Equals:
		col, err := column(pred.Field)
		if err != nil {
			return "", nil, err
		}
		param, err := valueToParam(pred.Value)
		if err != nil {
			return "", nil, fmt.Errorf("field %q: %w", pred.Field, err)
		}
		return col + " = ?", []any{param}, nil
	case queryir.AtLeast:
		col, err := column(pred.Field)
		if err != nil {
			return "", nil, err
		}
		return col + " >= ?", []any{int64(pred.Bound)}, nil
	case queryir.AtMost:
		col, err := column(pred.Field)
		if err != nil {
			return "", nil, err
		}
		return col + " <= ?", []any{int64(pred.Bound)}, nil
	case queryir.ContainsChar:
		col, err := column(pred.Field)
		if err != nil {
			return "", nil, err
		}
		// instr is case-sensitive and compares whole characters, unlike LIKE.
		return "instr(" + col + ", ?) > 0", []any{pred.Char}, nil
	case queryir.And:
		return c.compileAnd(pred)
	default:
		return "", nil, fmt.Errorf("unsupported predicate type: %T", p)
	}
}

// compileAnd compiles an And predicate to conjunction with AND.
func (c *SQLCompiler) compileAnd(and queryir.And) (string, []any, error) {
	if len(and.Predicates) == 0 {
		return "1 = 1", nil, nil // Always true (vacuous truth)
	}

	var sqlParts []string
	var allParams []any

	for _, pred := range and.Predicates {
		sql, params, err := c.compilePredicate(pred)
		if err != nil {
			return "", nil, err
		}
		sqlParts = append(sqlParts, sql)
		allParams = append(allParams, params...)
	}

	return strings.Join(sqlParts, " AND "), allParams, nil
}

func column(f queryir.Field) (string, error) {
	col, ok := columns[f]
	if !ok {
		return "", fmt.Errorf("unknown field: %q", f)
	}
	return col, nil
}

// valueToParam converts an Equals value to a SQL parameter.
// Booleans are stored as 0/1 integers.
func valueToParam(v any) (any, error) {
	switch val := v.(type) {
	case bool:
		if val {
			return int64(1), nil
		}
		return int64(0), nil
	case int:
		return int64(val), nil
	case int64:
		return val, nil
	default:
		return nil, fmt.Errorf("unsupported value type for SQL parameter: %T", v)
	}
}
