package core

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
)

// SQLDataFetcher implements DataFetcher using a generic SQL database (MySQL, PostgreSQL, SQLite).
type SQLDataFetcher struct {
	DB         *sql.DB
	DriverName string // "mysql", "postgres" or "sqlite3"
}

// NewSQLDataFetcher creates a new fetcher.
func NewSQLDataFetcher(db *sql.DB, driverName string) *SQLDataFetcher {
	return &SQLDataFetcher{
		DB:         db,
		DriverName: driverName,
	}
}

// buildQuery returns a SELECT over tableName with equality conditions for
// filter. Conditions are sorted by column so the query text is stable.
func (f *SQLDataFetcher) buildQuery(tableName string, filter map[string]string) (string, []interface{}) {
	query := fmt.Sprintf("SELECT * FROM %s", f.quote(tableName))
	if len(filter) == 0 {
		return query, nil
	}

	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	conditions := make([]string, 0, len(keys))
	args := make([]interface{}, 0, len(keys))
	for i, k := range keys {
		if f.DriverName == "postgres" {
			conditions = append(conditions, fmt.Sprintf("%s = $%d", f.quote(k), i+1))
		} else {
			conditions = append(conditions, fmt.Sprintf("%s = ?", f.quote(k)))
		}
		args = append(args, filter[k])
	}
	return query + " WHERE " + strings.Join(conditions, " AND "), args
}

// quote wraps an identifier; export headers contain spaces ("Obj Name").
func (f *SQLDataFetcher) quote(ident string) string {
	if f.DriverName == "mysql" {
		return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
	}
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// Fetch executes a SELECT query on the table specified by tableName.
func (f *SQLDataFetcher) Fetch(tableName string, filter map[string]string) (*Table, error) {
	query, args := f.buildQuery(tableName, filter)

	rows, err := f.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	result := &Table{Columns: columns}

	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}

		entry := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			val := values[i]
			// MySQL driver often returns strings as []byte
			if b, ok := val.([]byte); ok {
				entry[col] = string(b)
			} else {
				entry[col] = val
			}
		}
		result.Records = append(result.Records, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
