package core

import (
	"fmt"
	"strings"
)

// SchemaError reports base fields missing from the source schema.
type SchemaError struct {
	Source  string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("source %q is missing expected columns: %s", e.Source, strings.Join(e.Missing, ", "))
}
