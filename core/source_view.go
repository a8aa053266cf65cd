package core

import (
	"aati-summary/config"
	"fmt"
	"sort"
)

// SourceView is a fetched table with canonical field name mapping.
type SourceView struct {
	Config *config.SourceConfig
	Table  *Table
	// FieldMapping maps canonical field names to source column headers.
	// Only fields that resolve to an existing column are present.
	FieldMapping map[string]string
}

// NewSourceView creates a new SourceView, resolving every base and value
// field against the table's headers. A configured alias wins; otherwise the
// canonical name itself is used when the source has it.
func NewSourceView(conf *config.SourceConfig, table *Table) *SourceView {
	present := make(map[string]struct{}, len(table.Columns))
	for _, c := range table.Columns {
		present[c] = struct{}{}
	}
	aliases := make(map[string]string, len(conf.Columns))
	for _, c := range conf.Columns {
		aliases[c.Name] = c.Column
	}

	mapping := make(map[string]string)
	resolve := func(field string) {
		if col, ok := aliases[field]; ok {
			if _, exists := present[col]; exists {
				mapping[field] = col
				return
			}
		}
		if _, exists := present[field]; exists {
			mapping[field] = field
		}
	}
	for _, f := range BaseFields {
		resolve(f)
	}
	for i := 0; i < ValueColumnCount; i++ {
		resolve(ValueColumnName(i))
	}
	// zero-padded headers such as "C007"
	for _, c := range table.Columns {
		if i, ok := ValueColumnIndex(c); ok {
			if _, done := mapping[ValueColumnName(i)]; !done {
				mapping[ValueColumnName(i)] = c
			}
		}
	}

	return &SourceView{
		Config:       conf,
		Table:        table,
		FieldMapping: mapping,
	}
}

// CheckSchema returns a *SchemaError when a base field has no column.
func (v *SourceView) CheckSchema() error {
	var missing []string
	for _, f := range BaseFields {
		if _, ok := v.FieldMapping[f]; !ok {
			if col, aliased := v.alias(f); aliased {
				missing = append(missing, fmt.Sprintf("%s (%s)", f, col))
				continue
			}
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Source: v.Config.Name, Missing: missing}
	}
	return nil
}

func (v *SourceView) alias(field string) (string, bool) {
	for _, c := range v.Config.Columns {
		if c.Name == field {
			return c.Column, true
		}
	}
	return "", false
}

// ValueColumns returns the value columns the source actually carries.
func (v *SourceView) ValueColumns() []string {
	var cols []string
	for i := 0; i < ValueColumnCount; i++ {
		if _, ok := v.FieldMapping[ValueColumnName(i)]; ok {
			cols = append(cols, ValueColumnName(i))
		}
	}
	return cols
}

// Rows normalizes every record of the table.
func (v *SourceView) Rows() []Row {
	rows := make([]Row, 0, len(v.Table.Records))
	for _, rec := range v.Table.Records {
		canonical := make(map[string]string, len(v.FieldMapping))
		for field, col := range v.FieldMapping {
			canonical[field] = stringify(rec[col])
		}
		rows = append(rows, NormalizeRow(canonical))
	}
	return rows
}

// GetDistinctValues returns the unique non-empty values of a field, sorted.
func (v *SourceView) GetDistinctValues(field string) ([]string, error) {
	col, ok := v.FieldMapping[field]
	if !ok {
		return nil, fmt.Errorf("field '%s' not found in source '%s'", field, v.Config.Name)
	}

	seen := make(map[string]struct{})
	var result []string
	for _, rec := range v.Table.Records {
		val := stringify(rec[col])
		if val == "" {
			continue
		}
		if _, exists := seen[val]; !exists {
			seen[val] = struct{}{}
			result = append(result, val)
		}
	}

	sort.Strings(result)
	return result, nil
}

// ResolveFilter translates a source filter keyed by canonical fields into
// one keyed by source columns, for pushdown to a DataFetcher.
func ResolveFilter(conf *config.SourceConfig) map[string]string {
	if len(conf.Filter) == 0 {
		return nil
	}
	aliases := make(map[string]string, len(conf.Columns))
	for _, c := range conf.Columns {
		aliases[c.Name] = c.Column
	}
	resolved := make(map[string]string, len(conf.Filter))
	for field, val := range conf.Filter {
		if col, ok := aliases[field]; ok {
			resolved[col] = val
		} else {
			resolved[field] = val
		}
	}
	return resolved
}

func stringify(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
