package config

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

// sheetNameForbidden lists characters a workbook rejects in sheet names.
const sheetNameForbidden = `:\/?*[]`

// Validator validates the configuration objects.
type Validator struct {
	Provider Provider
}

// NewValidator creates a new Validator.
func NewValidator(provider Provider) *Validator {
	return &Validator{Provider: provider}
}

// ValidateReport validates the ReportConfig.
func (v *Validator) ValidateReport(r *ReportConfig) error {
	if r.Name == "" {
		return fmt.Errorf("report name is required")
	}
	if r.Source == "" {
		return fmt.Errorf("report source is required")
	}
	if v.Provider != nil {
		if _, err := v.Provider.GetSourceConfig(r.Source); err != nil {
			return fmt.Errorf("report references unknown source '%s'", r.Source)
		}
	}
	if r.IndexSheet != "" {
		if len(utf16.Encode([]rune(r.IndexSheet))) > 31 {
			return fmt.Errorf("index sheet name '%s' exceeds 31 characters", r.IndexSheet)
		}
		if strings.ContainsAny(r.IndexSheet, sheetNameForbidden) {
			return fmt.Errorf("index sheet name '%s' contains a forbidden character", r.IndexSheet)
		}
	}
	if r.Layout.FirstColumnWidth < 0 || r.Layout.SecondColumnWidth < 0 {
		return fmt.Errorf("column widths must not be negative")
	}
	if r.Layout.Zoom != 0 && (r.Layout.Zoom < 10 || r.Layout.Zoom > 400) {
		return fmt.Errorf("zoom %v out of range 10-400", r.Layout.Zoom)
	}
	return nil
}

// ValidateSource validates the SourceConfig.
func (v *Validator) ValidateSource(s *SourceConfig) error {
	if s.Name == "" {
		return fmt.Errorf("source name is required")
	}
	if s.Table == "" {
		return fmt.Errorf("source '%s' table is required", s.Name)
	}
	switch s.Driver {
	case DriverCSV:
		// Dir may be empty (current directory)
	case DriverMySQL, DriverPostgres, DriverSQLite:
		if s.DSN == "" {
			return fmt.Errorf("source '%s' DSN is required for driver %s", s.Name, s.Driver)
		}
	case DriverDynamoDB:
		// AWS settings come from the environment
	case "":
		return fmt.Errorf("source '%s' driver is required", s.Name)
	default:
		return fmt.Errorf("source '%s' has invalid driver '%s'", s.Name, s.Driver)
	}
	if s.Encoding != "" && s.Driver != DriverCSV {
		return fmt.Errorf("source '%s' encoding is only supported for csv", s.Name)
	}
	for i, col := range s.Columns {
		if col.Name == "" {
			return fmt.Errorf("source '%s' column %d name is required", s.Name, i)
		}
		if col.Column == "" {
			return fmt.Errorf("source '%s' column %d column is required", s.Name, i)
		}
	}
	return nil
}
