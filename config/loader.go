package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default values applied by ApplyDefaults.
const (
	DefaultName              = "Tables_By_Section"
	DefaultIndexSheet        = "Index"
	DefaultFormulaShape      = "S_Rule"
	DefaultFirstColumnWidth  = 24
	DefaultSecondColumnWidth = 60
	DefaultZoom              = 120
)

// DefaultModuleShortNames abbreviates module names in sheet names.
func DefaultModuleShortNames() map[string]string {
	return map[string]string{
		"Regular Life":   "RL",
		"Universal Life": "UL",
		"Disability":     "DI",
		"Annuities":      "AN",
	}
}

// DefaultColumns maps the canonical fields to the headers of the ATI export.
func DefaultColumns() []ColumnConfig {
	return []ColumnConfig{
		{Name: "ObjName", Column: "Obj Name"},
		{Name: "UsedBy", Column: "Used By"},
		{Name: "TableType", Column: "Table Type"},
		{Name: "TableUsageType", Column: "Table_Usage_Type"},
	}
}

// LoadConfigBundle loads a report and its sources from a single YAML file.
// Defaults are applied and the result is validated.
func LoadConfigBundle(path string) (*ReportConfig, map[string]*SourceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config bundle: %w", err)
	}

	var bundle Bundle
	if err := yaml.Unmarshal(data, &bundle); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config bundle: %w", err)
	}

	report := &bundle.Report
	ApplyDefaults(report)

	sources := make(map[string]*SourceConfig, len(bundle.Sources))
	for i := range bundle.Sources {
		src := &bundle.Sources[i]
		if len(src.Columns) == 0 {
			src.Columns = DefaultColumns()
		}
		sources[src.Name] = src
	}

	validator := NewValidator(NewMemoryConfigRegistry(sources))
	for _, src := range sources {
		if err := validator.ValidateSource(src); err != nil {
			return nil, nil, err
		}
	}
	if err := validator.ValidateReport(report); err != nil {
		return nil, nil, err
	}

	return report, sources, nil
}

// ApplyDefaults fills every unset report field except Source.
func ApplyDefaults(r *ReportConfig) {
	if r.Name == "" {
		r.Name = DefaultName
	}
	if r.IndexSheet == "" {
		r.IndexSheet = DefaultIndexSheet
	}
	if r.FormulaShape == "" {
		r.FormulaShape = DefaultFormulaShape
	}
	if r.ExcludedTableTypes == nil {
		r.ExcludedTableTypes = []string{"age distribution"}
	}
	if r.ModuleShortNames == nil {
		r.ModuleShortNames = DefaultModuleShortNames()
	}
	if r.Layout.FirstColumnWidth == 0 {
		r.Layout.FirstColumnWidth = DefaultFirstColumnWidth
	}
	if r.Layout.SecondColumnWidth == 0 {
		r.Layout.SecondColumnWidth = DefaultSecondColumnWidth
	}
	if r.Layout.Zoom == 0 {
		r.Layout.Zoom = DefaultZoom
	}
}

// DefaultReport returns a report config with defaults applied, reading from source.
func DefaultReport(source string) *ReportConfig {
	r := &ReportConfig{Source: source}
	ApplyDefaults(r)
	return r
}
