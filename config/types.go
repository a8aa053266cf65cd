package config

type Driver string

const (
	DriverCSV      Driver = "csv"
	DriverMySQL    Driver = "mysql"
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite3"
	DriverDynamoDB Driver = "dynamodb"
)

// ColumnConfig： maps a canonical row field to the column header used by the source
type ColumnConfig struct {
	Name   string `json:"name"   yaml:"name"`   // canonical field, e.g. ObjName
	Column string `json:"column" yaml:"column"` // source header, e.g. "Obj Name"
}

// SourceConfig：where the table definitions are read from
type SourceConfig struct {
	Name     string            `json:"name"     yaml:"name"`
	Driver   Driver            `json:"driver"   yaml:"driver"`
	DSN      string            `json:"dsn,omitempty" yaml:"dsn,omitempty"`
	Dir      string            `json:"dir,omitempty" yaml:"dir,omitempty"`           // csv only
	Table    string            `json:"table"    yaml:"table"`                        // csv file stem, SQL or DynamoDB table
	Encoding string            `json:"encoding,omitempty" yaml:"encoding,omitempty"` // csv only
	Columns  []ColumnConfig    `json:"columns,omitempty" yaml:"columns,omitempty"`
	Filter   map[string]string `json:"filter,omitempty" yaml:"filter,omitempty"` // canonical field -> value
}

// LayoutConfig： sheet formatting
type LayoutConfig struct {
	FirstColumnWidth  float64 `json:"firstColumnWidth"  yaml:"firstColumnWidth"`
	SecondColumnWidth float64 `json:"secondColumnWidth" yaml:"secondColumnWidth"`
	Zoom              float64 `json:"zoom"              yaml:"zoom"`
}

// ReportConfig：report range config
type ReportConfig struct {
	Name               string            `json:"name"         yaml:"name"`
	OutputDir          string            `json:"outputDir"    yaml:"outputDir"`
	Source             string            `json:"source"       yaml:"source"`
	IndexSheet         string            `json:"indexSheet,omitempty" yaml:"indexSheet,omitempty"`
	FormulaShape       string            `json:"formulaShape,omitempty" yaml:"formulaShape,omitempty"`
	ExcludedTableTypes []string          `json:"excludedTableTypes,omitempty" yaml:"excludedTableTypes,omitempty"`
	ModuleShortNames   map[string]string `json:"moduleShortNames,omitempty" yaml:"moduleShortNames,omitempty"`
	Parameters         map[string]string `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Layout             LayoutConfig      `json:"layout"       yaml:"layout"`
}

// Bundle is the on-disk layout of a config file.
type Bundle struct {
	Report  ReportConfig   `json:"report"  yaml:"report"`
	Sources []SourceConfig `json:"sources" yaml:"sources"`
}
