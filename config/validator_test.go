package config

import (
	"strings"
	"testing"
)

func TestValidator_ValidateReport(t *testing.T) {
	provider := NewMemoryConfigRegistry(map[string]*SourceConfig{
		"ati": {Name: "ati"},
	})
	validator := NewValidator(provider)

	tests := []struct {
		name    string
		report  *ReportConfig
		wantErr bool
		errMsg  string
	}{
		{
			name:    "Valid Report",
			report:  DefaultReport("ati"),
			wantErr: false,
		},
		{
			name:    "Missing Name",
			report:  &ReportConfig{Source: "ati"},
			wantErr: true,
			errMsg:  "report name is required",
		},
		{
			name:    "Missing Source",
			report:  &ReportConfig{Name: "Summary"},
			wantErr: true,
			errMsg:  "report source is required",
		},
		{
			name:    "Unknown Source",
			report:  &ReportConfig{Name: "Summary", Source: "other"},
			wantErr: true,
			errMsg:  "unknown source",
		},
		{
			name:    "Index Sheet Too Long",
			report:  &ReportConfig{Name: "Summary", Source: "ati", IndexSheet: strings.Repeat("x", 32)},
			wantErr: true,
			errMsg:  "exceeds 31 characters",
		},
		{
			name:    "Index Sheet Astral Too Long",
			report:  &ReportConfig{Name: "Summary", Source: "ati", IndexSheet: strings.Repeat("𝛼", 16)},
			wantErr: true,
			errMsg:  "exceeds 31 characters",
		},
		{
			name:    "Index Sheet Forbidden Char",
			report:  &ReportConfig{Name: "Summary", Source: "ati", IndexSheet: "Index/All"},
			wantErr: true,
			errMsg:  "forbidden character",
		},
		{
			name:    "Zoom Out Of Range",
			report:  &ReportConfig{Name: "Summary", Source: "ati", Layout: LayoutConfig{Zoom: 500}},
			wantErr: true,
			errMsg:  "out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateReport(tt.report)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateReport() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("ValidateReport() error = %v, want error containing %s", err, tt.errMsg)
			}
		})
	}
}

func TestValidator_ValidateSource(t *testing.T) {
	validator := NewValidator(nil)
	tests := []struct {
		name    string
		src     *SourceConfig
		wantErr bool
		errMsg  string
	}{
		{
			name:    "Valid CSV",
			src:     &SourceConfig{Name: "ati", Driver: DriverCSV, Table: "ATI_Regular_Life"},
			wantErr: false,
		},
		{
			name:    "Valid MySQL",
			src:     &SourceConfig{Name: "ati", Driver: DriverMySQL, Table: "ati", DSN: "user:pass@tcp(localhost:3306)/db"},
			wantErr: false,
		},
		{
			name:    "Valid DynamoDB",
			src:     &SourceConfig{Name: "ati", Driver: DriverDynamoDB, Table: "ati"},
			wantErr: false,
		},
		{
			name:    "Missing Name",
			src:     &SourceConfig{Driver: DriverCSV, Table: "t"},
			wantErr: true,
			errMsg:  "source name is required",
		},
		{
			name:    "Missing Table",
			src:     &SourceConfig{Name: "ati", Driver: DriverCSV},
			wantErr: true,
			errMsg:  "table is required",
		},
		{
			name:    "Missing Driver",
			src:     &SourceConfig{Name: "ati", Table: "t"},
			wantErr: true,
			errMsg:  "driver is required",
		},
		{
			name:    "Invalid Driver",
			src:     &SourceConfig{Name: "ati", Driver: "oracle", Table: "t"},
			wantErr: true,
			errMsg:  "invalid driver",
		},
		{
			name:    "Missing DSN",
			src:     &SourceConfig{Name: "ati", Driver: DriverPostgres, Table: "t"},
			wantErr: true,
			errMsg:  "DSN is required",
		},
		{
			name:    "Encoding On SQL",
			src:     &SourceConfig{Name: "ati", Driver: DriverSQLite, Table: "t", DSN: "file.db", Encoding: "latin1"},
			wantErr: true,
			errMsg:  "only supported for csv",
		},
		{
			name: "Invalid Column",
			src: &SourceConfig{Name: "ati", Driver: DriverCSV, Table: "t", Columns: []ColumnConfig{
				{Name: "ObjName"},
			}},
			wantErr: true,
			errMsg:  "column 0 column is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateSource(tt.src)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSource() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("ValidateSource() error = %v, want error containing %s", err, tt.errMsg)
			}
		})
	}
}
