package core

import (
	"aati-summary/config"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Table is the raw result of a fetch: the source's column headers and one
// record per row keyed by those headers.
type Table struct {
	Columns []string
	Records []map[string]interface{}
}

// DataFetcher defines the interface for reading a source table.
type DataFetcher interface {
	// Fetch returns the table named tableName, keeping only records whose
	// columns equal the values in filter.
	Fetch(tableName string, filter map[string]string) (*Table, error)
}

// GenerationContext holds the state for the current generation process.
type GenerationContext struct {
	Report         *config.ReportConfig
	Parameters     map[string]string
	Fetcher        DataFetcher
	ConfigProvider config.Provider
	// Cache for loaded views so a source is fetched once per run
	LoadedViews map[string]*SourceView
}

// NewGenerationContext creates a new context.
func NewGenerationContext(report *config.ReportConfig, provider config.Provider, fetcher DataFetcher, params map[string]string) *GenerationContext {
	// Merge params
	mergedParams := make(map[string]string)
	for k, v := range report.Parameters {
		mergedParams[k] = v
	}
	for k, v := range params {
		mergedParams[k] = v
	}

	// Process all dynamic parameters
	now := time.Now()
	for k, v := range mergedParams {
		if strings.HasPrefix(v, "$date:") {
			if val, err := ParseDynamicDate(v, now); err == nil {
				mergedParams[k] = val
			} else {
				slog.Warn("Ignoring invalid dynamic date", "param", k, "error", err)
			}
		}
	}

	return &GenerationContext{
		Report:         report,
		Parameters:     mergedParams,
		Fetcher:        fetcher,
		ConfigProvider: provider,
		LoadedViews:    make(map[string]*SourceView),
	}
}

// GetSourceView resolves and loads a source by name.
// The fetched view is cached; later calls return the same instance, which is
// never mutated after loading.
func (ctx *GenerationContext) GetSourceView(name string) (*SourceView, error) {
	if cached, ok := ctx.LoadedViews[name]; ok {
		return cached, nil
	}

	conf, err := ctx.ConfigProvider.GetSourceConfig(name)
	if err != nil {
		return nil, err
	}

	table, err := ctx.Fetcher.Fetch(conf.Table, ResolveFilter(conf))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source %s: %w", name, err)
	}

	view := NewSourceView(conf, table)
	ctx.LoadedViews[name] = view

	slog.Debug("Source Fetched",
		"source", name,
		"table", conf.Table,
		"columns", len(table.Columns),
		"rows", len(table.Records),
	)
	return view, nil
}

// MockDataFetcher is a simple implementation for testing.
type MockDataFetcher struct {
	Data map[string]*Table
}

func (m *MockDataFetcher) Fetch(tableName string, filter map[string]string) (*Table, error) {
	if data, ok := m.Data[tableName]; ok {
		return data, nil
	}
	return nil, fmt.Errorf("table not found: %s", tableName)
}
