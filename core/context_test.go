package core

import (
	"aati-summary/config"
	"testing"
	"time"
)

type countingFetcher struct {
	calls   int
	filters []map[string]string
	data    map[string]*Table
}

func (f *countingFetcher) Fetch(tableName string, filter map[string]string) (*Table, error) {
	f.calls++
	f.filters = append(f.filters, filter)
	return f.data[tableName], nil
}

func TestNewGenerationContext_MergeParams(t *testing.T) {
	report := &config.ReportConfig{
		Parameters: map[string]string{
			"env":    "prod",
			"region": "us",
		},
	}

	ctx := NewGenerationContext(report, nil, nil, map[string]string{
		"env":   "dev",
		"extra": "1",
	})

	if ctx.Parameters["env"] != "dev" {
		t.Fatalf("env = %s, want dev", ctx.Parameters["env"])
	}
	if ctx.Parameters["region"] != "us" {
		t.Fatalf("region = %s, want us", ctx.Parameters["region"])
	}
	if ctx.Parameters["extra"] != "1" {
		t.Fatalf("extra = %s, want 1", ctx.Parameters["extra"])
	}
}

func TestNewGenerationContext_DynamicDates(t *testing.T) {
	report := &config.ReportConfig{
		Parameters: map[string]string{
			"runDate": "$date:day:day:0",
			"bad":     "$date:fortnight",
		},
	}
	ctx := NewGenerationContext(report, nil, nil, nil)

	today := time.Now().Format("2006-01-02")
	if ctx.Parameters["runDate"] != today {
		t.Fatalf("runDate = %s, want %s", ctx.Parameters["runDate"], today)
	}
	// invalid expressions are kept verbatim
	if ctx.Parameters["bad"] != "$date:fortnight" {
		t.Fatalf("bad = %s, want it unchanged", ctx.Parameters["bad"])
	}
}

func TestGenerationContext_GetSourceViewCaching(t *testing.T) {
	sources := map[string]*config.SourceConfig{
		"ati": {
			Name:    "ati",
			Table:   "ati_export",
			Columns: config.DefaultColumns(),
			Filter:  map[string]string{"TableType": "Rate"},
		},
	}
	registry := config.NewMemoryConfigRegistry(sources)
	fetcher := &countingFetcher{
		data: map[string]*Table{
			"ati_export": {Columns: []string{"Module"}, Records: []map[string]interface{}{{"Module": "RL"}}},
		},
	}

	ctx := NewGenerationContext(&config.ReportConfig{}, registry, fetcher, nil)
	first, err := ctx.GetSourceView("ati")
	if err != nil {
		t.Fatalf("GetSourceView error: %v", err)
	}
	second, err := ctx.GetSourceView("ati")
	if err != nil {
		t.Fatalf("GetSourceView error: %v", err)
	}
	if fetcher.calls != 1 {
		t.Fatalf("fetcher calls = %d, want 1", fetcher.calls)
	}
	if first != second {
		t.Fatalf("expected cached view instance")
	}
	if got := fetcher.filters[0]["Table Type"]; got != "Rate" {
		t.Fatalf("filter not resolved to source column: %v", fetcher.filters[0])
	}
}

func TestGenerationContext_GetSourceViewUnknown(t *testing.T) {
	registry := config.NewMemoryConfigRegistry(map[string]*config.SourceConfig{})
	ctx := NewGenerationContext(&config.ReportConfig{}, registry, &MockDataFetcher{}, nil)
	if _, err := ctx.GetSourceView("missing"); err == nil {
		t.Fatalf("expected error for unknown source")
	}
}
