package core

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCsvDataFetcher_Fetch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ati.csv")
	content := "\ufeffModule, Table Type,TableName\nRegular Life,Rate,T1\nUniversal Life,Rate,T2\nRegular Life,Rate\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	fetcher := NewCsvDataFetcher(dir, "")
	table, err := fetcher.Fetch("ati", map[string]string{"Module": "Regular Life"})
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(table.Columns) != 3 || table.Columns[0] != "Module" || table.Columns[1] != "Table Type" {
		t.Fatalf("columns = %q", table.Columns)
	}
	if len(table.Records) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.Records))
	}
	if table.Records[0]["TableName"] != "T1" {
		t.Fatalf("TableName = %v, want T1", table.Records[0]["TableName"])
	}
	if table.Records[1]["TableName"] != "" {
		t.Fatalf("short row not padded: %v", table.Records[1]["TableName"])
	}
}

func TestCsvDataFetcher_Latin1(t *testing.T) {
	dir := t.TempDir()
	// "Espérance" in ISO-8859-1
	content := []byte("Module,Name\nRL,Esp\xe9rance\n")
	if err := os.WriteFile(filepath.Join(dir, "ati.csv"), content, 0644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	table, err := NewCsvDataFetcher(dir, "latin1").Fetch("ati.csv", nil)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if got := table.Records[0]["Name"]; got != "Espérance" {
		t.Fatalf("Name = %q, want Espérance", got)
	}
}

func TestCsvDataFetcher_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := NewCsvDataFetcher(dir, "").Fetch("missing", nil); err == nil {
		t.Errorf("expected error for missing file")
	}

	if err := os.WriteFile(filepath.Join(dir, "ati.csv"), []byte("a\n1\n"), 0644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if _, err := NewCsvDataFetcher(dir, "no-such-encoding").Fetch("ati", nil); err == nil {
		t.Errorf("expected error for unknown encoding")
	}
}

func TestCsvDataFetcher_Empty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "empty.csv"), nil, 0644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	table, err := NewCsvDataFetcher(dir, "").Fetch("empty", nil)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(table.Columns) != 0 || len(table.Records) != 0 {
		t.Errorf("expected empty table, got %+v", table)
	}
}
