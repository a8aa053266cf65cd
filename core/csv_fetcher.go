package core

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CsvDataFetcher implements DataFetcher using CSV files.
// It maps tableName to a CSV file in RootDir.
type CsvDataFetcher struct {
	RootDir string
	// Encoding is a WHATWG label such as "latin1" or "windows-1252".
	// Empty means UTF-8; a UTF-8 byte order mark is skipped either way.
	Encoding string
}

func NewCsvDataFetcher(rootDir, encoding string) *CsvDataFetcher {
	return &CsvDataFetcher{RootDir: rootDir, Encoding: encoding}
}

func (f *CsvDataFetcher) Fetch(tableName string, filter map[string]string) (*Table, error) {
	filePath := filepath.Join(f.RootDir, tableName)
	if filepath.Ext(filePath) == "" {
		filePath += ".csv"
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file %s: %w", filePath, err)
	}
	defer file.Close()

	decoded, err := f.decoder(file)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv content: %w", err)
	}

	if len(records) < 1 {
		return &Table{}, nil
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}
	result := &Table{Columns: header}

	for _, row := range records[1:] {
		item := make(map[string]interface{}, len(header))
		for j, col := range header {
			// short rows are padded with empty values
			if j < len(row) {
				item[col] = row[j]
			} else {
				item[col] = ""
			}
		}

		match := true
		for k, v := range filter {
			if colVal, hasCol := item[k]; hasCol {
				if strings.TrimSpace(fmt.Sprintf("%v", colVal)) != v {
					match = false
					break
				}
			}
		}

		if match {
			result.Records = append(result.Records, item)
		}
	}

	return result, nil
}

func (f *CsvDataFetcher) decoder(r io.Reader) (io.Reader, error) {
	if f.Encoding == "" || strings.EqualFold(f.Encoding, "utf-8") || strings.EqualFold(f.Encoding, "utf8") {
		return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())), nil
	}
	enc, err := htmlindex.Get(f.Encoding)
	if err != nil {
		return nil, fmt.Errorf("unsupported csv encoding %q: %w", f.Encoding, err)
	}
	return transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder())), nil
}
