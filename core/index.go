package core

import (
	"fmt"
	"sort"
)

// IndexLinkLabel is the text of every hyperlink cell on the index sheet.
const IndexLinkLabel = "Open"

var indexColumns = []interface{}{
	"Module", "Table Type", "Table_Usage_Type", "TableName", "Section", "Shape", "Link",
}

// IndexEntry points from a group key to the sheet holding its content.
type IndexEntry struct {
	Key       GroupKey
	SheetName string
}

// IndexBuilder collects entries during a run and writes the index sheet once
// at the end, when every target sheet name is final.
type IndexBuilder struct {
	entries []IndexEntry
}

func NewIndexBuilder() *IndexBuilder {
	return &IndexBuilder{}
}

// Add records a written sheet.
func (b *IndexBuilder) Add(key GroupKey, sheetName string) {
	b.entries = append(b.entries, IndexEntry{Key: key, SheetName: sheetName})
}

// Len returns the number of entries.
func (b *IndexBuilder) Len() int {
	return len(b.entries)
}

// Entries returns the entries sorted by group key.
func (b *IndexBuilder) Entries() []IndexEntry {
	sorted := make([]IndexEntry, len(b.entries))
	copy(sorted, b.entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Key.Compare(sorted[j].Key) < 0
	})
	return sorted
}

// Write fills sheet with the header row, one row per entry and a hyperlink
// in the Link column to cell A1 of the entry's sheet. The sheet must exist.
func (b *IndexBuilder) Write(f ExcelFile, sheet string) error {
	if err := f.SetSheetRow(sheet, "A1", indexColumns); err != nil {
		return fmt.Errorf("failed to write index header: %w", err)
	}

	linkCol := len(indexColumns)
	for i, e := range b.Entries() {
		row := i + 2
		values := []interface{}{
			e.Key.Module, e.Key.TableType, e.Key.TableUsageType, e.Key.TableName, e.Key.Section, e.Key.Shape,
		}
		if err := f.SetSheetRow(sheet, cellName(1, row), values); err != nil {
			return fmt.Errorf("failed to write index row %d: %w", row, err)
		}

		link := cellName(linkCol, row)
		if err := f.SetCellValue(sheet, link, IndexLinkLabel); err != nil {
			return err
		}
		if err := f.SetCellHyperLink(sheet, link, fmt.Sprintf("'%s'!A1", e.SheetName), "Location"); err != nil {
			return fmt.Errorf("failed to link %s: %w", e.SheetName, err)
		}
	}

	if err := f.SetColWidth(sheet, "A", "D", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "E", "E", 10); err != nil {
		return err
	}
	return f.SetFreezeHeader(sheet)
}
