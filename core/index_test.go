package core

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestIndexBuilder_EntriesSortedByKey(t *testing.T) {
	b := NewIndexBuilder()
	b.Add(GroupKey{Module: "UL", TableName: "T2"}, "UL | S | T2")
	b.Add(GroupKey{Module: "RL", TableName: "T9"}, "RL | S | T9")
	b.Add(GroupKey{Module: "RL", TableName: "T1"}, "RL | S | T1")

	entries := b.Entries()
	want := []string{"RL | S | T1", "RL | S | T9", "UL | S | T2"}
	for i, e := range entries {
		if e.SheetName != want[i] {
			t.Errorf("entry %d = %q, want %q", i, e.SheetName, want[i])
		}
	}
	if b.Len() != 3 {
		t.Errorf("Len() = %d, want 3", b.Len())
	}
}

func TestIndexBuilder_Write(t *testing.T) {
	f := &ExcelizeFile{file: excelize.NewFile()}
	defer f.Close()

	if _, err := f.NewSheet("RL | S1 | T1"); err != nil {
		t.Fatalf("NewSheet: %v", err)
	}
	b := NewIndexBuilder()
	b.Add(GroupKey{Module: "Regular Life", TableType: "Rate", TableUsageType: "Base", TableName: "T1", Section: "S1", Shape: "S_RULE"}, "RL | S1 | T1")

	if err := b.Write(f, "Sheet1"); err != nil {
		t.Fatalf("Write: %v", err)
	}

	header := []string{"Module", "Table Type", "Table_Usage_Type", "TableName", "Section", "Shape", "Link"}
	for i, want := range header {
		got, _ := f.file.GetCellValue("Sheet1", cellName(i+1, 1))
		if got != want {
			t.Errorf("header col %d = %q, want %q", i+1, got, want)
		}
	}
	if got, _ := f.file.GetCellValue("Sheet1", "D2"); got != "T1" {
		t.Errorf("D2 = %q, want T1", got)
	}
	if got, _ := f.file.GetCellValue("Sheet1", "G2"); got != IndexLinkLabel {
		t.Errorf("G2 = %q, want %q", got, IndexLinkLabel)
	}
	ok, target, err := f.file.GetCellHyperLink("Sheet1", "G2")
	if err != nil || !ok {
		t.Fatalf("G2 has no hyperlink: %v", err)
	}
	if target != "'RL | S1 | T1'!A1" {
		t.Errorf("hyperlink target = %q", target)
	}
}
