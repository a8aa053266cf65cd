package core

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// blockGap is the blank separator row plus the label row between blocks.
const blockGap = 2

// ComputeLayout returns the zero-based start row of every block. The first
// block starts at row 0; each next one starts blockGap rows after the end of
// the previous one.
func ComputeLayout(blocks []*Block) []int {
	starts := make([]int, len(blocks))
	for i := 1; i < len(blocks); i++ {
		starts[i] = starts[i-1] + blocks[i-1].Height() + blockGap
	}
	return starts
}

// LayoutOptions controls sheet formatting.
type LayoutOptions struct {
	FirstColumnWidth  float64
	SecondColumnWidth float64
	Zoom              float64
}

// LayoutWriter writes content blocks into a sheet.
type LayoutWriter struct {
	file      ExcelFile
	opts      LayoutOptions
	boldStyle int
}

// NewLayoutWriter registers the styles it needs on f.
func NewLayoutWriter(f ExcelFile, opts LayoutOptions) (*LayoutWriter, error) {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create bold style: %w", err)
	}
	return &LayoutWriter{file: f, opts: opts, boldStyle: bold}, nil
}

// WriteSheet creates sheetName and writes the blocks of content into it.
func (w *LayoutWriter) WriteSheet(sheetName string, content *GroupContent) error {
	if _, err := w.file.NewSheet(sheetName); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheetName, err)
	}

	blocks := content.Blocks()
	starts := ComputeLayout(blocks)
	for i, block := range blocks {
		if err := w.writeBlock(sheetName, block, starts[i]); err != nil {
			return fmt.Errorf("block %q: %w", block.Label, err)
		}
	}

	return w.format(sheetName)
}

func (w *LayoutWriter) writeBlock(sheetName string, block *Block, start int) error {
	if block.Kind != BlockHeader {
		if err := w.file.SetCellValue(sheetName, cellName(1, start), block.Label); err != nil {
			return err
		}
	}

	if block.Empty() {
		return w.file.SetCellValue(sheetName, cellName(1, start+1), NoneMarker)
	}

	heading := make([]interface{}, len(block.Columns))
	for i, c := range block.Columns {
		heading[i] = c
	}
	if err := w.file.SetSheetRow(sheetName, cellName(1, start+1), heading); err != nil {
		return err
	}
	for i, row := range block.Rows {
		if err := w.file.SetSheetRow(sheetName, cellName(1, start+2+i), row); err != nil {
			return err
		}
	}
	return nil
}

func (w *LayoutWriter) format(sheetName string) error {
	if err := w.file.SetColStyle(sheetName, "A", w.boldStyle); err != nil {
		return err
	}
	if err := w.file.SetColWidth(sheetName, "A", "A", w.opts.FirstColumnWidth); err != nil {
		return err
	}
	if err := w.file.SetColWidth(sheetName, "B", "B", w.opts.SecondColumnWidth); err != nil {
		return err
	}
	if w.opts.Zoom > 0 {
		return w.file.SetZoom(sheetName, w.opts.Zoom)
	}
	return nil
}

// cellName converts a one-based column and row to a reference like "B3".
func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
