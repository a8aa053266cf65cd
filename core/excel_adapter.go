package core

import "github.com/xuri/excelize/v2"

// ExcelFile abstracts workbook operations to decouple report logic from excelize.
type ExcelFile interface {
	Close() error
	GetSheetList() []string
	NewSheet(name string) (int, error)
	NewStyle(style *excelize.Style) (int, error)
	SaveAs(name string) error
	SetActiveSheet(index int)
	SetCellHyperLink(sheet, cell, link, linkType string) error
	SetCellValue(sheet, cell string, value interface{}) error
	SetColStyle(sheet, columns string, styleID int) error
	SetColWidth(sheet, startCol, endCol string, width float64) error
	SetFreezeHeader(sheet string) error
	SetSelection(sheetName, cell string) error
	SetSheetName(source, target string) error
	SetSheetRow(sheet, cell string, values []interface{}) error
	SetZoom(sheet string, zoom float64) error
}

type ExcelizeFile struct {
	file *excelize.File
}

func newExcelFile() ExcelFile {
	return &ExcelizeFile{file: excelize.NewFile()}
}

func (e *ExcelizeFile) Close() error {
	return e.file.Close()
}

func (e *ExcelizeFile) GetSheetList() []string {
	return e.file.GetSheetList()
}

func (e *ExcelizeFile) NewSheet(name string) (int, error) {
	return e.file.NewSheet(name)
}

func (e *ExcelizeFile) NewStyle(style *excelize.Style) (int, error) {
	return e.file.NewStyle(style)
}

func (e *ExcelizeFile) SaveAs(name string) error {
	return e.file.SaveAs(name)
}

func (e *ExcelizeFile) SetActiveSheet(index int) {
	e.file.SetActiveSheet(index)
}

func (e *ExcelizeFile) SetCellHyperLink(sheet, cell, link, linkType string) error {
	return e.file.SetCellHyperLink(sheet, cell, link, linkType)
}

func (e *ExcelizeFile) SetCellValue(sheet, cell string, value interface{}) error {
	return e.file.SetCellValue(sheet, cell, value)
}

func (e *ExcelizeFile) SetColStyle(sheet, columns string, styleID int) error {
	return e.file.SetColStyle(sheet, columns, styleID)
}

func (e *ExcelizeFile) SetColWidth(sheet, startCol, endCol string, width float64) error {
	return e.file.SetColWidth(sheet, startCol, endCol, width)
}

// SetFreezeHeader freezes the first row of the sheet.
func (e *ExcelizeFile) SetFreezeHeader(sheet string) error {
	return e.file.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func (e *ExcelizeFile) SetSelection(sheetName, cell string) error {
	// Update selection in existing panes so a frozen header survives.
	panes, err := e.file.GetPanes(sheetName)
	if err == nil {
		if panes.Freeze {
			// the active cell must sit in the scrollable pane
			return nil
		}
		panes.Selection = []excelize.Selection{
			{
				ActiveCell: cell,
				SQRef:      cell,
			},
		}
		return e.file.SetPanes(sheetName, &panes)
	}

	return e.file.SetPanes(sheetName, &excelize.Panes{
		Freeze: false,
		Split:  false,
		Selection: []excelize.Selection{
			{
				ActiveCell: cell,
				SQRef:      cell,
			},
		},
	})
}

func (e *ExcelizeFile) SetSheetName(source, target string) error {
	return e.file.SetSheetName(source, target)
}

func (e *ExcelizeFile) SetSheetRow(sheet, cell string, values []interface{}) error {
	return e.file.SetSheetRow(sheet, cell, &values)
}

func (e *ExcelizeFile) SetZoom(sheet string, zoom float64) error {
	return e.file.SetSheetView(sheet, 0, &excelize.ViewOptions{ZoomScale: &zoom})
}
