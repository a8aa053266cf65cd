package core

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type Generator struct {
	Context *GenerationContext
}

func NewGenerator(ctx *GenerationContext) *Generator {
	return &Generator{Context: ctx}
}

func replacePlaceholders(input string, params map[string]string) string {
	output := input
	for k, v := range params {
		placeholder := fmt.Sprintf("${%s}", k)
		output = strings.ReplaceAll(output, placeholder, v)
	}
	return output
}

// OutputPath returns where the workbook is written under outputRoot.
func (g *Generator) OutputPath(outputRoot string) string {
	report := g.Context.Report
	outputPath := filepath.Join(outputRoot, replacePlaceholders(report.OutputDir, g.Context.Parameters))
	if filepath.Ext(outputPath) == "" {
		name := replacePlaceholders(report.Name, g.Context.Parameters)
		outputPath = filepath.Join(outputPath, name+".xlsx")
	}
	return outputPath
}

// Summary reports what a run produced.
type Summary struct {
	OutputPath string
	Sheets     []string
	Skipped    int
}

// Generate reads the report's source, builds one sheet per retained table
// group plus the index sheet, and saves the workbook under outputRoot.
// A schema error aborts the run before any workbook is created.
func (g *Generator) Generate(outputRoot string) (summary *Summary, err error) {
	report := g.Context.Report

	view, err := g.Context.GetSourceView(report.Source)
	if err != nil {
		return nil, err
	}
	if err := view.CheckSchema(); err != nil {
		return nil, err
	}
	if modules, err := view.GetDistinctValues(FieldModule); err == nil {
		slog.Info("Source loaded", "source", report.Source, "modules", modules, "valueColumns", len(view.ValueColumns()))
	}

	groups := PartitionGroups(view.Rows())

	f := newExcelFile()
	defer func(f ExcelFile) {
		if closeErr := f.Close(); closeErr != nil {
			if err == nil {
				err = fmt.Errorf("failed to close workbook: %w", closeErr)
			} else {
				err = fmt.Errorf("%w; (cleanup error: %v)", err, closeErr)
			}
		}
	}(f)

	// The default sheet becomes the index so it stays first in the workbook.
	indexSheet := report.IndexSheet
	if sheets := f.GetSheetList(); len(sheets) > 0 && sheets[0] != indexSheet {
		if err := f.SetSheetName(sheets[0], indexSheet); err != nil {
			return nil, fmt.Errorf("failed to reserve index sheet: %w", err)
		}
	}

	writer, err := NewLayoutWriter(f, LayoutOptions{
		FirstColumnWidth:  report.Layout.FirstColumnWidth,
		SecondColumnWidth: report.Layout.SecondColumnWidth,
		Zoom:              report.Layout.Zoom,
	})
	if err != nil {
		return nil, err
	}

	policy := RetentionPolicy{ExcludedTableTypes: report.ExcludedTableTypes}
	allocator := NewSheetNameAllocator(indexSheet)
	index := NewIndexBuilder()
	summary = &Summary{}

	for i := range groups {
		group := &groups[i]
		if reason := policy.SkipReason(group.Key); reason != "" {
			slog.Info("Skipping table", "table", group.Key.TableName, "section", group.Key.Section, "reason", reason)
			summary.Skipped++
			continue
		}

		group.Rows = DedupeRows(group.Rows)
		content := BuildGroupContent(group, ContentOptions{FormulaShape: report.FormulaShape})

		sheetName := allocator.Allocate(RawSheetName(group.Key, report.ModuleShortNames))
		if err := writer.WriteSheet(sheetName, content); err != nil {
			return nil, fmt.Errorf("writing table %s: %w", group.Key.TableName, err)
		}
		index.Add(group.Key, sheetName)
		summary.Sheets = append(summary.Sheets, sheetName)

		slog.Debug("Sheet written",
			"sheet", sheetName,
			"rows", len(group.Rows),
			"negative", len(content.NegativeSettings.Rows),
			"formulas", len(content.Formula.Rows),
			"assumptions", len(content.AssumptionTable.Rows),
			"columns", len(content.AssumptionTable.Columns),
		)
	}

	if err := index.Write(f, indexSheet); err != nil {
		return nil, fmt.Errorf("writing index: %w", err)
	}
	slog.Info("Index written", "sheet", indexSheet, "entries", index.Len(), "skipped", summary.Skipped)

	// UX: Reset view to A1 for all sheets and set first sheet active
	for _, sheet := range f.GetSheetList() {
		// Ignore error for SetSelection as it's UX improvement
		_ = f.SetSelection(sheet, "A1")
	}
	f.SetActiveSheet(0)

	outputPath := g.OutputPath(outputRoot)
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := f.SaveAs(outputPath); err != nil {
		return nil, fmt.Errorf("failed to save output: %w", err)
	}

	summary.OutputPath = outputPath
	return summary, nil
}
