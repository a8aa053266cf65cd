package core

import (
	"sort"
	"strings"
)

// BlockKind identifies one of the four blocks of a content sheet.
type BlockKind int

const (
	BlockHeader BlockKind = iota
	BlockNegativeSettings
	BlockFormula
	BlockAssumptionTable
)

// NoneMarker stands in for the data of an empty block.
const NoneMarker = "(none)"

// Block is a labeled rectangular range of cells.
type Block struct {
	Kind    BlockKind
	Label   string // written above the block; empty for the header
	Columns []string
	Rows    [][]interface{}
}

// Empty reports whether the block has no data rows.
func (b *Block) Empty() bool {
	return len(b.Rows) == 0
}

// Height is the number of sheet rows the block occupies: the column
// heading plus data, or the single "(none)" row.
func (b *Block) Height() int {
	if b.Empty() {
		return 1
	}
	return len(b.Rows) + 1
}

// GroupContent holds the four blocks of a sheet in write order.
type GroupContent struct {
	Header           Block
	NegativeSettings Block
	Formula          Block
	AssumptionTable  Block
}

// Blocks returns the blocks in the order they are laid out.
func (c *GroupContent) Blocks() []*Block {
	return []*Block{&c.Header, &c.NegativeSettings, &c.Formula, &c.AssumptionTable}
}

// ContentOptions tunes block construction.
type ContentOptions struct {
	FormulaShape string
}

// BuildGroupContent derives all blocks of a group. Rows are expected to be
// deduplicated and in partition order. It never fails.
func BuildGroupContent(g *Group, opts ContentOptions) *GroupContent {
	return &GroupContent{
		Header:           buildHeader(g),
		NegativeSettings: buildNegativeSettings(g.Rows),
		Formula:          buildFormula(g.Rows, opts.FormulaShape),
		AssumptionTable:  buildAssumptionTable(g.Rows),
	}
}

func buildHeader(g *Group) Block {
	var sections, shapes, usedBy, objNames []string
	for i := range g.Rows {
		sections = append(sections, g.Rows[i].Section)
		shapes = append(shapes, g.Rows[i].Shape)
		usedBy = append(usedBy, g.Rows[i].UsedBy)
		objNames = append(objNames, g.Rows[i].ObjName)
	}
	firstUsedBy := ""
	if u := distinctNonEmpty(usedBy); len(u) > 0 {
		firstUsedBy = u[0]
	}

	pairs := [][2]string{
		{"Module", g.Key.Module},
		{"Table Type", g.Key.TableType},
		{"Table_Usage_Type", g.Key.TableUsageType},
		{"Section(s)", strings.Join(distinctNonEmpty(sections), ", ")},
		{"Shape(s)", strings.Join(distinctNonEmpty(shapes), ", ")},
		{"Table Name", g.Key.TableName},
		{"Used By", firstUsedBy},
		{"Obj Name(s)", strings.Join(distinctNonEmpty(objNames), ", ")},
	}
	b := Block{Kind: BlockHeader, Columns: []string{"Field", "Value"}}
	for _, p := range pairs {
		b.Rows = append(b.Rows, []interface{}{p[0], p[1]})
	}
	return b
}

func buildNegativeSettings(rows []Row) Block {
	b := Block{
		Kind:    BlockNegativeSettings,
		Label:   "Negative Row Settings (Row < 0)",
		Columns: []string{"Row", "C1 (Setting Value)", "Op (Description)"},
	}
	for i := range rows {
		r := &rows[i]
		if r.HasIndex && r.Index < 0 {
			b.Rows = append(b.Rows, []interface{}{r.Index, r.Values[0], r.Op})
		}
	}
	return b
}

func buildFormula(rows []Row, marker string) Block {
	b := Block{
		Kind:    BlockFormula,
		Label:   "FORMULA (" + marker + " & Row = 1)",
		Columns: []string{"FORMULA"},
	}
	var formulas []string
	for i := range rows {
		r := &rows[i]
		if strings.EqualFold(r.Shape, marker) && r.HasIndex && r.Index == 1 {
			formulas = append(formulas, r.Formula)
		}
	}
	for _, f := range distinctNonEmpty(formulas) {
		b.Rows = append(b.Rows, []interface{}{f})
	}
	return b
}

func buildAssumptionTable(rows []Row) Block {
	b := Block{
		Kind:  BlockAssumptionTable,
		Label: "Assumption Table (Rows ≥ 1)",
	}
	var table []*Row
	for i := range rows {
		if rows[i].HasIndex && rows[i].Index >= 1 {
			table = append(table, &rows[i])
		}
	}
	sort.SliceStable(table, func(i, j int) bool {
		return table[i].Index < table[j].Index
	})

	used := UsedValueColumns(table)
	b.Columns = append(b.Columns, "Row")
	for _, c := range used {
		b.Columns = append(b.Columns, ValueColumnName(c))
	}
	for _, r := range table {
		cells := make([]interface{}, 0, len(used)+1)
		cells = append(cells, r.Index)
		for _, c := range used {
			cells = append(cells, r.Values[c])
		}
		b.Rows = append(b.Rows, cells)
	}
	return b
}

// UsedValueColumns returns the zero-based value columns holding at least one
// non-empty value, in column order.
func UsedValueColumns(rows []*Row) []int {
	var used []int
	for c := 0; c < ValueColumnCount; c++ {
		for _, r := range rows {
			if r.Values[c] != "" {
				used = append(used, c)
				break
			}
		}
	}
	return used
}

func distinctNonEmpty(values []string) []string {
	seen := make(map[string]struct{})
	var result []string
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		if _, exists := seen[v]; !exists {
			seen[v] = struct{}{}
			result = append(result, v)
		}
	}
	return result
}
