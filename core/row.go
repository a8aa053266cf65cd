package core

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ValueColumnCount is the number of enumerated value columns (C1..C121).
const ValueColumnCount = 121

// Canonical field names.
const (
	FieldSection        = "Section"
	FieldShape          = "Shape"
	FieldTableName      = "TableName"
	FieldRow            = "Row"
	FieldOp             = "Op"
	FieldLnkSection     = "LnkSection"
	FieldLnkTable       = "LnkTable"
	FieldFormula        = "FORMULA"
	FieldName           = "Name"
	FieldObjName        = "ObjName"
	FieldUsedBy         = "UsedBy"
	FieldModule         = "Module"
	FieldTableType      = "TableType"
	FieldTableUsageType = "TableUsageType"
)

// BaseFields must all be present in a source schema.
var BaseFields = []string{
	FieldSection, FieldShape, FieldTableName, FieldRow, FieldOp, FieldLnkSection, FieldLnkTable,
	FieldFormula, FieldName, FieldObjName, FieldUsedBy, FieldModule, FieldTableType, FieldTableUsageType,
}

var valueColumnPattern = regexp.MustCompile(`^C(\d{1,3})$`)

// ValueColumnName returns the header of the value column at zero-based position i.
func ValueColumnName(i int) string {
	return "C" + strconv.Itoa(i+1)
}

// ValueColumnIndex reports the zero-based position of a value column header.
func ValueColumnIndex(name string) (int, bool) {
	m := valueColumnPattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 || n > ValueColumnCount {
		return 0, false
	}
	return n - 1, true
}

// Row is one normalized record of the export.
type Row struct {
	Section        string
	Shape          string
	TableName      string
	Index          int
	HasIndex       bool
	Op             string
	LnkSection     string
	LnkTable       string
	Formula        string
	Name           string
	ObjName        string
	UsedBy         string
	Module         string
	TableType      string
	TableUsageType string
	Values         [ValueColumnCount]string
}

// Key returns the composite key the row is grouped by.
func (r *Row) Key() GroupKey {
	return GroupKey{
		Module:         r.Module,
		TableType:      r.TableType,
		TableUsageType: r.TableUsageType,
		TableName:      r.TableName,
		Section:        r.Section,
		Shape:          r.Shape,
	}
}

// NormalizeRow builds a Row from a record keyed by canonical field names.
// Missing fields become empty and an unparsable Row leaves the index unset.
func NormalizeRow(record map[string]string) Row {
	get := func(field string) string {
		return strings.TrimSpace(record[field])
	}

	r := Row{
		Section:        get(FieldSection),
		Shape:          get(FieldShape),
		TableName:      get(FieldTableName),
		Op:             get(FieldOp),
		LnkSection:     get(FieldLnkSection),
		LnkTable:       get(FieldLnkTable),
		Formula:        get(FieldFormula),
		Name:           get(FieldName),
		ObjName:        get(FieldObjName),
		UsedBy:         get(FieldUsedBy),
		Module:         get(FieldModule),
		TableType:      get(FieldTableType),
		TableUsageType: get(FieldTableUsageType),
	}
	r.Index, r.HasIndex = ParseRowIndex(record[FieldRow])
	for i := range r.Values {
		r.Values[i] = get(ValueColumnName(i))
	}
	return r
}

// ParseRowIndex coerces s to an integer index. Floats with an integral value
// are accepted ("2.0"); anything else, including values outside the int32
// range, yields ok == false.
func ParseRowIndex(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n > math.MaxInt32 || n < math.MinInt32 {
			return 0, false
		}
		return int(n), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

// dedupKey identifies a row for duplicate removal. UsedBy and ObjName are
// informational and left out.
func (r *Row) dedupKey() string {
	var b strings.Builder
	idx := ""
	if r.HasIndex {
		idx = strconv.Itoa(r.Index)
	}
	for _, s := range []string{
		r.Section, r.Shape, r.TableName, idx, r.Op, r.LnkSection, r.LnkTable,
		r.Formula, r.Name, r.Module, r.TableType, r.TableUsageType,
	} {
		b.WriteString(s)
		b.WriteByte(0x1f)
	}
	for _, v := range r.Values {
		b.WriteString(v)
		b.WriteByte(0x1f)
	}
	return b.String()
}
