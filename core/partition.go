package core

import (
	"sort"
	"strings"
)

// GroupKey is the composite key of a table group.
type GroupKey struct {
	Module         string
	TableType      string
	TableUsageType string
	TableName      string
	Section        string
	Shape          string
}

// Compare orders keys field by field, byte-wise.
func (k GroupKey) Compare(o GroupKey) int {
	for _, p := range [][2]string{
		{k.Module, o.Module},
		{k.TableType, o.TableType},
		{k.TableUsageType, o.TableUsageType},
		{k.TableName, o.TableName},
		{k.Section, o.Section},
		{k.Shape, o.Shape},
	} {
		if c := strings.Compare(p[0], p[1]); c != 0 {
			return c
		}
	}
	return 0
}

// Group is the set of rows sharing a key. It maps to one content sheet.
type Group struct {
	Key  GroupKey
	Rows []Row
}

// lessRow sorts by key, then by index with unset indexes last.
func lessRow(a, b *Row) bool {
	if c := a.Key().Compare(b.Key()); c != 0 {
		return c < 0
	}
	switch {
	case a.HasIndex && b.HasIndex:
		return a.Index < b.Index
	case a.HasIndex != b.HasIndex:
		return a.HasIndex
	}
	return false
}

// PartitionGroups sorts rows and splits them into groups by key.
// Groups come out in key order and rows keep a deterministic order inside
// each group. The input slice is not modified.
func PartitionGroups(rows []Row) []Group {
	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return lessRow(&sorted[i], &sorted[j])
	})

	var groups []Group
	for i := range sorted {
		key := sorted[i].Key()
		if n := len(groups); n > 0 && groups[n-1].Key == key {
			groups[n-1].Rows = append(groups[n-1].Rows, sorted[i])
			continue
		}
		groups = append(groups, Group{Key: key, Rows: []Row{sorted[i]}})
	}
	return groups
}

// DedupeRows drops repeated rows, keeping the first occurrence.
// Rows differing only in UsedBy or ObjName count as duplicates.
func DedupeRows(rows []Row) []Row {
	seen := make(map[string]struct{}, len(rows))
	result := make([]Row, 0, len(rows))
	for i := range rows {
		k := rows[i].dedupKey()
		if _, exists := seen[k]; exists {
			continue
		}
		seen[k] = struct{}{}
		result = append(result, rows[i])
	}
	return result
}

// RetentionPolicy decides which groups become sheets.
type RetentionPolicy struct {
	ExcludedTableTypes []string
}

// SkipReason returns why a group is not written, or "" when it is kept.
func (p RetentionPolicy) SkipReason(key GroupKey) string {
	if strings.TrimSpace(key.TableName) == "" {
		return "empty table name"
	}
	tableType := strings.TrimSpace(key.TableType)
	for _, excluded := range p.ExcludedTableTypes {
		if strings.EqualFold(tableType, strings.TrimSpace(excluded)) {
			return "excluded table type " + key.TableType
		}
	}
	return ""
}
