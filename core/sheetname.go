package core

import (
	"strconv"
	"strings"
	"unicode/utf16"
)

// MaxSheetNameLength is the workbook limit on sheet names, counted in UTF-16
// code units as the spreadsheet does.
const MaxSheetNameLength = 31

var sheetNameReplacer = strings.NewReplacer(
	":", "_", `\`, "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_",
	"'", "’",
)

// SanitizeSheetName makes name usable as a sheet name: forbidden characters
// become '_', apostrophes become ’ and the result is cut to 31 UTF-16 units.
func SanitizeSheetName(name string) string {
	if name == "" {
		name = "Sheet"
	}
	return truncateUnits(sheetNameReplacer.Replace(name), MaxSheetNameLength)
}

// SheetNameLength returns the length of name in UTF-16 code units.
func SheetNameLength(name string) int {
	n := 0
	for _, r := range name {
		n += runeUnits(r)
	}
	return n
}

func runeUnits(r rune) int {
	if l := utf16.RuneLen(r); l > 0 {
		return l
	}
	return 1
}

// truncateUnits cuts s to at most n UTF-16 code units without splitting a
// surrogate pair.
func truncateUnits(s string, n int) string {
	units := 0
	for i, r := range s {
		units += runeUnits(r)
		if units > n {
			return s[:i]
		}
	}
	return s
}

// RawSheetName builds the descriptive sheet name of a group.
func RawSheetName(key GroupKey, moduleShort map[string]string) string {
	module := key.Module
	if short, ok := moduleShort[module]; ok {
		module = short
	}
	return module + " | " + key.Section + " | " + key.TableName
}

// SheetNameAllocator hands out unique sheet names for one run.
// Uniqueness is checked on the final, sanitized name and ignores case, so two
// different raw names that only collide after truncation still get distinct names.
type SheetNameAllocator struct {
	used   map[string]struct{}
	counts map[string]int
}

// NewSheetNameAllocator creates an allocator. Reserved names are never returned.
func NewSheetNameAllocator(reserved ...string) *SheetNameAllocator {
	a := &SheetNameAllocator{
		used:   make(map[string]struct{}),
		counts: make(map[string]int),
	}
	for _, name := range reserved {
		a.used[strings.ToLower(name)] = struct{}{}
	}
	return a
}

// Allocate returns a unique sheet name derived from raw.
// The first use of a name returns it unchanged; later uses get "_N" appended,
// with the base trimmed so the whole name stays within 31 characters.
func (a *SheetNameAllocator) Allocate(raw string) string {
	base := SanitizeSheetName(raw)
	key := strings.ToLower(base)

	n := a.counts[key]
	name := base
	for {
		n++
		if n > 1 {
			suffix := "_" + strconv.Itoa(n)
			name = truncateUnits(base, MaxSheetNameLength-len(suffix)) + suffix
		}
		if _, taken := a.used[strings.ToLower(name)]; !taken {
			break
		}
	}
	a.counts[key] = n
	a.used[strings.ToLower(name)] = struct{}{}
	return name
}
