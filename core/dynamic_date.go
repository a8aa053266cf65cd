package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = map[string]string{
	"day":      "2006-01-02",
	"month":    "2006-01",
	"year":     "2006",
	"datetime": "2006-01-02 15:04:05",
	"compact":  "20060102",
	"stamp":    "20060102-150405",
}

// ParseDynamicDate expands "$date:format[:unit:offset]" relative to baseTime.
// "$date:compact" is today as 20060102; "$date:day:day:-1" is yesterday as
// 2006-01-02. Values without the prefix are returned unchanged.
func ParseDynamicDate(expression string, baseTime time.Time) (string, error) {
	if !strings.HasPrefix(expression, "$date:") {
		return expression, nil
	}

	parts := strings.Split(strings.TrimPrefix(expression, "$date:"), ":")
	if len(parts) != 1 && len(parts) != 3 {
		return "", fmt.Errorf("invalid dynamic date format: %s", expression)
	}

	layout, ok := dateLayouts[parts[0]]
	if !ok {
		return "", fmt.Errorf("unsupported format in dynamic date: %s", expression)
	}
	if len(parts) == 1 {
		return baseTime.Format(layout), nil
	}

	offset, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", fmt.Errorf("invalid offset in dynamic date: %s", expression)
	}

	target := baseTime
	switch parts[1] {
	case "day":
		target = target.AddDate(0, 0, offset)
	case "month":
		target = target.AddDate(0, offset, 0)
	case "year":
		target = target.AddDate(offset, 0, 0)
	default:
		return "", fmt.Errorf("unsupported unit in dynamic date: %s", parts[1])
	}

	return target.Format(layout), nil
}
