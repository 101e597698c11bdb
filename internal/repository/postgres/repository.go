package postgres

import (
	"fmt"
	"strings"

	"github.com/finbooks/finbooks/internal/types"
)

// sortColumn maps a requested sort key to a real column. Sort keys come
// from query strings, so only allowlisted columns may reach the SQL text.
func sortColumn(requested string, allowed map[string]string, fallback string) string {
	if col, ok := allowed[requested]; ok {
		return col
	}
	return fallback
}

// sortOrder normalizes the order direction for interpolation
func sortOrder(requested string) string {
	if strings.EqualFold(requested, types.OrderAsc) {
		return "ASC"
	}
	return "DESC"
}

// namedInClause expands values into numbered named parameters so IN
// lists work with named queries
func namedInClause(column, prefix string, values []string, params map[string]interface{}) string {
	names := make([]string, len(values))
	for i, v := range values {
		name := fmt.Sprintf("%s_%d", prefix, i)
		names[i] = ":" + name
		params[name] = v
	}
	return fmt.Sprintf("%s IN (%s)", column, strings.Join(names, ", "))
}

// timeRangeConditions appends created_at bounds for an optional time
// range filter
func timeRangeConditions(f *types.TimeRangeFilter, conditions []string, params map[string]interface{}) []string {
	if f == nil {
		return conditions
	}
	if f.StartTime != nil {
		conditions = append(conditions, "created_at >= :start_time")
		params["start_time"] = *f.StartTime
	}
	if f.EndTime != nil {
		conditions = append(conditions, "created_at <= :end_time")
		params["end_time"] = *f.EndTime
	}
	return conditions
}
