package sqlite

import (
	"strings"

	"github.com/homespun/homespun/internal/sessions/domain"
)

// filterClause builds a WHERE clause for filter against the given project
// and status columns. statusColumn may be empty to ignore status filters.
func filterClause(filter domain.ListFilter, projectColumn, statusColumn string) (string, []any) {
	var conds []string
	var args []any

	if filter.ProjectID != "" {
		conds = append(conds, projectColumn+" = ?")
		args = append(args, filter.ProjectID)
	}
	if statusColumn != "" && len(filter.Statuses) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(filter.Statuses)), ", ")
		conds = append(conds, statusColumn+" IN ("+placeholders+")")
		for _, s := range filter.Statuses {
			args = append(args, s.String())
		}
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// limitClause appends a LIMIT when filter.Limit is positive.
func limitClause(filter domain.ListFilter, args []any) (string, []any) {
	if filter.Limit <= 0 {
		return "", args
	}
	return " LIMIT ?", append(args, filter.Limit)
}
