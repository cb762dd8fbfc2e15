package dto

import (
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams controls list ordering. Column names must come from code, never from
// the request, since they are interpolated into the ORDER BY clause.
type QueryParams struct {
	SortBy  string `json:"sortBy"  validate:"omitempty"`
	SortDir string `json:"sortDir" validate:"omitempty,oneof=ASC DESC"`
}

// SortBy builds QueryParams for a trusted column, falling back to ascending order
// for any unknown direction.
func SortBy(column, dir string) QueryParams {
	dir = strings.ToUpper(dir)
	if dir != SortDirDesc {
		dir = SortDirAsc
	}

	return QueryParams{SortBy: column, SortDir: dir}
}
