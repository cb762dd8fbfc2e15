package dto_test

import (
	"careops/shared/constant"
	"careops/shared/dto"
	"careops/shared/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2023, 1, 2, 12, 0, 0, 0, time.UTC)

	modelMetadata := model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "creator",
		ModifiedBy: "modifier",
	}

	metadata := &dto.Metadata{}
	metadata.FromModel(modelMetadata)

	assert.Equal(t, createdAt.Format(constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, modifiedAt.Format(constant.DateFormat), metadata.UpdatedAt)
	assert.Equal(t, "creator", metadata.CreatedBy)
	assert.Equal(t, "modifier", metadata.UpdatedBy)
}

func TestSortBy(t *testing.T) {
	tests := []struct {
		name     string
		column   string
		dir      string
		expected dto.QueryParams
	}{
		{
			name:     "descending lower case",
			column:   "created_at",
			dir:      "desc",
			expected: dto.QueryParams{SortBy: "created_at", SortDir: dto.SortDirDesc},
		},
		{
			name:     "ascending",
			column:   "name",
			dir:      dto.SortDirAsc,
			expected: dto.QueryParams{SortBy: "name", SortDir: dto.SortDirAsc},
		},
		{
			name:     "unknown direction falls back to ascending",
			column:   "name",
			dir:      "sideways",
			expected: dto.QueryParams{SortBy: "name", SortDir: dto.SortDirAsc},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, dto.SortBy(tt.column, tt.dir))
		})
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name         string
		filter       dto.Filter
		expectedSQL  string
		expectedArgs map[string]any
	}{
		{
			name:         "eq with table",
			filter:       dto.Filter{Field: "status", Value: "new", Operator: dto.FilterOperatorEq, Table: "contacts"},
			expectedSQL:  "contacts.status = :status",
			expectedArgs: map[string]any{"status": "new"},
		},
		{
			name:         "like wraps value",
			filter:       dto.Filter{Field: "name", ArgName: "search", Value: "ali", Operator: dto.FilterOperatorLike},
			expectedSQL:  "LOWER(name) LIKE LOWER(:search)",
			expectedArgs: map[string]any{"search": "%ali%"},
		},
		{
			name:         "in expands slice",
			filter:       dto.Filter{Field: "status", Value: []string{"a", "b"}, Operator: dto.FilterOperatorIn},
			expectedSQL:  "status IN (:status_0, :status_1)",
			expectedArgs: map[string]any{"status_0": "a", "status_1": "b"},
		},
		{
			name:         "in with empty slice matches nothing",
			filter:       dto.Filter{Field: "status", Value: []string{}, Operator: dto.FilterOperatorIn},
			expectedSQL:  "FALSE",
			expectedArgs: map[string]any{},
		},
		{
			name:         "in with scalar binds one value",
			filter:       dto.Filter{Field: "type", Value: "low_stock", Operator: dto.FilterOperatorIn, Table: "alerts"},
			expectedSQL:  "alerts.type IN (:type)",
			expectedArgs: map[string]any{"type": "low_stock"},
		},
		{
			name:         "not equal",
			filter:       dto.Filter{Field: "status", Value: "cancelled", Operator: dto.FilterOperatorNotEq},
			expectedSQL:  "status != :status",
			expectedArgs: map[string]any{"status": "cancelled"},
		},
		{
			name:         "unknown operator renders nothing",
			filter:       dto.Filter{Field: "status", Value: "new", Operator: "between"},
			expectedSQL:  "",
			expectedArgs: map[string]any{},
		},
		{
			name:         "strictly less",
			filter:       dto.Filter{Field: "start_time", ArgName: "end", Value: 5, Operator: dto.FilterOperatorLess},
			expectedSQL:  "start_time < :end",
			expectedArgs: map[string]any{"end": 5},
		},
		{
			name:         "strictly greater",
			filter:       dto.Filter{Field: "quantity", Value: 1, Operator: dto.FilterOperatorGreater},
			expectedSQL:  "quantity > :quantity",
			expectedArgs: map[string]any{"quantity": 1},
		},
		{
			name:         "plain query",
			filter:       dto.Filter{Value: "quantity <= low_stock_threshold", Operator: dto.FilterPlainQuery},
			expectedSQL:  "(quantity <= low_stock_threshold)",
			expectedArgs: map[string]any{},
		},
		{
			name:         "is null",
			filter:       dto.Filter{Field: "completed_at", Operator: dto.FilterIsNull},
			expectedSQL:  "completed_at IS NULL",
			expectedArgs: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.expectedSQL, where)
			assert.Equal(t, tt.expectedArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	t.Run("empty group yields no clause", func(t *testing.T) {
		where, args := (&dto.FilterGroup{}).GetWhereClause()

		assert.Empty(t, where)
		assert.Empty(t, args)
	})

	t.Run("defaults to AND and skips empty members", func(t *testing.T) {
		group := dto.FilterGroup{
			Filters: []any{
				dto.Filter{Field: "status", Value: "new", Operator: dto.FilterOperatorEq},
				dto.FilterGroup{},
				dto.Filter{Field: "ignored", Operator: "between"},
				"not a filter",
				dto.FilterGroup{
					Operator: dto.FilterGroupOperatorOr,
					Filters: []any{
						dto.Filter{Field: "name", ArgName: "search_name", Value: "a", Operator: dto.FilterOperatorLike},
						dto.Filter{Field: "email", ArgName: "search_email", Value: "a", Operator: dto.FilterOperatorLike},
					},
				},
			},
		}

		where, args := group.GetWhereClause()

		assert.Equal(t, "(status = :status AND (LOWER(name) LIKE LOWER(:search_name) OR LOWER(email) LIKE LOWER(:search_email)))", where)
		assert.Equal(t, map[string]any{"status": "new", "search_name": "%a%", "search_email": "%a%"}, args)
	})
}
