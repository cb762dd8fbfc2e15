package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"careops/internal/domains/inventory/model/dto"
)

func TestItemQuery_ToFilter(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		name      string
		query     dto.ItemQuery
		wantWhere string
	}{
		{name: "no filters", query: dto.ItemQuery{}, wantWhere: ""},
		{name: "low stock", query: dto.ItemQuery{LowStock: &yes}, wantWhere: "((inventory.quantity <= inventory.low_stock_threshold))"},
		{name: "in stock", query: dto.ItemQuery{LowStock: &no}, wantWhere: "((inventory.quantity > inventory.low_stock_threshold))"},
		{
			name:      "category and low stock",
			query:     dto.ItemQuery{Category: "supplies", LowStock: &yes},
			wantWhere: "(inventory.category = :category AND (inventory.quantity <= inventory.low_stock_threshold))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := tt.query.ToFilter()
			where, _ := filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
		})
	}
}
