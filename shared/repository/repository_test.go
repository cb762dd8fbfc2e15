package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"careops/infras/otel/mocks"
	"careops/shared/dto"
	"careops/shared/model"
)

type testItem struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Internal string
	Skipped  string `db:"-"`
	model.Metadata
}

type testItemDetail struct {
	testItem
	OwnerName *string `db:"owner_name" table:"owners" column:"name"`
}

func (testItemDetail) GetJoinQuery() string {
	return "LEFT JOIN owners ON owners.id = items.owner_id"
}

func TestNewRepository_Queries(t *testing.T) {
	repo := NewRepository[testItem]("item", "items", "id", nil, mocks.NewOtel())

	assert.Equal(t,
		"INSERT INTO items (id, name, created_at, modified_at, created_by, modified_by) "+
			"VALUES (:id, :name, :created_at, :modified_at, :created_by, :modified_by)",
		repo.insertQuery)
	assert.Empty(t, repo.join)
	assert.Equal(t, "items", repo.from())
	assert.Equal(t, "items.id, items.name", repo.selectList("id", "name"))
}

func TestNewRepository_JoinedModel(t *testing.T) {
	repo := NewRepository[testItemDetail]("item", "items", "id", nil, mocks.NewOtel())

	assert.Equal(t, "items LEFT JOIN owners ON owners.id = items.owner_id", repo.from())
	assert.Equal(t, "items.name, owners.name AS owner_name", repo.selectList("name"))
	assert.NotContains(t, repo.insertQuery, "owner_name")
	assert.NotContains(t, repo.insertQuery, "owners")
}

func TestRepository_OrderBy(t *testing.T) {
	repo := NewRepository[testItem]("item", "items", "id", nil, mocks.NewOtel())

	tests := []struct {
		name   string
		params dto.QueryParams
		want   string
	}{
		{name: "default", params: dto.QueryParams{}, want: " ORDER BY items.id"},
		{name: "bare column is qualified", params: dto.SortBy("name", "asc"), want: " ORDER BY items.name ASC, items.id ASC"},
		{name: "qualified column kept", params: dto.SortBy("owners.name", "desc"), want: " ORDER BY owners.name DESC, items.id DESC"},
		{name: "missing direction", params: dto.QueryParams{SortBy: "created_at"}, want: " ORDER BY items.created_at ASC, items.id ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, repo.orderBy(tt.params))
		})
	}
}

func TestRepository_Where(t *testing.T) {
	repo := NewRepository[testItem]("item", "items", "id", nil, mocks.NewOtel())

	where, args := repo.where(dto.FilterGroup{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = repo.where(dto.FilterGroup{Filters: []any{
		dto.Filter{Field: "id", Value: "abc", Operator: dto.FilterOperatorEq, Table: "items"},
	}})
	assert.Equal(t, " WHERE (items.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "abc"}, args)
}

func TestRepository_RequiresFilter(t *testing.T) {
	repo := NewRepository[testItem]("item", "items", "id", nil, mocks.NewOtel())

	assert.ErrorIs(t, repo.delete(t.Context(), nil, dto.FilterGroup{}), errRequiredFilter)
	assert.ErrorIs(t, repo.update(t.Context(), nil, map[string]any{"name": "x"}, dto.FilterGroup{}), errRequiredFilter)
	assert.ErrorIs(t, repo.update(t.Context(), nil, map[string]any{}, dto.FilterGroup{}), errEmptyUpdate)

	_, err := repo.exist(t.Context(), nil, dto.FilterGroup{})
	assert.ErrorIs(t, err, errRequiredFilter)
}
