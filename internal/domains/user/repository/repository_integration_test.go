//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careops/infras/otel/mocks"
	"careops/internal/domains/user/model"
	"careops/internal/domains/user/repository"
	"careops/shared"
	"careops/shared/constant"
	sharedModel "careops/shared/model"
	"careops/shared/testhelpers"
)

func TestUserRepository_Integration(t *testing.T) {
	db := testhelpers.GetTestDB(t)
	testhelpers.Truncate(t, db, "users")

	ctx := context.Background()
	repo := repository.New(db, mocks.NewOtel())

	user := model.User{
		ID:        "user-1",
		Email:     model.NormalizeEmail("Dana@Example.com"),
		FirstName: "Dana",
		Role:      constant.RoleStaff,
		Metadata:  sharedModel.NewMetadata("system", time.Now().UTC()),
	}
	require.NoError(t, repo.Insert(ctx, user))

	t.Run("lookup by email ignores case", func(t *testing.T) {
		found, err := repo.GetByEmail(ctx, "  DANA@example.com ")

		require.NoError(t, err)
		assert.Equal(t, "user-1", found.ID)
		assert.Equal(t, "Dana", found.FirstName)
	})

	t.Run("lookup by id", func(t *testing.T) {
		found, err := repo.GetByID(ctx, "user-1")

		require.NoError(t, err)
		assert.Equal(t, "dana@example.com", found.Email)
	})

	t.Run("unknown id is the zero user", func(t *testing.T) {
		found, err := repo.GetByID(ctx, "missing")

		require.NoError(t, err)
		assert.Empty(t, found.ID)
	})

	t.Run("duplicate email is a unique violation", func(t *testing.T) {
		duplicate := user
		duplicate.ID = "user-2"

		err := repo.Insert(ctx, duplicate)

		require.Error(t, err)
		assert.True(t, shared.IsPqError(err, constant.PqErrorCodeUniqueViolation))
	})
}
