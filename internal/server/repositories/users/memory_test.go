package users

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/newsdigest/internal/common"
	"github.com/dmitrijs2005/newsdigest/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	u, err := repo.Create(ctx, &models.User{Email: "ann@example.com", Name: "Ann", Salt: []byte("s")})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	_, err = repo.Create(ctx, &models.User{Email: "ann@example.com"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	byEmail, err := repo.GetUserByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byEmail.Salt[0] = 'x'
	byID, err := repo.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("s"), byID.Salt)

	_, err = repo.GetUserByID(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = repo.GetUserByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
