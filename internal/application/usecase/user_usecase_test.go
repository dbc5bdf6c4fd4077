package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxymarbre/devis-api/internal/application/dto"
	"github.com/luxymarbre/devis-api/internal/application/usecase"
	"github.com/luxymarbre/devis-api/internal/domain"
	"github.com/luxymarbre/devis-api/internal/domain/entity"
	"github.com/luxymarbre/devis-api/internal/domain/repository"
)

type memUserRepo struct {
	repository.UserRepository
	users     []*entity.User
	lastLimit int
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) List(_ context.Context, limit, _ int) ([]*entity.User, error) {
	r.lastLimit = limit
	return r.users, nil
}

func TestUserUseCase(t *testing.T) {
	repo := &memUserRepo{users: []*entity.User{
		{ID: "u1", Email: "admin@luxy.ma", Role: entity.RoleAdmin, PasswordHash: "hash"},
		{ID: "u2", Email: "staff@luxy.ma", Role: entity.RoleStaff},
	}}
	uc := usecase.NewUserUseCase(repo)

	u, err := uc.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "admin@luxy.ma", u.Email)

	_, err = uc.GetByID(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	list, err := uc.List(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 20, repo.lastLimit)
}
