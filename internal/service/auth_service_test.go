package service

import (
	"context"
	"testing"
	"time"

	"place-journal-be/internal/dto"
	"place-journal-be/internal/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(f *fixture) IAuthService {
	return NewAuthService(&fakeFactory{uow: f.uow}, "test-secret", time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	auth := newAuthService(f)
	ctx := context.Background()

	registered, err := auth.Register(ctx, &dto.RegisterRequest{
		Email:    "traveler@example.com",
		Password: "hunter2hunter2",
		FullName: "Trav Eler",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.Token)

	logged, err := auth.Login(ctx, &dto.LoginRequest{
		Email:    "traveler@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.UserId, logged.UserId)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	f := newFixture(t)
	auth := newAuthService(f)
	ctx := context.Background()

	req := &dto.RegisterRequest{Email: "dup@example.com", Password: "hunter2hunter2", FullName: "Dup"}
	_, err := auth.Register(ctx, req)
	require.NoError(t, err)

	_, err = auth.Register(ctx, req)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newFixture(t)
	auth := newAuthService(f)
	ctx := context.Background()

	_, err := auth.Register(ctx, &dto.RegisterRequest{
		Email: "traveler@example.com", Password: "hunter2hunter2", FullName: "Trav Eler",
	})
	require.NoError(t, err)

	_, err = auth.Login(ctx, &dto.LoginRequest{Email: "traveler@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = auth.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "hunter2hunter2"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}
