package services_test

import (
	"context"
	"errors"
	"testing"

	"photoshare-backend/internal/models"
	"photoshare-backend/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterThenLogin(t *testing.T) {
	svc := services.NewUserService(newFakeUserRepo())
	ctx := context.Background()

	token, err := svc.Register(ctx, models.RegisterRequest{Email: "amy@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	loginToken, err := svc.Login(ctx, models.LoginRequest{Email: "amy@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.NotEmpty(t, loginToken)
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := services.NewUserService(repo)

	_, err := svc.Register(context.Background(), models.RegisterRequest{Email: "amy@example.com", Password: "hunter22"})
	require.NoError(t, err)

	user := repo.users["amy@example.com"]
	require.NotNil(t, user)
	assert.NotEqual(t, "hunter22", user.PasswordHash)
	assert.NotContains(t, user.PasswordHash, "hunter22")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := services.NewUserService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{Email: "amy@example.com", Password: "hunter22"})
	require.NoError(t, err)

	token, err := svc.Register(ctx, models.RegisterRequest{Email: "amy@example.com", Password: "other"})
	assert.ErrorIs(t, err, services.ErrDuplicateEmail)
	assert.Empty(t, token)
	assert.Len(t, repo.users, 1, "no second record may be created")
}

func TestLoginUnknownUser(t *testing.T) {
	svc := services.NewUserService(newFakeUserRepo())

	token, err := svc.Login(context.Background(), models.LoginRequest{Email: "ghost@example.com", Password: "pw"})
	assert.ErrorIs(t, err, services.ErrUserNotFound)
	assert.Empty(t, token)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := services.NewUserService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{Email: "amy@example.com", Password: "hunter22"})
	require.NoError(t, err)

	token, err := svc.Login(ctx, models.LoginRequest{Email: "amy@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	assert.Empty(t, token)
}

func TestRegisterRepositoryFailureIsUpstream(t *testing.T) {
	repo := newFakeUserRepo()
	repo.findErr = errors.New("connection refused")
	svc := services.NewUserService(repo)

	_, err := svc.Register(context.Background(), models.RegisterRequest{Email: "amy@example.com", Password: "pw"})
	var upstreamErr *services.UpstreamError
	assert.ErrorAs(t, err, &upstreamErr)
}

func TestValidateTokenRoundTrip(t *testing.T) {
	token, err := services.GenerateJWT(42, "amy@example.com")
	require.NoError(t, err)

	claims, err := services.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, float64(42), claims["user_id"])
	assert.Equal(t, "amy@example.com", claims["email"])
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := services.ValidateToken("not.a.token")
	assert.Error(t, err)
}
