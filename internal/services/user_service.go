package services

import (
	"context"
	"errors"
	"time"

	"photoshare-backend/internal/models"
	"photoshare-backend/internal/repository"
	"photoshare-backend/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Register creates an account and returns a session token. The email must
// not already be registered.
func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", upstream("find user", err)
	}
	if existing != nil {
		return "", ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user, err := s.users.Create(ctx, req.Email, string(hash))
	if err != nil {
		return "", upstream("create user", err)
	}

	return GenerateJWT(user.ID, user.Email)
}

// Login verifies credentials and returns a token identical in shape to the
// one issued on registration. It performs no writes.
func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", upstream("find user", err)
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return GenerateJWT(user.ID, user.Email)
}

// GenerateJWT issues a signed session token embedding the user identity,
// expiring in 24 hours.
func GenerateJWT(userID int, email string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(utils.GetEnv("JWT_SECRET", "secret")))
}

func ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(utils.GetEnv("JWT_SECRET", "secret")), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
