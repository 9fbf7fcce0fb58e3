package repository

import (
	"context"

	"photoshare-backend/internal/models"
)

// UserRepository persists account records. Lookups return (nil, nil) when
// no row matches, so callers can tell "absent" from "query failed".
type UserRepository interface {
	Create(ctx context.Context, email, passwordHash string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int) (*models.User, error)
}

// PhotoRepository persists photo metadata records.
type PhotoRepository interface {
	Insert(ctx context.Context, photo *models.Photo) (*models.Photo, error)
	FindByID(ctx context.Context, id int) (*models.Photo, error)
	ListByUser(ctx context.Context, userID int) ([]models.Photo, error)
	Delete(ctx context.Context, id int) error
}
