package repository

import (
	"context"
	"errors"

	"photoshare-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

func (r *PostgresUserRepository) Create(ctx context.Context, email, passwordHash string) (*models.User, error) {
	var user models.User
	query := `INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id, email, created_at`
	err := r.pool.QueryRow(ctx, query, email, passwordHash).Scan(&user.ID, &user.Email, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = passwordHash
	return &user, nil
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	query := `SELECT id, email, password_hash, created_at FROM users WHERE email = $1`
	err := r.pool.QueryRow(ctx, query, email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	query := `SELECT id, email, password_hash, created_at FROM users WHERE id = $1`
	err := r.pool.QueryRow(ctx, query, id).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

type PostgresPhotoRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresPhotoRepository(pool *pgxpool.Pool) *PostgresPhotoRepository {
	return &PostgresPhotoRepository{pool: pool}
}

func (r *PostgresPhotoRepository) Insert(ctx context.Context, photo *models.Photo) (*models.Photo, error) {
	query := `
		INSERT INTO photos (user_id, name, description, storage_key, source_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		photo.UserID, photo.Name, photo.Description, photo.StorageKey, photo.SourceURL,
	).Scan(&photo.ID, &photo.CreatedAt)
	if err != nil {
		return nil, err
	}
	return photo, nil
}

func (r *PostgresPhotoRepository) FindByID(ctx context.Context, id int) (*models.Photo, error) {
	var photo models.Photo
	query := `SELECT id, user_id, name, description, storage_key, source_url, created_at FROM photos WHERE id = $1`
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&photo.ID, &photo.UserID, &photo.Name, &photo.Description,
		&photo.StorageKey, &photo.SourceURL, &photo.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *PostgresPhotoRepository) ListByUser(ctx context.Context, userID int) ([]models.Photo, error) {
	query := `
		SELECT id, user_id, name, description, storage_key, source_url, created_at
		FROM photos WHERE user_id = $1 ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []models.Photo
	for rows.Next() {
		var photo models.Photo
		if err := rows.Scan(
			&photo.ID, &photo.UserID, &photo.Name, &photo.Description,
			&photo.StorageKey, &photo.SourceURL, &photo.CreatedAt,
		); err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}
	return photos, rows.Err()
}

func (r *PostgresPhotoRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM photos WHERE id = $1`, id)
	return err
}
