package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"photoshare-backend/internal/cache"
	"photoshare-backend/internal/filters"
	"photoshare-backend/internal/models"
	"photoshare-backend/internal/repository"

	"github.com/google/uuid"
)

// Timeouts bounding each external call so a slow collaborator cannot hold
// a request open indefinitely.
const (
	dbTimeout      = 5 * time.Second
	storageTimeout = 15 * time.Second

	signedURLTTL = 30 * time.Second
)

// ObjectStorage is the gateway to the blob store. Every call is a remote
// operation attempted exactly once.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Fetch(ctx context.Context, key string) ([]byte, error)
	Remove(ctx context.Context, key string) error
	SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// FilterCache hands out request-scoped cache connections.
type FilterCache interface {
	Acquire() CacheConn
}

// CacheConn is a checked-out cache connection. Close must be called on
// every exit path of the operation that acquired it.
type CacheConn interface {
	Get(key string) (string, error)
	Set(key, val string, ttl time.Duration) error
	Del(keys ...string) error
	Close() error
}

// TransformFunc applies a named filter to image bytes. Unknown filter
// names return the input unchanged.
type TransformFunc func(src []byte, filterType string) ([]byte, error)

type PhotoService struct {
	photos    repository.PhotoRepository
	store     ObjectStorage
	cache     FilterCache
	transform TransformFunc
}

func NewPhotoService(photos repository.PhotoRepository, store ObjectStorage, filterCache FilterCache, transform TransformFunc) *PhotoService {
	return &PhotoService{
		photos:    photos,
		store:     store,
		cache:     filterCache,
		transform: transform,
	}
}

// Create uploads the blob under a fresh random key, then persists the
// metadata record. If the upload fails no record is written. The returned
// view carries a fresh signed URL.
func (s *PhotoService) Create(ctx context.Context, userID int, data []byte, contentType, name, description string) (*models.PhotoView, error) {
	key, err := newStorageKey(contentType)
	if err != nil {
		return nil, err
	}

	sctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()
	url, err := s.store.Upload(sctx, key, data, contentType)
	if err != nil {
		return nil, upstream("upload failed", err)
	}

	dctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()
	photo, err := s.photos.Insert(dctx, &models.Photo{
		UserID:      userID,
		Name:        name,
		Description: description,
		StorageKey:  key,
		SourceURL:   url,
	})
	if err != nil {
		return nil, upstream("save photo", err)
	}

	view := s.withSignedURL(ctx, *photo)
	return &view, nil
}

// List returns all photos owned by the user, each with a best-effort
// signed URL. A signing failure nulls that photo's URL instead of failing
// the list.
func (s *PhotoService) List(ctx context.Context, userID int) ([]models.PhotoView, error) {
	dctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()
	photos, err := s.photos.ListByUser(dctx, userID)
	if err != nil {
		return nil, upstream("list photos", err)
	}

	views := make([]models.PhotoView, 0, len(photos))
	for _, photo := range photos {
		views = append(views, s.withSignedURL(ctx, photo))
	}
	return views, nil
}

// Delete removes the blob, then the metadata record, then best-effort
// invalidates the photo's filter cache entries. The caller's current photo
// list is returned whether or not the delete succeeded; a failure midway
// is reported alongside the post-failure state, not rolled back.
func (s *PhotoService) Delete(ctx context.Context, userID, photoID int) ([]models.PhotoView, error) {
	deleteErr := s.deleteOne(ctx, userID, photoID)

	views, err := s.List(ctx, userID)
	if err != nil {
		if deleteErr != nil {
			return nil, deleteErr
		}
		return nil, err
	}
	return views, deleteErr
}

func (s *PhotoService) deleteOne(ctx context.Context, userID, photoID int) error {
	findCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()
	photo, err := s.photos.FindByID(findCtx, photoID)
	if err != nil {
		return upstream("find photo", err)
	}
	if photo == nil {
		return ErrPhotoNotFound
	}
	if photo.UserID != userID {
		return ErrForbidden
	}

	sctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()
	if err := s.store.Remove(sctx, photo.StorageKey); err != nil {
		return upstream("delete blob", err)
	}

	// The record delete gets its own DB timeout: a blob removal that ran
	// long must not hand it an already-spent context and force the
	// orphaned-record window.
	delCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()
	if err := s.photos.Delete(delCtx, photoID); err != nil {
		// The blob is already gone: the record now points at nothing.
		return upstream("delete photo", err)
	}

	s.invalidateFilters(photoID)
	return nil
}

// ApplyFilter returns the filtered photo as a self-describing data URL.
// A dedicated cache connection is held for the duration of the call and
// released on every exit path. On a miss the result is computed and
// written back fire-and-forget; a write failure is logged, not surfaced.
func (s *PhotoService) ApplyFilter(ctx context.Context, photoID int, filterType string) (string, error) {
	conn := s.cache.Acquire()
	defer conn.Close()

	key := cache.FilterKey(photoID, filterType)
	cached, err := conn.Get(key)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		// Degrade to a miss: a broken cache should not take down the
		// filter endpoint.
		log.Printf("filter cache read failed for %s: %v", key, err)
	}

	dctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()
	photo, err := s.photos.FindByID(dctx, photoID)
	if err != nil {
		return "", upstream("find photo", err)
	}
	if photo == nil {
		return "", ErrPhotoNotFound
	}

	sctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()
	src, err := s.store.Fetch(sctx, photo.StorageKey)
	if err != nil {
		return "", upstream("fetch photo", err)
	}

	out, err := s.transform(src, filterType)
	if err != nil {
		return "", fmt.Errorf("filter failed: %w", err)
	}

	payload := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(out)
	if err := conn.Set(key, payload, 0); err != nil {
		log.Printf("filter cache write failed for %s: %v", key, err)
	}
	return payload, nil
}

func (s *PhotoService) invalidateFilters(photoID int) {
	conn := s.cache.Acquire()
	defer conn.Close()
	if err := conn.Del(filterKeys(photoID)...); err != nil {
		log.Printf("filter cache invalidation failed for photo %d: %v", photoID, err)
	}
}

// filterKeys enumerates the cache keys for every filter the transform
// engine recognizes, so delete can invalidate them all.
func filterKeys(photoID int) []string {
	keys := make([]string, 0, len(filters.Names))
	for _, name := range filters.Names {
		keys = append(keys, cache.FilterKey(photoID, name))
	}
	return keys
}

func (s *PhotoService) withSignedURL(ctx context.Context, photo models.Photo) models.PhotoView {
	view := models.PhotoView{Photo: photo}

	sctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()
	url, err := s.store.SignedURL(sctx, photo.StorageKey, signedURLTTL)
	if err != nil {
		log.Printf("failed to sign url for photo %d: %v", photo.ID, err)
		return view
	}
	view.SignedURL = &url
	return view
}

// newStorageKey builds a random object key: a 128-bit identifier truncated
// to 12 hex chars, plus an extension taken from the mime subtype so the
// key never ends up extensionless.
func newStorageKey(contentType string) (string, error) {
	_, subtype, found := strings.Cut(contentType, "/")
	if !found || subtype == "" {
		return "", fmt.Errorf("invalid content type %q", contentType)
	}
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return hex[:12] + "." + subtype, nil
}
