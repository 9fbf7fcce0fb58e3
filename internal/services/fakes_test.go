package services_test

import (
	"context"
	"errors"
	"sort"
	"time"

	"photoshare-backend/internal/cache"
	"photoshare-backend/internal/models"
	"photoshare-backend/internal/services"
)

type fakeUserRepo struct {
	users  map[string]*models.User
	nextID int

	findErr   error
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, email, passwordHash string) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	user := &models.User{
		ID:           f.nextID,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	f.users[email] = user
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.users[email], nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id int) (*models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

type fakePhotoRepo struct {
	photos map[int]*models.Photo
	nextID int

	insertErr error
	findErr   error
	listErr   error
	deleteErr error

	// Deadline of the context handed to Delete, for asserting the
	// record delete runs on a fresh timeout.
	deleteDeadline time.Time
}

func newFakePhotoRepo() *fakePhotoRepo {
	return &fakePhotoRepo{photos: map[int]*models.Photo{}}
}

func (f *fakePhotoRepo) Insert(_ context.Context, photo *models.Photo) (*models.Photo, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.nextID++
	photo.ID = f.nextID
	photo.CreatedAt = time.Now()
	stored := *photo
	f.photos[photo.ID] = &stored
	return photo, nil
}

func (f *fakePhotoRepo) FindByID(_ context.Context, id int) (*models.Photo, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	photo, ok := f.photos[id]
	if !ok {
		return nil, nil
	}
	copied := *photo
	return &copied, nil
}

func (f *fakePhotoRepo) ListByUser(_ context.Context, userID int) ([]models.Photo, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Photo
	for _, p := range f.photos {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakePhotoRepo) Delete(ctx context.Context, id int) error {
	if d, ok := ctx.Deadline(); ok {
		f.deleteDeadline = d
	}
	// Like pgx, refuse to run on a spent context.
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.photos, id)
	return nil
}

type fakeStore struct {
	objects map[string][]byte

	uploadErr error
	fetchErr  error
	removeErr error
	signErr   error

	removeDelay  time.Duration
	removeDoneAt time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (f *fakeStore) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.objects[key] = data
	return "https://store.example/photos/" + key, nil
}

func (f *fakeStore) Fetch(_ context.Context, key string) ([]byte, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("object not found: " + key)
	}
	return data, nil
}

func (f *fakeStore) Remove(_ context.Context, key string) error {
	if f.removeDelay > 0 {
		time.Sleep(f.removeDelay)
	}
	f.removeDoneAt = time.Now()
	if f.removeErr != nil {
		return f.removeErr
	}
	delete(f.objects, key)
	return nil
}

func (f *fakeStore) SignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	return "https://store.example/signed/" + key, nil
}

// fakeCache hands out connections over a shared entry map and counts
// acquire/release pairs so tests can assert the scoped-release contract.
type fakeCache struct {
	entries map[string]string

	getErr error
	setErr error
	delErr error

	acquired int
	released int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (f *fakeCache) Acquire() services.CacheConn {
	f.acquired++
	return &fakeConn{cache: f}
}

type fakeConn struct {
	cache *fakeCache
}

func (c *fakeConn) Get(key string) (string, error) {
	if c.cache.getErr != nil {
		return "", c.cache.getErr
	}
	val, ok := c.cache.entries[key]
	if !ok {
		return "", cache.ErrCacheMiss
	}
	return val, nil
}

func (c *fakeConn) Set(key, val string, _ time.Duration) error {
	if c.cache.setErr != nil {
		return c.cache.setErr
	}
	c.cache.entries[key] = val
	return nil
}

func (c *fakeConn) Del(keys ...string) error {
	if c.cache.delErr != nil {
		return c.cache.delErr
	}
	for _, key := range keys {
		delete(c.cache.entries, key)
	}
	return nil
}

func (c *fakeConn) Close() error {
	c.cache.released++
	return nil
}
