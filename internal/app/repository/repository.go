package repository

import (
	"context"
	"errors"
	"fleet_registry/internal/app/ds"
	"fleet_registry/internal/app/storage"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	redis  *redis.Client
	blobs  storage.BlobStore
	jwtKey string
}

func New(dsn string, rdb *redis.Client, blobs storage.BlobStore, jwtKey string) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	if rdb != nil {
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			return nil, err
		}
	}
	return NewWithDB(db, rdb, blobs, jwtKey), nil
}

// NewWithDB wraps an already opened connection. rdb may be nil when sessions are disabled.
func NewWithDB(db *gorm.DB, rdb *redis.Client, blobs storage.BlobStore, jwtKey string) *Repository {
	return &Repository{
		db:     db,
		redis:  rdb,
		blobs:  blobs,
		jwtKey: jwtKey,
	}
}

func (r *Repository) DB() *gorm.DB {
	return r.db
}

func (r *Repository) Redis() *redis.Client {
	return r.redis
}

func (r *Repository) Blobs() storage.BlobStore {
	return r.blobs
}

func (r *Repository) JWTKey() string {
	return r.jwtKey
}

// Models lists every table in migration order.
func Models() []any {
	return []any{
		&ds.User{},
		&ds.Owner{},
		&ds.Activity{},
		&ds.Insurer{},
		&ds.Vessel{},
		&ds.Insurance{},
		&ds.Engine{},
		&ds.Inspection{},
		&ds.Document{},
		&ds.MetaField{},
	}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(Models()...)
}

// wrapErr maps gorm errors onto the ds taxonomy.
func wrapErr(err error, what string, id int) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s %d: %w", what, id, ds.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", what, ds.ErrDuplicateKey)
	}
	return err
}

func first[T any](ctx context.Context, db *gorm.DB, id int, what string, preload ...string) (T, error) {
	var out T
	q := db.WithContext(ctx)
	for _, p := range preload {
		q = q.Preload(p)
	}
	err := q.Where("id = ?", id).First(&out).Error
	if err != nil {
		var zero T
		return zero, wrapErr(err, what, id)
	}
	return out, nil
}

func exists[T any](ctx context.Context, db *gorm.DB, id int, what string) error {
	var count int64
	if err := db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%s %d: %w", what, id, ds.ErrNotFound)
	}
	return nil
}

// removeBlobs releases content whose rows are already gone; failures only leave orphans.
func (r *Repository) removeBlobs(ctx context.Context, refs ...string) {
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		if err := r.blobs.Remove(ctx, ref); err != nil {
			logrus.Warnf("failed to remove blob %s: %v", ref, err)
		}
	}
}
