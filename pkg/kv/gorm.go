package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/sj23z/Puzur-Cataloge/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore persists blobs in the kv_records table through the shared GORM
// connection. Writes are last-writer-wins upserts; there is no optimistic
// concurrency check.
type GormStore struct {
	conn      *gorm.DB
	namespace string
}

// NewGormStore wraps the provided connection. namespace prefixes every key so
// multiple deployments can share one table.
func NewGormStore(conn *gorm.DB, namespace string) (*GormStore, error) {
	if conn == nil {
		return nil, fmt.Errorf("gorm connection is required")
	}
	if namespace == "" {
		return nil, fmt.Errorf("namespace is required")
	}
	return &GormStore{conn: conn, namespace: namespace}, nil
}

func (s *GormStore) qualify(key string) string {
	return s.namespace + ":" + key
}

func (s *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var record models.KVRecord
	err := s.conn.WithContext(ctx).
		Where("key = ?", s.qualify(key)).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading key %q: %w", key, err)
	}
	return record.Value, nil
}

func (s *GormStore) Set(ctx context.Context, key string, value []byte) error {
	record := models.KVRecord{Key: s.qualify(key), Value: value}
	err := s.conn.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, key string) error {
	err := s.conn.WithContext(ctx).
		Where("key = ?", s.qualify(key)).
		Delete(&models.KVRecord{}).Error
	if err != nil {
		return fmt.Errorf("deleting key %q: %w", key, err)
	}
	return nil
}
