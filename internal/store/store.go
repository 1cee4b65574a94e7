// Package store is the client-storage layer: a flat keyspace of opaque
// JSON/string blobs, mirroring what a browser would keep in localStorage.
package store

import (
	"errors"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MathiasEthan/RaAI/internal/models"
)

// Well-known storage keys. The literal values are part of the on-disk
// contract and must not change.
const (
	KeyAuthToken         = "auth_token"
	KeyLastCheckIn       = "lastCheckIn"
	KeyLastResponses     = "lastResponses"
	KeyDailyScore        = "dailyScore"
	KeyLastJournalEntry  = "lastJournalEntry"
	KeyLastCheckinResult = "lastCheckinResult"
	KeyOnboardingScore   = "onboardingScore"
	KeyPendingJournal    = "pendingJournal"
	KeyChatLog           = "chatLog"
)

// Store is the persistence interface handed to anything that needs
// client storage. Get reports false when the key is absent.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// GormStore persists blobs in the local database.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(key string) (string, bool) {
	var blob models.Blob
	err := s.db.First(&blob, "key = ?", key).Error
	if err != nil {
		return "", false
	}
	return blob.Value, true
}

func (s *GormStore) Set(key, value string) error {
	blob := models.Blob{Key: key, Value: value}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&blob).Error
}

func (s *GormStore) Delete(key string) error {
	err := s.db.Delete(&models.Blob{}, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// MemStore is an in-memory Store for tests and for running without a
// database. Safe for concurrent use: the reminder scheduler reads it
// from its own goroutine while request handlers write.
type MemStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string]string)}
}

func (s *MemStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
