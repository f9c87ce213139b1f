package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/freelanceflow/backend/internal/models"
)

// ErrNotFound is returned when a row addressed by id does not exist.
var ErrNotFound = errors.New("store: record not found")

// Store is the only component allowed to touch the database. Workflow
// services compose its operations; nothing above them mutates state
// directly.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates all tables, indexes and constraints if absent. Safe to
// call on every process start.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectStatusHistory{},
		&models.Bid{},
		&models.PaymentMilestone{},
		&models.EscrowAccount{},
		&models.Invoice{},
		&models.DisputeCase{},
		&models.Notification{},
	)
}

// WithTx runs fn against a transactional view of the store. Any error
// rolls the whole transaction back.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
