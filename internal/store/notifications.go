package store

import (
	"context"

	"github.com/freelanceflow/backend/internal/models"
)

func (s *Store) InsertNotification(ctx context.Context, n *models.Notification) error {
	return s.conn(ctx).Create(n).Error
}

func (s *Store) Notifications(ctx context.Context, limit int) ([]models.Notification, error) {
	q := s.conn(ctx).Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []models.Notification
	err := q.Find(&out).Error
	return out, err
}
