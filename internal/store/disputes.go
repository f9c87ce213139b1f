package store

import (
	"context"
	"time"

	"github.com/freelanceflow/backend/internal/models"
	"gorm.io/gorm"
)

func (s *Store) InsertDispute(ctx context.Context, d *models.DisputeCase) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if d.ID == "" {
			id, err := nextID(tx, &models.DisputeCase{}, "dispute_id", PrefixDispute)
			if err != nil {
				return err
			}
			d.ID = id
		}
		return tx.Create(d).Error
	})
}

func (s *Store) GetDispute(ctx context.Context, disputeID string) (*models.DisputeCase, error) {
	var d models.DisputeCase
	if err := s.conn(ctx).First(&d, "dispute_id = ?", disputeID).Error; err != nil {
		return nil, notFound(err)
	}
	return &d, nil
}

func (s *Store) DisputesByProject(ctx context.Context, f ProjectFilter) ([]models.DisputeCase, error) {
	var out []models.DisputeCase
	err := f.apply(s.conn(ctx)).
		Order("created_date DESC, dispute_id DESC").
		Find(&out).Error
	return out, err
}

// UpdateDispute sets the status and, when non-nil, the resolution text.
func (s *Store) UpdateDispute(ctx context.Context, disputeID string, status models.DisputeStatus, resolution *string) (int64, error) {
	updates := map[string]any{
		"status":       status,
		"updated_date": time.Now(),
	}
	if resolution != nil {
		updates["resolution"] = *resolution
	}
	res := s.conn(ctx).Model(&models.DisputeCase{}).
		Where("dispute_id = ?", disputeID).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// OpenDisputeExists reports whether the milestone has a dispute in a
// state that blocks fund release.
func (s *Store) OpenDisputeExists(ctx context.Context, milestoneID string) (bool, error) {
	var n int64
	err := s.conn(ctx).Model(&models.DisputeCase{}).
		Where("milestone_id = ? AND status IN ?", milestoneID, models.OpenDisputeStatuses()).
		Count(&n).Error
	return n > 0, err
}
