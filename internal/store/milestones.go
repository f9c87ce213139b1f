package store

import (
	"context"
	"time"

	"github.com/freelanceflow/backend/internal/models"
	"gorm.io/gorm"
)

func (s *Store) InsertMilestone(ctx context.Context, m *models.PaymentMilestone) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if m.ID == "" {
			id, err := nextID(tx, &models.PaymentMilestone{}, "milestone_id", PrefixMilestone)
			if err != nil {
				return err
			}
			m.ID = id
		}
		return tx.Create(m).Error
	})
}

func (s *Store) GetMilestone(ctx context.Context, milestoneID string) (*models.PaymentMilestone, error) {
	var m models.PaymentMilestone
	if err := s.conn(ctx).First(&m, "milestone_id = ?", milestoneID).Error; err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (s *Store) MilestonesByProject(ctx context.Context, f ProjectFilter) ([]models.PaymentMilestone, error) {
	var out []models.PaymentMilestone
	err := f.apply(s.conn(ctx)).
		Order("created_date DESC, milestone_id DESC").
		Find(&out).Error
	return out, err
}

// DeleteMilestone removes a milestone. Escrow accounts and disputes that
// referenced it keep their rows with the milestone link cleared.
func (s *Store) DeleteMilestone(ctx context.Context, milestoneID string) error {
	res := s.conn(ctx).Delete(&models.PaymentMilestone{}, "milestone_id = ?", milestoneID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateMilestoneStatus sets the status column and stamps completed_date
// when the milestone reaches a final state (Released or Cancelled).
func (s *Store) UpdateMilestoneStatus(ctx context.Context, milestoneID string, status models.MilestoneStatus) (int64, error) {
	updates := map[string]any{"status": status}
	if status.Final() {
		now := time.Now()
		updates["completed_date"] = &now
	}
	res := s.conn(ctx).Model(&models.PaymentMilestone{}).
		Where("milestone_id = ?", milestoneID).
		Updates(updates)
	return res.RowsAffected, res.Error
}
