package store

import (
	"context"

	"github.com/freelanceflow/backend/internal/models"
	"gorm.io/gorm"
)

func (s *Store) InsertEscrow(ctx context.Context, e *models.EscrowAccount) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if e.ID == "" {
			id, err := nextID(tx, &models.EscrowAccount{}, "escrow_id", PrefixEscrow)
			if err != nil {
				return err
			}
			e.ID = id
		}
		return tx.Create(e).Error
	})
}

func (s *Store) GetEscrow(ctx context.Context, escrowID string) (*models.EscrowAccount, error) {
	var e models.EscrowAccount
	if err := s.conn(ctx).First(&e, "escrow_id = ?", escrowID).Error; err != nil {
		return nil, notFound(err)
	}
	return &e, nil
}

func (s *Store) EscrowByMilestone(ctx context.Context, milestoneID string) (*models.EscrowAccount, error) {
	var e models.EscrowAccount
	if err := s.conn(ctx).First(&e, "milestone_id = ?", milestoneID).Error; err != nil {
		return nil, notFound(err)
	}
	return &e, nil
}

func (s *Store) EscrowByProject(ctx context.Context, f ProjectFilter) ([]models.EscrowAccount, error) {
	var out []models.EscrowAccount
	err := f.apply(s.conn(ctx)).
		Order("created_date DESC, escrow_id DESC").
		Find(&out).Error
	return out, err
}

func (s *Store) UpdateEscrowStatus(ctx context.Context, escrowID string, status models.EscrowStatus) (int64, error) {
	res := s.conn(ctx).Model(&models.EscrowAccount{}).
		Where("escrow_id = ?", escrowID).
		Update("status", status)
	return res.RowsAffected, res.Error
}

func (s *Store) UpdateEscrowStatusByMilestone(ctx context.Context, milestoneID string, status models.EscrowStatus) (int64, error) {
	res := s.conn(ctx).Model(&models.EscrowAccount{}).
		Where("milestone_id = ?", milestoneID).
		Update("status", status)
	return res.RowsAffected, res.Error
}
