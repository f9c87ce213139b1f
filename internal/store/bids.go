package store

import (
	"context"
	"time"

	"github.com/freelanceflow/backend/internal/models"
	"gorm.io/gorm"
)

func (s *Store) InsertBid(ctx context.Context, b *models.Bid) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if b.ID == "" {
			id, err := nextID(tx, &models.Bid{}, "bid_id", PrefixBid)
			if err != nil {
				return err
			}
			b.ID = id
		}
		return tx.Create(b).Error
	})
}

func (s *Store) GetBid(ctx context.Context, bidID string) (*models.Bid, error) {
	var b models.Bid
	if err := s.conn(ctx).First(&b, "bid_id = ?", bidID).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (s *Store) BidsByProject(ctx context.Context, f ProjectFilter) ([]models.Bid, error) {
	var out []models.Bid
	err := f.apply(s.conn(ctx)).
		Order("created_date DESC, bid_id DESC").
		Find(&out).Error
	return out, err
}

func (s *Store) UpdateBidStatus(ctx context.Context, bidID string, status models.BidStatus) (int64, error) {
	res := s.conn(ctx).Model(&models.Bid{}).
		Where("bid_id = ?", bidID).
		Updates(map[string]any{"status": status, "updated_date": time.Now()})
	return res.RowsAffected, res.Error
}
