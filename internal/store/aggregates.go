package store

import (
	"context"

	"github.com/freelanceflow/backend/internal/models"
)

func (s *Store) CountMilestones(ctx context.Context, f ProjectFilter) (int64, error) {
	var n int64
	err := f.apply(s.conn(ctx).Model(&models.PaymentMilestone{})).Count(&n).Error
	return n, err
}

func (s *Store) CountMilestonesByStatus(ctx context.Context, f ProjectFilter, status models.MilestoneStatus) (int64, error) {
	var n int64
	err := f.apply(s.conn(ctx).Model(&models.PaymentMilestone{})).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}

// SumEscrowHeld totals escrow amounts still held (Funded or On Hold).
func (s *Store) SumEscrowHeld(ctx context.Context, f ProjectFilter) (float64, error) {
	var total float64
	err := f.apply(s.conn(ctx).Model(&models.EscrowAccount{})).
		Where("status IN ?", []models.EscrowStatus{models.EscrowStatusFunded, models.EscrowStatusOnHold}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// CountOpenDisputes counts Open, Under Review and Escalated disputes.
// Resolved and Closed are settled and excluded.
func (s *Store) CountOpenDisputes(ctx context.Context, f ProjectFilter) (int64, error) {
	var n int64
	err := f.apply(s.conn(ctx).Model(&models.DisputeCase{})).
		Where("status IN ?", models.OpenDisputeStatuses()).
		Count(&n).Error
	return n, err
}

func (s *Store) CountInvoices(ctx context.Context, f ProjectFilter) (int64, error) {
	var n int64
	err := f.apply(s.conn(ctx).Model(&models.Invoice{})).Count(&n).Error
	return n, err
}
