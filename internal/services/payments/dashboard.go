package payments

import (
	"context"

	"github.com/freelanceflow/backend/internal/models"
	"github.com/freelanceflow/backend/internal/store"
)

// DashboardStats is the read-only summary the dashboard renders. Every
// refresh recomputes it from the store; nothing is cached.
type DashboardStats struct {
	TotalMilestones     int64   `json:"total_milestones"`
	FundsInEscrow       float64 `json:"funds_in_escrow"`
	CompletedMilestones int64   `json:"completed_milestones"`
	OpenDisputes        int64   `json:"open_disputes"`
	TotalInvoices       int64   `json:"total_invoices"`
	SuccessRate         float64 `json:"success_rate"`
}

func (s *Service) Dashboard(ctx context.Context, f store.ProjectFilter) (DashboardStats, error) {
	var stats DashboardStats
	var err error

	if stats.TotalMilestones, err = s.store.CountMilestones(ctx, f); err != nil {
		return stats, err
	}
	if stats.FundsInEscrow, err = s.store.SumEscrowHeld(ctx, f); err != nil {
		return stats, err
	}
	if stats.CompletedMilestones, err = s.store.CountMilestonesByStatus(ctx, f, models.MilestoneStatusReleased); err != nil {
		return stats, err
	}
	if stats.OpenDisputes, err = s.store.CountOpenDisputes(ctx, f); err != nil {
		return stats, err
	}
	if stats.TotalInvoices, err = s.store.CountInvoices(ctx, f); err != nil {
		return stats, err
	}

	// With no milestones there is nothing failed yet, so report 100%.
	stats.SuccessRate = 100
	if stats.TotalMilestones > 0 {
		stats.SuccessRate = float64(stats.CompletedMilestones) / float64(stats.TotalMilestones) * 100
	}
	return stats, nil
}

// Query passthroughs for the presentation layer.

func (s *Service) Milestones(ctx context.Context, f store.ProjectFilter) ([]models.PaymentMilestone, error) {
	return s.store.MilestonesByProject(ctx, f)
}

func (s *Service) EscrowAccounts(ctx context.Context, f store.ProjectFilter) ([]models.EscrowAccount, error) {
	return s.store.EscrowByProject(ctx, f)
}

func (s *Service) Invoices(ctx context.Context, f store.ProjectFilter) ([]models.Invoice, error) {
	return s.store.InvoicesByProject(ctx, f)
}

func (s *Service) Disputes(ctx context.Context, f store.ProjectFilter) ([]models.DisputeCase, error) {
	return s.store.DisputesByProject(ctx, f)
}
