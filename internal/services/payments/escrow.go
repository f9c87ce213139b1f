package payments

import (
	"context"
	"fmt"
	"strings"

	"github.com/freelanceflow/backend/internal/models"
	"github.com/freelanceflow/backend/internal/notify"
	"github.com/freelanceflow/backend/internal/store"
)

// Escrow accounts are not released behind their milestone's back:
// ReleaseEscrow resolves the paired milestone and goes through the full
// milestone release so both statuses move together and the invoice is
// generated. Accounts without a milestone link can only be refunded.

func (s *Service) ReleaseEscrow(ctx context.Context, escrowID string) (*models.Invoice, error) {
	esc, err := s.store.GetEscrow(ctx, escrowID)
	if err != nil {
		return nil, err
	}
	if !esc.Status.Held() {
		return nil, ErrEscrowNotHeld
	}
	if esc.MilestoneID == nil {
		return nil, ErrEscrowUnlinked
	}
	return s.ReleaseMilestone(ctx, *esc.MilestoneID)
}

// HoldEscrow parks held funds without filing a dispute. Only accounts
// still holding funds can be placed on hold.
func (s *Service) HoldEscrow(ctx context.Context, escrowID string) error {
	esc, err := s.store.GetEscrow(ctx, escrowID)
	if err != nil {
		return err
	}
	if !esc.Status.Held() {
		return ErrEscrowNotHeld
	}
	_, err = s.store.UpdateEscrowStatus(ctx, escrowID, models.EscrowStatusOnHold)
	return err
}

// RefundEscrow returns held funds to the client and cancels the paired
// milestone when one exists.
func (s *Service) RefundEscrow(ctx context.Context, escrowID string) error {
	esc, err := s.store.GetEscrow(ctx, escrowID)
	if err != nil {
		return err
	}
	if !esc.Status.Held() {
		return ErrEscrowNotHeld
	}

	err = s.store.WithTx(ctx, func(tx *store.Store) error {
		if _, err := tx.UpdateEscrowStatus(ctx, escrowID, models.EscrowStatusRefunded); err != nil {
			return err
		}
		if esc.MilestoneID != nil {
			if _, err := tx.UpdateMilestoneStatus(ctx, *esc.MilestoneID, models.MilestoneStatusCancelled); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.emit(ctx, notify.Event{
		Title:    "Escrow Refunded",
		Message:  fmt.Sprintf("%.2f refunded from escrow %s on project %s.", esc.Amount, esc.ID, esc.ProjectID),
		Category: models.NotificationPayment,
		Payload:  map[string]any{"escrow_id": esc.ID, "amount": esc.Amount},
	})
	return nil
}

type GenerateInvoiceInput struct {
	ProjectID   string
	Amount      float64
	Description string

	ClientID     *int64
	FreelancerID *int64
}

// GenerateInvoice creates a standalone draft invoice, due in seven days.
func (s *Service) GenerateInvoice(ctx context.Context, in GenerateInvoiceInput) (*models.Invoice, error) {
	if strings.TrimSpace(in.ProjectID) == "" {
		return nil, fmt.Errorf("%w: project id is required", ErrValidation)
	}
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	}
	if _, err := s.store.GetProject(ctx, in.ProjectID); err != nil {
		return nil, fmt.Errorf("look up project %s: %w", in.ProjectID, err)
	}

	inv := models.Invoice{
		ProjectID:    in.ProjectID,
		ClientID:     in.ClientID,
		FreelancerID: in.FreelancerID,
		Amount:       in.Amount,
		Status:       models.InvoiceStatusDraft,
		Description:  in.Description,
		DueDate:      s.now().Add(invoiceDueAfter),
	}
	if err := s.store.InsertInvoice(ctx, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// SendInvoice marks a draft invoice as sent to the client.
func (s *Service) SendInvoice(ctx context.Context, invoiceID string) error {
	if _, err := s.store.GetInvoice(ctx, invoiceID); err != nil {
		return err
	}
	_, err := s.store.UpdateInvoiceStatus(ctx, invoiceID, models.InvoiceStatusSent)
	return err
}
