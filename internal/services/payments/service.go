// Package payments implements the milestone, escrow, invoice and
// dispute lifecycle over the persistence store.
package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/freelanceflow/backend/internal/models"
	"github.com/freelanceflow/backend/internal/notify"
	"github.com/freelanceflow/backend/internal/store"
)

// Invoices fall due one week after generation.
const invoiceDueAfter = 7 * 24 * time.Hour

var (
	ErrValidation       = errors.New("payments: validation failed")
	ErrMilestoneFinal   = errors.New("payments: milestone is already released or cancelled")
	ErrDisputeOpen      = errors.New("payments: milestone has an open dispute")
	ErrDisputeSettled   = errors.New("payments: dispute is already resolved or closed")
	ErrEscrowUnlinked   = errors.New("payments: escrow account has no milestone")
	ErrEscrowNotHeld    = errors.New("payments: escrow account no longer holds funds")
)

type Service struct {
	store *store.Store
	sink  notify.Sink
	log   *zap.Logger

	now func() time.Time
}

func New(st *store.Store, sink notify.Sink, log *zap.Logger) *Service {
	if sink == nil {
		sink = notify.Noop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: st, sink: sink, log: log, now: time.Now}
}

// emit delivers a workflow event to the sink. Sink failures are logged
// and dropped; the operation that triggered the event already committed.
func (s *Service) emit(ctx context.Context, ev notify.Event) {
	ev.At = s.now()
	if err := s.sink.Publish(ctx, ev); err != nil {
		s.log.Warn("notification sink failed",
			zap.String("title", ev.Title),
			zap.Error(err))
	}
}

type CreateMilestoneInput struct {
	ProjectID     string
	Description   string
	Amount        float64
	PaymentMethod string
	Notes         string
	DueDate       *time.Time

	// Optional parties recorded on the escrow account. Nil is accepted
	// when the caller has no identity available.
	ClientID     *int64
	FreelancerID *int64
}

func (in CreateMilestoneInput) validate() error {
	if strings.TrimSpace(in.ProjectID) == "" {
		return fmt.Errorf("%w: project id is required", ErrValidation)
	}
	if strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	if in.Amount <= 0 {
		return fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	}
	return nil
}

// CreateMilestone inserts a milestone together with its escrow account
// holding the same amount. The two writes commit atomically; a failure
// of either leaves no trace of the other.
func (s *Service) CreateMilestone(ctx context.Context, in CreateMilestoneInput) (*models.PaymentMilestone, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := s.store.GetProject(ctx, in.ProjectID); err != nil {
		return nil, fmt.Errorf("look up project %s: %w", in.ProjectID, err)
	}

	m := models.PaymentMilestone{
		ProjectID:     in.ProjectID,
		Description:   strings.TrimSpace(in.Description),
		Amount:        in.Amount,
		Status:        models.MilestoneStatusPending,
		PaymentMethod: in.PaymentMethod,
		Notes:         in.Notes,
		DueDate:       in.DueDate,
	}
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		if err := tx.InsertMilestone(ctx, &m); err != nil {
			return fmt.Errorf("insert milestone: %w", err)
		}
		esc := models.EscrowAccount{
			ProjectID:    in.ProjectID,
			MilestoneID:  &m.ID,
			ClientID:     in.ClientID,
			FreelancerID: in.FreelancerID,
			Amount:       in.Amount,
			Status:       models.EscrowStatusFunded,
		}
		if err := tx.InsertEscrow(ctx, &esc); err != nil {
			return fmt.Errorf("insert escrow for milestone %s: %w", m.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, notify.Event{
		Title:    "New Milestone Created",
		Message:  fmt.Sprintf("Milestone %q created for project %s, %.2f held in escrow.", m.Description, m.ProjectID, m.Amount),
		Category: models.NotificationMilestone,
		Payload:  map[string]any{"milestone_id": m.ID, "project_id": m.ProjectID, "amount": m.Amount},
	})
	return &m, nil
}

// ReleaseMilestone pays out a milestone: the milestone and its escrow
// account become Released and one invoice is generated for the amount,
// due seven days out. Milestones with an open dispute cannot be
// released; the release is irreversible.
func (s *Service) ReleaseMilestone(ctx context.Context, milestoneID string) (*models.Invoice, error) {
	m, err := s.store.GetMilestone(ctx, milestoneID)
	if err != nil {
		return nil, err
	}
	if m.Status.Final() {
		return nil, ErrMilestoneFinal
	}
	open, err := s.store.OpenDisputeExists(ctx, milestoneID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, ErrDisputeOpen
	}

	esc, err := s.store.EscrowByMilestone(ctx, milestoneID)
	if err != nil {
		return nil, fmt.Errorf("look up escrow for milestone %s: %w", milestoneID, err)
	}

	inv := models.Invoice{
		ProjectID:    m.ProjectID,
		ClientID:     esc.ClientID,
		FreelancerID: esc.FreelancerID,
		Amount:       m.Amount,
		Status:       models.InvoiceStatusDraft,
		Description:  m.Description,
		DueDate:      s.now().Add(invoiceDueAfter),
	}
	err = s.store.WithTx(ctx, func(tx *store.Store) error {
		if _, err := tx.UpdateMilestoneStatus(ctx, milestoneID, models.MilestoneStatusReleased); err != nil {
			return err
		}
		if _, err := tx.UpdateEscrowStatusByMilestone(ctx, milestoneID, models.EscrowStatusReleased); err != nil {
			return err
		}
		return tx.InsertInvoice(ctx, &inv)
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, notify.Event{
		Title:    "Payment Released",
		Message:  fmt.Sprintf("%.2f released for milestone %s on project %s. Invoice %s generated.", m.Amount, m.ID, m.ProjectID, inv.ID),
		Category: models.NotificationPayment,
		Payload:  map[string]any{"milestone_id": m.ID, "invoice_id": inv.ID, "amount": m.Amount},
	})
	return &inv, nil
}

type OpenDisputeInput struct {
	MilestoneID string
	RaisedBy    models.DisputeParty
	Reason      string
}

// OpenDispute files a dispute against a milestone. The milestone is
// marked Disputed and its escrow account placed On Hold in the same
// transaction as the dispute insert.
func (s *Service) OpenDispute(ctx context.Context, in OpenDisputeInput) (*models.DisputeCase, error) {
	if strings.TrimSpace(in.Reason) == "" {
		return nil, fmt.Errorf("%w: dispute reason is required", ErrValidation)
	}
	if !in.RaisedBy.Valid() {
		return nil, fmt.Errorf("%w: unknown dispute party %q", ErrValidation, in.RaisedBy)
	}
	m, err := s.store.GetMilestone(ctx, in.MilestoneID)
	if err != nil {
		return nil, err
	}
	if m.Status.Final() {
		return nil, ErrMilestoneFinal
	}

	d := models.DisputeCase{
		ProjectID:   m.ProjectID,
		MilestoneID: &m.ID,
		RaisedBy:    in.RaisedBy,
		Reason:      strings.TrimSpace(in.Reason),
		Status:      models.DisputeStatusOpen,
	}
	err = s.store.WithTx(ctx, func(tx *store.Store) error {
		if err := tx.InsertDispute(ctx, &d); err != nil {
			return err
		}
		if _, err := tx.UpdateMilestoneStatus(ctx, m.ID, models.MilestoneStatusDisputed); err != nil {
			return err
		}
		_, err := tx.UpdateEscrowStatusByMilestone(ctx, m.ID, models.EscrowStatusOnHold)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, notify.Event{
		Title:    "Dispute Opened",
		Message:  fmt.Sprintf("Dispute %s opened on milestone %s: %s. Payment held pending resolution.", d.ID, m.ID, d.Reason),
		Category: models.NotificationDispute,
		Payload:  map[string]any{"dispute_id": d.ID, "milestone_id": m.ID},
	})
	return &d, nil
}

// ResolveDispute records the outcome of a dispute. It does not move
// funds: the held escrow stays held until a subsequent, explicit
// ReleaseMilestone, which the resolution unblocks.
func (s *Service) ResolveDispute(ctx context.Context, disputeID, resolution string) error {
	if strings.TrimSpace(resolution) == "" {
		return fmt.Errorf("%w: resolution text is required", ErrValidation)
	}
	d, err := s.store.GetDispute(ctx, disputeID)
	if err != nil {
		return err
	}
	if d.Status == models.DisputeStatusResolved || d.Status == models.DisputeStatusClosed {
		return ErrDisputeSettled
	}

	text := strings.TrimSpace(resolution)
	if _, err := s.store.UpdateDispute(ctx, disputeID, models.DisputeStatusResolved, &text); err != nil {
		return err
	}

	s.emit(ctx, notify.Event{
		Title:    "Dispute Resolved",
		Message:  fmt.Sprintf("Dispute %s has been resolved. Resolution: %s", disputeID, text),
		Category: models.NotificationDispute,
		Payload:  map[string]any{"dispute_id": disputeID},
	})
	return nil
}

// EscalateDispute hands the dispute to senior mediation.
func (s *Service) EscalateDispute(ctx context.Context, disputeID string) error {
	d, err := s.store.GetDispute(ctx, disputeID)
	if err != nil {
		return err
	}
	if d.Status == models.DisputeStatusResolved || d.Status == models.DisputeStatusClosed {
		return ErrDisputeSettled
	}
	if _, err := s.store.UpdateDispute(ctx, disputeID, models.DisputeStatusEscalated, nil); err != nil {
		return err
	}

	s.emit(ctx, notify.Event{
		Title:    "Dispute Escalated",
		Message:  fmt.Sprintf("Dispute %s has been escalated to the senior mediation team.", disputeID),
		Category: models.NotificationDispute,
		Payload:  map[string]any{"dispute_id": disputeID},
	})
	return nil
}

// MediateDispute moves the dispute under active review.
func (s *Service) MediateDispute(ctx context.Context, disputeID string) error {
	d, err := s.store.GetDispute(ctx, disputeID)
	if err != nil {
		return err
	}
	if d.Status == models.DisputeStatusResolved || d.Status == models.DisputeStatusClosed {
		return ErrDisputeSettled
	}
	_, err = s.store.UpdateDispute(ctx, disputeID, models.DisputeStatusUnderReview, nil)
	return err
}
