package payments_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/freelanceflow/backend/internal/models"
	"github.com/freelanceflow/backend/internal/notify"
	"github.com/freelanceflow/backend/internal/services/payments"
	"github.com/freelanceflow/backend/internal/store"
)

type recordingSink struct {
	mu     sync.Mutex
	events []notify.Event
	fail   error
}

func (r *recordingSink) Publish(_ context.Context, ev notify.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	r.events = append(r.events, ev)
	return nil
}

func (r *recordingSink) titles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Title
	}
	return out
}

type fixture struct {
	store *store.Store
	svc   *payments.Service
	sink  *recordingSink
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	st := store.New(gdb)
	require.NoError(t, st.Migrate())

	sink := &recordingSink{}
	return &fixture{store: st, svc: payments.New(st, sink, nil), sink: sink}
}

func (f *fixture) seedProject(t *testing.T) string {
	t.Helper()
	p := &models.Project{
		Title: "Mobile app", ClientName: "Acme", Budget: 5000,
		Difficulty: models.DifficultyExpert, DeadlineDays: 60,
		Status: models.ProjectStatusInProgress,
	}
	require.NoError(t, f.store.InsertProject(context.Background(), p))
	return p.ID
}

func (f *fixture) createMilestone(t *testing.T, projectID string, amount float64) *models.PaymentMilestone {
	t.Helper()
	m, err := f.svc.CreateMilestone(context.Background(), payments.CreateMilestoneInput{
		ProjectID:   projectID,
		Description: "Backend API",
		Amount:      amount,
	})
	require.NoError(t, err)
	return m
}

func TestCreateMilestoneFundsEscrow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	projectID := f.seedProject(t)

	m := f.createMilestone(t, projectID, 1500)
	assert.Equal(t, models.MilestoneStatusPending, m.Status)

	esc, err := f.store.EscrowByMilestone(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EscrowStatusFunded, esc.Status)
	assert.Equal(t, m.Amount, esc.Amount)

	held, err := f.store.SumEscrowHeld(ctx, store.ByProject(projectID))
	require.NoError(t, err)
	assert.InDelta(t, 1500, held, 1e-9)

	assert.Equal(t, []string{"New Milestone Created"}, f.sink.titles())
}

func TestCreateMilestoneValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	projectID := f.seedProject(t)

	cases := []struct {
		name string
		in   payments.CreateMilestoneInput
	}{
		{"missing project", payments.CreateMilestoneInput{Description: "x", Amount: 1}},
		{"missing description", payments.CreateMilestoneInput{ProjectID: projectID, Amount: 1}},
		{"zero amount", payments.CreateMilestoneInput{ProjectID: projectID, Description: "x"}},
		{"negative amount", payments.CreateMilestoneInput{ProjectID: projectID, Description: "x", Amount: -5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.CreateMilestone(ctx, tc.in)
			assert.ErrorIs(t, err, payments.ErrValidation)
		})
	}

	_, err := f.svc.CreateMilestone(ctx, payments.CreateMilestoneInput{
		ProjectID: "PRJ404", Description: "x", Amount: 1,
	})
	assert.ErrorIs(t, err, store.ErrNotFound)

	milestones, err := f.store.MilestonesByProject(ctx, store.AllProjects())
	require.NoError(t, err)
	assert.Empty(t, milestones, "failed creates must leave no rows behind")
}

func TestReleaseMilestoneGeneratesInvoice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	projectID := f.seedProject(t)
	m := f.createMilestone(t, projectID, 1500)

	inv, err := f.svc.ReleaseMilestone(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusDraft, inv.Status)
	assert.Equal(t, m.Amount, inv.Amount)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), inv.DueDate, 5*time.Second)

	got, err := f.store.GetMilestone(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MilestoneStatusReleased, got.Status)
	require.NotNil(t, got.CompletedDate)

	esc, err := f.store.EscrowByMilestone(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EscrowStatusReleased, esc.Status)

	held, err := f.store.SumEscrowHeld(ctx, store.ByProject(projectID))
	require.NoError(t, err)
	assert.Zero(t, held)
}

func TestReleaseMilestoneIsIrreversible(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.createMilestone(t, f.seedProject(t), 100)

	_, err := f.svc.ReleaseMilestone(ctx, m.ID)
	require.NoError(t, err)

	_, err = f.svc.ReleaseMilestone(ctx, m.ID)
	assert.ErrorIs(t, err, payments.ErrMilestoneFinal)

	invoices, err := f.store.InvoicesByProject(ctx, store.AllProjects())
	require.NoError(t, err)
	assert.Len(t, invoices, 1, "repeat release must not duplicate invoices")
}

func TestOpenDisputeHoldsEscrow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.createMilestone(t, f.seedProject(t), 800)

	d, err := f.svc.OpenDispute(ctx, payments.OpenDisputeInput{
		MilestoneID: m.ID,
		RaisedBy:    models.DisputeRaisedByClient,
		Reason:      "deliverable incomplete",
	})
	require.NoError(t, err)
	assert.Equal(t, models.DisputeStatusOpen, d.Status)
	require.NotNil(t, d.MilestoneID)
	assert.Equal(t, m.ID, *d.MilestoneID)

	got, err := f.store.GetMilestone(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MilestoneStatusDisputed, got.Status)

	esc, err := f.store.EscrowByMilestone(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EscrowStatusOnHold, esc.Status)

	// held funds include On Hold accounts
	held, err := f.store.SumEscrowHeld(ctx, store.ByProject(m.ProjectID))
	require.NoError(t, err)
	assert.InDelta(t, 800, held, 1e-9)
}

func TestOpenDisputeValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.createMilestone(t, f.seedProject(t), 100)

	_, err := f.svc.OpenDispute(ctx, payments.OpenDisputeInput{
		MilestoneID: m.ID, RaisedBy: models.DisputeRaisedByClient, Reason: "   ",
	})
	assert.ErrorIs(t, err, payments.ErrValidation)

	_, err = f.svc.OpenDispute(ctx, payments.OpenDisputeInput{
		MilestoneID: m.ID, RaisedBy: models.DisputeParty("Stranger"), Reason: "r",
	})
	assert.ErrorIs(t, err, payments.ErrValidation)

	_, err = f.svc.OpenDispute(ctx, payments.OpenDisputeInput{
		MilestoneID: "MIL404", RaisedBy: models.DisputeRaisedByClient, Reason: "r",
	})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestReleaseBlockedByOpenDispute(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.createMilestone(t, f.seedProject(t), 500)

	d, err := f.svc.OpenDispute(ctx, payments.OpenDisputeInput{
		MilestoneID: m.ID, RaisedBy: models.DisputeRaisedByFreelancer, Reason: "payment overdue",
	})
	require.NoError(t, err)

	_, err = f.svc.ReleaseMilestone(ctx, m.ID)
	assert.ErrorIs(t, err, payments.ErrDisputeOpen)

	// escalation keeps the dispute open and the release blocked
	require.NoError(t, f.svc.EscalateDispute(ctx, d.ID))
	_, err = f.svc.ReleaseMilestone(ctx, m.ID)
	assert.ErrorIs(t, err, payments.ErrDisputeOpen)

	require.NoError(t, f.svc.ResolveDispute(ctx, d.ID, "work accepted after revision"))
	inv, err := f.svc.ReleaseMilestone(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.Amount, inv.Amount)
}

func TestResolveDisputeDoesNotMoveFunds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.createMilestone(t, f.seedProject(t), 300)

	d, err := f.svc.OpenDispute(ctx, payments.OpenDisputeInput{
		MilestoneID: m.ID, RaisedBy: models.DisputeRaisedByClient, Reason: "scope disagreement",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.ResolveDispute(ctx, d.ID, "split the difference"))

	got, err := f.store.GetDispute(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DisputeStatusResolved, got.Status)
	require.NotNil(t, got.Resolution)
	assert.Equal(t, "split the difference", *got.Resolution)

	esc, err := f.store.EscrowByMilestone(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EscrowStatusOnHold, esc.Status, "resolution alone must not release funds")
}

func TestResolveDisputeValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.createMilestone(t, f.seedProject(t), 300)
	d, err := f.svc.OpenDispute(ctx, payments.OpenDisputeInput{
		MilestoneID: m.ID, RaisedBy: models.DisputeRaisedByClient, Reason: "r",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.ResolveDispute(ctx, d.ID, "  "), payments.ErrValidation)

	require.NoError(t, f.svc.ResolveDispute(ctx, d.ID, "done"))
	assert.ErrorIs(t, f.svc.ResolveDispute(ctx, d.ID, "again"), payments.ErrDisputeSettled)
	assert.ErrorIs(t, f.svc.EscalateDispute(ctx, d.ID), payments.ErrDisputeSettled)
}

func TestMediateDispute(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.createMilestone(t, f.seedProject(t), 300)
	d, err := f.svc.OpenDispute(ctx, payments.OpenDisputeInput{
		MilestoneID: m.ID, RaisedBy: models.DisputeRaisedByAdmin, Reason: "r",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.MediateDispute(ctx, d.ID))
	got, err := f.store.GetDispute(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DisputeStatusUnderReview, got.Status)

	// still counts as open
	n, err := f.store.CountOpenDisputes(ctx, store.ByProject(m.ProjectID))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestSinkFailureDoesNotFailOperation(t *testing.T) {
	f := newFixture(t)
	f.sink.fail = errors.New("broker down")

	m := f.createMilestone(t, f.seedProject(t), 100)
	_, err := f.svc.ReleaseMilestone(context.Background(), m.ID)
	require.NoError(t, err)
}

func TestReleaseEscrowKeepsMilestoneInSync(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.createMilestone(t, f.seedProject(t), 250)

	esc, err := f.store.EscrowByMilestone(ctx, m.ID)
	require.NoError(t, err)

	inv, err := f.svc.ReleaseEscrow(ctx, esc.ID)
	require.NoError(t, err)
	assert.Equal(t, m.Amount, inv.Amount)

	got, err := f.store.GetMilestone(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MilestoneStatusReleased, got.Status)

	_, err = f.svc.ReleaseEscrow(ctx, esc.ID)
	assert.ErrorIs(t, err, payments.ErrEscrowNotHeld)
	assert.ErrorIs(t, f.svc.HoldEscrow(ctx, esc.ID), payments.ErrEscrowNotHeld)
}

func TestReleaseEscrowWithoutMilestone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	projectID := f.seedProject(t)

	esc := &models.EscrowAccount{ProjectID: projectID, Amount: 75, Status: models.EscrowStatusFunded}
	require.NoError(t, f.store.InsertEscrow(ctx, esc))

	_, err := f.svc.ReleaseEscrow(ctx, esc.ID)
	assert.ErrorIs(t, err, payments.ErrEscrowUnlinked)
}

func TestRefundEscrowCancelsMilestone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.createMilestone(t, f.seedProject(t), 400)

	esc, err := f.store.EscrowByMilestone(ctx, m.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.RefundEscrow(ctx, esc.ID))

	got, err := f.store.GetEscrow(ctx, esc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EscrowStatusRefunded, got.Status)

	milestone, err := f.store.GetMilestone(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MilestoneStatusCancelled, milestone.Status)

	_, err = f.svc.ReleaseMilestone(ctx, m.ID)
	assert.ErrorIs(t, err, payments.ErrMilestoneFinal)
}

func TestHoldEscrow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.createMilestone(t, f.seedProject(t), 120)

	esc, err := f.store.EscrowByMilestone(ctx, m.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.HoldEscrow(ctx, esc.ID))
	got, err := f.store.GetEscrow(ctx, esc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EscrowStatusOnHold, got.Status)

	// held funds still count toward the dashboard total
	held, err := f.store.SumEscrowHeld(ctx, store.ByProject(m.ProjectID))
	require.NoError(t, err)
	assert.InDelta(t, 120, held, 1e-9)
}

func TestGenerateAndSendInvoice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	projectID := f.seedProject(t)

	_, err := f.svc.GenerateInvoice(ctx, payments.GenerateInvoiceInput{ProjectID: projectID})
	assert.ErrorIs(t, err, payments.ErrValidation)

	inv, err := f.svc.GenerateInvoice(ctx, payments.GenerateInvoiceInput{
		ProjectID: projectID, Amount: 900, Description: "final payment",
	})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusDraft, inv.Status)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), inv.DueDate, 5*time.Second)

	require.NoError(t, f.svc.SendInvoice(ctx, inv.ID))
	got, err := f.store.GetInvoice(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusSent, got.Status)

	assert.ErrorIs(t, f.svc.SendInvoice(ctx, "INV404"), store.ErrNotFound)
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	projectID := f.seedProject(t)

	stats, err := f.svc.Dashboard(ctx, store.ByProject(projectID))
	require.NoError(t, err)
	assert.EqualValues(t, 0, stats.TotalMilestones)
	assert.InDelta(t, 100, stats.SuccessRate, 1e-9, "no milestones means nothing failed")

	m1 := f.createMilestone(t, projectID, 1000)
	m2 := f.createMilestone(t, projectID, 600)

	_, err = f.svc.ReleaseMilestone(ctx, m1.ID)
	require.NoError(t, err)

	_, err = f.svc.OpenDispute(ctx, payments.OpenDisputeInput{
		MilestoneID: m2.ID, RaisedBy: models.DisputeRaisedByClient, Reason: "late",
	})
	require.NoError(t, err)

	stats, err = f.svc.Dashboard(ctx, store.ByProject(projectID))
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalMilestones)
	assert.EqualValues(t, 1, stats.CompletedMilestones)
	assert.InDelta(t, 50, stats.SuccessRate, 1e-9)
	assert.InDelta(t, 600, stats.FundsInEscrow, 1e-9)
	assert.EqualValues(t, 1, stats.OpenDisputes)
	assert.EqualValues(t, 1, stats.TotalInvoices)

	// another project's data stays out of a scoped dashboard
	other, err := f.svc.Dashboard(ctx, store.ByProject("PRJ999"))
	require.NoError(t, err)
	assert.EqualValues(t, 0, other.TotalMilestones)
	assert.Zero(t, other.FundsInEscrow)
}
