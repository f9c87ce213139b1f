// Package projects covers project postings and bidding, independent of
// the payment workflow.
package projects

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/freelanceflow/backend/internal/models"
	"github.com/freelanceflow/backend/internal/store"
)

var ErrValidation = errors.New("projects: validation failed")

type Service struct {
	store *store.Store
	log   *zap.Logger
}

func New(st *store.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: st, log: log}
}

type CreateProjectInput struct {
	Title        string
	Description  string
	ClientName   string
	Category     string
	Budget       float64
	Difficulty   models.ProjectDifficulty
	DeadlineDays int
}

func (in CreateProjectInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(in.ClientName) == "" {
		return fmt.Errorf("%w: client name is required", ErrValidation)
	}
	if in.Budget <= 0 {
		return fmt.Errorf("%w: budget must be greater than zero", ErrValidation)
	}
	if in.DeadlineDays <= 0 {
		return fmt.Errorf("%w: deadline days must be greater than zero", ErrValidation)
	}
	if !in.Difficulty.Valid() {
		return fmt.Errorf("%w: unknown difficulty %q", ErrValidation, in.Difficulty)
	}
	return nil
}

// CreateProject posts a new project, open for bidding.
func (s *Service) CreateProject(ctx context.Context, in CreateProjectInput) (*models.Project, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p := models.Project{
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		ClientName:   strings.TrimSpace(in.ClientName),
		Category:     in.Category,
		Budget:       in.Budget,
		Difficulty:   in.Difficulty,
		DeadlineDays: in.DeadlineDays,
		Status:       models.ProjectStatusOpen,
	}
	if err := s.store.InsertProject(ctx, &p); err != nil {
		return nil, err
	}
	s.log.Info("project created",
		zap.String("project_id", p.ID),
		zap.String("client", p.ClientName))
	return &p, nil
}

// ChangeProjectStatus transitions the project and appends the audit row
// in one store transaction.
func (s *Service) ChangeProjectStatus(ctx context.Context, projectID string, newStatus models.ProjectStatus, actor, reason string) error {
	if !newStatus.Valid() {
		return fmt.Errorf("%w: unknown project status %q", ErrValidation, newStatus)
	}
	return s.store.UpdateProjectStatus(ctx, projectID, newStatus, actor, reason)
}

type PlaceBidInput struct {
	ProjectID      string
	FreelancerName string
	Amount         float64
	CompletionDays int
	Proposal       string
	ResumeRef      string
}

func (in PlaceBidInput) validate() error {
	if strings.TrimSpace(in.ProjectID) == "" {
		return fmt.Errorf("%w: project id is required", ErrValidation)
	}
	if strings.TrimSpace(in.FreelancerName) == "" {
		return fmt.Errorf("%w: freelancer name is required", ErrValidation)
	}
	if in.Amount <= 0 {
		return fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	}
	if in.CompletionDays <= 0 {
		return fmt.Errorf("%w: completion days must be greater than zero", ErrValidation)
	}
	return nil
}

// PlaceBid submits a freelancer's bid on an open project.
func (s *Service) PlaceBid(ctx context.Context, in PlaceBidInput) (*models.Bid, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := s.store.GetProject(ctx, in.ProjectID); err != nil {
		return nil, fmt.Errorf("look up project %s: %w", in.ProjectID, err)
	}
	b := models.Bid{
		ProjectID:      in.ProjectID,
		FreelancerName: strings.TrimSpace(in.FreelancerName),
		Amount:         in.Amount,
		CompletionDays: in.CompletionDays,
		Proposal:       in.Proposal,
		ResumeRef:      in.ResumeRef,
		Status:         models.BidStatusPending,
	}
	if err := s.store.InsertBid(ctx, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// DecideBid accepts, rejects or withdraws a bid. The project status is
// left to the caller; accepting a bid does not transition the project.
func (s *Service) DecideBid(ctx context.Context, bidID string, decision models.BidStatus) error {
	if !decision.Valid() || decision == models.BidStatusPending {
		return fmt.Errorf("%w: invalid bid decision %q", ErrValidation, decision)
	}
	n, err := s.store.UpdateBidStatus(ctx, bidID, decision)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Query passthroughs.

func (s *Service) Projects(ctx context.Context) ([]models.Project, error) {
	return s.store.Projects(ctx)
}

func (s *Service) Project(ctx context.Context, projectID string) (*models.Project, error) {
	return s.store.GetProject(ctx, projectID)
}

func (s *Service) Bids(ctx context.Context, f store.ProjectFilter) ([]models.Bid, error) {
	return s.store.BidsByProject(ctx, f)
}

func (s *Service) StatusHistory(ctx context.Context, projectID string) ([]models.ProjectStatusHistory, error) {
	return s.store.ProjectStatusHistory(ctx, projectID)
}

func (s *Service) DeleteProject(ctx context.Context, projectID string) error {
	return s.store.DeleteProject(ctx, projectID)
}
