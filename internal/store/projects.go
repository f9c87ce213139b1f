package store

import (
	"context"
	"time"

	"github.com/freelanceflow/backend/internal/models"
	"gorm.io/gorm"
)

// InsertProject writes a new project row. An empty ID is allocated from
// the PRJ sequence inside the insert transaction.
func (s *Store) InsertProject(ctx context.Context, p *models.Project) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if p.ID == "" {
			id, err := nextID(tx, &models.Project{}, "project_id", PrefixProject)
			if err != nil {
				return err
			}
			p.ID = id
		}
		return tx.Create(p).Error
	})
}

func (s *Store) GetProject(ctx context.Context, projectID string) (*models.Project, error) {
	var p models.Project
	if err := s.conn(ctx).First(&p, "project_id = ?", projectID).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *Store) Projects(ctx context.Context) ([]models.Project, error) {
	var out []models.Project
	err := s.conn(ctx).
		Order("created_date DESC, project_id DESC").
		Find(&out).Error
	return out, err
}

// UpdateProjectStatus changes the project status and appends one history
// row. Both writes commit together or not at all.
func (s *Store) UpdateProjectStatus(ctx context.Context, projectID string, newStatus models.ProjectStatus, actor, reason string) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Project
		if err := tx.First(&p, "project_id = ?", projectID).Error; err != nil {
			return notFound(err)
		}

		updates := map[string]any{
			"status":       newStatus,
			"updated_date": time.Now(),
		}
		if newStatus == models.ProjectStatusCompleted {
			now := time.Now()
			updates["completed_date"] = &now
		}
		if err := tx.Model(&models.Project{}).
			Where("project_id = ?", projectID).
			Updates(updates).Error; err != nil {
			return err
		}

		hist := models.ProjectStatusHistory{
			ProjectID: projectID,
			OldStatus: p.Status,
			NewStatus: newStatus,
			Actor:     actor,
			Reason:    reason,
		}
		return tx.Create(&hist).Error
	})
}

// ProjectStatusHistory returns the audit trail oldest-first, so reading
// it top to bottom replays the project's transitions in order.
func (s *Store) ProjectStatusHistory(ctx context.Context, projectID string) ([]models.ProjectStatusHistory, error) {
	var out []models.ProjectStatusHistory
	err := s.conn(ctx).
		Where("project_id = ?", projectID).
		Order("changed_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

// DeleteProject removes the project; the schema cascades bids,
// milestones, escrow accounts, invoices, disputes and history with it.
func (s *Store) DeleteProject(ctx context.Context, projectID string) error {
	res := s.conn(ctx).Delete(&models.Project{}, "project_id = ?", projectID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
