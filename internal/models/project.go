package models

import (
	"time"
)

type ProjectStatus string

const (
	ProjectStatusOpen       ProjectStatus = "Open"
	ProjectStatusInProgress ProjectStatus = "In Progress"
	ProjectStatusCompleted  ProjectStatus = "Completed"
	ProjectStatusCancelled  ProjectStatus = "Cancelled"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusOpen, ProjectStatusInProgress, ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	}
	return false
}

type ProjectDifficulty string

const (
	DifficultyBeginner     ProjectDifficulty = "Beginner"
	DifficultyIntermediate ProjectDifficulty = "Intermediate"
	DifficultyExpert       ProjectDifficulty = "Expert"
)

func (d ProjectDifficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyExpert:
		return true
	}
	return false
}

type Project struct {
	ID           string            `gorm:"column:project_id;primaryKey;size:16" json:"project_id"`
	Title        string            `gorm:"size:200;not null" json:"title"`
	Description  string            `gorm:"type:text" json:"description"`
	ClientName   string            `gorm:"size:120;not null" json:"client_name"`
	Category     string            `gorm:"size:80" json:"category"`
	Budget       float64           `gorm:"type:decimal(12,2);not null;check:chk_projects_budget,budget >= 0" json:"budget"`
	Difficulty   ProjectDifficulty `gorm:"size:20;not null;check:chk_projects_difficulty,difficulty IN ('Beginner','Intermediate','Expert')" json:"difficulty"`
	DeadlineDays int               `gorm:"not null;check:chk_projects_deadline,deadline_days > 0" json:"deadline_days"`
	Status       ProjectStatus     `gorm:"size:20;not null;default:'Open';check:chk_projects_status,status IN ('Open','In Progress','Completed','Cancelled')" json:"status"`

	CreatedDate   time.Time  `gorm:"autoCreateTime" json:"created_date"`
	UpdatedDate   time.Time  `gorm:"autoUpdateTime" json:"updated_date"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`

	// Project-scoped children are removed with the project.
	Bids           []Bid                  `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE" json:"bids,omitempty"`
	Milestones     []PaymentMilestone     `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE" json:"milestones,omitempty"`
	EscrowAccounts []EscrowAccount        `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE" json:"escrow_accounts,omitempty"`
	Invoices       []Invoice              `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE" json:"invoices,omitempty"`
	Disputes       []DisputeCase          `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE" json:"disputes,omitempty"`
	StatusHistory  []ProjectStatusHistory `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE" json:"status_history,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}

// ProjectStatusHistory is an append-only audit row written alongside every
// project status change.
type ProjectStatusHistory struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	ProjectID string        `gorm:"size:16;not null;index" json:"project_id"`
	OldStatus ProjectStatus `gorm:"size:20;not null" json:"old_status"`
	NewStatus ProjectStatus `gorm:"size:20;not null" json:"new_status"`
	Actor     string        `gorm:"size:120" json:"actor"`
	Reason    string        `gorm:"type:text" json:"reason"`
	ChangedAt time.Time     `gorm:"autoCreateTime" json:"changed_at"`
}

func (ProjectStatusHistory) TableName() string {
	return "project_status_history"
}
