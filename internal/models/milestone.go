package models

import (
	"time"
)

type MilestoneStatus string

const (
	MilestoneStatusPending   MilestoneStatus = "Pending"
	MilestoneStatusFunded    MilestoneStatus = "Funded"
	MilestoneStatusReleased  MilestoneStatus = "Released"
	MilestoneStatusCancelled MilestoneStatus = "Cancelled"
	MilestoneStatusDisputed  MilestoneStatus = "Disputed"
)

func (s MilestoneStatus) Valid() bool {
	switch s {
	case MilestoneStatusPending, MilestoneStatusFunded, MilestoneStatusReleased,
		MilestoneStatusCancelled, MilestoneStatusDisputed:
		return true
	}
	return false
}

// Final reports whether the milestone lifecycle is over. Released and
// Cancelled milestones cannot transition again.
func (s MilestoneStatus) Final() bool {
	return s == MilestoneStatusReleased || s == MilestoneStatusCancelled
}

type PaymentMilestone struct {
	ID            string          `gorm:"column:milestone_id;primaryKey;size:16" json:"milestone_id"`
	ProjectID     string          `gorm:"size:16;not null;index" json:"project_id"`
	Description   string          `gorm:"type:text;not null" json:"description"`
	Amount        float64         `gorm:"type:decimal(12,2);not null;check:chk_milestones_amount,amount > 0" json:"amount"`
	Status        MilestoneStatus `gorm:"size:20;not null;default:'Pending';check:chk_milestones_status,status IN ('Pending','Funded','Released','Cancelled','Disputed')" json:"status"`
	PaymentMethod string          `gorm:"size:40" json:"payment_method"`
	Notes         string          `gorm:"type:text" json:"notes"`

	CreatedDate   time.Time  `gorm:"autoCreateTime" json:"created_date"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`

	// Escrow and dispute rows keep their own lifecycle when the milestone
	// is removed, so the link is nulled rather than cascaded.
	EscrowAccounts []EscrowAccount `gorm:"foreignKey:MilestoneID;references:ID;constraint:OnDelete:SET NULL" json:"escrow_accounts,omitempty"`
	Disputes       []DisputeCase   `gorm:"foreignKey:MilestoneID;references:ID;constraint:OnDelete:SET NULL" json:"disputes,omitempty"`
}

func (PaymentMilestone) TableName() string {
	return "milestones"
}
