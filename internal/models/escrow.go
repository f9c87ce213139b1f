package models

import (
	"time"
)

type EscrowStatus string

const (
	EscrowStatusFunded            EscrowStatus = "Funded"
	EscrowStatusPartiallyReleased EscrowStatus = "Partially Released"
	EscrowStatusReleased          EscrowStatus = "Released"
	EscrowStatusRefunded          EscrowStatus = "Refunded"
	EscrowStatusOnHold            EscrowStatus = "On Hold"
)

func (s EscrowStatus) Valid() bool {
	switch s {
	case EscrowStatusFunded, EscrowStatusPartiallyReleased, EscrowStatusReleased,
		EscrowStatusRefunded, EscrowStatusOnHold:
		return true
	}
	return false
}

// Held reports whether the account still holds funds against its milestone.
func (s EscrowStatus) Held() bool {
	return s == EscrowStatusFunded || s == EscrowStatusOnHold
}

type EscrowAccount struct {
	ID           string       `gorm:"column:escrow_id;primaryKey;size:16" json:"escrow_id"`
	ProjectID    string       `gorm:"size:16;not null;index" json:"project_id"`
	MilestoneID  *string      `gorm:"size:16;index" json:"milestone_id,omitempty"`
	ClientID     *int64       `json:"client_id,omitempty"`
	FreelancerID *int64       `json:"freelancer_id,omitempty"`
	Amount       float64      `gorm:"type:decimal(12,2);not null" json:"amount"`
	Status       EscrowStatus `gorm:"size:20;not null;default:'Funded';check:chk_escrow_status,status IN ('Funded','Partially Released','Released','Refunded','On Hold')" json:"status"`
	CreatedDate  time.Time    `gorm:"autoCreateTime" json:"created_date"`
}

func (EscrowAccount) TableName() string {
	return "escrow_accounts"
}
