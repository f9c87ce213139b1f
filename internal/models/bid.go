package models

import (
	"time"
)

type BidStatus string

const (
	BidStatusPending   BidStatus = "Pending"
	BidStatusAccepted  BidStatus = "Accepted"
	BidStatusRejected  BidStatus = "Rejected"
	BidStatusWithdrawn BidStatus = "Withdrawn"
)

func (s BidStatus) Valid() bool {
	switch s {
	case BidStatusPending, BidStatusAccepted, BidStatusRejected, BidStatusWithdrawn:
		return true
	}
	return false
}

type Bid struct {
	ID             string    `gorm:"column:bid_id;primaryKey;size:16" json:"bid_id"`
	ProjectID      string    `gorm:"size:16;not null;index" json:"project_id"`
	FreelancerName string    `gorm:"size:120;not null" json:"freelancer_name"`
	Amount         float64   `gorm:"type:decimal(12,2);not null;check:chk_bids_amount,amount > 0" json:"amount"`
	CompletionDays int       `gorm:"not null;check:chk_bids_completion,completion_days > 0" json:"completion_days"`
	Proposal       string    `gorm:"type:text" json:"proposal"`
	Status         BidStatus `gorm:"size:20;not null;default:'Pending';check:chk_bids_status,status IN ('Pending','Accepted','Rejected','Withdrawn')" json:"status"`
	ResumeRef      string    `gorm:"size:255" json:"resume_ref,omitempty"`

	CreatedDate time.Time `gorm:"autoCreateTime" json:"created_date"`
	UpdatedDate time.Time `gorm:"autoUpdateTime" json:"updated_date"`
}

func (Bid) TableName() string {
	return "bids"
}
