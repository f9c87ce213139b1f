package models

import (
	"time"
)

type DisputeStatus string

const (
	DisputeStatusOpen        DisputeStatus = "Open"
	DisputeStatusUnderReview DisputeStatus = "Under Review"
	DisputeStatusResolved    DisputeStatus = "Resolved"
	DisputeStatusEscalated   DisputeStatus = "Escalated"
	DisputeStatusClosed      DisputeStatus = "Closed"
)

func (s DisputeStatus) Valid() bool {
	switch s {
	case DisputeStatusOpen, DisputeStatusUnderReview, DisputeStatusResolved,
		DisputeStatusEscalated, DisputeStatusClosed:
		return true
	}
	return false
}

// OpenDisputeStatuses lists the dispute statuses that block fund
// release for the disputed milestone.
func OpenDisputeStatuses() []DisputeStatus {
	return []DisputeStatus{DisputeStatusOpen, DisputeStatusUnderReview, DisputeStatusEscalated}
}

type DisputeParty string

const (
	DisputeRaisedByClient     DisputeParty = "Client"
	DisputeRaisedByFreelancer DisputeParty = "Freelancer"
	DisputeRaisedByAdmin      DisputeParty = "Admin"
)

func (p DisputeParty) Valid() bool {
	switch p {
	case DisputeRaisedByClient, DisputeRaisedByFreelancer, DisputeRaisedByAdmin:
		return true
	}
	return false
}

type DisputeCase struct {
	ID          string        `gorm:"column:dispute_id;primaryKey;size:16" json:"dispute_id"`
	ProjectID   string        `gorm:"size:16;not null;index" json:"project_id"`
	MilestoneID *string       `gorm:"size:16;index" json:"milestone_id,omitempty"`
	RaisedBy    DisputeParty  `gorm:"size:20;not null;check:chk_disputes_raised_by,raised_by IN ('Client','Freelancer','Admin')" json:"raised_by"`
	Reason      string        `gorm:"type:text;not null" json:"reason"`
	Status      DisputeStatus `gorm:"size:20;not null;default:'Open';check:chk_disputes_status,status IN ('Open','Under Review','Resolved','Escalated','Closed')" json:"status"`
	Resolution  *string       `gorm:"type:text" json:"resolution,omitempty"`
	CreatedDate time.Time     `gorm:"autoCreateTime" json:"created_date"`
	UpdatedDate time.Time     `gorm:"autoUpdateTime" json:"updated_date"`
}

func (DisputeCase) TableName() string {
	return "disputes"
}
