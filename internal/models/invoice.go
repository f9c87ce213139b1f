package models

import (
	"time"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "Draft"
	InvoiceStatusSent      InvoiceStatus = "Sent"
	InvoiceStatusPaid      InvoiceStatus = "Paid"
	InvoiceStatusOverdue   InvoiceStatus = "Overdue"
	InvoiceStatusCancelled InvoiceStatus = "Cancelled"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid,
		InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

type Invoice struct {
	ID           string        `gorm:"column:invoice_id;primaryKey;size:16" json:"invoice_id"`
	ProjectID    string        `gorm:"size:16;not null;index" json:"project_id"`
	ClientID     *int64        `json:"client_id,omitempty"`
	FreelancerID *int64        `json:"freelancer_id,omitempty"`
	Amount       float64       `gorm:"type:decimal(12,2);not null" json:"amount"`
	Status       InvoiceStatus `gorm:"size:20;not null;default:'Draft';check:chk_invoices_status,status IN ('Draft','Sent','Paid','Overdue','Cancelled')" json:"status"`
	Description  string        `gorm:"type:text" json:"description"`
	CreatedDate  time.Time     `gorm:"autoCreateTime" json:"created_date"`
	DueDate      time.Time     `gorm:"not null" json:"due_date"`
}

func (Invoice) TableName() string {
	return "invoices"
}
