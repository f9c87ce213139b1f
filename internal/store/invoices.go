package store

import (
	"context"

	"github.com/freelanceflow/backend/internal/models"
	"gorm.io/gorm"
)

func (s *Store) InsertInvoice(ctx context.Context, inv *models.Invoice) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if inv.ID == "" {
			id, err := nextID(tx, &models.Invoice{}, "invoice_id", PrefixInvoice)
			if err != nil {
				return err
			}
			inv.ID = id
		}
		return tx.Create(inv).Error
	})
}

func (s *Store) GetInvoice(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	var inv models.Invoice
	if err := s.conn(ctx).First(&inv, "invoice_id = ?", invoiceID).Error; err != nil {
		return nil, notFound(err)
	}
	return &inv, nil
}

func (s *Store) InvoicesByProject(ctx context.Context, f ProjectFilter) ([]models.Invoice, error) {
	var out []models.Invoice
	err := f.apply(s.conn(ctx)).
		Order("created_date DESC, invoice_id DESC").
		Find(&out).Error
	return out, err
}

func (s *Store) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status models.InvoiceStatus) (int64, error) {
	res := s.conn(ctx).Model(&models.Invoice{}).
		Where("invoice_id = ?", invoiceID).
		Update("status", status)
	return res.RowsAffected, res.Error
}
