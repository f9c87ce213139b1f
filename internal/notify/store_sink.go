package notify

import (
	"context"
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/freelanceflow/backend/internal/models"
	"github.com/freelanceflow/backend/internal/store"
)

// StoreSink persists events as notification rows so the presentation
// layer can list them later.
type StoreSink struct {
	Store *store.Store
}

func NewStoreSink(s *store.Store) *StoreSink {
	return &StoreSink{Store: s}
}

func (s *StoreSink) Publish(ctx context.Context, ev Event) error {
	n := models.Notification{
		Title:    ev.Title,
		Message:  ev.Message,
		Category: ev.Category,
	}
	if ev.Payload != nil {
		raw, err := json.Marshal(ev.Payload)
		if err != nil {
			return err
		}
		n.Payload = datatypes.JSON(raw)
	}
	return s.Store.InsertNotification(ctx, &n)
}
