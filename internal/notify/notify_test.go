package notify_test

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/freelanceflow/backend/internal/models"
	"github.com/freelanceflow/backend/internal/notify"
	"github.com/freelanceflow/backend/internal/store"
)

type countingSink struct {
	calls int
	fail  error
}

func (c *countingSink) Publish(context.Context, notify.Event) error {
	c.calls++
	return c.fail
}

func TestMultiAttemptsAllSinks(t *testing.T) {
	broken := &countingSink{fail: errors.New("unreachable")}
	healthy := &countingSink{}

	err := notify.Multi{broken, healthy}.Publish(context.Background(), notify.Event{Title: "t"})
	assert.EqualError(t, err, "unreachable")
	assert.Equal(t, 1, broken.calls)
	assert.Equal(t, 1, healthy.calls, "failure of one sink must not skip the rest")
}

func TestStoreSinkPersistsNotification(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	st := store.New(gdb)
	require.NoError(t, st.Migrate())

	sink := notify.NewStoreSink(st)
	ctx := context.Background()
	require.NoError(t, sink.Publish(ctx, notify.Event{
		Title:    "Payment Released",
		Message:  "1500.00 released",
		Category: models.NotificationPayment,
		Payload:  map[string]any{"milestone_id": "MIL001"},
	}))

	rows, err := st.Notifications(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Payment Released", rows[0].Title)
	assert.Equal(t, models.NotificationPayment, rows[0].Category)
	assert.JSONEq(t, `{"milestone_id":"MIL001"}`, string(rows[0].Payload))
	assert.NotEmpty(t, rows[0].ID)
}
