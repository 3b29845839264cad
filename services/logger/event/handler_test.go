package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"friender/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryLogStore struct {
	logs []interface{}
	err  error
}

func (m *memoryLogStore) InsertLog(_ context.Context, log interface{}) error {
	if m.err != nil {
		return m.err
	}
	m.logs = append(m.logs, log)
	return nil
}

func TestHandleLogEvent(t *testing.T) {
	store := &memoryLogStore{}
	h := NewEventHandler(store)

	body, err := json.Marshal(logger.BaseLog{
		Level:        "info",
		Timestamp:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Service:      int(logger.ServiceTypeMatch),
		LogEventType: int(logger.LogEventLike),
		Message:      "like recorded",
		Log:          map[string]interface{}{"actor_id": 1},
	})
	require.NoError(t, err)

	h.HandleLogEvent(body)
	require.Len(t, store.logs, 1)

	saved := store.logs[0].(logger.BaseLog)
	assert.Equal(t, "like recorded", saved.Message)
	assert.Equal(t, int(logger.LogEventLike), saved.LogEventType)
}

func TestHandleLogEvent_Failures(t *testing.T) {
	store := &memoryLogStore{}
	NewEventHandler(store).HandleLogEvent(json.RawMessage(`not json`))
	assert.Empty(t, store.logs)

	store.err = errors.New("mongo down")
	NewEventHandler(store).HandleLogEvent(json.RawMessage(`{"message":"x"}`))
	assert.Empty(t, store.logs)
}
