package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"friender/pkg/mq"
	eventtypes "friender/pkg/types/eventtype"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	exchange string
	bodies   [][]byte
	err      error
}

func (c *capturePublisher) PublishMessage(exchange, routingKey string, body []byte) error {
	c.exchange = exchange
	c.bodies = append(c.bodies, body)
	return c.err
}

func TestInfo_WritesServiceAndEvent(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerWithWriter(ServiceTypeMatch, "info", &buf)
	AttachPublisher(nil)

	Info(LogEventLike, "user liked", map[string]int{"actor": 1})

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "match", line["service"])
	assert.Equal(t, "user liked", line["message"])
	assert.EqualValues(t, LogEventLike, line["log_event_type"])
}

func TestDebug_FilteredByLevel(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerWithWriter(ServiceTypeAuth, "warn", &buf)
	AttachPublisher(nil)

	Debug(LogEventSignup, "hidden", nil)
	Info(LogEventSignup, "hidden too", nil)
	assert.Empty(t, buf.String())

	Warn(LogEventWarning, "shown", nil)
	assert.Contains(t, buf.String(), "shown")
}

func TestLog_ForwardsToPublisher(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerWithWriter(ServiceTypeMatch, "info", &buf)
	pub := &capturePublisher{}
	AttachPublisher(pub)
	defer AttachPublisher(nil)

	Error(LogEventError, "boom", nil)

	require.Len(t, pub.bodies, 1)
	assert.Equal(t, mq.ExchangeLog, pub.exchange)

	var payload eventtypes.EventPayload
	require.NoError(t, json.Unmarshal(pub.bodies[0], &payload))
	assert.Equal(t, eventtypes.EventTypeLog, payload.EventType)

	var base BaseLog
	require.NoError(t, json.Unmarshal(payload.Data, &base))
	assert.Equal(t, "error", base.Level)
	assert.Equal(t, "boom", base.Message)
	assert.Equal(t, int(ServiceTypeMatch), base.Service)
}

func TestLog_PublishFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerWithWriter(ServiceTypeMatch, "info", &buf)
	AttachPublisher(&capturePublisher{err: errors.New("closed")})
	defer AttachPublisher(nil)

	Info(LogEventMatchSuccess, "matched", nil)
	assert.Contains(t, buf.String(), "Failed to publish log message")
}
