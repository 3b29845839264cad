package logger

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"

	"friender/pkg/helper"
	"friender/pkg/mq"

	eventtypes "friender/pkg/types/eventtype"

	"github.com/rs/zerolog"
)

var (
	// Logger는 전역 로거 인스턴스
	Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	currentService ServiceType

	pubMu     sync.RWMutex
	publisher Publisher
)

const (
	ServiceTypeAuth ServiceType = iota
	ServiceTypeMatch
	ServiceTypeNotify
	ServiceTypeLogger
	ServiceTypeSeeder
	ServiceTypeGateway
)

// ServiceType identifies the emitting service in every log line.
type ServiceType int

func (s ServiceType) String() string {
	switch s {
	case ServiceTypeAuth:
		return "auth"
	case ServiceTypeMatch:
		return "match"
	case ServiceTypeNotify:
		return "notify"
	case ServiceTypeLogger:
		return "logger"
	case ServiceTypeSeeder:
		return "seeder"
	case ServiceTypeGateway:
		return "gateway"
	}
	return "unknown"
}

const (
	LogEventSignup LogEventType = iota
	LogEventLike
	LogEventDislike
	LogEventMatchSuccess
	LogEventCandidateMiss
	LogEventWarning
	LogEventError
)

type LogEventType int

// BaseLog is the envelope forwarded to the log exchange.
type BaseLog struct {
	Level        string      `json:"level" bson:"level"`
	Timestamp    time.Time   `json:"timestamp" bson:"timestamp"`
	Service      int         `json:"service" bson:"service"`
	LogEventType int         `json:"log_event_type" bson:"log_event_type"`
	Message      string      `json:"message" bson:"message"`
	Log          interface{} `json:"log" bson:"log"`
}

// Publisher is satisfied by *mq.RabbitMQ.
type Publisher interface {
	PublishMessage(exchange, routingKey string, body []byte) error
}

// InitLogger는 로거를 초기화합니다
func InitLogger(serviceType ServiceType, level string) {
	InitLoggerWithWriter(serviceType, level, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
}

func InitLoggerWithWriter(serviceType ServiceType, level string, w io.Writer) {
	currentService = serviceType

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339
	Logger = zerolog.New(w).
		Level(lvl).
		With().
		Str("service", serviceType.String()).
		Timestamp().
		Logger()
}

// AttachPublisher forwards every leveled event to the log exchange.
func AttachPublisher(p Publisher) {
	pubMu.Lock()
	publisher = p
	pubMu.Unlock()
}

func Log(level zerolog.Level, logEventType LogEventType, message string, logData interface{}) {
	Logger.WithLevel(level).
		Int("log_event_type", int(logEventType)).
		Interface("data", logData).
		Msg(message)

	pubMu.RLock()
	p := publisher
	pubMu.RUnlock()
	if p == nil {
		return
	}

	baseLog := BaseLog{
		Level:        level.String(),
		Timestamp:    time.Now(),
		Service:      int(currentService),
		LogEventType: int(logEventType),
		Message:      message,
		Log:          logData,
	}

	eventPayload := eventtypes.EventPayload{
		EventType: eventtypes.EventTypeLog,
		Data:      helper.ToJSON(baseLog),
	}

	jsonData, err := json.Marshal(eventPayload)
	if err != nil {
		Logger.Error().Err(err).Msg("Failed to marshal log data")
		return
	}

	if err := p.PublishMessage(mq.ExchangeLog, "", jsonData); err != nil {
		Logger.Error().Err(err).Msg("Failed to publish log message")
	}
}

func Debug(logEventType LogEventType, message string, logData interface{}) {
	Log(zerolog.DebugLevel, logEventType, message, logData)
}

func Info(logEventType LogEventType, message string, logData interface{}) {
	Log(zerolog.InfoLevel, logEventType, message, logData)
}

func Warn(logEventType LogEventType, message string, logData interface{}) {
	Log(zerolog.WarnLevel, logEventType, message, logData)
}

func Error(logEventType LogEventType, message string, logData interface{}) {
	Log(zerolog.ErrorLevel, logEventType, message, logData)
}

// WithContext는 추가 컨텍스트를 포함한 로거를 반환합니다
func WithContext(fields map[string]interface{}) zerolog.Logger {
	return Logger.With().Fields(fields).Logger()
}
