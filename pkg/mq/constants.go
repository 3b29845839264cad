package mq

// Exchange Names
const (
	ExchangeUserEvents  = "user_events"
	ExchangeMatchEvents = "match_events"
	ExchangeLog         = "log"
)

// Exchange Types
const (
	ExchangeTypeTopic  = "topic"
	ExchangeTypeFanout = "fanout"
)

// Queue Names
const (
	QueueMatchUser   = "match_user_queue"
	QueueNotifyMatch = "notify_match_queue"
	QueueLog         = "log_queue"
)

// Routing Keys
const (
	RoutingKeyUserCreated  = "user.created"
	RoutingKeyMatchCreated = "match.created"
)
