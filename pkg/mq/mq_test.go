package mq

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatch(t *testing.T) {
	var got json.RawMessage
	handlers := EventHandlerMap{
		"match.created": func(data json.RawMessage) { got = data },
	}

	ok := Dispatch([]byte(`{"event_type":"match.created","data":{"match_id":"x"}}`), handlers)
	assert.True(t, ok)
	assert.JSONEq(t, `{"match_id":"x"}`, string(got))
}

func TestDispatch_UnknownType(t *testing.T) {
	called := false
	handlers := EventHandlerMap{
		"match.created": func(json.RawMessage) { called = true },
	}

	assert.False(t, Dispatch([]byte(`{"event_type":"user.created","data":{}}`), handlers))
	assert.False(t, called)
}

func TestDispatch_MalformedBody(t *testing.T) {
	assert.False(t, Dispatch([]byte(`not json`), EventHandlerMap{}))
}
