package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMessagePriority(t *testing.T) {
	assert.Equal(t, PriorityHigh, ParseMessagePriority("High"))
	assert.Equal(t, PriorityLow, ParseMessagePriority("Low"))
	assert.Equal(t, MessagePriority(""), ParseMessagePriority(""), "absent stays absent")
	assert.Equal(t, PriorityInvalid, ParseMessagePriority("high"), "matching is case-sensitive")
	assert.Equal(t, PriorityInvalid, ParseMessagePriority("Urgent"))
}

func TestParseMessageType(t *testing.T) {
	assert.Equal(t, TypeInformation, ParseMessageType("Information"))
	assert.Equal(t, TypeTask, ParseMessageType("Task"))
	assert.Equal(t, MessageType(""), ParseMessageType(""))
	assert.Equal(t, TypeInvalid, ParseMessageType("task"))
	assert.Equal(t, TypeInvalid, ParseMessageType("Reminder"))
}

func TestPriorityCodes(t *testing.T) {
	assert.Equal(t, "1", PriorityHigh.Code())
	assert.Equal(t, "0", PriorityLow.Code())
	assert.Equal(t, "-1", PriorityInvalid.Code())

	assert.Equal(t, PriorityHigh, PriorityFromCode("1"))
	assert.Equal(t, PriorityLow, PriorityFromCode("0"))
	assert.Equal(t, PriorityInvalid, PriorityFromCode("2"))
}

func TestTypeCodes(t *testing.T) {
	assert.Equal(t, "I", TypeInformation.Code())
	assert.Equal(t, "T", TypeTask.Code())
	assert.Equal(t, "-1", TypeInvalid.Code())

	assert.Equal(t, TypeInformation, TypeFromCode("I"))
	assert.Equal(t, TypeTask, TypeFromCode("T"))
	assert.Equal(t, TypeInvalid, TypeFromCode("X"))
}

func TestEnumsUnmarshalJSON(t *testing.T) {
	var msg Message
	require.NoError(t, json.Unmarshal([]byte(`{"priority":"High","type":"Task"}`), &msg))
	assert.Equal(t, PriorityHigh, msg.Priority)
	assert.Equal(t, TypeTask, msg.Type)

	msg = Message{}
	require.NoError(t, json.Unmarshal([]byte(`{"priority":"urgent","type":"memo"}`), &msg))
	assert.Equal(t, PriorityInvalid, msg.Priority)
	assert.Equal(t, TypeInvalid, msg.Type)

	msg = Message{}
	require.NoError(t, json.Unmarshal([]byte(`{"priority":null,"type":null}`), &msg))
	assert.Equal(t, MessagePriority(""), msg.Priority, "null reads as absent, not invalid")
	assert.Equal(t, MessageType(""), msg.Type)

	msg = Message{}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &msg))
	assert.Equal(t, MessagePriority(""), msg.Priority)
	assert.Equal(t, MessageType(""), msg.Type)
}

func TestNormalizeLanID(t *testing.T) {
	assert.Equal(t, "test", NormalizeLanID("test"))
	assert.Equal(t, "test", NormalizeLanID("Test "))
	assert.Equal(t, "test", NormalizeLanID("  TEST"))
}
