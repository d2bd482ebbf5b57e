package domain

import (
	"encoding/json"
	"strings"
)

// MessagePriority is the priority of an inbox message. The zero value means
// the priority was never supplied; PriorityInvalid means a value was supplied
// but did not name a known priority. The two cases produce different
// validation outcomes, so they must stay distinguishable.
type MessagePriority string

const (
	PriorityHigh    MessagePriority = "High"
	PriorityLow     MessagePriority = "Low"
	PriorityInvalid MessagePriority = "Invalid"
)

// ParseMessagePriority maps a raw token to a MessagePriority. An empty token
// stays empty (absent); any unrecognized token becomes PriorityInvalid.
func ParseMessagePriority(s string) MessagePriority {
	switch s {
	case "":
		return ""
	case string(PriorityHigh):
		return PriorityHigh
	case string(PriorityLow):
		return PriorityLow
	default:
		return PriorityInvalid
	}
}

// Known reports whether p is one of the two real priorities.
func (p MessagePriority) Known() bool {
	return p == PriorityHigh || p == PriorityLow
}

// Code returns the legacy storage code for the priority: "1" for High,
// "0" for Low, "-1" otherwise.
func (p MessagePriority) Code() string {
	switch p {
	case PriorityHigh:
		return "1"
	case PriorityLow:
		return "0"
	default:
		return "-1"
	}
}

// PriorityFromCode maps a storage code back to a MessagePriority.
func PriorityFromCode(code string) MessagePriority {
	switch code {
	case "1":
		return PriorityHigh
	case "0":
		return PriorityLow
	default:
		return PriorityInvalid
	}
}

func (p *MessagePriority) UnmarshalJSON(data []byte) error {
	var s string
	if string(data) != "null" {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}
	*p = ParseMessagePriority(s)
	return nil
}

// MessageType is the kind of an inbox message. Absent ("") and
// TypeInvalid follow the same convention as MessagePriority.
type MessageType string

const (
	TypeInformation MessageType = "Information"
	TypeTask        MessageType = "Task"
	TypeInvalid     MessageType = "Invalid"
)

// ParseMessageType maps a raw token to a MessageType. An empty token stays
// empty (absent); any unrecognized token becomes TypeInvalid.
func ParseMessageType(s string) MessageType {
	switch s {
	case "":
		return ""
	case string(TypeInformation):
		return TypeInformation
	case string(TypeTask):
		return TypeTask
	default:
		return TypeInvalid
	}
}

// Known reports whether t is one of the two real message types.
func (t MessageType) Known() bool {
	return t == TypeInformation || t == TypeTask
}

// Code returns the legacy storage code for the type: "I" for Information,
// "T" for Task, "-1" otherwise.
func (t MessageType) Code() string {
	switch t {
	case TypeInformation:
		return "I"
	case TypeTask:
		return "T"
	default:
		return "-1"
	}
}

// TypeFromCode maps a storage code back to a MessageType.
func TypeFromCode(code string) MessageType {
	switch code {
	case "I":
		return TypeInformation
	case "T":
		return TypeTask
	default:
		return TypeInvalid
	}
}

func (t *MessageType) UnmarshalJSON(data []byte) error {
	var s string
	if string(data) != "null" {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}
	*t = ParseMessageType(s)
	return nil
}

// Message is a single inbox entry owned by one recipient. A broadcast to
// several recipients creates one independent Message per recipient; the rows
// share field values but have independent ids and lifecycles. Messages are
// immutable after creation.
type Message struct {
	ID             string          `json:"id"`
	LanID          string          `json:"lanId"`
	Summary        string          `json:"summary"`
	CreationDate   string          `json:"creationDate"`
	Priority       MessagePriority `json:"priority"`
	Type           MessageType     `json:"type"`
	ActionLink     string          `json:"actionLink"`
	ActionLabel    string          `json:"actionLabel"`
	Internal       bool            `json:"internal"`
	ExpirationDate string          `json:"expirationDate"`
	LastUpdtUser   string          `json:"lastUpdtUser"`
}

// NormalizeLanID lowercases and trims a recipient identifier. Fan-out
// deduplication and ownership comparisons both rely on this form.
func NormalizeLanID(lanID string) string {
	return strings.ToLower(strings.TrimSpace(lanID))
}
