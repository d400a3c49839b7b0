// Package protocol defines the tagged request/response unions exchanged by
// the marketplace services and the envelope that frames them on the wire.
// One Message is one newline-terminated JSON value.
package protocol

import (
	"encoding/json"
	"fmt"
)

// MessageType tags a frame with its operation or response variant. Request
// and response sets are closed and disjoint per service; dispatch is an
// exhaustive switch, never reflection.
type MessageType string

// TypeError is the generic error response shared by every service.
const TypeError MessageType = "error"

// Message is the wire envelope. Data is absent for payload-free variants.
type Message struct {
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// ErrorPayload carries the human-readable message of an error frame.
type ErrorPayload struct {
	Message string `json:"message"`
}

// NewMessage builds a frame of the given type. A nil payload produces a
// frame with no data field.
func NewMessage(t MessageType, payload any) (*Message, error) {
	m := &Message{Type: t}
	if payload == nil {
		return m, nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", t, err)
	}
	m.Data = b
	return m, nil
}

// MustMessage is NewMessage for payloads built from local structs, where a
// marshal failure is a programming error.
func MustMessage(t MessageType, payload any) *Message {
	m, err := NewMessage(t, payload)
	if err != nil {
		panic(err)
	}
	return m
}

// ErrorMessage builds the generic error frame.
func ErrorMessage(msg string) *Message {
	return MustMessage(TypeError, ErrorPayload{Message: msg})
}

// Decode unmarshals the frame payload into v.
func (m *Message) Decode(v any) error {
	if len(m.Data) == 0 {
		return fmt.Errorf("%s: missing payload", m.Type)
	}
	if err := json.Unmarshal(m.Data, v); err != nil {
		return fmt.Errorf("decode %s payload: %w", m.Type, err)
	}
	return nil
}

// ErrorText extracts the message of an error frame, or "" if the frame is
// not a well-formed error.
func (m *Message) ErrorText() string {
	if m.Type != TypeError {
		return ""
	}
	var p ErrorPayload
	if err := m.Decode(&p); err != nil {
		return ""
	}
	return p.Message
}
