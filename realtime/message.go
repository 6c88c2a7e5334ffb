package realtime

import "encoding/json"

// Server events
const (
	EventNotification       = "notification"
	EventUpdateNotification = "update-notification"
	EventAuthenticated      = "authenticated"
	EventError              = "error"
	EventAck                = "ack"
)

// Client events acknowledged by the server
const (
	EventJoinTeam    = "joinTeam"
	EventLeaveTeam   = "leaveTeam"
	EventJoinCompany = "joinCompany"
)

// Message is one JSON text frame.
type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
	AckID string          `json:"ackId,omitempty"`
}

// Handler receives the data of an event.
type Handler func(data json.RawMessage)

// RoomAck is the acknowledgement of a room join or leave.
type RoomAck struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// AckError is returned when the server refuses an acknowledged event.
type AckError struct {
	Event   string
	Message string
	Data    json.RawMessage
}

func (e *AckError) Error() string {
	if e.Message == "" {
		return e.Event + " rejected"
	}
	return e.Message
}
