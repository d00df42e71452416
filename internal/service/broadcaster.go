package service

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToOrganizer(formID string, msgType string, payload interface{})
	BroadcastToRegistrant(registrationID string, msgType string, payload interface{})
}
