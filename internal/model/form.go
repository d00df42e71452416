package model

import "time"

// Form is the persisted envelope around a schema payload: who owns it and
// when it changed. The payload inside is the wire format, not the authoring
// representation.
type Form struct {
	ID          string      `json:"id" bson:"_id,omitempty"`
	OrganizerID string      `json:"organizerId" bson:"organizerId"`
	Payload     FormPayload `json:"payload" bson:"payload"`
	CreatedAt   time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt" bson:"updatedAt"`
}
