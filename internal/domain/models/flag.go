// internal/domain/models/flag.go
package models

import "time"

// Flag is a feature switch owned by a team.
//
// ID is a UUID string rather than an ObjectID so that ids handed out while
// the database is unavailable stay the same type.
type Flag struct {
	ID          string    `bson:"_id" json:"id"`
	Team        string    `bson:"team" json:"team"`
	Key         string    `bson:"key" json:"key"` // lowercase slug, unique per team
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Enabled     bool      `bson:"enabled" json:"enabled"`
	CreatedBy   string    `bson:"created_by,omitempty" json:"created_by,omitempty"` // identity-provider uid
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
