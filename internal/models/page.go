package models

import "time"

// Page is a static policy page (shipping, returns, privacy...) editable
// from the admin panel.
type Page struct {
	Slug      string    `bson:"_id" json:"slug"`
	Title     string    `bson:"title" json:"title"`
	Body      string    `bson:"body" json:"body"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
