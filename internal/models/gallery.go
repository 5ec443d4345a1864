package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GalleryImage backs both the inspiration gallery and the room
// visualizer (rug cut-outs the client overlays on a room photo).
type GalleryImage struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title      string             `bson:"title" json:"title"`
	Kind       string             `bson:"kind" json:"kind"` // "gallery" or "visualizer"
	URL        string             `bson:"url" json:"url"`
	ObjectName string             `bson:"object_name" json:"object_name"`
	UploadedBy string             `bson:"uploaded_by" json:"uploaded_by"`
	UploadedAt time.Time          `bson:"uploaded_at" json:"uploaded_at"`
}
