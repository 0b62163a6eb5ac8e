package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Banner struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ImageURL    string             `json:"image_url" bson:"image_url" validate:"required"`
	Description string             `json:"description" bson:"description"`
	ImageHint   string             `json:"image_hint" bson:"image_hint"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}
