package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Subscriber struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Phone        string             `json:"phone" bson:"phone" validate:"required,phone"`
	SubscribedAt time.Time          `json:"subscribed_at" bson:"subscribed_at"`
}
