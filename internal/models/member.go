package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Member struct {
	ID                 primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username           string             `json:"username" bson:"username" validate:"required,min=3"`
	Phone              string             `json:"phone" bson:"phone" validate:"required,phone"`
	Password           string             `json:"-" bson:"password"`
	SubscriptionAmount float64            `json:"subscription_amount" bson:"subscription_amount" validate:"min=0"`
	JoinedAt           time.Time          `json:"joined_at" bson:"joined_at"`
	UpdatedAt          time.Time          `json:"updated_at" bson:"updated_at"`
}
