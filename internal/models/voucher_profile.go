package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VoucherProfile is a reusable template applied to rows of a CSV import.
// The profile supplies the descriptive fields; each row supplies the
// redemption code and expiry.
type VoucherProfile struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name" validate:"required"`
	Title       string             `json:"title" bson:"title" validate:"required"`
	Description string             `json:"description" bson:"description"`
	Category    VoucherCategory    `json:"category" bson:"category" validate:"required"`
	Price       float64            `json:"price" bson:"price" validate:"min=0"`
	Discount    string             `json:"discount" bson:"discount" validate:"required"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}
