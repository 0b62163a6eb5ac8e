package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"luco/internal/utils"
)

type VoucherCategory string
type VoucherStatus string

const (
	VoucherCategoryDay    VoucherCategory = "Luco Day"
	VoucherCategoryWeek   VoucherCategory = "Luco Week"
	VoucherCategoryMonth  VoucherCategory = "Luco Month"
	VoucherCategoryMember VoucherCategory = "Member"
	VoucherCategoryPromo  VoucherCategory = "Promo"

	VoucherStatusActive    VoucherStatus = "active"
	VoucherStatusPurchased VoucherStatus = "purchased"
	VoucherStatusExpired   VoucherStatus = "expired"
)

func VoucherCategories() []VoucherCategory {
	return []VoucherCategory{
		VoucherCategoryDay,
		VoucherCategoryWeek,
		VoucherCategoryMonth,
		VoucherCategoryMember,
		VoucherCategoryPromo,
	}
}

type Voucher struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title" validate:"required"`
	Description string             `json:"description" bson:"description"`
	Category    VoucherCategory    `json:"category" bson:"category" validate:"required"`
	Price       float64            `json:"price" bson:"price" validate:"min=0"`
	Discount    string             `json:"discount" bson:"discount" validate:"required"`
	Code        string             `json:"code" bson:"code" validate:"required"`
	ExpiryDate  string             `json:"expiry_date" bson:"expiry_date"`
	IsNew       bool               `json:"is_new" bson:"is_new"`
	Status      VoucherStatus      `json:"status" bson:"status" default:"active"`
	PurchasedBy string             `json:"purchased_by,omitempty" bson:"purchased_by,omitempty"`
	PurchasedAt *time.Time         `json:"purchased_at,omitempty" bson:"purchased_at,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// EffectiveStatus derives the status clients see. A voucher whose expiry date
// is in the past reads as expired regardless of what is stored; the stored
// status is never rewritten.
func (v *Voucher) EffectiveStatus(now time.Time) VoucherStatus {
	if utils.IsExpiryPast(v.ExpiryDate, now) {
		return VoucherStatusExpired
	}
	if v.Status == "" {
		return VoucherStatusActive
	}
	return v.Status
}

// IsPurchasable reports whether a purchase flow may be started for the
// voucher at the given time.
func (v *Voucher) IsPurchasable(now time.Time) bool {
	return v.EffectiveStatus(now) == VoucherStatusActive
}

// IsFreeClaim reports whether the voucher is a zero-priced promotional
// voucher, which is claimed outright instead of paid for.
func (v *Voucher) IsFreeClaim() bool {
	return v.Category == VoucherCategoryPromo && v.Price == 0
}
