package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PurchaseState string

const (
	PurchaseStateEnterPhone      PurchaseState = "enter-phone"
	PurchaseStateConfirmIdentity PurchaseState = "confirm-identity"
	PurchaseStateVerifyPayment   PurchaseState = "verify-payment"
	PurchaseStateReceipt         PurchaseState = "receipt"
	PurchaseStateFailed          PurchaseState = "failed"
)

// PurchaseSession is the externally visible snapshot of one in-progress
// voucher purchase. Sessions live in memory for the life of the process;
// they are not persisted.
type PurchaseSession struct {
	ID            string             `json:"id"`
	VoucherID     primitive.ObjectID `json:"voucher_id"`
	State         PurchaseState      `json:"state"`
	Phone         string             `json:"phone,omitempty"`
	IdentityName  string             `json:"identity_name,omitempty"`
	Reference     string             `json:"reference,omitempty"`
	FailureReason string             `json:"failure_reason,omitempty"`
	// Disabled marks a session whose voucher was already purchased or
	// expired when the flow was opened; phone submission is rejected.
	Disabled  bool      `json:"disabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
