package payment

import (
	"context"
)

// Gateway is the mobile-money payment provider boundary. Every operation
// returns a tagged result: provider rejections, connectivity problems and
// malformed responses all surface as Success=false with a user-presentable
// message, never as a panic or a bare error the caller has to interpret.
type Gateway interface {
	VerifyIdentity(ctx context.Context, phone string) *IdentityResult
	RequestPayment(ctx context.Context, phone string, amount float64, reference string) *PaymentResult
	CheckPaymentStatus(ctx context.Context, reference string) *StatusResult
}

// Status is the locally tracked state of a transaction reference.
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Outcome is the decoded terminal-or-not answer from a status check. The
// provider's stringly-typed status field is mapped onto this closed set in
// exactly one place, inside the client.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeSucceeded
	OutcomeFailed
)

type IdentityResult struct {
	Success      bool   `json:"success"`
	IdentityName string `json:"identity_name,omitempty"`
	Error        string `json:"error,omitempty"`
}

type PaymentResult struct {
	Success bool `json:"success"`
	// TransactionID carries the reference even when initiation failed, so
	// callers can surface it in logs and support flows.
	TransactionID string `json:"transaction_id,omitempty"`
	Error         string `json:"error,omitempty"`
}

type StatusResult struct {
	Success bool    `json:"success"`
	Outcome Outcome `json:"-"`
	// Reason is the provider's failure reason when Outcome is OutcomeFailed.
	Reason string `json:"reason,omitempty"`
	// NotFound marks the provider's "transaction not found" answer, which a
	// poller must treat as retryable rather than terminal.
	NotFound bool   `json:"not_found,omitempty"`
	Error    string `json:"error,omitempty"`
}
