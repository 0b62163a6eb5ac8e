package payment

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"luco/pkg/logger"
)

const (
	identityPath = "/identity/msisdn"
	paymentPath  = "/api/v1/request_payment"
	statusPath   = "/api/v1/payment_webhook"

	referencePrefix = "LP-"
	referenceBytes  = 6 // 12 hex characters
)

// LucoPayClient talks to the LucoPay mobile-money REST API and mirrors
// observed transaction state into the injected status store.
type LucoPayClient struct {
	baseURL    string
	httpClient *http.Client
	store      *StatusStore
	logger     *logger.Logger
}

type LucoPayConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

func NewLucoPayClient(config *LucoPayConfig, store *StatusStore, log *logger.Logger) *LucoPayClient {
	timeout := config.RequestTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &LucoPayClient{
		baseURL:    strings.TrimSuffix(config.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		store:      store,
		logger:     log,
	}
}

type identityRequest struct {
	MSISDN string `json:"msisdn"`
}

type identityResponse struct {
	IdentityName string `json:"identityname"`
	Message      string `json:"message"`
	Success      bool   `json:"success"`
}

type paymentRequest struct {
	Amount string `json:"amount"`
	Number string `json:"number"`
	Refer  string `json:"refer"`
}

type paymentResponse struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

type statusRequest struct {
	Reference string `json:"reference"`
}

type statusResponse struct {
	Status  string `json:"status"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// VerifyIdentity resolves a phone number to the registered holder's display
// name. The number is sent in international form with a leading +.
func (c *LucoPayClient) VerifyIdentity(ctx context.Context, phone string) *IdentityResult {
	if !strings.HasPrefix(phone, "+") {
		phone = "+" + phone
	}

	var resp identityResponse
	if err := c.postJSON(ctx, identityPath, identityRequest{MSISDN: phone}, &resp); err != nil {
		c.logger.WithError(err).Warn("Identity verification request failed")
		return &IdentityResult{Success: false, Error: "Could not connect to identity service."}
	}

	if !resp.Success {
		message := resp.Message
		if message == "" {
			message = "Failed to verify phone number."
		}
		return &IdentityResult{Success: false, Error: message}
	}

	return &IdentityResult{Success: true, IdentityName: resp.IdentityName}
}

// RequestPayment initiates a charge against the given phone number. When
// reference is empty a fresh one is generated. The reference is registered
// as pending in the status store before the outbound call is attempted, so a
// later status check always has an entry to update, even when initiation
// itself fails.
func (c *LucoPayClient) RequestPayment(ctx context.Context, phone string, amount float64, reference string) *PaymentResult {
	if reference == "" {
		reference = GenerateReference()
	}

	c.store.Set(reference, State{Status: StatusPending})

	payload := paymentRequest{
		Amount: strconv.FormatFloat(amount, 'f', -1, 64),
		Number: strings.TrimPrefix(phone, "+"),
		Refer:  reference,
	}

	statusCode, body, err := c.postRaw(ctx, paymentPath, payload)
	if err != nil {
		c.logger.WithReference(reference).WithError(err).Error("Payment initiation request failed")
		c.store.Set(reference, State{Status: StatusFailed, FailureReason: "Failed to connect to payment service."})
		return &PaymentResult{Success: false, TransactionID: reference, Error: "Failed to connect to payment service."}
	}

	var resp paymentResponse
	// A malformed body on a 2xx response is tolerated; only an explicit
	// success:false or a non-2xx status marks failure.
	_ = json.Unmarshal(body, &resp)

	if statusCode < 200 || statusCode >= 300 || (resp.Success != nil && !*resp.Success) {
		message := resp.Error
		if message == "" {
			message = resp.Message
		}
		if message == "" {
			message = "An unknown error occurred during payment initiation."
		}
		message = "Payment initiation failed: " + message

		c.logger.WithReference(reference).WithField("status_code", statusCode).Error(message)
		c.store.Set(reference, State{Status: StatusFailed, FailureReason: message})
		return &PaymentResult{Success: false, TransactionID: reference, Error: message}
	}

	c.logger.LogPaymentEvent(reference, "initiated", amount, "UGX")
	return &PaymentResult{Success: true, TransactionID: reference}
}

// CheckPaymentStatus queries the provider for the state of a reference. The
// provider's "Transaction not found" answer is reported as a retryable
// NotFound result; pollers must keep polling on it. Recognized statuses are
// mirrored into the status store.
func (c *LucoPayClient) CheckPaymentStatus(ctx context.Context, reference string) *StatusResult {
	statusCode, body, err := c.postRaw(ctx, statusPath, statusRequest{Reference: reference})
	if err != nil {
		c.logger.WithReference(reference).WithError(err).Warn("Status check request failed")
		return &StatusResult{Success: false, Error: fmt.Sprintf("Failed to check status: %v", err)}
	}

	if statusCode < 200 || statusCode >= 300 {
		return &StatusResult{
			Success: false,
			Error:   fmt.Sprintf("API returned status %d: %s", statusCode, strings.TrimSpace(string(body))),
		}
	}

	var resp statusResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return &StatusResult{Success: false, Error: "Invalid response from payment service."}
	}

	if resp.Message == "Transaction not found" {
		return &StatusResult{
			Success:  false,
			NotFound: true,
			Error:    "Transaction not found. Please check your reference.",
		}
	}

	outcome, reason := decodeOutcome(resp.Status, resp.Reason)
	switch outcome {
	case OutcomeSucceeded:
		c.store.Set(reference, State{Status: StatusSuccess})
	case OutcomeFailed:
		c.store.Set(reference, State{Status: StatusFailed, FailureReason: reason})
	default:
		c.store.Set(reference, State{Status: StatusPending})
	}

	return &StatusResult{Success: true, Outcome: outcome, Reason: reason}
}

// decodeOutcome is the single place the provider's stringly-typed status
// field is interpreted. Anything unrecognized counts as still pending.
func decodeOutcome(status, reason string) (Outcome, string) {
	switch strings.ToLower(status) {
	case "succeeded", "success":
		return OutcomeSucceeded, ""
	case "failed":
		if reason == "" {
			reason = "Reason not provided"
		}
		return OutcomeFailed, reason
	default:
		return OutcomePending, ""
	}
}

// GenerateReference produces a transaction reference: fixed prefix plus 12
// upper-cased hex characters from a cryptographically random source.
func GenerateReference() string {
	b := make([]byte, referenceBytes)
	rand.Read(b)
	return referencePrefix + strings.ToUpper(hex.EncodeToString(b))
}

func (c *LucoPayClient) postJSON(ctx context.Context, path string, payload, dest interface{}) error {
	_, body, err := c.postRaw(ctx, path, payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, dest)
}

func (c *LucoPayClient) postRaw(ctx context.Context, path string, payload interface{}) (int, []byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}

	return resp.StatusCode, buf.Bytes(), nil
}
