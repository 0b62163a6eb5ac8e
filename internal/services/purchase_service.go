package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"luco/internal/config"
	"luco/internal/models"
	"luco/internal/repositories/interfaces"
	"luco/internal/utils"
	"luco/pkg/logger"
	"luco/pkg/payment"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrSessionNotFound  = errors.New("purchase session not found")
	ErrInvalidState     = errors.New("operation not valid in current state")
	ErrSessionDisabled  = errors.New("voucher is not available for purchase")
	ErrIdentityRejected = errors.New("identity verification failed")
)

// PurchaseService drives the voucher purchase flow. Each session walks
// enter-phone -> confirm-identity -> verify-payment -> receipt, with failed
// reachable from any paid step and retry leading back to enter-phone.
type PurchaseService interface {
	StartPurchase(ctx context.Context, voucherID primitive.ObjectID) (*models.PurchaseSession, error)
	SubmitPhone(ctx context.Context, sessionID, phone string) (*models.PurchaseSession, error)
	ConfirmPayment(ctx context.Context, sessionID string) (*models.PurchaseSession, error)
	Retry(ctx context.Context, sessionID string) (*models.PurchaseSession, error)
	GetSession(ctx context.Context, sessionID string) (*models.PurchaseSession, error)
	Shutdown()
}

type purchaseService struct {
	voucherRepo interfaces.VoucherRepository
	gateway     payment.Gateway
	logger      *logger.Logger

	mu       sync.RWMutex
	sessions map[string]*purchaseSession

	pollInterval time.Duration
	pollTimeout  time.Duration
	currency     string
}

// purchaseSession is the internal mutable state behind one flow. The
// snapshot handed to callers is always a copy.
type purchaseSession struct {
	models.PurchaseSession

	price float64
	stop  chan struct{}
}

func NewPurchaseService(voucherRepo interfaces.VoucherRepository, gateway payment.Gateway, paymentCfg *config.PaymentConfig, log *logger.Logger) PurchaseService {
	pollInterval := utils.PaymentPollInterval
	currency := utils.DefaultCurrency
	if paymentCfg != nil {
		if paymentCfg.PollInterval > 0 {
			pollInterval = paymentCfg.PollInterval
		}
		if paymentCfg.Currency != "" {
			currency = paymentCfg.Currency
		}
	}

	return &purchaseService{
		voucherRepo:  voucherRepo,
		gateway:      gateway,
		logger:       log,
		sessions:     make(map[string]*purchaseSession),
		pollInterval: pollInterval,
		pollTimeout:  5 * time.Minute,
		currency:     currency,
	}
}

func (s *purchaseService) StartPurchase(ctx context.Context, voucherID primitive.ObjectID) (*models.PurchaseSession, error) {
	voucher, err := s.voucherRepo.GetByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &purchaseSession{
		PurchaseSession: models.PurchaseSession{
			ID:        uuid.NewString(),
			VoucherID: voucherID,
			State:     models.PurchaseStateEnterPhone,
			CreatedAt: now,
			UpdatedAt: now,
		},
		price: voucher.Price,
	}

	switch {
	case voucher.IsFreeClaim():
		// Zero-priced promo vouchers are claimed outright: no identity
		// check, no payment request, and the voucher record is untouched
		// so the code stays claimable.
		session.State = models.PurchaseStateReceipt
	case !voucher.IsPurchasable(now):
		session.Disabled = true
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.logger.LogPurchaseEvent(voucherID, session.ID, "purchase_started", map[string]interface{}{
		"state":    session.State,
		"disabled": session.Disabled,
	})

	return s.snapshot(session.ID)
}

func (s *purchaseService) SubmitPhone(ctx context.Context, sessionID, phone string) (*models.PurchaseSession, error) {
	session, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if session.Disabled {
		s.mu.Unlock()
		return nil, ErrSessionDisabled
	}
	if session.State != models.PurchaseStateEnterPhone {
		s.mu.Unlock()
		return nil, ErrInvalidState
	}
	s.mu.Unlock()

	// Availability is re-checked on every submission: the voucher may have
	// been sold or expired since the flow was opened or last retried.
	voucher, err := s.voucherRepo.GetByID(ctx, session.VoucherID)
	if err != nil {
		return nil, err
	}
	if !voucher.IsPurchasable(time.Now()) {
		s.mu.Lock()
		session.Disabled = true
		session.UpdatedAt = time.Now()
		s.mu.Unlock()
		return nil, ErrSessionDisabled
	}

	formatted := utils.FormatPhone(phone)
	if !utils.IsValidPhone(formatted) {
		return nil, fmt.Errorf("%w: invalid phone number", ErrIdentityRejected)
	}

	result := s.gateway.VerifyIdentity(ctx, formatted)
	if !result.Success {
		// The session stays on enter-phone so the buyer can correct the
		// number and resubmit.
		return nil, fmt.Errorf("%w: %s", ErrIdentityRejected, result.Error)
	}

	s.mu.Lock()
	session.Phone = formatted
	session.IdentityName = result.IdentityName
	session.State = models.PurchaseStateConfirmIdentity
	session.UpdatedAt = time.Now()
	s.mu.Unlock()

	s.logger.LogPurchaseEvent(session.VoucherID, sessionID, "identity_confirmed", map[string]interface{}{
		"phone": utils.MaskPhone(formatted),
	})

	return s.snapshot(sessionID)
}

func (s *purchaseService) ConfirmPayment(ctx context.Context, sessionID string) (*models.PurchaseSession, error) {
	session, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if session.State != models.PurchaseStateConfirmIdentity {
		s.mu.Unlock()
		return nil, ErrInvalidState
	}
	phone := session.Phone
	price := session.price
	s.mu.Unlock()

	result := s.gateway.RequestPayment(ctx, phone, price, "")

	s.mu.Lock()
	session.Reference = result.TransactionID
	session.UpdatedAt = time.Now()
	if !result.Success {
		session.State = models.PurchaseStateFailed
		session.FailureReason = result.Error
		s.mu.Unlock()
		return s.snapshot(sessionID)
	}
	session.State = models.PurchaseStateVerifyPayment
	session.stop = make(chan struct{})
	stop := session.stop
	s.mu.Unlock()

	s.logger.LogPaymentEvent(result.TransactionID, "payment_requested", price, s.currency)

	go s.pollPayment(session, stop)

	return s.snapshot(sessionID)
}

// pollPayment checks the gateway until the transaction reaches a terminal
// outcome. On success the ticker is stopped before the single voucher
// write, so a late tick can never race a second write.
func (s *purchaseService) pollPayment(session *purchaseSession, stop chan struct{}) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	deadline := time.NewTimer(s.pollTimeout)
	defer deadline.Stop()

	for {
		select {
		case <-stop:
			return
		case <-deadline.C:
			s.failSession(session, "Payment verification timed out. Please try again.")
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			result := s.gateway.CheckPaymentStatus(ctx, session.Reference)
			cancel()

			switch {
			case result.NotFound:
				// The provider has not indexed the transaction yet.
				continue
			case !result.Success:
				// A definitive error (non-2xx, connectivity, bad body)
				// terminates verification; only not-found is retryable.
				ticker.Stop()
				s.failSession(session, result.Error)
				return
			case result.Outcome == payment.OutcomePending:
				continue
			case result.Outcome == payment.OutcomeSucceeded:
				ticker.Stop()
				s.completeSession(session)
				return
			case result.Outcome == payment.OutcomeFailed:
				ticker.Stop()
				s.failSession(session, result.Reason)
				return
			}
		}
	}
}

func (s *purchaseService) completeSession(session *purchaseSession) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.mu.RLock()
	phone := session.Phone
	s.mu.RUnlock()

	err := s.voucherRepo.MarkPurchased(ctx, session.VoucherID, phone)
	if err != nil {
		if errors.Is(err, interfaces.ErrVoucherUnavailable) {
			s.failSession(session, "This voucher was purchased by someone else.")
			return
		}
		s.logger.WithError(err).WithVoucherID(session.VoucherID).Error("failed to record voucher purchase")
		s.failSession(session, "Payment succeeded but the voucher could not be issued. Contact support with your reference.")
		return
	}

	s.mu.Lock()
	session.State = models.PurchaseStateReceipt
	session.UpdatedAt = time.Now()
	session.stop = nil
	s.mu.Unlock()

	s.logger.LogPurchaseEvent(session.VoucherID, session.ID, "purchase_completed", map[string]interface{}{
		"reference": session.Reference,
	})
}

func (s *purchaseService) failSession(session *purchaseSession, reason string) {
	s.mu.Lock()
	session.State = models.PurchaseStateFailed
	session.FailureReason = reason
	session.UpdatedAt = time.Now()
	session.stop = nil
	s.mu.Unlock()

	s.logger.LogPurchaseEvent(session.VoucherID, session.ID, "purchase_failed", map[string]interface{}{
		"reason": reason,
	})
}

func (s *purchaseService) Retry(ctx context.Context, sessionID string) (*models.PurchaseSession, error) {
	session, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if session.State != models.PurchaseStateFailed {
		s.mu.Unlock()
		return nil, ErrInvalidState
	}
	session.State = models.PurchaseStateEnterPhone
	session.Phone = ""
	session.IdentityName = ""
	session.Reference = ""
	session.FailureReason = ""
	session.UpdatedAt = time.Now()
	s.mu.Unlock()

	return s.snapshot(sessionID)
}

func (s *purchaseService) GetSession(ctx context.Context, sessionID string) (*models.PurchaseSession, error) {
	return s.snapshot(sessionID)
}

// Shutdown cancels every live payment poller. Sessions stuck in
// verify-payment stay there; no terminal transition is forced.
func (s *purchaseService) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, session := range s.sessions {
		if session.stop != nil {
			close(session.stop)
			session.stop = nil
		}
	}
}

func (s *purchaseService) get(sessionID string) (*purchaseSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *purchaseService) snapshot(sessionID string) (*models.PurchaseSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := session.PurchaseSession
	return &copied, nil
}
