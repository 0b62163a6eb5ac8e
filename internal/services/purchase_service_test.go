package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"luco/internal/config"
	"luco/internal/models"
	"luco/internal/repositories/interfaces"
	"luco/internal/utils"
	"luco/pkg/logger"
	"luco/pkg/payment"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeGateway struct {
	mu sync.Mutex

	identityResult *payment.IdentityResult
	paymentResult  *payment.PaymentResult
	statusScript   []*payment.StatusResult

	identityCalls int
	paymentCalls  int
	statusCalls   int
	lastPhone     string
	refCounter    int
}

func (g *fakeGateway) VerifyIdentity(ctx context.Context, phone string) *payment.IdentityResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.identityCalls++
	g.lastPhone = phone
	if g.identityResult != nil {
		return g.identityResult
	}
	return &payment.IdentityResult{Success: true, IdentityName: "Jane"}
}

func (g *fakeGateway) RequestPayment(ctx context.Context, phone string, amount float64, reference string) *payment.PaymentResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.paymentCalls++
	if g.paymentResult != nil {
		return g.paymentResult
	}
	g.refCounter++
	return &payment.PaymentResult{Success: true, TransactionID: fmt.Sprintf("LP-FAKE%08d", g.refCounter)}
}

func (g *fakeGateway) CheckPaymentStatus(ctx context.Context, reference string) *payment.StatusResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.statusCalls++
	if len(g.statusScript) == 0 {
		return &payment.StatusResult{Success: true, Outcome: payment.OutcomePending}
	}
	next := g.statusScript[0]
	if len(g.statusScript) > 1 {
		g.statusScript = g.statusScript[1:]
	}
	return next
}

type fakeVoucherRepo struct {
	mu       sync.Mutex
	vouchers map[primitive.ObjectID]*models.Voucher

	markCalls int
	created   []*models.Voucher
	// dropOnCreateMany simulates duplicate codes the unordered insert skips.
	dropOnCreateMany int
}

func newFakeVoucherRepo(vouchers ...*models.Voucher) *fakeVoucherRepo {
	repo := &fakeVoucherRepo{vouchers: make(map[primitive.ObjectID]*models.Voucher)}
	for _, v := range vouchers {
		repo.vouchers[v.ID] = v
	}
	return repo
}

func (r *fakeVoucherRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Voucher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vouchers[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	copied := *v
	return &copied, nil
}

func (r *fakeVoucherRepo) MarkPurchased(ctx context.Context, id primitive.ObjectID, phone string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markCalls++
	v, ok := r.vouchers[id]
	if !ok || v.Status != models.VoucherStatusActive {
		return interfaces.ErrVoucherUnavailable
	}
	now := time.Now()
	v.Status = models.VoucherStatusPurchased
	v.PurchasedBy = phone
	v.PurchasedAt = &now
	return nil
}

func (r *fakeVoucherRepo) markedCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.markCalls
}

func (r *fakeVoucherRepo) Create(ctx context.Context, voucher *models.Voucher) error { return nil }
func (r *fakeVoucherRepo) CreateMany(ctx context.Context, vouchers []*models.Voucher) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, vouchers...)
	return len(vouchers) - r.dropOnCreateMany, nil
}
func (r *fakeVoucherRepo) GetByCode(ctx context.Context, code string) (*models.Voucher, error) {
	return nil, interfaces.ErrNotFound
}
func (r *fakeVoucherRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return nil
}
func (r *fakeVoucherRepo) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }
func (r *fakeVoucherRepo) GetAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Voucher, int64, error) {
	return nil, 0, nil
}
func (r *fakeVoucherRepo) GetByCategory(ctx context.Context, category models.VoucherCategory, params *utils.PaginationParams) ([]*models.Voucher, int64, error) {
	return nil, 0, nil
}
func (r *fakeVoucherRepo) GetByStatus(ctx context.Context, status models.VoucherStatus, params *utils.PaginationParams) ([]*models.Voucher, int64, error) {
	return nil, 0, nil
}
func (r *fakeVoucherRepo) GetActive(ctx context.Context) ([]*models.Voucher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var active []*models.Voucher
	for _, v := range r.vouchers {
		if v.Status == models.VoucherStatusActive {
			copied := *v
			active = append(active, &copied)
		}
	}
	return active, nil
}
func (r *fakeVoucherRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return nil, nil
}
func (r *fakeVoucherRepo) CountByCategory(ctx context.Context) (map[string]int64, error) {
	return nil, nil
}
func (r *fakeVoucherRepo) SumPurchasedRevenue(ctx context.Context) (float64, error) { return 0, nil }

func testServiceLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text", Output: "stderr"})
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return log
}

func newTestPurchaseService(t *testing.T, repo interfaces.VoucherRepository, gateway payment.Gateway) *purchaseService {
	t.Helper()
	paymentCfg := &config.PaymentConfig{PollInterval: time.Millisecond, Currency: "UGX"}
	svc := NewPurchaseService(repo, gateway, paymentCfg, testServiceLogger(t)).(*purchaseService)
	svc.pollTimeout = time.Second
	return svc
}

func activeVoucher(price float64) *models.Voucher {
	return &models.Voucher{
		ID:       primitive.NewObjectID(),
		Title:    "Weekly deal",
		Category: models.VoucherCategoryWeek,
		Price:    price,
		Status:   models.VoucherStatusActive,
	}
}

func waitForState(t *testing.T, svc *purchaseService, sessionID string, want models.PurchaseState) *models.PurchaseSession {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		session, err := svc.GetSession(context.Background(), sessionID)
		if err != nil {
			t.Fatalf("GetSession: %v", err)
		}
		if session.State == want {
			return session
		}
		time.Sleep(2 * time.Millisecond)
	}
	session, err := svc.GetSession(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("session never reached %q: %v", want, err)
	}
	t.Fatalf("session never reached %q, stuck at %q (reason %q)", want, session.State, session.FailureReason)
	return nil
}

func TestStartPurchase(t *testing.T) {
	t.Run("opens on enter-phone for an active voucher", func(t *testing.T) {
		voucher := activeVoucher(5000)
		svc := newTestPurchaseService(t, newFakeVoucherRepo(voucher), &fakeGateway{})

		session, err := svc.StartPurchase(context.Background(), voucher.ID)
		if err != nil {
			t.Fatalf("StartPurchase: %v", err)
		}
		if session.State != models.PurchaseStateEnterPhone {
			t.Errorf("state = %q", session.State)
		}
		if session.Disabled {
			t.Error("session must not be disabled")
		}
	})

	t.Run("free promo claim lands on receipt with zero gateway calls", func(t *testing.T) {
		voucher := activeVoucher(0)
		voucher.Category = models.VoucherCategoryPromo
		repo := newFakeVoucherRepo(voucher)
		gateway := &fakeGateway{}
		svc := newTestPurchaseService(t, repo, gateway)

		session, err := svc.StartPurchase(context.Background(), voucher.ID)
		if err != nil {
			t.Fatalf("StartPurchase: %v", err)
		}
		if session.State != models.PurchaseStateReceipt {
			t.Fatalf("state = %q, want receipt", session.State)
		}
		if gateway.identityCalls != 0 || gateway.paymentCalls != 0 || gateway.statusCalls != 0 {
			t.Error("free claim must not touch the gateway")
		}
		if repo.markedCalls() != 0 {
			t.Error("free claim must not write the voucher record")
		}
	})

	t.Run("sold voucher opens disabled", func(t *testing.T) {
		voucher := activeVoucher(5000)
		voucher.Status = models.VoucherStatusPurchased
		svc := newTestPurchaseService(t, newFakeVoucherRepo(voucher), &fakeGateway{})

		session, err := svc.StartPurchase(context.Background(), voucher.ID)
		if err != nil {
			t.Fatalf("StartPurchase: %v", err)
		}
		if !session.Disabled {
			t.Error("session should be disabled")
		}

		if _, err := svc.SubmitPhone(context.Background(), session.ID, "0708215305"); !errors.Is(err, ErrSessionDisabled) {
			t.Errorf("SubmitPhone err = %v, want ErrSessionDisabled", err)
		}
	})

	t.Run("unknown voucher", func(t *testing.T) {
		svc := newTestPurchaseService(t, newFakeVoucherRepo(), &fakeGateway{})
		if _, err := svc.StartPurchase(context.Background(), primitive.NewObjectID()); !errors.Is(err, interfaces.ErrNotFound) {
			t.Errorf("err = %v", err)
		}
	})
}

func TestSubmitPhone(t *testing.T) {
	t.Run("normalizes the number and records the identity", func(t *testing.T) {
		voucher := activeVoucher(5000)
		gateway := &fakeGateway{}
		svc := newTestPurchaseService(t, newFakeVoucherRepo(voucher), gateway)

		opened, _ := svc.StartPurchase(context.Background(), voucher.ID)
		session, err := svc.SubmitPhone(context.Background(), opened.ID, "0708215305")
		if err != nil {
			t.Fatalf("SubmitPhone: %v", err)
		}
		if session.State != models.PurchaseStateConfirmIdentity {
			t.Errorf("state = %q", session.State)
		}
		if session.IdentityName != "Jane" {
			t.Errorf("identity = %q", session.IdentityName)
		}
		if gateway.lastPhone != "+256708215305" {
			t.Errorf("gateway saw %q, want normalized number", gateway.lastPhone)
		}
	})

	t.Run("identity rejection stays on enter-phone", func(t *testing.T) {
		voucher := activeVoucher(5000)
		gateway := &fakeGateway{identityResult: &payment.IdentityResult{Success: false, Error: "Number not registered"}}
		svc := newTestPurchaseService(t, newFakeVoucherRepo(voucher), gateway)

		opened, _ := svc.StartPurchase(context.Background(), voucher.ID)
		_, err := svc.SubmitPhone(context.Background(), opened.ID, "0708215305")
		if !errors.Is(err, ErrIdentityRejected) {
			t.Fatalf("err = %v, want ErrIdentityRejected", err)
		}

		session, _ := svc.GetSession(context.Background(), opened.ID)
		if session.State != models.PurchaseStateEnterPhone {
			t.Errorf("state = %q, want enter-phone", session.State)
		}
	})

	t.Run("availability re-checked on submission", func(t *testing.T) {
		voucher := activeVoucher(5000)
		repo := newFakeVoucherRepo(voucher)
		svc := newTestPurchaseService(t, repo, &fakeGateway{})

		opened, _ := svc.StartPurchase(context.Background(), voucher.ID)

		// Another buyer wins the voucher while this session idles.
		if err := repo.MarkPurchased(context.Background(), voucher.ID, "+256700000001"); err != nil {
			t.Fatalf("MarkPurchased: %v", err)
		}

		if _, err := svc.SubmitPhone(context.Background(), opened.ID, "0708215305"); !errors.Is(err, ErrSessionDisabled) {
			t.Errorf("err = %v, want ErrSessionDisabled", err)
		}
	})
}

func TestConfirmPayment(t *testing.T) {
	t.Run("success path writes the voucher exactly once", func(t *testing.T) {
		voucher := activeVoucher(5000)
		repo := newFakeVoucherRepo(voucher)
		gateway := &fakeGateway{statusScript: []*payment.StatusResult{
			{Success: false, NotFound: true, Error: "Transaction not found. Please check your reference."},
			{Success: true, Outcome: payment.OutcomePending},
			{Success: true, Outcome: payment.OutcomePending},
			{Success: true, Outcome: payment.OutcomeSucceeded},
		}}
		svc := newTestPurchaseService(t, repo, gateway)

		opened, _ := svc.StartPurchase(context.Background(), voucher.ID)
		if _, err := svc.SubmitPhone(context.Background(), opened.ID, "0708215305"); err != nil {
			t.Fatalf("SubmitPhone: %v", err)
		}

		session, err := svc.ConfirmPayment(context.Background(), opened.ID)
		if err != nil {
			t.Fatalf("ConfirmPayment: %v", err)
		}
		if session.State != models.PurchaseStateVerifyPayment {
			t.Fatalf("state = %q, want verify-payment", session.State)
		}
		if session.Reference == "" {
			t.Fatal("reference must be set")
		}

		waitForState(t, svc, opened.ID, models.PurchaseStateReceipt)

		if got := repo.markedCalls(); got != 1 {
			t.Errorf("voucher writes = %d, want exactly 1", got)
		}

		sold, _ := repo.GetByID(context.Background(), voucher.ID)
		if sold.Status != models.VoucherStatusPurchased || sold.PurchasedBy != "+256708215305" {
			t.Errorf("voucher after purchase = %+v", sold)
		}
	})

	t.Run("initiation failure fails the session without a write", func(t *testing.T) {
		voucher := activeVoucher(5000)
		repo := newFakeVoucherRepo(voucher)
		gateway := &fakeGateway{paymentResult: &payment.PaymentResult{
			Success:       false,
			TransactionID: "LP-DECLINED00001",
			Error:         "Payment initiation failed: insufficient funds",
		}}
		svc := newTestPurchaseService(t, repo, gateway)

		opened, _ := svc.StartPurchase(context.Background(), voucher.ID)
		svc.SubmitPhone(context.Background(), opened.ID, "0708215305")

		session, err := svc.ConfirmPayment(context.Background(), opened.ID)
		if err != nil {
			t.Fatalf("ConfirmPayment: %v", err)
		}
		if session.State != models.PurchaseStateFailed {
			t.Fatalf("state = %q, want failed", session.State)
		}
		if session.FailureReason != "Payment initiation failed: insufficient funds" {
			t.Errorf("reason = %q", session.FailureReason)
		}
		if repo.markedCalls() != 0 {
			t.Error("failed initiation must not write the voucher")
		}
	})

	t.Run("failed status stops polling and records the reason", func(t *testing.T) {
		voucher := activeVoucher(5000)
		repo := newFakeVoucherRepo(voucher)
		gateway := &fakeGateway{statusScript: []*payment.StatusResult{
			{Success: true, Outcome: payment.OutcomePending},
			{Success: true, Outcome: payment.OutcomeFailed, Reason: "insufficient funds"},
		}}
		svc := newTestPurchaseService(t, repo, gateway)

		opened, _ := svc.StartPurchase(context.Background(), voucher.ID)
		svc.SubmitPhone(context.Background(), opened.ID, "0708215305")
		svc.ConfirmPayment(context.Background(), opened.ID)

		session := waitForState(t, svc, opened.ID, models.PurchaseStateFailed)
		if session.FailureReason != "insufficient funds" {
			t.Errorf("reason = %q", session.FailureReason)
		}
		if repo.markedCalls() != 0 {
			t.Error("failed payment must not write the voucher")
		}
	})

	t.Run("definitive status error stops polling", func(t *testing.T) {
		voucher := activeVoucher(5000)
		repo := newFakeVoucherRepo(voucher)
		gateway := &fakeGateway{statusScript: []*payment.StatusResult{
			{Success: true, Outcome: payment.OutcomePending},
			{Success: false, Error: "API returned status 500"},
		}}
		svc := newTestPurchaseService(t, repo, gateway)

		opened, _ := svc.StartPurchase(context.Background(), voucher.ID)
		svc.SubmitPhone(context.Background(), opened.ID, "0708215305")
		svc.ConfirmPayment(context.Background(), opened.ID)

		session := waitForState(t, svc, opened.ID, models.PurchaseStateFailed)
		if session.FailureReason != "API returned status 500" {
			t.Errorf("reason = %q", session.FailureReason)
		}
		if repo.markedCalls() != 0 {
			t.Error("a status error must not write the voucher")
		}

		gateway.mu.Lock()
		calls := gateway.statusCalls
		gateway.mu.Unlock()
		time.Sleep(20 * time.Millisecond)
		gateway.mu.Lock()
		after := gateway.statusCalls
		gateway.mu.Unlock()
		if after != calls {
			t.Errorf("poller kept running after the error: %d -> %d calls", calls, after)
		}
	})

	t.Run("voucher sold during polling fails the session", func(t *testing.T) {
		voucher := activeVoucher(5000)
		repo := newFakeVoucherRepo(voucher)
		gateway := &fakeGateway{statusScript: []*payment.StatusResult{
			{Success: true, Outcome: payment.OutcomeSucceeded},
		}}
		svc := newTestPurchaseService(t, repo, gateway)

		opened, _ := svc.StartPurchase(context.Background(), voucher.ID)
		svc.SubmitPhone(context.Background(), opened.ID, "0708215305")

		// A rival purchase completes before this one's payment clears.
		repo.MarkPurchased(context.Background(), voucher.ID, "+256700000001")

		svc.ConfirmPayment(context.Background(), opened.ID)

		session := waitForState(t, svc, opened.ID, models.PurchaseStateFailed)
		if session.FailureReason == "" {
			t.Error("expected a failure reason")
		}

		sold, _ := repo.GetByID(context.Background(), voucher.ID)
		if sold.PurchasedBy != "+256700000001" {
			t.Errorf("first buyer overwritten: %+v", sold)
		}
	})
}

func TestShutdown(t *testing.T) {
	voucher := activeVoucher(5000)
	repo := newFakeVoucherRepo(voucher)
	// No terminal outcome scripted; the poller would run until timeout.
	gateway := &fakeGateway{}
	svc := newTestPurchaseService(t, repo, gateway)

	opened, _ := svc.StartPurchase(context.Background(), voucher.ID)
	svc.SubmitPhone(context.Background(), opened.ID, "0708215305")
	if _, err := svc.ConfirmPayment(context.Background(), opened.ID); err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}

	svc.Shutdown()

	// The poller may consume one already-fired tick before it observes the
	// cancellation; wait for the call count to go quiet.
	var before, after int
	settled := false
	for i := 0; i < 20 && !settled; i++ {
		gateway.mu.Lock()
		before = gateway.statusCalls
		gateway.mu.Unlock()
		time.Sleep(10 * time.Millisecond)
		gateway.mu.Lock()
		after = gateway.statusCalls
		gateway.mu.Unlock()
		settled = before == after
	}
	if !settled {
		t.Fatalf("poller still calling the gateway after shutdown: %d -> %d", before, after)
	}

	session, err := svc.GetSession(context.Background(), opened.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if session.State != models.PurchaseStateVerifyPayment {
		t.Errorf("state = %q, shutdown must not force a terminal transition", session.State)
	}

	// Idempotent.
	svc.Shutdown()
}

func TestRetry(t *testing.T) {
	voucher := activeVoucher(5000)
	repo := newFakeVoucherRepo(voucher)
	gateway := &fakeGateway{paymentResult: &payment.PaymentResult{
		Success:       false,
		TransactionID: "LP-DECLINED00001",
		Error:         "Payment initiation failed: insufficient funds",
	}}
	svc := newTestPurchaseService(t, repo, gateway)

	opened, _ := svc.StartPurchase(context.Background(), voucher.ID)
	svc.SubmitPhone(context.Background(), opened.ID, "0708215305")
	svc.ConfirmPayment(context.Background(), opened.ID)

	failedRef := func() string {
		session, _ := svc.GetSession(context.Background(), opened.ID)
		return session.Reference
	}()

	session, err := svc.Retry(context.Background(), opened.ID)
	if err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if session.State != models.PurchaseStateEnterPhone {
		t.Fatalf("state = %q, want enter-phone", session.State)
	}
	if session.Phone != "" || session.IdentityName != "" || session.Reference != "" || session.FailureReason != "" {
		t.Errorf("retry must clear identity state: %+v", session)
	}

	// The next attempt succeeds and gets an independent reference.
	gateway.mu.Lock()
	gateway.paymentResult = nil
	gateway.mu.Unlock()

	if _, err := svc.SubmitPhone(context.Background(), opened.ID, "0708215305"); err != nil {
		t.Fatalf("SubmitPhone after retry: %v", err)
	}
	confirmed, err := svc.ConfirmPayment(context.Background(), opened.ID)
	if err != nil {
		t.Fatalf("ConfirmPayment after retry: %v", err)
	}
	if confirmed.Reference == "" || confirmed.Reference == failedRef {
		t.Errorf("reference %q not independent of failed attempt %q", confirmed.Reference, failedRef)
	}

	// Only failed sessions can be retried.
	if _, err := svc.Retry(context.Background(), opened.ID); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Retry in verify-payment err = %v, want ErrInvalidState", err)
	}
}
