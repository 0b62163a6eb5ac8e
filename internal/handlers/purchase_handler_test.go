package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"luco/internal/models"
	"luco/internal/repositories/interfaces"
	"luco/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubPurchaseService struct {
	startErr   error
	submitErr  error
	confirmErr error
	retryErr   error
	getErr     error
	session    *models.PurchaseSession
}

func (s *stubPurchaseService) StartPurchase(ctx context.Context, voucherID primitive.ObjectID) (*models.PurchaseSession, error) {
	if s.startErr != nil {
		return nil, s.startErr
	}
	return s.session, nil
}

func (s *stubPurchaseService) SubmitPhone(ctx context.Context, sessionID, phone string) (*models.PurchaseSession, error) {
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	return s.session, nil
}

func (s *stubPurchaseService) ConfirmPayment(ctx context.Context, sessionID string) (*models.PurchaseSession, error) {
	if s.confirmErr != nil {
		return nil, s.confirmErr
	}
	return s.session, nil
}

func (s *stubPurchaseService) Retry(ctx context.Context, sessionID string) (*models.PurchaseSession, error) {
	if s.retryErr != nil {
		return nil, s.retryErr
	}
	return s.session, nil
}

func (s *stubPurchaseService) GetSession(ctx context.Context, sessionID string) (*models.PurchaseSession, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.session, nil
}

func (s *stubPurchaseService) Shutdown() {}

func newPurchaseRouter(svc services.PurchaseService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewPurchaseHandler(svc)

	r := gin.New()
	r.POST("/purchases", handler.StartPurchase)
	r.GET("/purchases/:id", handler.GetPurchase)
	r.POST("/purchases/:id/phone", handler.SubmitPhone)
	r.POST("/purchases/:id/confirm", handler.ConfirmPayment)
	r.POST("/purchases/:id/retry", handler.RetryPurchase)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return envelope
}

func TestStartPurchaseHandler(t *testing.T) {
	session := &models.PurchaseSession{ID: "sess-1", State: models.PurchaseStateEnterPhone}

	t.Run("creates a session", func(t *testing.T) {
		r := newPurchaseRouter(&stubPurchaseService{session: session})

		body := fmt.Sprintf(`{"voucher_id":%q}`, primitive.NewObjectID().Hex())
		w := doJSON(t, r, http.MethodPost, "/purchases", body)
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}

		envelope := decodeEnvelope(t, w)
		if envelope["status"] != "success" {
			t.Errorf("envelope = %v", envelope)
		}
	})

	t.Run("rejects a malformed voucher id", func(t *testing.T) {
		r := newPurchaseRouter(&stubPurchaseService{session: session})

		w := doJSON(t, r, http.MethodPost, "/purchases", `{"voucher_id":"not-an-id"}`)
		if w.Code != http.StatusBadRequest && w.Code != http.StatusUnprocessableEntity {
			t.Errorf("status = %d", w.Code)
		}
	})

	t.Run("unknown voucher maps to 404", func(t *testing.T) {
		r := newPurchaseRouter(&stubPurchaseService{startErr: interfaces.ErrNotFound})

		body := fmt.Sprintf(`{"voucher_id":%q}`, primitive.NewObjectID().Hex())
		w := doJSON(t, r, http.MethodPost, "/purchases", body)
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d", w.Code)
		}
	})
}

func TestSubmitPhoneHandler(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"disabled session maps to conflict", services.ErrSessionDisabled, http.StatusConflict},
		{"wrong state maps to conflict", services.ErrInvalidState, http.StatusConflict},
		{"rejected identity maps to 422", fmt.Errorf("%w: Number not registered", services.ErrIdentityRejected), http.StatusUnprocessableEntity},
		{"unknown session maps to 404", services.ErrSessionNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newPurchaseRouter(&stubPurchaseService{submitErr: tt.err})

			w := doJSON(t, r, http.MethodPost, "/purchases/sess-1/phone", `{"phone":"0708215305"}`)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.want, w.Body.String())
			}
		})
	}

	t.Run("invalid phone rejected before the service", func(t *testing.T) {
		r := newPurchaseRouter(&stubPurchaseService{submitErr: services.ErrSessionNotFound})

		w := doJSON(t, r, http.MethodPost, "/purchases/sess-1/phone", `{"phone":"12"}`)
		if w.Code != http.StatusUnprocessableEntity && w.Code != http.StatusBadRequest {
			t.Errorf("status = %d", w.Code)
		}
	})
}

func TestConfirmAndRetryHandlers(t *testing.T) {
	session := &models.PurchaseSession{ID: "sess-1", State: models.PurchaseStateVerifyPayment}

	t.Run("confirm returns the polling session", func(t *testing.T) {
		r := newPurchaseRouter(&stubPurchaseService{session: session})

		w := doJSON(t, r, http.MethodPost, "/purchases/sess-1/confirm", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
	})

	t.Run("retry outside failed maps to conflict", func(t *testing.T) {
		r := newPurchaseRouter(&stubPurchaseService{retryErr: services.ErrInvalidState})

		w := doJSON(t, r, http.MethodPost, "/purchases/sess-1/retry", "")
		if w.Code != http.StatusConflict {
			t.Errorf("status = %d", w.Code)
		}
	})

	t.Run("get unknown session maps to 404", func(t *testing.T) {
		r := newPurchaseRouter(&stubPurchaseService{getErr: services.ErrSessionNotFound})

		req := httptest.NewRequest(http.MethodGet, "/purchases/nope", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d", w.Code)
		}
	})
}
