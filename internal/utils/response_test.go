package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestResponseEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("echoes the request id", func(t *testing.T) {
		r := gin.New()
		r.GET("/", func(c *gin.Context) {
			c.Set("request_id", "req-123")
			SuccessResponse(c, "ok", map[string]string{"k": "v"})
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		var envelope APIResponse
		if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if envelope.Status != StatusSuccess || envelope.RequestID != "req-123" {
			t.Errorf("envelope = %+v", envelope)
		}
		if envelope.Timestamp.IsZero() {
			t.Error("timestamp must be set")
		}
	})

	t.Run("error envelope carries code and message", func(t *testing.T) {
		r := gin.New()
		r.GET("/", func(c *gin.Context) {
			ErrorResponse(c, http.StatusConflict, "CONFLICT", "already taken")
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		if w.Code != http.StatusConflict {
			t.Fatalf("status = %d", w.Code)
		}
		var envelope APIResponse
		if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if envelope.Error == nil || envelope.Error.Code != "CONFLICT" || envelope.Error.Message != "already taken" {
			t.Errorf("error = %+v", envelope.Error)
		}
	})

	t.Run("validation details keyed by field", func(t *testing.T) {
		r := gin.New()
		r.GET("/", func(c *gin.Context) {
			ValidationErrorResponse(c, map[string]string{"phone": "phone is invalid"})
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
		var envelope APIResponse
		if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if envelope.Error == nil || envelope.Error.Details["phone"] != "phone is invalid" {
			t.Errorf("details = %+v", envelope.Error)
		}
	})
}
