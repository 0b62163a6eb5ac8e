package handlers

import (
	"errors"
	"net/http"

	"luco/internal/repositories/interfaces"
	"luco/internal/services"
	"luco/internal/utils"
	"luco/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PurchaseHandler struct {
	purchaseService services.PurchaseService
}

func NewPurchaseHandler(purchaseService services.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
	}
}

// StartPurchase opens a purchase session for a voucher.
func (h *PurchaseHandler) StartPurchase(c *gin.Context) {
	var request validators.PurchaseStartRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	voucherID, err := primitive.ObjectIDFromHex(request.VoucherID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid voucher ID")
		return
	}

	session, err := h.purchaseService.StartPurchase(c.Request.Context(), voucherID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			utils.NotFoundResponse(c, "Voucher")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "PURCHASE_START_FAILED", "Failed to start purchase: "+err.Error())
		return
	}

	utils.CreatedResponse(c, "Purchase session created", session)
}

func (h *PurchaseHandler) GetPurchase(c *gin.Context) {
	session, err := h.purchaseService.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.NotFoundResponse(c, "Purchase session")
		return
	}

	utils.SuccessResponse(c, "Purchase session retrieved", session)
}

// SubmitPhone verifies the buyer's mobile money identity.
func (h *PurchaseHandler) SubmitPhone(c *gin.Context) {
	var request validators.PurchasePhoneRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	session, err := h.purchaseService.SubmitPhone(c.Request.Context(), c.Param("id"), request.Phone)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSessionNotFound):
			utils.NotFoundResponse(c, "Purchase session")
		case errors.Is(err, services.ErrSessionDisabled):
			utils.ErrorResponse(c, http.StatusConflict, "VOUCHER_UNAVAILABLE", "This voucher is no longer available for purchase")
		case errors.Is(err, services.ErrInvalidState):
			utils.ErrorResponse(c, http.StatusConflict, "INVALID_STATE", "Phone submission is not valid at this stage")
		case errors.Is(err, services.ErrIdentityRejected):
			utils.ErrorResponse(c, http.StatusUnprocessableEntity, "IDENTITY_REJECTED", err.Error())
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "PHONE_SUBMIT_FAILED", "Failed to submit phone: "+err.Error())
		}
		return
	}

	utils.SuccessResponse(c, "Identity verified", session)
}

// ConfirmPayment initiates the mobile money charge and starts verification.
func (h *PurchaseHandler) ConfirmPayment(c *gin.Context) {
	session, err := h.purchaseService.ConfirmPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSessionNotFound):
			utils.NotFoundResponse(c, "Purchase session")
		case errors.Is(err, services.ErrInvalidState):
			utils.ErrorResponse(c, http.StatusConflict, "INVALID_STATE", "Payment confirmation is not valid at this stage")
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "PAYMENT_INIT_FAILED", "Failed to initiate payment: "+err.Error())
		}
		return
	}

	utils.SuccessResponse(c, "Payment initiated", session)
}

// RetryPurchase resets a failed session back to phone entry.
func (h *PurchaseHandler) RetryPurchase(c *gin.Context) {
	session, err := h.purchaseService.Retry(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSessionNotFound):
			utils.NotFoundResponse(c, "Purchase session")
		case errors.Is(err, services.ErrInvalidState):
			utils.ErrorResponse(c, http.StatusConflict, "INVALID_STATE", "Only failed purchases can be retried")
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "PURCHASE_RETRY_FAILED", "Failed to retry purchase: "+err.Error())
		}
		return
	}

	utils.SuccessResponse(c, "Purchase reset", session)
}
