package handlers

import (
	"errors"
	"net/http"

	"luco/internal/models"
	"luco/internal/repositories/interfaces"
	"luco/internal/services"
	"luco/internal/utils"
	"luco/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VoucherHandler struct {
	voucherService services.VoucherService
	profileService services.ProfileService
}

func NewVoucherHandler(voucherService services.VoucherService, profileService services.ProfileService) *VoucherHandler {
	return &VoucherHandler{
		voucherService: voucherService,
		profileService: profileService,
	}
}

// ListVouchers returns the voucher catalog, optionally filtered by
// category or status.
func (h *VoucherHandler) ListVouchers(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	category := c.Query("category")
	status := c.Query("status")

	vouchers, total, err := h.voucherService.ListVouchers(c.Request.Context(), category, status, params)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "VOUCHER_LIST_FAILED", "Failed to list vouchers: "+err.Error())
		return
	}

	utils.SuccessResponseWithMeta(c, "Vouchers retrieved", vouchers, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(vouchers),
	})
}

func (h *VoucherHandler) GetVoucher(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid voucher ID")
		return
	}

	voucher, err := h.voucherService.GetVoucher(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			utils.NotFoundResponse(c, "Voucher")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "VOUCHER_GET_FAILED", "Failed to get voucher: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Voucher retrieved", voucher)
}

func (h *VoucherHandler) GetVoucherByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		utils.BadRequestResponse(c, "Voucher code is required")
		return
	}

	voucher, err := h.voucherService.GetVoucherByCode(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			utils.NotFoundResponse(c, "Voucher")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "VOUCHER_GET_FAILED", "Failed to get voucher: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Voucher retrieved", voucher)
}

func (h *VoucherHandler) CreateVoucher(c *gin.Context) {
	var request validators.VoucherCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	voucher := &models.Voucher{
		Title:       request.Title,
		Description: request.Description,
		Category:    models.VoucherCategory(request.Category),
		Price:       request.Price,
		Discount:    request.Discount,
		Code:        request.Code,
		ExpiryDate:  request.ExpiryDate,
		IsNew:       request.IsNew,
	}

	if err := h.voucherService.CreateVoucher(c.Request.Context(), voucher); err != nil {
		if errors.Is(err, interfaces.ErrDuplicate) {
			utils.ConflictResponse(c, "A voucher with this code already exists")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "VOUCHER_CREATE_FAILED", "Failed to create voucher: "+err.Error())
		return
	}

	utils.CreatedResponse(c, "Voucher created", voucher)
}

func (h *VoucherHandler) UpdateVoucher(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid voucher ID")
		return
	}

	var request validators.VoucherUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	updates := voucherUpdates(&request)
	if len(updates) == 0 {
		utils.BadRequestResponse(c, "No fields to update")
		return
	}

	if err := h.voucherService.UpdateVoucher(c.Request.Context(), id, updates); err != nil {
		switch {
		case errors.Is(err, interfaces.ErrNotFound):
			utils.NotFoundResponse(c, "Voucher")
		case errors.Is(err, interfaces.ErrDuplicate):
			utils.ConflictResponse(c, "A voucher with this code already exists")
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "VOUCHER_UPDATE_FAILED", "Failed to update voucher: "+err.Error())
		}
		return
	}

	utils.SuccessResponse(c, "Voucher updated", nil)
}

func (h *VoucherHandler) DeleteVoucher(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid voucher ID")
		return
	}

	if err := h.voucherService.DeleteVoucher(c.Request.Context(), id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			utils.NotFoundResponse(c, "Voucher")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "VOUCHER_DELETE_FAILED", "Failed to delete voucher: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Voucher deleted", nil)
}

// ImportVouchers accepts a CSV upload and creates vouchers through their
// named profiles.
func (h *VoucherHandler) ImportVouchers(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "A CSV file upload named 'file' is required")
		return
	}
	defer file.Close()

	result, err := h.profileService.ImportVouchers(c.Request.Context(), file)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "VOUCHER_IMPORT_FAILED", "Failed to import vouchers: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Import completed", result)
}

func voucherUpdates(request *validators.VoucherUpdateRequest) map[string]interface{} {
	updates := make(map[string]interface{})
	if request.Title != nil {
		updates["title"] = *request.Title
	}
	if request.Description != nil {
		updates["description"] = *request.Description
	}
	if request.Category != nil {
		updates["category"] = *request.Category
	}
	if request.Price != nil {
		updates["price"] = *request.Price
	}
	if request.Discount != nil {
		updates["discount"] = *request.Discount
	}
	if request.Code != nil {
		updates["code"] = *request.Code
	}
	if request.ExpiryDate != nil {
		updates["expiry_date"] = *request.ExpiryDate
	}
	if request.IsNew != nil {
		updates["is_new"] = *request.IsNew
	}
	return updates
}
