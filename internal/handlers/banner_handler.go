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

type BannerHandler struct {
	bannerService services.BannerService
}

func NewBannerHandler(bannerService services.BannerService) *BannerHandler {
	return &BannerHandler{
		bannerService: bannerService,
	}
}

// GetStorefrontBanners returns the latest banners for the carousel.
func (h *BannerHandler) GetStorefrontBanners(c *gin.Context) {
	banners, err := h.bannerService.GetStorefrontBanners(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "BANNER_LIST_FAILED", "Failed to list banners: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Banners retrieved", banners)
}

func (h *BannerHandler) ListBanners(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	banners, total, err := h.bannerService.ListBanners(c.Request.Context(), params)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "BANNER_LIST_FAILED", "Failed to list banners: "+err.Error())
		return
	}

	utils.SuccessResponseWithMeta(c, "Banners retrieved", banners, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(banners),
	})
}

func (h *BannerHandler) CreateBanner(c *gin.Context) {
	var request validators.BannerCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	banner := &models.Banner{
		ImageURL:    request.ImageURL,
		Description: request.Description,
		ImageHint:   request.ImageHint,
	}

	if err := h.bannerService.CreateBanner(c.Request.Context(), banner); err != nil {
		if errors.Is(err, services.ErrInvalidImageURL) {
			utils.BadRequestResponse(c, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "BANNER_CREATE_FAILED", "Failed to create banner: "+err.Error())
		return
	}

	utils.CreatedResponse(c, "Banner created", banner)
}

func (h *BannerHandler) UpdateBanner(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid banner ID")
		return
	}

	var request validators.BannerUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	updates := make(map[string]interface{})
	if request.ImageURL != nil {
		updates["image_url"] = *request.ImageURL
	}
	if request.Description != nil {
		updates["description"] = *request.Description
	}
	if request.ImageHint != nil {
		updates["image_hint"] = *request.ImageHint
	}
	if len(updates) == 0 {
		utils.BadRequestResponse(c, "No fields to update")
		return
	}

	if err := h.bannerService.UpdateBanner(c.Request.Context(), id, updates); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			utils.NotFoundResponse(c, "Banner")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "BANNER_UPDATE_FAILED", "Failed to update banner: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Banner updated", nil)
}

func (h *BannerHandler) DeleteBanner(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid banner ID")
		return
	}

	if err := h.bannerService.DeleteBanner(c.Request.Context(), id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			utils.NotFoundResponse(c, "Banner")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "BANNER_DELETE_FAILED", "Failed to delete banner: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Banner deleted", nil)
}
