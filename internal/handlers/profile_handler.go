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

type ProfileHandler struct {
	profileService services.ProfileService
}

func NewProfileHandler(profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var request validators.ProfileCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	profile := &models.VoucherProfile{
		Name:        request.Name,
		Title:       request.Title,
		Description: request.Description,
		Category:    models.VoucherCategory(request.Category),
		Price:       request.Price,
		Discount:    request.Discount,
	}

	if err := h.profileService.CreateProfile(c.Request.Context(), profile); err != nil {
		if errors.Is(err, services.ErrProfileNameTaken) {
			utils.ConflictResponse(c, "A profile with this name already exists")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "PROFILE_CREATE_FAILED", "Failed to create profile: "+err.Error())
		return
	}

	utils.CreatedResponse(c, "Profile created", profile)
}

func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	profiles, total, err := h.profileService.ListProfiles(c.Request.Context(), params)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "PROFILE_LIST_FAILED", "Failed to list profiles: "+err.Error())
		return
	}

	utils.SuccessResponseWithMeta(c, "Profiles retrieved", profiles, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(profiles),
	})
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid profile ID")
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			utils.NotFoundResponse(c, "Profile")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "PROFILE_GET_FAILED", "Failed to get profile: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Profile retrieved", profile)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid profile ID")
		return
	}

	var request validators.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	updates := make(map[string]interface{})
	if request.Name != nil {
		updates["name"] = *request.Name
	}
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
	if len(updates) == 0 {
		utils.BadRequestResponse(c, "No fields to update")
		return
	}

	if err := h.profileService.UpdateProfile(c.Request.Context(), id, updates); err != nil {
		switch {
		case errors.Is(err, interfaces.ErrNotFound):
			utils.NotFoundResponse(c, "Profile")
		case errors.Is(err, services.ErrProfileNameTaken):
			utils.ConflictResponse(c, "A profile with this name already exists")
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "PROFILE_UPDATE_FAILED", "Failed to update profile: "+err.Error())
		}
		return
	}

	utils.SuccessResponse(c, "Profile updated", nil)
}

func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid profile ID")
		return
	}

	if err := h.profileService.DeleteProfile(c.Request.Context(), id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			utils.NotFoundResponse(c, "Profile")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "PROFILE_DELETE_FAILED", "Failed to delete profile: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Profile deleted", nil)
}
