package handlers

import (
	"net/http"

	"luco/internal/services"
	"luco/internal/utils"
	"luco/internal/validators"

	"github.com/gin-gonic/gin"
)

type RecommendationHandler struct {
	recommendationService services.RecommendationService
}

func NewRecommendationHandler(recommendationService services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationService: recommendationService,
	}
}

// Recommend matches a purchase-history text against the active catalog.
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	var request validators.RecommendationRequest
	if err := c.ShouldBindQuery(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	vouchers, err := h.recommendationService.Recommend(c.Request.Context(), request.History, request.Limit)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "RECOMMENDATION_FAILED", "Failed to build recommendations: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Recommendations retrieved", vouchers)
}
