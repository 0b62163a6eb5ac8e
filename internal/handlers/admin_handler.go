package handlers

import (
	"errors"
	"net/http"

	"luco/internal/services"
	"luco/internal/utils"
	"luco/internal/validators"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	authService      services.AuthService
	snippetService   services.SnippetService
	analyticsService services.AnalyticsService
}

func NewAdminHandler(authService services.AuthService, snippetService services.SnippetService, analyticsService services.AnalyticsService) *AdminHandler {
	return &AdminHandler{
		authService:      authService,
		snippetService:   snippetService,
		analyticsService: analyticsService,
	}
}

func (h *AdminHandler) Login(c *gin.Context) {
	var request validators.AdminLoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	tokens, err := h.authService.AdminLogin(c.Request.Context(), request.Username, request.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.ErrorResponse(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to log in: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Logged in", tokens)
}

// GenerateSnippet produces an integration snippet for the requested
// platform.
func (h *AdminHandler) GenerateSnippet(c *gin.Context) {
	var request validators.SnippetRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	snippet, err := h.snippetService.GenerateSnippet(c.Request.Context(), request.Platform, request.Description)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadGateway, "SNIPPET_FAILED", "Failed to generate snippet: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Snippet generated", snippet)
}

func (h *AdminHandler) GetVoucherAnalytics(c *gin.Context) {
	summary, err := h.analyticsService.GetVoucherSummary(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "ANALYTICS_FAILED", "Failed to load analytics: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Analytics retrieved", summary)
}
