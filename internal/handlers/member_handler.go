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

type MemberHandler struct {
	memberService services.MemberService
}

func NewMemberHandler(memberService services.MemberService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
	}
}

func (h *MemberHandler) Register(c *gin.Context) {
	var request validators.MemberRegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}
	if err := utils.ValidatePasswordStrength(request.Password); err != nil {
		utils.BadRequestResponse(c, "Weak password: "+err.Error())
		return
	}

	member := &models.Member{
		Username:           request.Username,
		Phone:              request.Phone,
		SubscriptionAmount: request.SubscriptionAmount,
	}

	if err := h.memberService.Register(c.Request.Context(), member, request.Password); err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken):
			utils.ConflictResponse(c, "This username is already taken")
		case errors.Is(err, services.ErrPhoneTaken):
			utils.ConflictResponse(c, "This phone number is already registered")
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "MEMBER_REGISTER_FAILED", "Failed to register member: "+err.Error())
		}
		return
	}

	utils.CreatedResponse(c, "Member registered", member)
}

// SignIn texts fresh credentials to a registered member's phone.
func (h *MemberHandler) SignIn(c *gin.Context) {
	var request validators.MemberSignInRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	if err := h.memberService.SignIn(c.Request.Context(), request.Phone); err != nil {
		if errors.Is(err, services.ErrMemberUnknown) {
			utils.NotFoundResponse(c, "Member")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "MEMBER_SIGNIN_FAILED", "Failed to sign in: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Sign-in details sent by SMS", nil)
}

func (h *MemberHandler) ListMembers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	members, total, err := h.memberService.ListMembers(c.Request.Context(), params)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "MEMBER_LIST_FAILED", "Failed to list members: "+err.Error())
		return
	}

	utils.SuccessResponseWithMeta(c, "Members retrieved", members, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(members),
	})
}

func (h *MemberHandler) UpdateMember(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid member ID")
		return
	}

	var request validators.MemberUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	updates := make(map[string]interface{})
	if request.Username != nil {
		updates["username"] = *request.Username
	}
	if request.SubscriptionAmount != nil {
		updates["subscription_amount"] = *request.SubscriptionAmount
	}
	if len(updates) == 0 {
		utils.BadRequestResponse(c, "No fields to update")
		return
	}

	if err := h.memberService.UpdateMember(c.Request.Context(), id, updates); err != nil {
		switch {
		case errors.Is(err, interfaces.ErrNotFound):
			utils.NotFoundResponse(c, "Member")
		case errors.Is(err, services.ErrUsernameTaken):
			utils.ConflictResponse(c, "This username is already taken")
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "MEMBER_UPDATE_FAILED", "Failed to update member: "+err.Error())
		}
		return
	}

	utils.SuccessResponse(c, "Member updated", nil)
}

func (h *MemberHandler) DeleteMember(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid member ID")
		return
	}

	if err := h.memberService.DeleteMember(c.Request.Context(), id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			utils.NotFoundResponse(c, "Member")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "MEMBER_DELETE_FAILED", "Failed to delete member: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Member deleted", nil)
}
