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

type SubscriberHandler struct {
	subscriberService services.SubscriberService
}

func NewSubscriberHandler(subscriberService services.SubscriberService) *SubscriberHandler {
	return &SubscriberHandler{
		subscriberService: subscriberService,
	}
}

func (h *SubscriberHandler) Subscribe(c *gin.Context) {
	var request validators.SubscribeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	subscriber, err := h.subscriberService.Subscribe(c.Request.Context(), request.Phone)
	if err != nil {
		if errors.Is(err, services.ErrAlreadySubscribed) {
			utils.ConflictResponse(c, "This phone number is already subscribed")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "SUBSCRIBE_FAILED", "Failed to subscribe: "+err.Error())
		return
	}

	utils.CreatedResponse(c, "Subscribed", subscriber)
}

func (h *SubscriberHandler) ListSubscribers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	subscribers, total, err := h.subscriberService.ListSubscribers(c.Request.Context(), params)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "SUBSCRIBER_LIST_FAILED", "Failed to list subscribers: "+err.Error())
		return
	}

	utils.SuccessResponseWithMeta(c, "Subscribers retrieved", subscribers, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(subscribers),
	})
}

func (h *SubscriberHandler) UpdateSubscriber(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid subscriber ID")
		return
	}

	var request validators.SubscriberUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	if err := h.subscriberService.UpdateSubscriber(c.Request.Context(), id, request.Phone); err != nil {
		switch {
		case errors.Is(err, interfaces.ErrNotFound):
			utils.NotFoundResponse(c, "Subscriber")
		case errors.Is(err, services.ErrAlreadySubscribed):
			utils.ConflictResponse(c, "This phone number is already subscribed")
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "SUBSCRIBER_UPDATE_FAILED", "Failed to update subscriber: "+err.Error())
		}
		return
	}

	utils.SuccessResponse(c, "Subscriber updated", nil)
}

func (h *SubscriberHandler) DeleteSubscriber(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid subscriber ID")
		return
	}

	if err := h.subscriberService.DeleteSubscriber(c.Request.Context(), id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			utils.NotFoundResponse(c, "Subscriber")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "SUBSCRIBER_DELETE_FAILED", "Failed to delete subscriber: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Subscriber deleted", nil)
}

func (h *SubscriberHandler) BatchDeleteSubscribers(c *gin.Context) {
	var request validators.SubscriberBatchDeleteRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	ids := make([]primitive.ObjectID, 0, len(request.IDs))
	for _, raw := range request.IDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid subscriber ID: "+raw)
			return
		}
		ids = append(ids, id)
	}

	deleted, err := h.subscriberService.DeleteSubscribers(c.Request.Context(), ids)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "SUBSCRIBER_DELETE_FAILED", "Failed to delete subscribers: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Subscribers deleted", gin.H{"deleted": deleted})
}

// Broadcast sends one SMS to the selected subscribers, or to everyone when
// no phones are given.
func (h *SubscriberHandler) Broadcast(c *gin.Context) {
	var request validators.BroadcastRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	result, err := h.subscriberService.Broadcast(c.Request.Context(), request.Phones, request.Message)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "BROADCAST_FAILED", "Failed to broadcast: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Broadcast completed", result)
}
